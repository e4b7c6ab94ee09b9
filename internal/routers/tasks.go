package routers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/dto"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/registry"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/workspace"
)

const dateLayout = "2006-01-02"

type TaskRoutes struct {
	service       registry.TaskService
	workspaces    workspace.WorkspaceService
	authenticator *auth.Authenticator
}

func NewTaskRoutes(service registry.TaskService, workspaces workspace.WorkspaceService, authenticator *auth.Authenticator) *TaskRoutes {
	return &TaskRoutes{
		service:       service,
		workspaces:    workspaces,
		authenticator: authenticator,
	}
}

func (r *TaskRoutes) RegisterHandlers(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("POST /tasks", r.handleCreate)
	mux.HandleFunc("GET /tasks", r.handleList)
	mux.HandleFunc("PATCH /tasks/{id}/status", r.handleStatus)
	mux.HandleFunc("DELETE /tasks/{id}", r.handleDelete)
	mux.HandleFunc("GET /dashboard/stats", r.handleDashboard)
}

func (r *TaskRoutes) handleCreate(w http.ResponseWriter, req *http.Request) {
	p, err := r.authenticator.Principal(req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	var payload dto.CreateTaskRequest
	if err := decodeJSON(req, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := time.Parse(dateLayout, payload.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
		return
	}

	status := registry.StatusPending
	if payload.Status != "" {
		status, err = registry.ParseStatus(payload.Status)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	task, err := r.service.Add(req.Context(), &p, registry.TaskInput{
		Date:       date,
		CustomerID: auth.SanitizeString(payload.CustomerID),
		TaskType:   auth.SanitizeString(payload.TaskType),
		Area:       auth.SanitizeString(payload.Area),
		Status:     status,
		Remarks:    payload.Remarks,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (r *TaskRoutes) handleList(w http.ResponseWriter, req *http.Request) {
	p, err := r.authenticator.Principal(req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	statusFilter, err := registry.ParseStatusFilter(req.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := r.service.List(req.Context(), &p)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	tasks = registry.Filter(tasks, req.URL.Query().Get("search"), statusFilter)

	resp := dto.TaskListResponse{
		Tasks: make([]dto.TaskResponse, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (r *TaskRoutes) handleStatus(w http.ResponseWriter, req *http.Request) {
	p, err := r.authenticator.Principal(req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	taskID, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var payload dto.UpdateStatusRequest
	if err := decodeJSON(req, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	status, err := registry.ParseStatus(payload.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := r.service.SetStatus(req.Context(), &p, taskID, status)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (r *TaskRoutes) handleDelete(w http.ResponseWriter, req *http.Request) {
	p, err := r.authenticator.Principal(req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	taskID, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if err := r.service.Delete(req.Context(), &p, taskID); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (r *TaskRoutes) handleDashboard(w http.ResponseWriter, req *http.Request) {
	p, err := r.authenticator.Principal(req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	tasks, err := r.service.List(req.Context(), &p)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	vocab, err := r.workspaces.GetVocabulary(req.Context(), p)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	summary := registry.Summarize(tasks)
	resp := dto.DashboardResponse{
		Total:       summary.Total,
		Completed:   summary.Completed,
		Pending:     summary.Pending,
		SuccessRate: summary.SuccessRate,
		ByArea:      toCountEntries(registry.CountByArea(tasks, vocab.Areas)),
		ByMonth:     toCountEntries(registry.CountByMonth(tasks)),
		TopTypes:    toCountEntries(registry.TopTypes(tasks, 6)),
	}
	writeJSON(w, http.StatusOK, resp)
}

func toTaskResponse(t registry.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID.String(),
		SerialNo:    t.SerialNo,
		Date:        t.Date.Format(dateLayout),
		CustomerID:  t.CustomerID,
		TaskType:    t.TaskType,
		Area:        t.Area,
		Status:      string(t.Status),
		Month:       t.Month,
		CreatedBy:   t.CreatedBy,
		CompletedBy: t.CompletedBy,
		Remarks:     t.Remarks,
	}
}

func toCountEntries(counts []registry.Count) []dto.CountEntry {
	entries := make([]dto.CountEntry, 0, len(counts))
	for _, c := range counts {
		entries = append(entries, dto.CountEntry{Name: c.Name, Count: c.Count})
	}
	return entries
}
