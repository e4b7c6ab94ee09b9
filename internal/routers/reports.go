package routers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/dto"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportRoutes struct {
	service       report.ReportService
	authenticator *auth.Authenticator
}

func NewReportRoutes(service report.ReportService, authenticator *auth.Authenticator) *ReportRoutes {
	return &ReportRoutes{
		service:       service,
		authenticator: authenticator,
	}
}

func (r *ReportRoutes) RegisterHandlers(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /reports/export", r.handleExport)
	mux.HandleFunc("GET /reports", r.handleList)
	mux.HandleFunc("GET /reports/{id}", r.handleDownload)
}

func (r *ReportRoutes) handleExport(w http.ResponseWriter, req *http.Request) {
	p, err := r.authenticator.Principal(req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	filename, data, err := r.service.Export(req.Context(), &p)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (r *ReportRoutes) handleList(w http.ResponseWriter, req *http.Request) {
	p, err := r.authenticator.Principal(req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	reports, err := r.service.ListReports(req.Context(), &p)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := make([]dto.ReportResponse, 0, len(reports))
	for _, rec := range reports {
		resp = append(resp, toReportResponse(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (r *ReportRoutes) handleDownload(w http.ResponseWriter, req *http.Request) {
	p, err := r.authenticator.Principal(req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	reportID, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid report id")
		return
	}

	rec, body, err := r.service.Download(req.Context(), &p, reportID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Filename))
	if rec.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(rec.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, body)
}

func toReportResponse(rec report.Report) dto.ReportResponse {
	return dto.ReportResponse{
		ID:          rec.ID.String(),
		Filename:    rec.Filename,
		Size:        rec.Size,
		Checksum:    rec.Checksum,
		GeneratedBy: rec.GeneratedBy,
		CreatedAt:   rec.CreatedAt,
	}
}
