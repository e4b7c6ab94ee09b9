package routers

import (
	"context"
	"net/http"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/dto"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/workspace"
)

type WorkspaceRoutes struct {
	service       workspace.WorkspaceService
	authenticator *auth.Authenticator
}

func NewWorkspaceRoutes(service workspace.WorkspaceService, authenticator *auth.Authenticator) *WorkspaceRoutes {
	return &WorkspaceRoutes{
		service:       service,
		authenticator: authenticator,
	}
}

func (r *WorkspaceRoutes) RegisterHandlers(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /workspace/vocabulary", r.handleVocabulary)
	mux.HandleFunc("POST /workspace/task-types", r.addValue(workspace.KindTaskType))
	mux.HandleFunc("DELETE /workspace/task-types/{value}", r.removeValue(workspace.KindTaskType))
	mux.HandleFunc("POST /workspace/areas", r.addValue(workspace.KindArea))
	mux.HandleFunc("DELETE /workspace/areas/{value}", r.removeValue(workspace.KindArea))
}

func (r *WorkspaceRoutes) handleVocabulary(w http.ResponseWriter, req *http.Request) {
	p, err := r.authenticator.Principal(req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	vocab, err := r.service.GetVocabulary(req.Context(), p)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.VocabularyResponse{
		TaskTypes: vocab.TaskTypes,
		Areas:     vocab.Areas,
	})
}

func (r *WorkspaceRoutes) addValue(kind workspace.VocabKind) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		p, err := r.authenticator.Principal(req)
		if err != nil {
			handleDomainError(w, err)
			return
		}

		var payload dto.AddVocabRequest
		if err := decodeJSON(req, &payload); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := r.service.AddValue(req.Context(), p, kind, payload.Value); err != nil {
			handleDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
}

func (r *WorkspaceRoutes) removeValue(kind workspace.VocabKind) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		p, err := r.authenticator.Principal(req)
		if err != nil {
			handleDomainError(w, err)
			return
		}

		if err := r.service.RemoveValue(req.Context(), p, kind, req.PathValue("value")); err != nil {
			handleDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
