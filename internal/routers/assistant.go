package routers

import (
	"context"
	"net/http"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/assistant"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/dto"
)

type AssistantRoutes struct {
	service       assistant.AssistantService
	authenticator *auth.Authenticator
}

func NewAssistantRoutes(service assistant.AssistantService, authenticator *auth.Authenticator) *AssistantRoutes {
	return &AssistantRoutes{
		service:       service,
		authenticator: authenticator,
	}
}

func (r *AssistantRoutes) RegisterHandlers(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("POST /assistant/analyze", r.handleAnalyze)
	mux.HandleFunc("POST /assistant/chat", r.handleChat)
}

func (r *AssistantRoutes) handleAnalyze(w http.ResponseWriter, req *http.Request) {
	p, err := r.authenticator.Principal(req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	insight, err := r.service.Analyze(req.Context(), &p)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AnalysisResponse{Insight: insight})
}

func (r *AssistantRoutes) handleChat(w http.ResponseWriter, req *http.Request) {
	p, err := r.authenticator.Principal(req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	var payload dto.ChatRequest
	if err := decodeJSON(req, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	history := make([]assistant.Turn, 0, len(payload.History))
	for _, t := range payload.History {
		history = append(history, assistant.Turn{Role: t.Role, Text: t.Text})
	}

	reply, err := r.service.Chat(req.Context(), &p, history, payload.Message)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ChatResponse{Reply: reply})
}
