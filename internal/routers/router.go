package routers

import (
	"context"
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/assistant"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/registry"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/report"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/workspace"
)

type Dependencies struct {
	Users      auth.UserService
	Tasks      registry.TaskService
	Workspaces workspace.WorkspaceService
	Assistant  assistant.AssistantService
	Reports    report.ReportService
	JWTSecret  []byte
	Redis      *redis.Client

	// AuthLimiter, when set, wraps the credential endpoints only. The rest
	// of the API stays unthrottled.
	AuthLimiter func(http.Handler) http.Handler
	Middleware  []func(http.Handler) http.Handler
}

type Router struct {
	mux     *http.ServeMux
	handler http.Handler
}

func New(deps Dependencies) (*Router, error) {
	if deps.Users == nil || deps.Tasks == nil || deps.Workspaces == nil {
		return nil, errors.New("user, task and workspace services must be provided")
	}
	if deps.Assistant == nil || deps.Reports == nil {
		return nil, errors.New("assistant and report services must be provided")
	}
	if len(deps.JWTSecret) == 0 {
		return nil, errors.New("jwt secret is required")
	}

	authenticator := auth.NewAuthenticator(deps.JWTSecret, deps.Redis)
	mux := http.NewServeMux()
	ctx := context.Background()

	NewAuthRoutes(deps.Users, authenticator, deps.JWTSecret, deps.Redis, deps.AuthLimiter).RegisterHandlers(ctx, mux)
	NewUserRoutes(deps.Users, authenticator).RegisterHandlers(ctx, mux)
	NewWorkspaceRoutes(deps.Workspaces, authenticator).RegisterHandlers(ctx, mux)
	NewTaskRoutes(deps.Tasks, deps.Workspaces, authenticator).RegisterHandlers(ctx, mux)
	NewAssistantRoutes(deps.Assistant, authenticator).RegisterHandlers(ctx, mux)
	NewReportRoutes(deps.Reports, authenticator).RegisterHandlers(ctx, mux)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	var handler http.Handler = mux
	for i := len(deps.Middleware) - 1; i >= 0; i-- {
		handler = deps.Middleware[i](handler)
	}

	return &Router{
		mux:     mux,
		handler: handler,
	}, nil
}

func (r *Router) Handler() http.Handler {
	if r == nil {
		return nil
	}
	return r.handler
}
