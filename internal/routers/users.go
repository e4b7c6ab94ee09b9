package routers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/dto"
)

// UserRoutes is the team management surface: Admin-only member listing,
// role changes, and removal, with the self/primary-admin protections
// enforced in the auth service.
type UserRoutes struct {
	service       auth.UserService
	authenticator *auth.Authenticator
}

func NewUserRoutes(service auth.UserService, authenticator *auth.Authenticator) *UserRoutes {
	return &UserRoutes{
		service:       service,
		authenticator: authenticator,
	}
}

func (r *UserRoutes) RegisterHandlers(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /users", r.handleList)
	mux.HandleFunc("PATCH /users/{id}/role", r.handleChangeRole)
	mux.HandleFunc("DELETE /users/{id}", r.handleRemove)
}

func (r *UserRoutes) handleList(w http.ResponseWriter, req *http.Request) {
	p, err := r.authenticator.Principal(req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	users, err := r.service.ListMembers(req.Context(), p)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := make([]dto.MemberResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, dto.MemberResponse{
			ID:        u.ID.String(),
			Username:  u.Username,
			FullName:  u.FullName,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (r *UserRoutes) handleChangeRole(w http.ResponseWriter, req *http.Request) {
	p, err := r.authenticator.Principal(req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	userID, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var payload dto.ChangeRoleRequest
	if err := decodeJSON(req, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	role, err := auth.ParseRole(payload.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := r.service.ChangeRole(req.Context(), p, userID, role); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (r *UserRoutes) handleRemove(w http.ResponseWriter, req *http.Request) {
	p, err := r.authenticator.Principal(req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	userID, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := r.service.RemoveMember(req.Context(), p, userID); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
