package routers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/assistant"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/registry"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/report"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/workspace"
)

const maxBodySize = 1 << 20 // 1MB

var (
	errEmptyBody   = errors.New("request body is empty")
	errUnknownBody = errors.New("request body contains unexpected data")
)

func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()

	limited := io.LimitReader(r.Body, maxBodySize)
	decoder := json.NewDecoder(limited)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}

	if decoder.More() {
		return errUnknownBody
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write json error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	writeJSON(w, status, map[string]string{"error": message})
}

// mapDomainError translates the service-layer error taxonomy to HTTP codes.
func mapDomainError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, auth.ErrSessionStoreUnavailable):
		// The wrapped cause names internal infrastructure. Surface only the
		// sentinel text.
		return http.StatusServiceUnavailable, auth.ErrSessionStoreUnavailable.Error()
	case errors.Is(err, registry.ErrUnauthenticated),
		errors.Is(err, auth.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, registry.ErrPermissionDenied),
		errors.Is(err, auth.ErrAdminRequired),
		errors.Is(err, auth.ErrSelfManagement),
		errors.Is(err, auth.ErrPrimaryAdmin):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, registry.ErrTaskNotFound),
		errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, workspace.ErrWorkspaceNotFound),
		errors.Is(err, workspace.ErrValueNotFound),
		errors.Is(err, report.ErrReportNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, auth.ErrUsernameTaken),
		errors.Is(err, workspace.ErrDuplicateValue),
		errors.Is(err, report.ErrNoData),
		errors.Is(err, assistant.ErrNoData):
		return http.StatusConflict, err.Error()
	case errors.Is(err, registry.ErrStoreUnavailable),
		errors.Is(err, report.ErrArchiveUnavailable),
		errors.Is(err, assistant.ErrUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	default:
		return http.StatusBadRequest, err.Error()
	}
}

func handleDomainError(w http.ResponseWriter, err error) {
	statusCode, message := mapDomainError(err)
	writeError(w, statusCode, message)
}
