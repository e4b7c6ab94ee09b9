package routers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/registry"
)

func TestMapDomainErrorStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unauthorized", auth.ErrUnauthorized, http.StatusUnauthorized},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"permission denied", registry.ErrPermissionDenied, http.StatusForbidden},
		{"not found", registry.ErrTaskNotFound, http.StatusNotFound},
		{"store down", registry.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("something else"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := mapDomainError(tc.err)
			assert.Equal(t, tc.want, status)
		})
	}
}

// A revocation-list outage is an infrastructure failure, not a rejected
// credential: it must come back 503 with the sentinel text only.
func TestMapDomainErrorSessionStoreOutage(t *testing.T) {
	wrapped := fmt.Errorf("%w: dial tcp 10.0.0.5:6379: connect: connection refused", auth.ErrSessionStoreUnavailable)

	status, message := mapDomainError(wrapped)

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, auth.ErrSessionStoreUnavailable.Error(), message)
	assert.NotContains(t, message, "6379")
}
