package routers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/dto"
)

// fakeUserService only needs Profile for these tests; the credential
// operations are stubbed.
type fakeUserService struct {
	fullName string
}

func (f *fakeUserService) Register(_ context.Context, _, _, _, _ string) (auth.Users, error) {
	return auth.Users{}, auth.ErrUsernameTaken
}

func (f *fakeUserService) Login(_ context.Context, _, _, _ string) (auth.Users, auth.Claims, error) {
	return auth.Users{}, auth.Claims{}, auth.ErrInvalidCredentials
}

func (f *fakeUserService) Profile(_ context.Context, p auth.Principal) (auth.Users, error) {
	return auth.Users{
		ID:          p.ID,
		Username:    p.Username,
		FullName:    f.fullName,
		Role:        p.Role,
		WorkspaceID: p.WorkspaceID,
	}, nil
}

func (f *fakeUserService) ListMembers(_ context.Context, _ auth.Principal) ([]auth.Users, error) {
	return nil, nil
}

func (f *fakeUserService) ChangeRole(_ context.Context, _ auth.Principal, _ uuid.UUID, _ auth.Role) error {
	return nil
}

func (f *fakeUserService) RemoveMember(_ context.Context, _ auth.Principal, _ uuid.UUID) error {
	return nil
}

func newAuthMux(limit func(http.Handler) http.Handler) *http.ServeMux {
	routes := NewAuthRoutes(&fakeUserService{fullName: "Amy Akter"}, auth.NewAuthenticator(testSecret, nil), testSecret, nil, limit)
	mux := http.NewServeMux()
	routes.RegisterHandlers(context.Background(), mux)
	return mux
}

func TestProfileUsesTokenPrincipal(t *testing.T) {
	mux := newAuthMux(nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", bearerFor(t, auth.RoleAdmin))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "amy", resp.Username)
	assert.Equal(t, "Amy Akter", resp.FullName)
	assert.Equal(t, "Admin", resp.Role)
}

func TestProfileRejectsBadToken(t *testing.T) {
	mux := newAuthMux(nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	mux := newAuthMux(nil)

	req := httptest.NewRequest(http.MethodDelete, "/auth/logout", nil)
	req.Header.Set("Authorization", bearerFor(t, auth.RoleUser))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.AuthCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected the auth cookie to be expired")
}

func TestLogoutWithoutTokenIsUnauthorized(t *testing.T) {
	mux := newAuthMux(nil)

	req := httptest.NewRequest(http.MethodDelete, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// The limiter wraps only the credential endpoints so a chatty but
// authenticated client is never throttled.
func TestLimiterScopedToCredentialRoutes(t *testing.T) {
	var limited []string
	limit := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limited = append(limited, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
	mux := newAuthMux(limit)

	for _, path := range []string{"/auth/register", "/auth/login"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", bearerFor(t, auth.RoleUser))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{"/auth/register", "/auth/login"}, limited)
}
