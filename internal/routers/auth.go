package routers

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/dto"
)

type AuthRoutes struct {
	service       auth.UserService
	authenticator *auth.Authenticator
	jwtSecret     []byte
	rdb           *redis.Client
	limit         func(http.Handler) http.Handler
}

func NewAuthRoutes(service auth.UserService, authenticator *auth.Authenticator, jwtSecret []byte, rdb *redis.Client, limit func(http.Handler) http.Handler) *AuthRoutes {
	return &AuthRoutes{
		service:       service,
		authenticator: authenticator,
		jwtSecret:     jwtSecret,
		rdb:           rdb,
		limit:         limit,
	}
}

func (r *AuthRoutes) RegisterHandlers(_ context.Context, mux *http.ServeMux) {
	// Credential endpoints are the ones worth throttling. Token-bearing
	// routes already fail fast on a bad or revoked token.
	mux.Handle("POST /auth/register", r.throttled(r.handleRegister))
	mux.Handle("POST /auth/login", r.throttled(r.handleLogin))
	mux.HandleFunc("DELETE /auth/logout", r.handleLogout)
	mux.HandleFunc("GET /auth/profile", r.handleProfile)
}

func (r *AuthRoutes) throttled(h http.HandlerFunc) http.Handler {
	if r.limit == nil {
		return h
	}
	return r.limit(h)
}

func (r *AuthRoutes) handleRegister(w http.ResponseWriter, req *http.Request) {
	var payload dto.RegisterRequest
	if err := decodeJSON(req, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := auth.ValidateWorkspaceName(payload.Workspace); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := auth.ValidateUsername(payload.Username); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := auth.ValidatePassword(payload.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fullName := auth.SanitizeString(payload.FullName)
	if fullName == "" {
		fullName = strings.TrimSpace(payload.Username)
	}

	user, err := r.service.Register(req.Context(),
		payload.Workspace,
		strings.TrimSpace(payload.Username),
		fullName,
		payload.Password,
	)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.RegisterResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Role:      string(user.Role),
		Workspace: user.WorkspaceID.String(),
	})
}

func (r *AuthRoutes) handleLogin(w http.ResponseWriter, req *http.Request) {
	var payload dto.LoginRequest
	if err := decodeJSON(req, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Rate limit by workspace+username+ip
	ip := clientIP(req)
	key := "auth:login:attempts:" + payload.Workspace + ":" + payload.Username + ":" + ip
	if r.rdb != nil {
		if cnt, err := r.rdb.Get(req.Context(), key).Int64(); err == nil && cnt >= 5 {
			writeError(w, http.StatusTooManyRequests, "too many attempts")
			return
		}
	}

	user, claims, err := r.service.Login(req.Context(), payload.Workspace, strings.TrimSpace(payload.Username), payload.Password)
	if err != nil {
		if r.rdb != nil {
			// increment attempts and set TTL on first failure
			val, _ := r.rdb.Incr(req.Context(), key).Result()
			if val == 1 {
				_ = r.rdb.Expire(req.Context(), key, 10*time.Minute).Err()
			}
		}
		handleDomainError(w, err)
		return
	}
	if r.rdb != nil {
		_ = r.rdb.Del(req.Context(), key).Err()
	}

	token, err := auth.SignToken(claims, r.jwtSecret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	expiresIn := int64(0)
	if claims.ExpiresAt != nil {
		expiresIn = claims.ExpiresAt.Time.Unix() - time.Now().Unix()
	}
	setAuthCookie(w, token, expiresIn)

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		Username:    user.Username,
		Role:        string(user.Role),
	})
}

func (r *AuthRoutes) handleLogout(w http.ResponseWriter, req *http.Request) {
	claims, err := r.authenticator.Claims(req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	if err := r.authenticator.RevokeToken(req, claims); err != nil {
		handleDomainError(w, err)
		return
	}

	clearAuthCookie(w)
	w.WriteHeader(http.StatusOK)
}

func (r *AuthRoutes) handleProfile(w http.ResponseWriter, req *http.Request) {
	p, err := r.authenticator.Principal(req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	user, err := r.service.Profile(req.Context(), p)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		FullName:  user.FullName,
		Role:      string(user.Role),
		Workspace: user.WorkspaceID.String(),
		CreatedAt: user.CreatedAt,
	})
}

// clientIP extracts the real client IP, proxy headers first.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		ips := strings.Split(ip, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

func setAuthCookie(w http.ResponseWriter, token string, expiresIn int64) {
	isSecure := os.Getenv("HTTPS_ENABLED") == "true" || os.Getenv("HTTPS_ENABLED") == "1"

	cookie := &http.Cookie{
		Name:     auth.AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   isSecure,
	}
	if expiresIn > 0 {
		duration := time.Duration(expiresIn) * time.Second
		cookie.Expires = time.Now().Add(duration)
		cookie.MaxAge = int(duration.Seconds())
	}
	http.SetCookie(w, cookie)
}

func clearAuthCookie(w http.ResponseWriter) {
	isSecure := os.Getenv("HTTPS_ENABLED") == "true" || os.Getenv("HTTPS_ENABLED") == "1"
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   isSecure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
