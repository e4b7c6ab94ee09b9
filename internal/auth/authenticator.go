package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	TokenBlacklistPrefix = "auth:token:blacklist:"
	AuthCookieName       = "access_token"
)

var (
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionStoreUnavailable means the revocation list could not be
	// consulted. It is an infrastructure failure, never a verdict on the
	// credentials themselves.
	ErrSessionStoreUnavailable = errors.New("session store unavailable")
)

// Authenticator resolves the Principal behind an HTTP request: bearer header
// or auth cookie, HMAC signature check, then the Redis revocation list.
type Authenticator struct {
	jwtSecret []byte
	rdb       *redis.Client
}

func NewAuthenticator(jwtSecret []byte, rdb *redis.Client) *Authenticator {
	return &Authenticator{
		jwtSecret: jwtSecret,
		rdb:       rdb,
	}
}

// Claims runs the full request check: token extraction, signature and
// expiry validation, claim sanity, and the revocation list.
func (a *Authenticator) Claims(r *http.Request) (Claims, error) {
	tokenString, err := TokenFromRequest(r)
	if err != nil {
		return Claims{}, err
	}

	claims, err := ParseToken(tokenString, a.jwtSecret)
	if err != nil {
		return Claims{}, ErrUnauthorized
	}

	if claims.UserID == uuid.Nil || claims.WorkspaceID == uuid.Nil || claims.ID == "" {
		return Claims{}, ErrUnauthorized
	}

	if a.rdb != nil {
		key := TokenBlacklistPrefix + claims.ID
		exists, err := a.rdb.Exists(r.Context(), key).Result()
		if err != nil {
			return Claims{}, fmt.Errorf("%w: %v", ErrSessionStoreUnavailable, err)
		}
		if exists == 1 {
			return Claims{}, ErrUnauthorized
		}
	}

	return claims, nil
}

func (a *Authenticator) Principal(r *http.Request) (Principal, error) {
	claims, err := a.Claims(r)
	if err != nil {
		return Principal{}, err
	}

	return Principal{
		ID:          claims.UserID,
		Username:    claims.Username,
		Role:        claims.Role,
		WorkspaceID: claims.WorkspaceID,
	}, nil
}

// RevokeToken blacklists the token's jti until its natural expiry, so a
// logged-out token stays dead without storing it forever.
func (a *Authenticator) RevokeToken(r *http.Request, claims Claims) error {
	if a.rdb == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	key := TokenBlacklistPrefix + claims.ID
	if err := a.rdb.Set(r.Context(), key, "revoked", ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionStoreUnavailable, err)
	}
	return nil
}

func TokenFromRequest(r *http.Request) (string, error) {
	if token, err := ExtractBearerToken(r.Header.Get("Authorization")); err == nil {
		return token, nil
	}

	if cookie, err := r.Cookie(AuthCookieName); err == nil {
		if token := strings.TrimSpace(cookie.Value); token != "" {
			return token, nil
		}
	}

	return "", ErrUnauthorized
}

func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrUnauthorized
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrUnauthorized
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrUnauthorized
	}

	return token, nil
}
