package http

import (
	"net/http"
	"strings"

	"equiplend-backend/internal/domain"
	"equiplend-backend/internal/security"
)

// AuthMiddleware validates the bearer token and injects the actor into the
// request context. Authorization happens before any handler runs, so no
// partial mutation can precede an auth failure.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r)
		if err != nil {
			writeError(w, err)
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			writeError(w, domain.ErrUnauthenticated)
			return
		}

		actor := Actor{ID: claims.UserID, Email: claims.Email, Role: claims.Role}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// RequireCapability gates a handler on the role capability table. The same
// table drives any display layer, so the gate and the UI never disagree.
func RequireCapability(op domain.Operation, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := ActorFromContext(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if !actor.Role.Can(op) {
			writeError(w, domain.ErrForbidden)
			return
		}
		next(w, r)
	}
}

func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", domain.ErrUnauthenticated
	}
	token := authHeader
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	if token == "" {
		return "", domain.ErrUnauthenticated
	}
	return token, nil
}
