package middleware

import (
	"context"
	"net/http"
	"strings"

	apiContext "linkhub/internal/api/context"
	"linkhub/internal/pkg/errors"
	"linkhub/internal/platform/auth"
)

type AuthMiddleware struct {
	tokenSvc   *auth.TokenService
	cookieName string
}

func NewAuthMiddleware(tokenSvc *auth.TokenService, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, cookieName: cookieName}
}

// Handle accepts the session cookie first and falls back to a bearer token.
func (m *AuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := m.token(r)
		if token == "" {
			errors.WriteError(w, http.StatusUnauthorized, errors.MsgUnauthorized)
			return
		}

		claims, err := m.tokenSvc.ValidateToken(token)
		if err != nil {
			errors.WriteError(w, http.StatusUnauthorized, errors.MsgInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), apiContext.Claims, claims)
		next(w, r.WithContext(ctx))
	}
}

func (m *AuthMiddleware) token(r *http.Request) string {
	if c, err := r.Cookie(m.cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
