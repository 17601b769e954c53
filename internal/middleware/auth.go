package middleware

import (
	"context"
	"net/http"
	"pitch_backend/internal/model"
	"pitch_backend/pkg/resp"
	"pitch_backend/pkg/token"
	"strings"
)

type ctxKey struct{}

// AccessTokenCookie Имя cookie, из которой берется токен, если нет заголовка
const AccessTokenCookie = "access_token"

// Auth Проверяет access token и кладет игрока в контекст запроса
func Auth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				resp.WriteError(w, http.StatusUnauthorized, "unauthorized", "access token is required")
				return
			}

			claims, err := token.VerifyToken(raw, secretKey)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "unauthorized", "access token is invalid")
				return
			}
			user, err := token.UserFromClaims(claims)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		return c.Value
	}
	return ""
}

func WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext Игрок текущего запроса
func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(model.User)
	return user, ok
}
