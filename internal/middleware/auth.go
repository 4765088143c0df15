package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/tempizhere/linkvault/internal/auth"
	"github.com/tempizhere/linkvault/internal/response"
)

type contextKey string

const userIDKey contextKey = "userID"

// WithUserID кладёт идентификатор пользователя в контекст
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext извлекает идентификатор пользователя из контекста
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserID извлекает UserID из контекста запроса
func GetUserID(r *http.Request) (string, bool) {
	return UserIDFromContext(r.Context())
}

// tokenFromRequest ищет токен в заголовке Authorization, затем в куке
func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// AuthMiddleware проверяет JWT из заголовка или куки. Если токена нет или он
// недействителен, создаёт нового пользователя и выдаёт куку.
func AuthMiddleware(mgr *auth.Manager, rw *response.Writer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUserID(r); ok {
				next.ServeHTTP(w, r)
				return
			}

			var userID string
			if token := tokenFromRequest(r); token != "" {
				id, err := mgr.Parse(token)
				if err != nil {
					logger.Warn("Invalid JWT token", zap.Error(err))
				}
				userID = id
			}

			if userID == "" {
				id, err := mgr.NewUserID()
				if err != nil {
					rw.Error(w, err)
					return
				}
				token, err := mgr.Issue(id)
				if err != nil {
					rw.Error(w, err)
					return
				}
				cookie := &http.Cookie{
					Name:     auth.CookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
				}
				if ttl := mgr.TTL(); ttl > 0 {
					cookie.MaxAge = int(ttl.Seconds())
				}
				http.SetCookie(w, cookie)
				userID = id
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
