package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/eliasjuanpablo/wineapi/internal/data/entity"
	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession resolves the Bearer token against the sessions table and puts
// the authenticated user's id, type and winery onto the request context.
func AuthSession(sessions repository.SessionRepository, users repository.UserRepository, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				utils.ResponseUnauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid authorization header")
				return
			}
			token := strings.TrimSpace(parts[1])

			session, err := sessions.FindValidSession(r.Context(), token)
			if err != nil {
				log.Error("Failed to resolve session", zap.Error(err))
				utils.ResponseInternalError(w, "Failed to authenticate")
				return
			}
			if session == nil || session.IsExpired(time.Now()) {
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			user, err := users.FindByID(r.Context(), session.UserID)
			if err != nil {
				log.Error("Failed to load session user", zap.Error(err))
				utils.ResponseInternalError(w, "Failed to authenticate")
				return
			}
			if user == nil {
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.UserType), user.WineryID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireWinery rejects requests whose session user is not a winery account.
func RequireWinery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userType, ok := utils.GetUserTypeFromContext(r.Context())
		if !ok || userType != string(entity.UserTypeWinery) {
			utils.ResponseForbidden(w, "Winery account required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose session user is not an admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userType, ok := utils.GetUserTypeFromContext(r.Context())
		if !ok || userType != string(entity.UserTypeAdmin) {
			utils.ResponseForbidden(w, "Admin account required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
