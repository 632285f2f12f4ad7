package middleware

import (
	"net/http"
	"strconv"

	"github.com/frahmantamala/notice-management/internal/auth"
	"github.com/frahmantamala/notice-management/pkg/logger"
)

// UserContext enriches the request-scoped logger with the authenticated
// user's identity. Must run after the auth middleware; anonymous requests
// pass through untouched.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())
		if user == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.With(r.Context(),
			"user_id", strconv.FormatInt(user.ID, 10),
			"role", user.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
