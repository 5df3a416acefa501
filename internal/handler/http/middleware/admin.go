package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/auth"
	"github.com/Dev4EM/emp-sub000/internal/domain/user"
	"github.com/Dev4EM/emp-sub000/internal/handler/http/response"
)

// AdminOnly restricts a route subtree to admin accounts.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || user.Role(role) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
