package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/geoattendance/internal/domain/user"
	"github.com/cmlabs-hris/geoattendance/internal/handler/http/response"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type identityKey struct{}

// RequireEmployee resolves the caller's identity from the token claims and
// rejects callers without an employee profile in an organization.
func RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrInvalidToken)
			return
		}

		identity := jwt.IdentityFromClaims(claims)
		if identity.EmployeeID == "" || identity.OrganizationID == "" || identity.Role == user.RolePending {
			response.HandleError(w, user.ErrEmployeeRequired)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext returns the identity stored by RequireEmployee.
func IdentityFromContext(ctx context.Context) (user.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(user.Identity)
	return identity, ok
}
