package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/easygoapi/easygo/internal/common"
	"github.com/easygoapi/easygo/internal/server/auth"
	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const activeUserKey ctxKey = "activeUser"

// Authorize checks an Authorization header value against the issuer and
// returns the verified claims. Anything other than a well-formed
// "Bearer <valid token>" is unauthorized.
func Authorize(header string, issuer *auth.Issuer) (jwt.MapClaims, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != common.BearerPrefix {
		return nil, common.ErrorUnauthorized
	}
	claims, err := issuer.Validate(parts[1])
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	return claims, nil
}

// authenticate guards a subrouter: it verifies the bearer token and attaches
// the claims to the request context for handlers to read via ActiveUser.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := Authorize(r.Header.Get(common.AuthorizationHeaderName), s.issuer)
		if err != nil {
			s.writeError(w, r, common.ErrorUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), activeUserKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActiveUser returns the verified claims attached by the middleware.
func ActiveUser(ctx context.Context) (jwt.MapClaims, bool) {
	claims, ok := ctx.Value(activeUserKey).(jwt.MapClaims)
	return claims, ok
}

// ActiveUserID returns the subject of the verified claims.
func ActiveUserID(ctx context.Context) (string, bool) {
	claims, ok := ActiveUser(ctx)
	if !ok {
		return "", false
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}
