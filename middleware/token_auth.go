package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/dandoon/sample-webapp/services"
	"github.com/dandoon/sample-webapp/userctx"
)

// RequireToken authenticates api requests. The Basic username carries the
// auth token issued by /auth; the password is ignored. Missing or invalid
// tokens get a 401 with a WWW-Authenticate challenge.
func RequireToken(tokenService services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _, ok := r.BasicAuth()
			if !ok || token == "" {
				unauthorized(w, "authentication required")
				return
			}

			claims, err := tokenService.Verify(token)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := userctx.SetUserID(r.Context(), claims.UserID)
			ctx = userctx.SetUserRole(ctx, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unauthorized writes a 401 JSON response with the Basic challenge
func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="api"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
