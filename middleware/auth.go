package middleware

import (
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/dandoon/sample-webapp/userctx"
)

// Session keys used by the admin app
const (
	SessionUserID   = "user_id"
	SessionUserName = "user_name"
	SessionUserMail = "user_email"
	SessionUserRole = "user_role"
	SessionToken    = "api_token"
	SessionReturnTo = "return_to"
)

// RequireAuth ensures the admin user is signed in. Unauthenticated requests
// are redirected to /login with the intended destination stored in the
// session. Signed-in requests get the user identity added to the context.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)
		userID := sess.Get(SessionUserID)

		if userID == nil {
			sess.Set(SessionReturnTo, r.URL.Path)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := r.Context()
		if id, ok := userID.(int); ok {
			ctx = userctx.SetUserID(ctx, id)
		}
		if email, ok := sess.Get(SessionUserMail).(string); ok {
			ctx = userctx.SetUserEmail(ctx, email)
		}
		if role, ok := sess.Get(SessionUserRole).(string); ok {
			ctx = userctx.SetUserRole(ctx, role)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
