package userctx

import "context"

// Context key type
type contextKey string

const userEmailKey contextKey = "user_email"
const userIDKey contextKey = "user_id"
const userRoleKey contextKey = "user_role"
const identityKey contextKey = "user_identity"

// Identity is a mutable holder for the request's authenticated user. Auth
// middleware runs inside the access logger, so identity set on a derived
// context is invisible to the logger once the handler returns; writing
// through the holder makes it visible.
type Identity struct {
	Email string
}

// WithIdentity installs an identity holder and returns it alongside the
// derived context
func WithIdentity(ctx context.Context) (context.Context, *Identity) {
	ident := &Identity{}
	return context.WithValue(ctx, identityKey, ident), ident
}

func identity(ctx context.Context) *Identity {
	ident, _ := ctx.Value(identityKey).(*Identity)
	return ident
}

// SetUserEmail adds user email to request context
func SetUserEmail(ctx context.Context, email string) context.Context {
	if ident := identity(ctx); ident != nil {
		ident.Email = email
	}
	return context.WithValue(ctx, userEmailKey, email)
}

// GetUserEmail retrieves user email from request context
func GetUserEmail(ctx context.Context) string {
	email, ok := ctx.Value(userEmailKey).(string)
	if !ok {
		return ""
	}
	return email
}

// SetUserID adds user ID to request context
func SetUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// GetUserID retrieves user ID from request context; 0 when unauthenticated
func GetUserID(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 0
}

// SetUserRole adds user role to request context
func SetUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, userRoleKey, role)
}

// GetUserRole retrieves user role from request context
func GetUserRole(ctx context.Context) string {
	role, ok := ctx.Value(userRoleKey).(string)
	if !ok {
		return ""
	}
	return role
}
