package httpx

import "context"

// Identity is the resolved caller identity attached to the request context
// after token verification.
type Identity struct {
	Username string
	UserID   int64
	Role     string
}

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// ContextWithIdentity attaches a verified identity to ctx.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// IdentityFromContext returns the verified identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(Identity)
	return id, ok
}
