package utils

import "context"

type contextKey string

const (
	IdentityKey  contextKey = "identity"
	RequestIDKey contextKey = "request_id"
)

// SetIdentityContext stores the token subject for downstream handlers
func SetIdentityContext(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

func GetIdentityFromContext(ctx context.Context) (string, bool) {
	identity, ok := ctx.Value(IdentityKey).(string)
	return identity, ok && identity != ""
}

func SetRequestIDContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDKey).(string)
	return id, ok
}
