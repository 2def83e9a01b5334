package session

import "context"

type ctxKey int

const sessionIDKey ctxKey = iota

// WithSessionID attaches the current session id to the context so downstream
// layers (the unauthorized hook in particular) can purge the right session.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// IDFromContext returns the session id attached by the auth middleware.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}
