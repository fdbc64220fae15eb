package actorctx

import (
	"context"

	"github.com/geocoder89/portfoliohub/internal/auth"
)

type ctxKey struct{}

type requestIDKey struct{}

func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	v, ok := ctx.Value(ctxKey{}).(auth.Identity)

	return v, ok && v.ID > 0
}

// LogAttrs returns slog key/value pairs describing the actor, or nil for anonymous requests.
func LogAttrs(ctx context.Context) []any {
	id, ok := IdentityFrom(ctx)
	if !ok {
		return nil
	}
	return []any{"actor_id", id.ID, "actor_email", id.Email}
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(requestIDKey{}).(string)
	return v, ok && v != ""
}
