package http

import (
	"context"

	"equiplend-backend/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

// Actor is the authenticated caller, extracted from the bearer token by the
// auth middleware and carried through the request context. It replaces any
// ambient session state: every authenticated operation receives it
// explicitly.
type Actor struct {
	ID    int32
	Email string
	Role  domain.Role
}

// WithActor stores the actor in the request context.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

// ActorFromContext extracts the authenticated actor. It fails with
// ErrUnauthenticated when the middleware did not run.
func ActorFromContext(ctx context.Context) (Actor, error) {
	a, ok := ctx.Value(actorKey).(Actor)
	if !ok {
		return Actor{}, domain.ErrUnauthenticated
	}
	return a, nil
}
