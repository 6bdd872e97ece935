package auth

import "context"

// Actor identifies who performed a request, for audit attribution.
type Actor struct {
	UserID    string
	UserName  string
	TenantID  string
	IPAddress string
	UserAgent string
}

type actorContextKey struct{}

// ContextWithActor attaches the acting operator to ctx.
func ContextWithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, a)
}

// ActorFromContext returns the acting operator, if any.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}

	a, ok := ctx.Value(actorContextKey{}).(Actor)

	return a, ok
}

// SystemActor attributes writes made by the server itself, such as seeding.
var SystemActor = Actor{UserID: "system", UserName: "System"}
