package authz

import (
	"context"
	"errors"
	"fmt"

	"ai-recorddesk-be/pkg/schema"
	"ai-recorddesk-be/pkg/store"
)

// ErrUnknownActor is returned by an IdentityResolver when the actor id does
// not resolve to a stored identity.
var ErrUnknownActor = errors.New("unknown actor")

// Identity is the resolved profile of an acting user.
type Identity struct {
	ActorID    string
	Role       string
	Department string
	Active     bool
}

// IdentityResolver looks up the identity behind an actor id. The engine
// calls it on every decision; implementations own their freshness.
type IdentityResolver interface {
	Resolve(ctx context.Context, actorID string) (*Identity, error)
}

// Decision is the outcome of one authorization check. Reason is safe to
// show to the user when Allowed is false.
type Decision struct {
	Allowed bool
	Role    string
	Reason  string
}

// Engine decides whether an actor may perform an operation on a collection.
// Decisions are computed per call and never cached, so a role change takes
// effect on the very next turn.
type Engine struct {
	registry *schema.Registry
	ids      IdentityResolver
}

// NewEngine builds an engine over the schema registry and identity source.
func NewEngine(registry *schema.Registry, ids IdentityResolver) *Engine {
	return &Engine{registry: registry, ids: ids}
}

// Authorize checks one (actor, collection, operation) triple. op is one of
// store.OperationCreate or store.OperationRead. An empty actorID means the
// caller is unauthenticated: reads of unrestricted collections still pass,
// everything else is denied.
func (e *Engine) Authorize(ctx context.Context, actorID, collection, op string) (Decision, error) {
	s, err := e.registry.Lookup(collection)
	if err != nil {
		return Decision{}, fmt.Errorf("authorize %s on %s: %w", op, collection, err)
	}

	if actorID == "" {
		if op == store.OperationRead && !s.Sensitive() {
			return Decision{Allowed: true, Reason: "public read"}, nil
		}
		return Decision{Reason: "sign in to perform this operation"}, nil
	}

	id, err := e.ids.Resolve(ctx, actorID)
	if err != nil {
		if errors.Is(err, ErrUnknownActor) {
			return Decision{Reason: "your account could not be verified"}, nil
		}
		return Decision{}, fmt.Errorf("resolve actor %s: %w", actorID, err)
	}
	if !id.Active {
		return Decision{Role: id.Role, Reason: "your account is inactive"}, nil
	}

	if !roleAllowed(s.Tier, id.Role) {
		return Decision{
			Role:   id.Role,
			Reason: fmt.Sprintf("your role does not permit access to %s records", collection),
		}, nil
	}

	return Decision{Allowed: true, Role: id.Role, Reason: "role permitted"}, nil
}
