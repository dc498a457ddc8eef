package resolver

import (
	"context"

	"airlock/pkg/client"
	apperrors "airlock/pkg/errors"
	"airlock/pkg/model"
)

// EntityLookup fetches one entity by id from its owning service.
type EntityLookup func(ctx context.Context, id string) (any, error)

// Resolver expands EntityStub references into full entities. Resolution is
// idempotent and side-effect free; each type tag dispatches to exactly one
// owning service.
type Resolver struct {
	lookups map[string]EntityLookup
}

func New(c *client.Client) *Resolver {
	return &Resolver{
		lookups: map[string]EntityLookup{
			model.TypeListing: func(ctx context.Context, id string) (any, error) {
				return c.Listings.GetByID(ctx, id)
			},
			model.TypeBooking: func(ctx context.Context, id string) (any, error) {
				return c.Bookings.GetByID(ctx, id)
			},
			model.TypeHost: func(ctx context.Context, id string) (any, error) {
				return c.Accounts.GetUser(ctx, id)
			},
			model.TypeGuest: func(ctx context.Context, id string) (any, error) {
				return c.Accounts.GetUser(ctx, id)
			},
		},
	}
}

// NewWithLookups builds a resolver over an explicit dispatch table.
func NewWithLookups(lookups map[string]EntityLookup) *Resolver {
	return &Resolver{lookups: lookups}
}

func (r *Resolver) Resolve(ctx context.Context, stub model.EntityStub) (any, error) {
	lookup, ok := r.lookups[stub.TypeName]
	if !ok {
		return nil, apperrors.InvalidInput("unknown entity type: " + stub.TypeName)
	}
	if stub.ID == "" {
		return nil, apperrors.InvalidInput("entity stub has no ID")
	}
	return lookup(ctx, stub.ID)
}

// ResolveAuthor expands the author stub of a review using the target-type
// derivation on the model.
func (r *Resolver) ResolveAuthor(ctx context.Context, review *model.Review) (*model.User, error) {
	entity, err := r.Resolve(ctx, review.AuthorRef())
	if err != nil {
		return nil, err
	}
	user, ok := entity.(*model.User)
	if !ok {
		return nil, apperrors.Internal("author resolved to unexpected entity", nil)
	}
	return user, nil
}
