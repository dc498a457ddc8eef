package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "airlock/pkg/errors"
	"airlock/pkg/model"
)

func testLookups(t *testing.T) map[string]EntityLookup {
	t.Helper()
	return map[string]EntityLookup{
		model.TypeListing: func(ctx context.Context, id string) (any, error) {
			if id == "listing-1" {
				return &model.Listing{ID: "listing-1", Title: "Cabin"}, nil
			}
			return nil, apperrors.NotFoundWithID("Listing", id)
		},
		model.TypeHost: func(ctx context.Context, id string) (any, error) {
			return &model.User{ID: id, Role: model.RoleHost}, nil
		},
		model.TypeGuest: func(ctx context.Context, id string) (any, error) {
			return &model.User{ID: id, Role: model.RoleGuest}, nil
		},
	}
}

func TestResolve_DispatchesByType(t *testing.T) {
	r := NewWithLookups(testLookups(t))

	entity, err := r.Resolve(context.Background(), model.EntityStub{TypeName: model.TypeListing, ID: "listing-1"})
	require.NoError(t, err)

	listing, ok := entity.(*model.Listing)
	require.True(t, ok, "expected a listing, got %T", entity)
	assert.Equal(t, "Cabin", listing.Title)
}

func TestResolve_UnknownTypeIsInvalidInput(t *testing.T) {
	r := NewWithLookups(testLookups(t))

	_, err := r.Resolve(context.Background(), model.EntityStub{TypeName: "Robot", ID: "r2"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
}

func TestResolve_MissingRecordIsNotFound(t *testing.T) {
	r := NewWithLookups(testLookups(t))

	_, err := r.Resolve(context.Background(), model.EntityStub{TypeName: model.TypeListing, ID: "listing-404"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestResolve_EmptyIDIsInvalidInput(t *testing.T) {
	r := NewWithLookups(testLookups(t))

	_, err := r.Resolve(context.Background(), model.EntityStub{TypeName: model.TypeHost})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
}

func TestResolveAuthor_DerivesAuthorFromTargetType(t *testing.T) {
	r := NewWithLookups(testLookups(t))

	cases := []struct {
		name       string
		targetType model.TargetType
		wantRole   model.UserRole
	}{
		{"guest review written by host", model.TargetGuest, model.RoleHost},
		{"host review written by guest", model.TargetHost, model.RoleGuest},
		{"listing review written by guest", model.TargetListing, model.RoleGuest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			review := &model.Review{TargetType: tc.targetType, AuthorID: "user-1"}

			author, err := r.ResolveAuthor(context.Background(), review)
			require.NoError(t, err)
			assert.Equal(t, tc.wantRole, author.Role)
		})
	}
}
