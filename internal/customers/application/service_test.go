package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jnmoveis/internal/customers/domain"
	"jnmoveis/internal/logging"
	"jnmoveis/internal/observability"
	shareddomain "jnmoveis/internal/shared/domain"
	"jnmoveis/internal/testhelpers"
)

func ptr[T any](v T) *T { return &v }

func TestService_CRUD(t *testing.T) {
	store := testhelpers.NewFixtureStore(t)
	svc := NewService(store, nil, logging.Discard(), observability.NewMetrics())
	ctx := context.Background()

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "PE", all[0].State)

	created, err := svc.Create(ctx, domain.Customer{Name: "Elisa Prado", Sex: "F", City: "Olinda", State: "PE"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
	assert.NotEmpty(t, created.CreatedAt)

	updated, err := svc.Update(ctx, 5, domain.CustomerPatch{City: ptr("Recife")})
	require.NoError(t, err)
	assert.Equal(t, "Recife", updated.City)
	assert.Equal(t, "Elisa Prado", updated.Name)

	require.NoError(t, svc.Delete(ctx, 5))
	_, err = svc.Get(ctx, 5)
	assert.ErrorIs(t, err, shareddomain.ErrNotFound)
}

func TestService_Validation(t *testing.T) {
	svc := NewService(testhelpers.NewFixtureStore(t), nil, nil, nil)
	ctx := context.Background()

	cases := []struct {
		name     string
		customer domain.Customer
	}{
		{"missing name", domain.Customer{Sex: "F"}},
		{"unknown sex", domain.Customer{Name: "X", Sex: "Z"}},
		{"state too long", domain.Customer{Name: "X", Sex: "M", State: "PER"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.customer)
			assert.ErrorIs(t, err, shareddomain.ErrValidation)
		})
	}

	_, err := svc.Update(ctx, 1, domain.CustomerPatch{Sex: ptr("X")})
	assert.ErrorIs(t, err, shareddomain.ErrValidation)
}
