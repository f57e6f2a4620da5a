package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jnmoveis/database"
	"jnmoveis/internal/catalog/domain"
	shareddomain "jnmoveis/internal/shared/domain"
	"jnmoveis/internal/testhelpers"
)

func TestService_Products(t *testing.T) {
	store := testhelpers.NewFixtureStore(t)
	svc := NewService(store, nil, nil, nil)
	ctx := context.Background()

	p, err := svc.Products.Get(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, "Shampoo Profissional 1L", p.Name)
	assert.Equal(t, 45.0, p.UnitPrice)

	created, err := svc.Products.Create(ctx, domain.Product{Name: "Carrinho Auxiliar", Category: "Mobiliário", UnitPrice: 350})
	require.NoError(t, err)
	assert.Equal(t, int64(15), created.ID)

	doc, err := store.FindOne(ctx, database.CollectionProducts, database.FieldProductID, 15)
	require.NoError(t, err)
	assert.Equal(t, "Carrinho Auxiliar", doc[database.FieldProductName])

	price := 399.9
	updated, err := svc.Products.Update(ctx, 15, domain.ProductPatch{UnitPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, 399.9, updated.UnitPrice)

	_, err = svc.Products.Create(ctx, domain.Product{Name: "Sem categoria", UnitPrice: -1})
	assert.ErrorIs(t, err, shareddomain.ErrValidation)
}

func TestService_Colors(t *testing.T) {
	svc := NewService(testhelpers.NewFixtureStore(t), nil, nil, nil)
	ctx := context.Background()

	created, err := svc.Colors.Create(ctx, domain.Color{Name: "Azul"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)

	require.NoError(t, svc.Colors.Delete(ctx, 4))
	assert.ErrorIs(t, svc.Colors.Delete(ctx, 4), shareddomain.ErrNotFound)
}
