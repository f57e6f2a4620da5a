package infrastructure

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jnmoveis/database"
	"jnmoveis/internal/analytics/domain"
	"jnmoveis/internal/logging"
	"jnmoveis/internal/observability"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

func seedStore(t *testing.T) *sharedinfra.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := sharedinfra.NewMemoryStore()

	require.NoError(t, store.InsertMany(ctx, database.CollectionCustomers, []sharedinfra.Document{
		{"_id": "a", "id_cliente": int32(1), "nome": "  Ana Souza ", "sexo": "F", "cidade": "Recife", "estado2": "PE"},
		{"_id": "b", "id_cliente": 1.0, "nome": "Duplicada", "sexo": "F"},
		{"_id": "c", "id_cliente": "2", "nome": "Bruno", "sexo": "M", "cidade": "Natal", "estado2": "RN"},
	}))
	require.NoError(t, store.InsertMany(ctx, database.CollectionProducts, []sharedinfra.Document{
		{"Id Produto": 10, "Nome Produto": "Cadeira Hidráulica", "Categoria Produto": "Cadeiras", "Fornecedor": "X", "Valor Unitário": "1.234,50"},
		{"id_produto": "11", "nome_produto": "Shampoo", "categoria": "Cosméticos", "valor_unitario": 25.9},
	}))
	require.NoError(t, store.InsertMany(ctx, database.CollectionColors, []sharedinfra.Document{
		{"Id Cor": 1, "Cor": "PRETO fosco"},
	}))
	require.NoError(t, store.InsertMany(ctx, database.CollectionOrders, []sharedinfra.Document{
		{"Id Pedido": 100, "Id Cliente": 1, "Data Pedido": "2023-03-15", "Valor Total": 150.0, "Forma de Pagamento": " Pix ", "Canal de Venda": "Loja"},
		{"Id Pedido": 101, "Id Cliente": 2, "Data Pedido": time.Date(2022, 12, 1, 10, 0, 0, 0, time.UTC), "Valor Total": "80", "Canal de Venda": "Site"},
		{"Id Pedido": 102, "Id Cliente": 2, "Data Pedido": "ontem", "Valor Total": "abc"},
	}))
	require.NoError(t, store.InsertMany(ctx, database.CollectionSales, []sharedinfra.Document{
		{"id_venda": 1, "id_pedido": 100, "id_produto": 10, "id_cor": 1, "quantidade": 2, "subtotal": 120.0},
		{"id_venda": 2, "id_pedido": 100, "id_produto": 11, "id_cor": 1, "quantidade": "1", "subtotal": "30,00"},
		{"id_venda": 2, "id_pedido": 100, "id_produto": 11, "id_cor": 1, "quantidade": 9, "subtotal": 999.0},
		{"id_pedido": 101, "id_produto": 11, "quantidade": "x", "subtotal": nil},
	}))
	return store
}

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"Valor Unitário":     "valor_unitario",
		"Id Produto":         "id_produto",
		" Forma de Pagamento": "forma_de_pagamento",
		"estado2":            "estado2",
		"Preço (R$)":         "preco_r",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeHeader(in), in)
	}
}

func TestNewRecord_HeaderCollisions(t *testing.T) {
	doc := sharedinfra.Document{
		"_id":          "abc",
		"Id Produto":   7,
		"id_produto":   8,
		"ID Produto":   9,
		"Nome Produto": nil,
		"nome produto": "Cadeira",
		"Categoria ":   "Lavatórios",
		" Categoria":   "Cadeiras",
	}

	for i := 0; i < 20; i++ {
		r := newRecord(doc)
		assert.Equal(t, 8, r["id_produto"])
		assert.Equal(t, "Cadeira", r["nome_produto"])
		assert.Equal(t, "Cadeiras", r["categoria"])
		assert.Len(t, r, 3)
	}
}

func TestDatasetLoader_Load(t *testing.T) {
	metrics := observability.NewMetrics()
	loader := NewDatasetLoader(seedStore(t), logging.Discard(), metrics)

	ds, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Customers, 2, "duplicate customer id dropped")
	assert.Equal(t, "1", ds.Customers[0].ID)
	assert.Equal(t, "Ana Souza", ds.Customers[0].Name)
	assert.Equal(t, "PE", ds.Customers[0].State)

	require.Len(t, ds.Products, 2)
	assert.Equal(t, "10", ds.Products[0].ID)
	assert.InDelta(t, 1234.5, ds.Products[0].UnitPrice, 1e-9)
	assert.Equal(t, "Cosméticos", ds.Products[1].Category)

	require.Len(t, ds.Colors, 1)
	assert.Equal(t, "Preto Fosco", ds.Colors[0].Name)

	require.Len(t, ds.Orders, 3)
	assert.Equal(t, 2023, ds.Orders[0].Year)
	assert.Equal(t, 3, ds.Orders[0].Month)
	assert.Equal(t, "Março", ds.Orders[0].MonthName)
	assert.Equal(t, "2023-03", ds.Orders[0].YearMonth)
	assert.Equal(t, "Pix", ds.Orders[0].PaymentMethod)
	assert.Equal(t, 2022, ds.Orders[1].Year)
	assert.InDelta(t, 80.0, ds.Orders[1].Total, 1e-9)
	assert.False(t, ds.Orders[2].Dated(), "unparseable date kept as undated order")
	assert.Zero(t, ds.Orders[2].Total)

	require.Len(t, ds.SaleLines, 3, "duplicate sale id dropped, sale without id kept")
	assert.Equal(t, 1, ds.SaleLines[1].Quantity)
	assert.InDelta(t, 30.0, ds.SaleLines[1].Subtotal, 1e-9)
	assert.Zero(t, ds.SaleLines[2].Quantity)
	assert.Zero(t, ds.SaleLines[2].Subtotal)

	assert.Len(t, domain.Consolidate(ds), len(ds.SaleLines))
}

func TestDatasetLoader_EmptyStore(t *testing.T) {
	loader := NewDatasetLoader(sharedinfra.NewMemoryStore(), logging.Discard(), nil)

	ds, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ds.Customers)
	assert.Empty(t, ds.SaleLines)
	assert.Empty(t, domain.Consolidate(ds))
}

func TestDatasetLoader_StoreFailure(t *testing.T) {
	store := sharedinfra.NewMemoryStore()
	boom := errors.New("connection refused")
	store.FailWith(boom)

	_, err := NewDatasetLoader(store, logging.Discard(), nil).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLoadFailed))
	assert.True(t, errors.Is(err, boom))
}

func BenchmarkDatasetLoader_Load(b *testing.B) {
	ctx := context.Background()
	store := sharedinfra.NewMemoryStore()
	docs := make([]sharedinfra.Document, 0, 5000)
	for i := 0; i < 5000; i++ {
		docs = append(docs, sharedinfra.Document{"id_venda": i, "id_pedido": i / 3, "id_produto": i % 50, "quantidade": 2, "subtotal": 10.5})
	}
	_ = store.InsertMany(ctx, database.CollectionSales, docs)
	loader := NewDatasetLoader(store, logging.Discard(), nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := loader.Load(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
