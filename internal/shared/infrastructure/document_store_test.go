package infrastructure

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{3, "3"},
		{int32(3), "3"},
		{int64(3), "3"},
		{3.0, "3"},
		{" 3 ", "3"},
		{"3.0", "3"},
		{2.5, "2.5"},
		{json.Number("7"), "7"},
		{"ABC ", "ABC"},
		{nil, ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeKey(tc.in), "%v", tc.in)
	}
	assert.False(t, MatchValue("", ""))
	assert.True(t, MatchValue(int32(5), "5"))
}

// storeContract vérifie le comportement commun à toutes les implémentations
func storeContract(t *testing.T, store DocumentStore) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.InsertMany(ctx, "Produtos", []Document{
		{"Id Produto": 1, "Nome Produto": "Cadeira Hidráulica", "Valor Unitário": 1500.0},
		{"Id Produto": "2", "Nome Produto": "Lavatório", "Valor Unitário": 900.0},
	}))
	require.NoError(t, store.Insert(ctx, "Produtos", Document{"id_produto": 7, "nome_produto": "Espelho"}))

	docs, err := store.FindAll(ctx, "Produtos")
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "Cadeira Hidráulica", docs[0]["Nome Produto"])

	doc, err := store.FindOne(ctx, "Produtos", "Id Produto", 2)
	require.NoError(t, err)
	assert.Equal(t, "Lavatório", doc["Nome Produto"])

	_, err = store.FindOne(ctx, "Produtos", "Id Produto", 99)
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	max, err := store.MaxInt(ctx, "Produtos", "Id Produto", "id_produto")
	require.NoError(t, err)
	assert.Equal(t, int64(7), max)

	n, err := store.Update(ctx, "Produtos", "Id Produto", "1", Document{"Valor Unitário": 1600.0})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	doc, err = store.FindOne(ctx, "Produtos", "Id Produto", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1600.0, doc["Valor Unitário"])
	assert.Equal(t, "Cadeira Hidráulica", doc["Nome Produto"])

	n, err = store.Delete(ctx, "Produtos", "id_produto", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.Delete(ctx, "Produtos", "id_produto", 7)
	require.NoError(t, err)
	assert.Zero(t, n)

	empty, err := store.FindAll(ctx, "Clientes")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStore_Contract(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestSQLStore_SQLiteContract(t *testing.T) {
	store, err := OpenSQLStore(context.Background(), DialectSQLite, ":memory:")
	require.NoError(t, err)
	defer store.Close(context.Background())

	assert.Equal(t, DialectSQLite, store.Dialect())
	storeContract(t, store)
}

func TestOpenSQLStore_UnknownDialect(t *testing.T) {
	_, err := OpenSQLStore(context.Background(), Dialect("oracle"), "")
	assert.Error(t, err)
}

func TestMemoryStore_FailWith(t *testing.T) {
	store := NewMemoryStore()
	store.FailWith(assert.AnError)

	_, err := store.FindAll(context.Background(), "Vendas")
	assert.ErrorIs(t, err, assert.AnError)
}
