package infrastructure

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductRepo(t *testing.T) (*CollectionRepository, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	require.NoError(t, store.InsertMany(context.Background(), "Produtos", []Document{
		{"Id Produto": 4, "Nome Produto": "Cadeira"},
		{"id_produto": 9, "nome_produto": "Espelho"},
	}))
	repo := NewCollectionRepository(store, "Produtos", "Id Produto", "id_produto").WithCreatedAt("data_cadastro")
	repo.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return repo, store
}

func TestCollectionRepository_GetMatchesEitherIDField(t *testing.T) {
	repo, _ := newProductRepo(t)
	ctx := context.Background()

	doc, err := repo.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Cadeira", doc.Text("Nome Produto"))

	doc, err = repo.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), repo.IDOf(doc))

	_, err = repo.Get(ctx, 5)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestCollectionRepository_CreateUsesNextID(t *testing.T) {
	repo, _ := newProductRepo(t)

	doc, err := repo.Create(context.Background(), Document{"Nome Produto": "Lavatório"})

	require.NoError(t, err)
	assert.Equal(t, int64(10), repo.IDOf(doc))
	assert.Equal(t, "2024-01-02T03:04:05Z", doc["data_cadastro"])
}

func TestCollectionRepository_ConcurrentCreates(t *testing.T) {
	repo, store := newProductRepo(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(context.Background(), Document{"Nome Produto": "x"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	docs, err := store.FindAll(context.Background(), "Produtos")
	require.NoError(t, err)
	seen := make(map[int64]bool)
	for _, d := range docs {
		id := repo.IDOf(d)
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, 22)
}

func TestCollectionRepository_UpdateAndDelete(t *testing.T) {
	repo, _ := newProductRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Update(ctx, 9, Document{"nome_produto": "Espelho Bancada"}))
	doc, err := repo.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "Espelho Bancada", doc.Text("nome_produto"))

	assert.ErrorIs(t, repo.Update(ctx, 77, Document{"x": 1}), ErrDocumentNotFound)
	assert.ErrorIs(t, repo.Update(ctx, 77, Document{}), ErrDocumentNotFound)

	require.NoError(t, repo.Delete(ctx, 4))
	assert.ErrorIs(t, repo.Delete(ctx, 4), ErrDocumentNotFound)
}

func TestDocument_TypedAccessors(t *testing.T) {
	doc := Document{"a": " texto ", "n": int32(7), "f": "12.5", "x": nil, "k": 3.0}

	assert.Equal(t, "texto", doc.Text("missing", "a"))
	assert.Equal(t, "3", doc.Text("k"))
	assert.Equal(t, int64(7), doc.Int("n"))
	assert.Equal(t, 12.5, doc.Float("f"))
	assert.Equal(t, 7.0, doc.Float("n"))
	assert.Zero(t, doc.Float("x"))
	_, ok := doc.Lookup("x")
	assert.False(t, ok)
}
