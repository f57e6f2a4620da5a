package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"jnmoveis/database"
	"jnmoveis/internal/config"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

// TestContext contient les dépendances des tests d'intégration.
// Ne contient PAS les services pour éviter les import cycles.
type TestContext struct {
	Store sharedinfra.DocumentStore
}

// Cleanup libère les ressources du contexte de test
func (ctx *TestContext) Cleanup() {
	if ctx.Store != nil {
		_ = ctx.Store.Close(context.Background())
	}
}

// FixtureDocuments petit jeu de documents bruts aux en-têtes historiques.
// Commandes: mars 2022 (1245) et mars 2023 (1290), une commande sans date.
func FixtureDocuments() map[string][]sharedinfra.Document {
	return map[string][]sharedinfra.Document{
		database.CollectionCustomers: {
			{"id_cliente": 1, "nome": "Ana Lima", "sexo": "F", "cidade": "Recife", "estado2": "PE", "telefone": "81 99999-0001"},
			{"id_cliente": 2, "nome": "Bruno Alves", "sexo": "M", "cidade": "Natal", "estado2": "RN", "telefone": "84 99999-0002"},
			{"id_cliente": 3, "nome": "Carla Dias", "sexo": "F", "cidade": "Recife", "estado2": "PE", "telefone": "81 99999-0003"},
			{"id_cliente": 4, "nome": "Diego Rocha", "sexo": "M", "cidade": "São Paulo", "estado2": "SP", "telefone": "11 99999-0004"},
		},
		database.CollectionProducts: {
			{"Id Produto": 10, "Nome Produto": "Cadeira Hidráulica Paris", "Categoria Produto": "Cadeiras", "Fornecedor": "Ferrante", "Valor Unitário": 1200.0},
			{"Id Produto": 11, "Nome Produto": "Lavatório Portátil", "Categoria Produto": "Lavatórios", "Fornecedor": "Ferrante", "Valor Unitário": 800.0},
			{"Id Produto": 12, "Nome Produto": "Shampoo Profissional 1L", "Categoria Produto": "Cosméticos", "Fornecedor": "Belle", "Valor Unitário": 45.0},
			{"Id Produto": 13, "Nome Produto": "Coloração Creme", "Categoria Produto": "Coloração", "Fornecedor": "Belle", "Valor Unitário": 30.0},
			{"Id Produto": 14, "Nome Produto": "Espelho Bancada", "Categoria Produto": "Mobiliário", "Fornecedor": "Ferrante", "Valor Unitário": 500.0},
		},
		database.CollectionColors: {
			{"Id Cor": 1, "Cor": "preto"},
			{"Id Cor": 2, "Cor": "BRANCO"},
			{"Id Cor": 3, "Cor": "rosa"},
		},
		database.CollectionOrders: {
			{"Id Pedido": 100, "Id Cliente": 1, "Data Pedido": "2022-03-10", "Valor Total": 1245.0, "Forma de Pagamento": "Pix", "Canal de Venda": "Loja Física"},
			{"Id Pedido": 101, "Id Cliente": 2, "Data Pedido": "2022-07-05", "Valor Total": 800.0, "Forma de Pagamento": "Cartão de Crédito", "Canal de Venda": "Instagram"},
			{"Id Pedido": 102, "Id Cliente": 1, "Data Pedido": "2023-03-12", "Valor Total": 1290.0, "Forma de Pagamento": "Pix", "Canal de Venda": "Loja Física"},
			{"Id Pedido": 103, "Id Cliente": 3, "Data Pedido": "2023-05-20", "Valor Total": 90.0, "Forma de Pagamento": "Boleto", "Canal de Venda": "Instagram"},
			{"Id Pedido": 104, "Id Cliente": 4, "Data Pedido": "2023-11-02", "Valor Total": 1700.0, "Forma de Pagamento": "Cartão de Crédito", "Canal de Venda": "Loja Física"},
			{"Id Pedido": 105, "Id Cliente": 2, "Data Pedido": "sem data", "Valor Total": 30.0, "Forma de Pagamento": "Pix", "Canal de Venda": "Instagram"},
		},
		database.CollectionSales: {
			{"id_venda": 1, "id_pedido": 100, "id_produto": 10, "id_cor": 1, "quantidade": 1, "subtotal": 1200.0},
			{"id_venda": 2, "id_pedido": 100, "id_produto": 12, "id_cor": 2, "quantidade": 1, "subtotal": 45.0},
			{"id_venda": 3, "id_pedido": 101, "id_produto": 11, "id_cor": 2, "quantidade": 1, "subtotal": 800.0},
			{"id_venda": 4, "id_pedido": 102, "id_produto": 10, "id_cor": 1, "quantidade": 1, "subtotal": 1200.0},
			{"id_venda": 5, "id_pedido": 102, "id_produto": 12, "id_cor": 3, "quantidade": 2, "subtotal": 90.0},
			{"id_venda": 6, "id_pedido": 103, "id_produto": 12, "id_cor": 3, "quantidade": 2, "subtotal": 90.0},
			{"id_venda": 7, "id_pedido": 104, "id_produto": 10, "id_cor": 1, "quantidade": 1, "subtotal": 1200.0},
			{"id_venda": 8, "id_pedido": 104, "id_produto": 14, "id_cor": 2, "quantidade": 1, "subtotal": 500.0},
			{"id_venda": 9, "id_pedido": 105, "id_produto": 13, "id_cor": 3, "quantidade": 1, "subtotal": 30.0},
		},
	}
}

// NewFixtureStore magasin en mémoire rempli avec FixtureDocuments
func NewFixtureStore(tb testing.TB) *sharedinfra.MemoryStore {
	tb.Helper()
	store := sharedinfra.NewMemoryStore()
	Seed(tb, store)
	return store
}

// Seed insère FixtureDocuments dans store
func Seed(tb testing.TB, store sharedinfra.DocumentStore) {
	tb.Helper()
	ctx := context.Background()
	for collection, docs := range FixtureDocuments() {
		if err := store.InsertMany(ctx, collection, docs); err != nil {
			tb.Fatalf("seed %s: %v", collection, err)
		}
	}
}

// storeConfig configuration du magasin d'intégration lue dans l'environnement
func storeConfig() (config.StoreConfig, bool) {
	_ = godotenv.Load("../../.env")

	cfg := config.StoreConfig{
		Driver:         getEnv("TEST_DOCSTORE_DRIVER", ""),
		MongoURI:       getEnv("TEST_MONGO_URI", "mongodb://localhost:27017"),
		Database:       getEnv("TEST_DB_NAME", "jnmoveis_test"),
		PostgresDSN:    getEnv("TEST_POSTGRES_DSN", ""),
		SQLitePath:     ":memory:",
		ConnectTimeout: 3 * time.Second,
	}
	return cfg, cfg.Driver != ""
}

// SetupTestContext ouvre le magasin d'intégration choisi par TEST_DOCSTORE_DRIVER
func SetupTestContext(tb testing.TB) *TestContext {
	tb.Helper()

	cfg, ok := storeConfig()
	if !ok {
		tb.Skip("TEST_DOCSTORE_DRIVER not set")
	}
	store, err := database.Open(context.Background(), cfg)
	if err != nil {
		tb.Fatalf("Failed to open store: %v", err)
	}
	return &TestContext{Store: store}
}

// SkipIfNoDatabase skip le test/benchmark si le magasin d'intégration n'est pas disponible
func SkipIfNoDatabase(tb testing.TB) {
	tb.Helper()

	cfg, ok := storeConfig()
	if !ok {
		tb.Skip("Database not available: TEST_DOCSTORE_DRIVER not set")
	}
	store, err := database.Open(context.Background(), cfg)
	if err != nil {
		tb.Skip("Database not available:", err)
	}
	_ = store.Close(context.Background())
}

// getEnv récupère une variable d'environnement avec fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
