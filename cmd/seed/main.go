package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"jnmoveis/database"
	"jnmoveis/internal/config"
	"jnmoveis/internal/logging"
)

func main() {
	var (
		configPath = flag.String("config", "", "arquivo YAML de configuração")
		seed       = flag.Uint64("seed", 1, "semente do gerador")
		force      = flag.Bool("force", false, "insere mesmo se já houver clientes")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("❌ Erro de configuração: ", err)
	}
	if !cfg.EnvFileLoaded {
		log.Println("Atenção: arquivo .env não encontrado, usando valores padrão")
	}
	logger := logging.New(cfg.Log.Level, logging.Format(cfg.Log.Format), os.Stderr)

	ctx := context.Background()
	store, err := database.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatal("❌ Erro de conexão: ", err)
	}
	defer store.Close(ctx)
	fmt.Printf("✅ Conexão %s estabelecida\n", cfg.Store.Driver)

	fmt.Println("🌱 Gerando dados de demonstração...")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	stats, err := database.SeedStore(ctx, store, database.SeedOptions{
		Years:     cfg.Seed.Years,
		Customers: cfg.Seed.Customers,
		Seed:      *seed,
		Force:     *force,
	}, logger)
	if errors.Is(err, database.ErrAlreadySeeded) {
		fmt.Println("⚠️  Banco já populado; use -force para inserir mesmo assim")
		return
	}
	if err != nil {
		store.Close(ctx)
		log.Fatal("❌ Erro no seed: ", err)
	}

	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("   👥 %d clientes\n", stats.Customers)
	fmt.Printf("   📦 %d produtos, %d cores\n", stats.Products, stats.Colors)
	fmt.Printf("   🧾 %d pedidos, %d itens vendidos\n", stats.Orders, stats.SaleLines)
	fmt.Println("✅ Seed concluído!")
	fmt.Println()
	fmt.Println("Inicie o painel com:")
	fmt.Println("  go run .")
	fmt.Println("E teste:")
	fmt.Println("  http://localhost:8080/api/v1/views/sales_by_year")
	fmt.Println("  go run ./cmd/analytics report")
}
