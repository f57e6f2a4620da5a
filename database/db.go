package database

import (
	"context"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"jnmoveis/internal/config"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

// ErrUnsupportedDriver driver de magasin inconnu
var ErrUnsupportedDriver = errors.New("unsupported document store driver")

// Open ouvre le magasin de documents choisi par la configuration.
// La connexion est établie une seule fois et doit être fermée par l'appelant.
func Open(ctx context.Context, cfg config.StoreConfig) (sharedinfra.DocumentStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	var (
		store sharedinfra.DocumentStore
		err   error
	)
	switch cfg.Driver {
	case config.DriverMongo:
		var s *sharedinfra.MongoStore
		s, err = sharedinfra.NewMongoStore(connectCtx, cfg.MongoURI, cfg.Database, cfg.ConnectTimeout)
		store = s
	case config.DriverPostgres:
		var s *sharedinfra.SQLStore
		s, err = sharedinfra.OpenSQLStore(connectCtx, sharedinfra.DialectPostgres, cfg.PostgresDSN)
		store = s
	case config.DriverSQLite:
		var s *sharedinfra.SQLStore
		s, err = sharedinfra.OpenSQLStore(connectCtx, sharedinfra.DialectSQLite, cfg.SQLitePath)
		store = s
	case config.DriverMemory:
		store = sharedinfra.NewMemoryStore()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
	}
	return store, nil
}
