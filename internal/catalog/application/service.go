package application

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"jnmoveis/database"
	"jnmoveis/internal/catalog/domain"
	"jnmoveis/internal/observability"
	sharedapp "jnmoveis/internal/shared/application"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

// Service CRUD du catalogue: produits et couleurs
type Service struct {
	Products *sharedapp.Resource[domain.Product, domain.ProductPatch]
	Colors   *sharedapp.Resource[domain.Color, domain.ColorPatch]
}

// NewService crée le service du catalogue
func NewService(store sharedinfra.DocumentStore, validate *validator.Validate, logger *slog.Logger, metrics *observability.Metrics) *Service {
	products := sharedinfra.NewCollectionRepository(store, database.CollectionProducts,
		database.FieldProductID, database.FieldProductIDAlt).WithCreatedAt(database.FieldCreatedAt)
	colors := sharedinfra.NewCollectionRepository(store, database.CollectionColors,
		database.FieldColorID).WithCreatedAt(database.FieldCreatedAt)

	return &Service{
		Products: sharedapp.NewResource[domain.Product, domain.ProductPatch](products, domain.ProductFromDocument, validate, logger, metrics),
		Colors:   sharedapp.NewResource[domain.Color, domain.ColorPatch](colors, domain.ColorFromDocument, validate, logger, metrics),
	}
}
