package application

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"jnmoveis/database"
	"jnmoveis/internal/customers/domain"
	"jnmoveis/internal/observability"
	sharedapp "jnmoveis/internal/shared/application"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

// Service CRUD des clients
type Service = sharedapp.Resource[domain.Customer, domain.CustomerPatch]

// NewService crée le service des clients
func NewService(store sharedinfra.DocumentStore, validate *validator.Validate, logger *slog.Logger, metrics *observability.Metrics) *Service {
	repo := sharedinfra.NewCollectionRepository(store, database.CollectionCustomers,
		database.FieldCustomerID).WithCreatedAt(database.FieldCreatedAt)
	return sharedapp.NewResource[domain.Customer, domain.CustomerPatch](repo, domain.CustomerFromDocument, validate, logger, metrics)
}
