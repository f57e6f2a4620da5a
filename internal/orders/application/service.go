package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"jnmoveis/database"
	catalogdomain "jnmoveis/internal/catalog/domain"
	"jnmoveis/internal/observability"
	"jnmoveis/internal/orders/domain"
	sharedapp "jnmoveis/internal/shared/application"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

// ProductLookup source du prix unitaire des produits
type ProductLookup interface {
	Get(ctx context.Context, id int64) (catalogdomain.Product, error)
}

// Service CRUD des commandes et de leurs lignes de vente
type Service struct {
	Orders    *sharedapp.Resource[domain.Order, domain.OrderPatch]
	SaleLines *sharedapp.Resource[domain.SaleLine, domain.SaleLinePatch]

	products ProductLookup
	logger   *slog.Logger
}

// NewService crée le service des commandes
func NewService(
	store sharedinfra.DocumentStore,
	products ProductLookup,
	validate *validator.Validate,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	orders := sharedinfra.NewCollectionRepository(store, database.CollectionOrders,
		database.FieldOrderID, database.FieldOrderIDAlt).WithCreatedAt(database.FieldCreatedAt)
	lines := sharedinfra.NewCollectionRepository(store, database.CollectionSales,
		database.FieldSaleID).WithCreatedAt(database.FieldCreatedAt)

	return &Service{
		Orders:    sharedapp.NewResource[domain.Order, domain.OrderPatch](orders, domain.OrderFromDocument, validate, logger, metrics),
		SaleLines: sharedapp.NewResource[domain.SaleLine, domain.SaleLinePatch](lines, domain.SaleLineFromDocument, validate, logger, metrics),
		products:  products,
		logger:    logger,
	}
}

// Lines lignes de vente d'une commande
func (s *Service) Lines(ctx context.Context, orderID int64) ([]domain.SaleLine, error) {
	if _, err := s.Orders.Get(ctx, orderID); err != nil {
		return nil, err
	}
	all, err := s.SaleLines.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.SaleLine
	for _, l := range all {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	return out, nil
}

// AddLine ajoute une ligne à une commande existante puis recalcule son total.
// Sans sous-total, il est déduit du prix unitaire du produit.
// Si le recalcul échoue, la ligne créée est supprimée.
func (s *Service) AddLine(ctx context.Context, line domain.SaleLine) (domain.SaleLine, error) {
	if _, err := s.Orders.Get(ctx, line.OrderID); err != nil {
		return domain.SaleLine{}, err
	}
	if s.products != nil {
		product, err := s.products.Get(ctx, line.ProductID)
		if err != nil {
			return domain.SaleLine{}, fmt.Errorf("product %d: %w", line.ProductID, err)
		}
		line = line.PriceWith(product.UnitPrice)
	}

	created, err := s.SaleLines.Create(ctx, line)
	if err != nil {
		return domain.SaleLine{}, err
	}
	if _, err := s.RecalculateTotal(ctx, line.OrderID); err != nil {
		// la ligne est retirée pour que le total reste cohérent avec les lignes
		if rbErr := s.SaleLines.Delete(context.WithoutCancel(ctx), created.ID); rbErr != nil {
			s.logger.Error("sale line rollback failed", "order", line.OrderID, "line", created.ID, "error", rbErr)
			return domain.SaleLine{}, errors.Join(err, fmt.Errorf("rollback line %d: %w", created.ID, rbErr))
		}
		s.logger.Warn("sale line rolled back", "order", line.OrderID, "line", created.ID, "error", err)
		return domain.SaleLine{}, err
	}
	return created, nil
}

// RecalculateTotal réécrit le total d'une commande comme somme des sous-totaux de ses lignes
func (s *Service) RecalculateTotal(ctx context.Context, orderID int64) (domain.Order, error) {
	lines, err := s.Lines(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	var total float64
	for _, l := range lines {
		total += l.Subtotal
	}
	s.logger.Debug("order total recalculated", "order", orderID, "lines", len(lines), "total", total)
	return s.Orders.Update(ctx, orderID, domain.OrderPatch{Total: &total})
}
