package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"jnmoveis/database"
	"jnmoveis/internal/analytics/domain"
	"jnmoveis/internal/observability"
	shareddomain "jnmoveis/internal/shared/domain"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

// Alias d'en-têtes normalisés, par entité
var (
	customerIDAliases    = []string{"id_cliente", "cliente_id"}
	customerNameAliases  = []string{"nome", "nome_cliente"}
	customerSexAliases   = []string{"sexo", "genero"}
	customerCityAliases  = []string{"cidade"}
	customerStateAliases = []string{"estado2", "estado", "uf"}
	customerPhoneAliases = []string{"telefone", "fone", "celular"}

	productIDAliases       = []string{"id_produto", "produto_id"}
	productNameAliases     = []string{"nome_produto", "produto", "nome"}
	productCategoryAliases = []string{"categoria_produto", "categoria"}
	productSupplierAliases = []string{"fornecedor"}
	productPriceAliases    = []string{"valor_unitario", "preco_unitario", "preco"}

	colorIDAliases   = []string{"id_cor", "cor_id"}
	colorNameAliases = []string{"cor", "nome_cor"}

	orderIDAliases       = []string{"id_pedido", "pedido_id"}
	orderCustomerAliases = []string{"id_cliente", "cliente_id"}
	orderDateAliases     = []string{"data_pedido", "data"}
	orderTotalAliases    = []string{"valor_total", "total"}
	orderPaymentAliases  = []string{"forma_de_pagamento", "forma_pagamento", "pagamento"}
	orderChannelAliases  = []string{"canal_de_venda", "canal_venda", "canal"}

	saleIDAliases       = []string{"id_venda", "venda_id"}
	saleOrderAliases    = []string{"id_pedido", "pedido_id"}
	saleProductAliases  = []string{"id_produto", "produto_id"}
	saleColorAliases    = []string{"id_cor", "cor_id"}
	saleQuantityAliases = []string{"quantidade", "qtd"}
	saleSubtotalAliases = []string{"subtotal", "valor_subtotal"}
)

// DatasetLoader lit les cinq collections et produit les tables normalisées
type DatasetLoader struct {
	store   sharedinfra.DocumentStore
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewDatasetLoader crée un chargeur; metrics peut être nil
func NewDatasetLoader(store sharedinfra.DocumentStore, logger *slog.Logger, metrics *observability.Metrics) *DatasetLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetLoader{store: store, logger: logger, metrics: metrics}
}

// Load lit les collections séquentiellement, sans reprise.
// Une collection vide donne une table vide; une erreur du magasin est retournée enveloppée.
func (l *DatasetLoader) Load(ctx context.Context) (*domain.Dataset, error) {
	start := time.Now()
	raw := make(map[string][]sharedinfra.Document, len(database.Collections))
	for _, collection := range database.Collections {
		docs, err := l.store.FindAll(ctx, collection)
		if err != nil {
			return nil, fmt.Errorf("%w: collection %s: %w", domain.ErrLoadFailed, collection, err)
		}
		raw[collection] = docs
	}

	ds := &domain.Dataset{
		Customers: normalizeCustomers(raw[database.CollectionCustomers]),
		SaleLines: normalizeSaleLines(raw[database.CollectionSales]),
		Products:  normalizeProducts(raw[database.CollectionProducts]),
		Colors:    normalizeColors(raw[database.CollectionColors]),
		Orders:    normalizeOrders(raw[database.CollectionOrders]),
	}

	l.metrics.RecordRows(database.CollectionCustomers, len(ds.Customers))
	l.metrics.RecordRows(database.CollectionSales, len(ds.SaleLines))
	l.metrics.RecordRows(database.CollectionProducts, len(ds.Products))
	l.metrics.RecordRows(database.CollectionColors, len(ds.Colors))
	l.metrics.RecordRows(database.CollectionOrders, len(ds.Orders))

	l.logger.Info("dataset loaded",
		"customers", len(ds.Customers),
		"orders", len(ds.Orders),
		"sale_lines", len(ds.SaleLines),
		"products", len(ds.Products),
		"colors", len(ds.Colors),
		"duration", time.Since(start),
	)
	return ds, nil
}

// dedup garde la première ligne de chaque clé non vide
type dedup map[string]struct{}

func (d dedup) first(key string) bool {
	if key == "" {
		return true
	}
	if _, seen := d[key]; seen {
		return false
	}
	d[key] = struct{}{}
	return true
}

func normalizeCustomers(docs []sharedinfra.Document) []domain.Customer {
	out := make([]domain.Customer, 0, len(docs))
	seen := dedup{}
	for _, doc := range docs {
		r := newRecord(doc)
		c := domain.Customer{
			ID:    r.key(customerIDAliases...),
			Name:  r.text(customerNameAliases...),
			Sex:   r.text(customerSexAliases...),
			City:  r.text(customerCityAliases...),
			State: r.text(customerStateAliases...),
			Phone: r.text(customerPhoneAliases...),
		}
		if seen.first(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

func normalizeProducts(docs []sharedinfra.Document) []domain.Product {
	out := make([]domain.Product, 0, len(docs))
	seen := dedup{}
	for _, doc := range docs {
		r := newRecord(doc)
		p := domain.Product{
			ID:        r.key(productIDAliases...),
			Name:      r.text(productNameAliases...),
			Category:  r.text(productCategoryAliases...),
			Supplier:  r.text(productSupplierAliases...),
			UnitPrice: r.number(productPriceAliases...),
		}
		if seen.first(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

func normalizeColors(docs []sharedinfra.Document) []domain.Color {
	title := cases.Title(language.BrazilianPortuguese)
	out := make([]domain.Color, 0, len(docs))
	seen := dedup{}
	for _, doc := range docs {
		r := newRecord(doc)
		c := domain.Color{
			ID:   r.key(colorIDAliases...),
			Name: title.String(r.text(colorNameAliases...)),
		}
		if seen.first(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

func normalizeOrders(docs []sharedinfra.Document) []domain.Order {
	out := make([]domain.Order, 0, len(docs))
	seen := dedup{}
	for _, doc := range docs {
		r := newRecord(doc)
		o := domain.Order{
			ID:            r.key(orderIDAliases...),
			CustomerID:    r.key(orderCustomerAliases...),
			Total:         r.number(orderTotalAliases...),
			PaymentMethod: r.text(orderPaymentAliases...),
			Channel:       r.text(orderChannelAliases...),
		}
		if date, ok := r.date(orderDateAliases...); ok {
			o.Date = date
			o.Year = date.Year()
			o.Month = int(date.Month())
			o.MonthName = shareddomain.MonthName(o.Month)
			o.YearMonth = fmt.Sprintf("%04d-%02d", o.Year, o.Month)
		}
		if seen.first(o.ID) {
			out = append(out, o)
		}
	}
	return out
}

func normalizeSaleLines(docs []sharedinfra.Document) []domain.SaleLine {
	out := make([]domain.SaleLine, 0, len(docs))
	seen := dedup{}
	for _, doc := range docs {
		r := newRecord(doc)
		s := domain.SaleLine{
			ID:        r.key(saleIDAliases...),
			OrderID:   r.key(saleOrderAliases...),
			ProductID: r.key(saleProductAliases...),
			ColorID:   r.key(saleColorAliases...),
			Quantity:  r.integer(saleQuantityAliases...),
			Subtotal:  r.number(saleSubtotalAliases...),
		}
		if seen.first(s.ID) {
			out = append(out, s)
		}
	}
	return out
}
