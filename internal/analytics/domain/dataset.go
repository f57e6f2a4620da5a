package domain

import (
	"errors"
	"time"
)

// ErrLoadFailed le magasin de documents n'a pas pu être lu
var ErrLoadFailed = errors.New("dataset load failed")

// ErrProductNotFound aucun produit ne correspond à la recherche
var ErrProductNotFound = errors.New("product not found")

// Customer ligne normalisée de la collection Clientes
type Customer struct {
	ID    string
	Name  string
	Sex   string
	City  string
	State string
	Phone string
}

// Order ligne normalisée de la collection Pedidos.
// Year, Month, MonthName et YearMonth sont dérivés une seule fois au chargement;
// ils restent à zéro quand la date est illisible.
type Order struct {
	ID            string
	CustomerID    string
	Date          time.Time
	Total         float64
	PaymentMethod string
	Channel       string

	Year      int
	Month     int
	MonthName string
	YearMonth string
}

// Dated indique si la date de commande a pu être lue
func (o Order) Dated() bool {
	return o.Year != 0
}

// SaleLine ligne normalisée de la collection Vendas (une ligne produit d'une commande)
type SaleLine struct {
	ID        string
	OrderID   string
	ProductID string
	ColorID   string
	Quantity  int
	Subtotal  float64
}

// Product ligne normalisée de la collection Produtos
type Product struct {
	ID        string
	Name      string
	Category  string
	Supplier  string
	UnitPrice float64
}

// Color ligne normalisée de la collection CorProduto
type Color struct {
	ID   string
	Name string
}

// Dataset les cinq tables sources, immuables après chargement
type Dataset struct {
	Customers []Customer
	Orders    []Order
	SaleLines []SaleLine
	Products  []Product
	Colors    []Color
}

// RowCounts nombre de lignes par table, pour les journaux
func (d *Dataset) RowCounts() map[string]int {
	return map[string]int{
		"customers":  len(d.Customers),
		"orders":     len(d.Orders),
		"sale_lines": len(d.SaleLines),
		"products":   len(d.Products),
		"colors":     len(d.Colors),
	}
}
