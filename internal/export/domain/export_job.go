package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	analyticsdomain "jnmoveis/internal/analytics/domain"
)

// ErrInvalidExport format ou type d'export inconnu
var ErrInvalidExport = errors.New("invalid export")

// ExportFormat représente le format d'export
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatJSON ExportFormat = "json"
)

// ParseFormat convertit "CSV", "json"... (csv par défaut quand vide)
func ParseFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return ExportFormatCSV, nil
	case ExportFormatCSV, ExportFormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: format %q", ErrInvalidExport, s)
	}
}

// ContentType type MIME du format
func (f ExportFormat) ContentType() string {
	if f == ExportFormatJSON {
		return "application/json"
	}
	return "text/csv; charset=utf-8"
}

// ExportType représente le type d'export
type ExportType string

const (
	ExportTypeView  ExportType = "view"
	ExportTypeFacts ExportType = "facts"
)

// ExportJob représente un job d'export
type ExportJob struct {
	id         uuid.UUID
	format     ExportFormat
	exportType ExportType
	view       analyticsdomain.ViewKind
	createdAt  time.Time
}

// NewExportJob crée un nouveau job d'export avec validation.
// view n'est utilisé que pour ExportTypeView.
func NewExportJob(format ExportFormat, exportType ExportType, view analyticsdomain.ViewKind) (*ExportJob, error) {
	if format != ExportFormatCSV && format != ExportFormatJSON {
		return nil, fmt.Errorf("%w: format %q", ErrInvalidExport, format)
	}
	switch exportType {
	case ExportTypeView:
		if !view.Valid() {
			return nil, fmt.Errorf("%w: %w", ErrInvalidExport, analyticsdomain.ErrUnknownView)
		}
	case ExportTypeFacts:
		if format != ExportFormatCSV {
			return nil, fmt.Errorf("%w: facts export is csv only", ErrInvalidExport)
		}
	default:
		return nil, fmt.Errorf("%w: type %q", ErrInvalidExport, exportType)
	}

	return &ExportJob{
		id:         uuid.New(),
		format:     format,
		exportType: exportType,
		view:       view,
		createdAt:  time.Now(),
	}, nil
}

// ID identifiant du job (journaux, en-têtes de réponse)
func (ej *ExportJob) ID() uuid.UUID {
	return ej.id
}

// Format retourne le format d'export
func (ej *ExportJob) Format() ExportFormat {
	return ej.format
}

// ExportType retourne le type d'export
func (ej *ExportJob) ExportType() ExportType {
	return ej.exportType
}

// View vue exportée
func (ej *ExportJob) View() analyticsdomain.ViewKind {
	return ej.view
}

// CreatedAt retourne la date de création
func (ej *ExportJob) CreatedAt() time.Time {
	return ej.createdAt
}

// FileName nom de fichier proposé: "<vue>_20240102.csv" ou "vendas_consolidadas_20240102.csv"
func (ej *ExportJob) FileName() string {
	base := "vendas_consolidadas"
	if ej.exportType == ExportTypeView {
		base = ej.view.String()
	}
	return base + "_" + ej.createdAt.Format("20060102") + "." + string(ej.format)
}

// FactRow ligne d'export de la table consolidée; les entités non jointes donnent des champs vides
type FactRow struct {
	SaleID        string
	OrderID       string
	OrderDate     time.Time
	CustomerID    string
	CustomerName  string
	State         string
	Channel       string
	PaymentMethod string
	ProductID     string
	ProductName   string
	Category      string
	Color         string
	Quantity      int
	UnitPrice     float64
	Subtotal      float64
}

// NewFactRow aplatit un fait consolidé
func NewFactRow(f analyticsdomain.Fact) FactRow {
	row := FactRow{
		SaleID:    f.Line.ID,
		OrderID:   f.Line.OrderID,
		ProductID: f.Line.ProductID,
		Quantity:  f.Line.Quantity,
		Subtotal:  f.Line.Subtotal,
	}
	if f.Order != nil {
		row.OrderDate = f.Order.Date
		row.CustomerID = f.Order.CustomerID
		row.Channel = f.Order.Channel
		row.PaymentMethod = f.Order.PaymentMethod
	}
	if f.Customer != nil {
		row.CustomerName = f.Customer.Name
		row.State = f.Customer.State
	}
	if f.Product != nil {
		row.ProductName = f.Product.Name
		row.Category = f.Product.Category
		row.UnitPrice = f.Product.UnitPrice
	}
	if f.Color != nil {
		row.Color = f.Color.Name
	}
	return row
}

// ToCSVRow convertit en tableau pour CSV (strconv plutôt que fmt.Sprintf)
func (r *FactRow) ToCSVRow() []string {
	date := ""
	if !r.OrderDate.IsZero() {
		date = r.OrderDate.Format("2006-01-02")
	}
	return []string{
		r.SaleID,
		r.OrderID,
		date,
		r.CustomerID,
		r.CustomerName,
		r.State,
		r.Channel,
		r.PaymentMethod,
		r.ProductID,
		r.ProductName,
		r.Category,
		r.Color,
		strconv.Itoa(r.Quantity),
		strconv.FormatFloat(r.UnitPrice, 'f', 2, 64),
		strconv.FormatFloat(r.Subtotal, 'f', 2, 64),
	}
}

// CSVHeaders retourne les en-têtes CSV de la table consolidée
func CSVHeaders() []string {
	return []string{
		"id_venda",
		"id_pedido",
		"data_pedido",
		"id_cliente",
		"nome_cliente",
		"estado",
		"canal_venda",
		"forma_pagamento",
		"id_produto",
		"nome_produto",
		"categoria_produto",
		"cor",
		"quantidade",
		"valor_unitario",
		"subtotal",
	}
}
