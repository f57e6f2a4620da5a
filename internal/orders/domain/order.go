package domain

import (
	"time"

	"jnmoveis/database"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

// Order commande de la collection Pedidos (aggregate root des lignes de vente)
type Order struct {
	ID            int64   `json:"id_pedido"`
	CustomerID    int64   `json:"id_cliente" validate:"gt=0"`
	Date          string  `json:"data_pedido" validate:"required,datetime=2006-01-02"`
	Total         float64 `json:"valor_total" validate:"gte=0"`
	PaymentMethod string  `json:"forma_pagamento" validate:"required,max=50"`
	Channel       string  `json:"canal_venda" validate:"required,max=50"`
	CreatedAt     string  `json:"data_cadastro,omitempty"`
}

func (o Order) Document() sharedinfra.Document {
	return sharedinfra.Document{
		database.FieldOrderCustomer: o.CustomerID,
		database.FieldOrderDate:     o.Date,
		database.FieldOrderTotal:    o.Total,
		database.FieldOrderPayment:  o.PaymentMethod,
		database.FieldOrderChannel:  o.Channel,
	}
}

// OrderFromDocument lit une commande brute; une date native est réécrite au format du CRUD
func OrderFromDocument(doc sharedinfra.Document) Order {
	date := doc.Text(database.FieldOrderDate)
	if t, ok := doc[database.FieldOrderDate].(time.Time); ok {
		date = t.Format(database.OrderDateLayout)
	}
	return Order{
		ID:            doc.Int(database.FieldOrderID, database.FieldOrderIDAlt),
		CustomerID:    doc.Int(database.FieldOrderCustomer, "id_cliente"),
		Date:          date,
		Total:         doc.Float(database.FieldOrderTotal, "valor_total"),
		PaymentMethod: doc.Text(database.FieldOrderPayment, "forma_pagamento"),
		Channel:       doc.Text(database.FieldOrderChannel, "canal_venda"),
		CreatedAt:     doc.Text(database.FieldCreatedAt),
	}
}

// OrderPatch modification partielle d'une commande
type OrderPatch struct {
	CustomerID    *int64   `json:"id_cliente" validate:"omitempty,gt=0"`
	Date          *string  `json:"data_pedido" validate:"omitempty,datetime=2006-01-02"`
	Total         *float64 `json:"valor_total" validate:"omitempty,gte=0"`
	PaymentMethod *string  `json:"forma_pagamento" validate:"omitempty,min=1,max=50"`
	Channel       *string  `json:"canal_venda" validate:"omitempty,min=1,max=50"`
}

func (p OrderPatch) Set() sharedinfra.Document {
	set := sharedinfra.Document{}
	if p.CustomerID != nil {
		set[database.FieldOrderCustomer] = *p.CustomerID
	}
	if p.Date != nil {
		set[database.FieldOrderDate] = *p.Date
	}
	if p.Total != nil {
		set[database.FieldOrderTotal] = *p.Total
	}
	if p.PaymentMethod != nil {
		set[database.FieldOrderPayment] = *p.PaymentMethod
	}
	if p.Channel != nil {
		set[database.FieldOrderChannel] = *p.Channel
	}
	return set
}
