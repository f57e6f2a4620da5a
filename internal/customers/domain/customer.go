package domain

import (
	"jnmoveis/database"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

// Customer client de la collection Clientes
type Customer struct {
	ID        int64  `json:"id_cliente"`
	Name      string `json:"nome" validate:"required,max=200"`
	Sex       string `json:"sexo" validate:"required,oneof=F M"`
	City      string `json:"cidade" validate:"max=100"`
	State     string `json:"estado" validate:"omitempty,len=2,alpha"`
	Phone     string `json:"telefone" validate:"max=30"`
	CreatedAt string `json:"data_cadastro,omitempty"`
}

func (c Customer) Document() sharedinfra.Document {
	return sharedinfra.Document{
		database.FieldCustomerName:  c.Name,
		database.FieldCustomerSex:   c.Sex,
		database.FieldCustomerCity:  c.City,
		database.FieldCustomerState: c.State,
		database.FieldCustomerPhone: c.Phone,
	}
}

// CustomerFromDocument lit un client brut
func CustomerFromDocument(doc sharedinfra.Document) Customer {
	return Customer{
		ID:        doc.Int(database.FieldCustomerID),
		Name:      doc.Text(database.FieldCustomerName),
		Sex:       doc.Text(database.FieldCustomerSex),
		City:      doc.Text(database.FieldCustomerCity),
		State:     doc.Text(database.FieldCustomerState, "estado", "uf"),
		Phone:     doc.Text(database.FieldCustomerPhone),
		CreatedAt: doc.Text(database.FieldCreatedAt),
	}
}

// CustomerPatch modification partielle d'un client
type CustomerPatch struct {
	Name  *string `json:"nome" validate:"omitempty,min=1,max=200"`
	Sex   *string `json:"sexo" validate:"omitempty,oneof=F M"`
	City  *string `json:"cidade" validate:"omitempty,max=100"`
	State *string `json:"estado" validate:"omitempty,len=2,alpha"`
	Phone *string `json:"telefone" validate:"omitempty,max=30"`
}

func (p CustomerPatch) Set() sharedinfra.Document {
	set := sharedinfra.Document{}
	if p.Name != nil {
		set[database.FieldCustomerName] = *p.Name
	}
	if p.Sex != nil {
		set[database.FieldCustomerSex] = *p.Sex
	}
	if p.City != nil {
		set[database.FieldCustomerCity] = *p.City
	}
	if p.State != nil {
		set[database.FieldCustomerState] = *p.State
	}
	if p.Phone != nil {
		set[database.FieldCustomerPhone] = *p.Phone
	}
	return set
}
