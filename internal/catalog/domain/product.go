package domain

import (
	"jnmoveis/database"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

// Product produit du catalogue tel qu'écrit dans la collection Produtos
type Product struct {
	ID        int64   `json:"id_produto"`
	Name      string  `json:"nome_produto" validate:"required,max=200"`
	Category  string  `json:"categoria_produto" validate:"required,max=100"`
	Supplier  string  `json:"fornecedor" validate:"max=100"`
	UnitPrice float64 `json:"valor_unitario" validate:"gte=0"`
	CreatedAt string  `json:"data_cadastro,omitempty"`
}

// Document représentation brute; l'identifiant est attribué par le repository
func (p Product) Document() sharedinfra.Document {
	return sharedinfra.Document{
		database.FieldProductName:     p.Name,
		database.FieldProductCategory: p.Category,
		database.FieldProductSupplier: p.Supplier,
		database.FieldProductPrice:    p.UnitPrice,
	}
}

// ProductFromDocument lit un produit quel que soit le style d'en-tête de l'identifiant
func ProductFromDocument(doc sharedinfra.Document) Product {
	return Product{
		ID:        doc.Int(database.FieldProductID, database.FieldProductIDAlt),
		Name:      doc.Text(database.FieldProductName),
		Category:  doc.Text(database.FieldProductCategory),
		Supplier:  doc.Text(database.FieldProductSupplier),
		UnitPrice: doc.Float(database.FieldProductPrice),
		CreatedAt: doc.Text(database.FieldCreatedAt),
	}
}

// ProductPatch modification partielle d'un produit
type ProductPatch struct {
	Name      *string  `json:"nome_produto" validate:"omitempty,min=1,max=200"`
	Category  *string  `json:"categoria_produto" validate:"omitempty,min=1,max=100"`
	Supplier  *string  `json:"fornecedor" validate:"omitempty,max=100"`
	UnitPrice *float64 `json:"valor_unitario" validate:"omitempty,gte=0"`
}

// Set champs à écrire
func (p ProductPatch) Set() sharedinfra.Document {
	set := sharedinfra.Document{}
	if p.Name != nil {
		set[database.FieldProductName] = *p.Name
	}
	if p.Category != nil {
		set[database.FieldProductCategory] = *p.Category
	}
	if p.Supplier != nil {
		set[database.FieldProductSupplier] = *p.Supplier
	}
	if p.UnitPrice != nil {
		set[database.FieldProductPrice] = *p.UnitPrice
	}
	return set
}
