package domain

import (
	"jnmoveis/database"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

// Color couleur disponible pour les produits (collection CorProduto)
type Color struct {
	ID        int64  `json:"id_cor"`
	Name      string `json:"cor" validate:"required,max=50"`
	CreatedAt string `json:"data_cadastro,omitempty"`
}

func (c Color) Document() sharedinfra.Document {
	return sharedinfra.Document{database.FieldColorName: c.Name}
}

// ColorFromDocument lit une couleur brute
func ColorFromDocument(doc sharedinfra.Document) Color {
	return Color{
		ID:        doc.Int(database.FieldColorID),
		Name:      doc.Text(database.FieldColorName),
		CreatedAt: doc.Text(database.FieldCreatedAt),
	}
}

// ColorPatch renommage d'une couleur
type ColorPatch struct {
	Name *string `json:"cor" validate:"omitempty,min=1,max=50"`
}

func (p ColorPatch) Set() sharedinfra.Document {
	set := sharedinfra.Document{}
	if p.Name != nil {
		set[database.FieldColorName] = *p.Name
	}
	return set
}
