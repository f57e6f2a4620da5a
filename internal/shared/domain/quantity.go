package domain

import "errors"

// Quantity nombre d'unités vendues ou cotées
type Quantity struct {
	value int
}

// NewQuantity crée une quantité strictement positive
func NewQuantity(value int) (Quantity, error) {
	if value <= 0 {
		return Quantity{}, errors.New("quantity must be positive")
	}
	return Quantity{value: value}, nil
}

// QuantityOrDefault retourne la quantité demandée ou fallback si elle est invalide
func QuantityOrDefault(value, fallback int) Quantity {
	if q, err := NewQuantity(value); err == nil {
		return q
	}
	return Quantity{value: fallback}
}

// Value retourne la valeur
func (q Quantity) Value() int {
	return q.value
}

// Price prix total pour un prix unitaire donné
func (q Quantity) Price(unit Money) Money {
	return MoneyOf(unit.Amount() * float64(q.value))
}
