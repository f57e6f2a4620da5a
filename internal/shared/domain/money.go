package domain

import "math"

// Money montant en reais
type Money struct {
	amount float64
}

// MoneyOf crée un Money; NaN et infinis donnent zéro
func MoneyOf(amount float64) Money {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}
	}
	return Money{amount: amount}
}

// Amount retourne le montant
func (m Money) Amount() float64 {
	return m.amount
}

// String retourne le montant au format R$ 9.999,99
func (m Money) String() string {
	return FormatCurrency(m.amount)
}
