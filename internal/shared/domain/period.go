package domain

import (
	"errors"
	"fmt"
	"time"
)

// monthNames noms des mois en portugais, index 1-12
var monthNames = [13]string{
	"",
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthName retourne le nom portugais du mois, vide si hors 1-12
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}

// Period représente un filtre temporel facultatif (année, mois)
// Value Object: immuable, zéro signifie "pas de filtre".
type Period struct {
	year  int
	month int
}

// NewPeriod crée une période validée.
// Le mois n'est accepté qu'accompagné d'une année.
func NewPeriod(year, month int) (Period, error) {
	if year < 0 {
		return Period{}, errors.New("year cannot be negative")
	}
	if month < 0 || month > 12 {
		return Period{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if month != 0 && year == 0 {
		return Period{}, errors.New("month filter requires a year")
	}
	return Period{year: year, month: month}, nil
}

// AllTime période sans filtre
func AllTime() Period {
	return Period{}
}

// Year retourne l'année filtrée, 0 si aucune
func (p Period) Year() int {
	return p.year
}

// Month retourne le mois filtré, 0 si aucun
func (p Period) Month() int {
	return p.month
}

// HasYear indique si un filtre d'année est actif
func (p Period) HasYear() bool {
	return p.year != 0
}

// HasMonth indique si un filtre de mois est actif
func (p Period) HasMonth() bool {
	return p.month != 0
}

// Contains vérifie si une date datée (year, month) appartient à la période
func (p Period) Contains(year, month int) bool {
	if p.year != 0 && year != p.year {
		return false
	}
	if p.month != 0 && month != p.month {
		return false
	}
	return true
}

// ContainsTime vérifie si un instant appartient à la période
func (p Period) ContainsTime(t time.Time) bool {
	return p.Contains(t.Year(), int(t.Month()))
}

// String retourne une représentation lisible ("2023-05", "2023", "todos")
func (p Period) String() string {
	switch {
	case p.month != 0:
		return fmt.Sprintf("%04d-%02d", p.year, p.month)
	case p.year != 0:
		return fmt.Sprintf("%04d", p.year)
	default:
		return "todos"
	}
}
