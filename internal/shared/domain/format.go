package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// brazilianNumber motif go-humanize: séparateur de milliers "." et décimal ","
const brazilianNumber = "#.###,##"

// currencyPrefix préfixe des montants affichés
const currencyPrefix = "R$"

// EmptyRatio affichage d'un ratio indéfini (croissance sans base)
const EmptyRatio = "-"

// FormatCurrency formate une valeur en reais: 1234.5 -> "R$ 1.234,50"
func FormatCurrency(value float64) string {
	if !isFinite(value) {
		value = 0
	}
	return currencyPrefix + " " + formatBrazilian(value)
}

// ParseCurrency est l'inverse exact de FormatCurrency, 0 si illisible
func ParseCurrency(text string) float64 {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, currencyPrefix)
	return parseBrazilian(cleaned)
}

// FormatPercent formate un pourcentage: 12.5 -> "12,50%"
func FormatPercent(value float64) string {
	if !isFinite(value) {
		value = 0
	}
	return formatBrazilian(value) + "%"
}

// FormatVariation formate une variation signée: 50 -> "+50,00%"
func FormatVariation(value float64) string {
	if !isFinite(value) {
		value = 0
	}
	if value > 0 {
		return "+" + FormatPercent(value)
	}
	return FormatPercent(value)
}

// FormatOptionalPercent formate un pourcentage facultatif, "-" quand absent
func FormatOptionalPercent(value float64, ok bool) string {
	if !ok || !isFinite(value) {
		return EmptyRatio
	}
	return FormatPercent(value)
}

// ParsePercent est l'inverse de FormatPercent et FormatVariation, 0 si illisible
func ParsePercent(text string) float64 {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimSuffix(cleaned, "%")
	cleaned = strings.TrimPrefix(cleaned, "+")
	return parseBrazilian(cleaned)
}

// FormatDecimal formate un nombre à deux décimales sans préfixe: 2.5 -> "2,50"
func FormatDecimal(value float64) string {
	if !isFinite(value) {
		value = 0
	}
	return formatBrazilian(value)
}

// FormatInt formate un entier avec séparateur de milliers: 12345 -> "12.345"
func FormatInt(value int) string {
	return humanize.FormatInteger("#.###,", value)
}

// Ratio divise en retournant 0 quand le dénominateur est nul
func Ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	result := numerator / denominator
	if !isFinite(result) {
		return 0
	}
	return result
}

// Share calcule la part en pourcentage de part dans total, 0 si total est nul
func Share(part, total float64) float64 {
	return Ratio(part, total) * 100
}

// Growth calcule la variation en pourcentage de base vers current.
// ok vaut false quand la base est nulle.
func Growth(current, base float64) (float64, bool) {
	if base == 0 {
		return 0, false
	}
	return (current - base) / base * 100, true
}

// Round2 arrondit à deux décimales
func Round2(value float64) float64 {
	if !isFinite(value) {
		return 0
	}
	return math.Round(value*100) / 100
}

func formatBrazilian(value float64) string {
	out := humanize.FormatFloat(brazilianNumber, value)
	if out == "-0,00" {
		return "0,00"
	}
	return out
}

func parseBrazilian(text string) float64 {
	cleaned := strings.ReplaceAll(text, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || !isFinite(value) {
		return 0
	}
	return value
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
