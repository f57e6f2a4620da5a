package infrastructure

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	shareddomain "jnmoveis/internal/shared/domain"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

// dateLayouts formats acceptés pour les dates de commande, dans l'ordre d'essai
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// NormalizeHeader ramène un en-tête brut à sa forme canonique:
// "Valor Unitário" -> "valor_unitario", "Id Produto" -> "id_produto"
func NormalizeHeader(header string) string {
	decomposed := norm.NFD.String(strings.ToLower(strings.TrimSpace(header)))

	var b strings.Builder
	b.Grow(len(decomposed))
	underscore := false
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			underscore = false
		default:
			if !underscore && b.Len() > 0 {
				b.WriteByte('_')
				underscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// record document brut indexé par en-tête normalisé, sans identifiant de stockage
type record map[string]any

// newRecord indexe doc par en-tête normalisé. Quand deux en-têtes donnent la même clé,
// une valeur non nulle l'emporte sur nil, puis l'en-tête déjà au format normalisé,
// puis le premier en-tête dans l'ordre lexicographique.
func newRecord(doc sharedinfra.Document) record {
	r := make(record, len(doc))
	for _, k := range slices.Sorted(maps.Keys(doc)) {
		if k == sharedinfra.IDField {
			continue
		}
		v := doc[k]
		h := NormalizeHeader(k)
		current, exists := r[h]
		switch {
		case !exists, current == nil:
			r[h] = v
		case v != nil && k == h:
			r[h] = v
		}
	}
	return r
}

// lookup première valeur non nulle parmi les alias
func (r record) lookup(aliases ...string) (any, bool) {
	for _, a := range aliases {
		if v, ok := r[a]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// text valeur textuelle, espaces retirés
func (r record) text(aliases ...string) string {
	v, ok := r.lookup(aliases...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64, float32, int, int32, int64, json.Number:
		return sharedinfra.NormalizeKey(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// key identifiant canonique ("3", 3, 3.0 -> "3")
func (r record) key(aliases ...string) string {
	v, ok := r.lookup(aliases...)
	if !ok {
		return ""
	}
	return sharedinfra.NormalizeKey(v)
}

// number valeur numérique, 0 quand illisible
func (r record) number(aliases ...string) float64 {
	v, ok := r.lookup(aliases...)
	if !ok {
		return 0
	}
	return toFloat(v)
}

// integer valeur entière arrondie, 0 quand illisible
func (r record) integer(aliases ...string) int {
	return int(math.Round(r.number(aliases...)))
}

// date date lue selon les formats connus; ok=false quand illisible
func (r record) date(aliases ...string) (time.Time, bool) {
	v, ok := r.lookup(aliases...)
	if !ok {
		return time.Time{}, false
	}
	return toDate(v)
}

func toFloat(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if t {
			f = 1
		}
	case string:
		f = parseNumber(t)
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// parseNumber accepte "1234.5", "1.234,50", "R$ 1.234,50" et "12,5"
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") || strings.HasPrefix(s, "R$") {
		return shareddomain.ParseCurrency(s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func toDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t.UTC(), true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

