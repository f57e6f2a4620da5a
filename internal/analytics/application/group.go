package application

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ordered groupement qui conserve l'ordre de première apparition des clés
type ordered[K comparable, V any] struct {
	index  map[K]int
	keys   []K
	values []*V
}

func newOrdered[K comparable, V any]() *ordered[K, V] {
	return &ordered[K, V]{index: make(map[K]int)}
}

// at retourne l'accumulateur de k, créé via init au premier accès
func (o *ordered[K, V]) at(k K, init func() *V) *V {
	if i, ok := o.index[k]; ok {
		return o.values[i]
	}
	v := init()
	o.index[k] = len(o.keys)
	o.keys = append(o.keys, k)
	o.values = append(o.values, v)
	return v
}

func (o *ordered[K, V]) len() int { return len(o.keys) }

// each parcourt les groupes dans l'ordre d'apparition
func (o *ordered[K, V]) each(fn func(k K, v *V)) {
	for i, k := range o.keys {
		fn(k, o.values[i])
	}
}

// set ensemble de clés pour les comptages distincts
type set map[string]struct{}

func (s set) add(k string) {
	if k != "" {
		s[k] = struct{}{}
	}
}

// topN tronque aux n premières lignes; n <= 0 garde tout
func topN[S ~[]E, E any](rows S, n int) S {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}

// sortDesc tri stable décroissant, les égalités gardent l'ordre d'apparition
func sortDesc[S ~[]E, E any](rows S, by func(E) float64) {
	sort.SliceStable(rows, func(i, j int) bool { return by(rows[i]) > by(rows[j]) })
}

// lessKey compare deux identifiants, numériquement quand les deux sont entiers
func lessKey(a, b string) bool {
	ia, errA := strconv.ParseInt(a, 10, 64)
	ib, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return ia < ib
	}
	return a < b
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// fold forme de comparaison insensible à la casse et aux accents
func fold(s string) string {
	decomposed := norm.NFD.String(strings.ToLower(strings.TrimSpace(s)))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
