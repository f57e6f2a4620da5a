package domain

import (
	"errors"
	"unicode/utf8"
)

// ErrChartNotFound sélecteur de graphique inconnu
var ErrChartNotFound = errors.New("chart not found")

// FigureType forme générale du graphique
type FigureType string

const (
	FigurePie       FigureType = "pie"
	FigureBar       FigureType = "bar"
	FigureLine      FigureType = "line"
	FigureCombo     FigureType = "combo"
	FigureHeatmap   FigureType = "heatmap"
	FigureIndicator FigureType = "indicator"
)

// TraceMode rendu d'une série
type TraceMode string

const (
	TraceBar  TraceMode = "bar"
	TraceLine TraceMode = "lines+markers"
	TracePie  TraceMode = "pie"
)

// Figure description d'un graphique indépendante du moteur de rendu.
// Les valeurs sont numériques; Texts porte leur forme affichée.
type Figure struct {
	Name       string      `json:"name"`
	Type       FigureType  `json:"type"`
	Title      string      `json:"title"`
	XLabel     string      `json:"x_label,omitempty"`
	YLabel     string      `json:"y_label,omitempty"`
	Traces     []Trace     `json:"traces,omitempty"`
	Heatmap    *Heatmap    `json:"heatmap,omitempty"`
	Indicators []Indicator `json:"indicators,omitempty"`

	// Threshold ligne de référence horizontale sur l'axe secondaire (0 = aucune)
	Threshold float64 `json:"threshold,omitempty"`
}

// Trace une série de points étiquetés
type Trace struct {
	Name       string    `json:"name"`
	Mode       TraceMode `json:"mode"`
	Horizontal bool      `json:"horizontal,omitempty"`
	SecondaryY bool      `json:"secondary_y,omitempty"`
	Labels     []string  `json:"labels"`
	Values     []float64 `json:"values"`
	Texts      []string  `json:"texts,omitempty"`
}

// Add ajoute un point
func (t *Trace) Add(label string, value float64, text string) {
	t.Labels = append(t.Labels, label)
	t.Values = append(t.Values, value)
	t.Texts = append(t.Texts, text)
}

// Len nombre de points
func (t Trace) Len() int {
	return len(t.Values)
}

// Heatmap matrice Z[y][x]
type Heatmap struct {
	X     []string    `json:"x"`
	Y     []string    `json:"y"`
	Z     [][]float64 `json:"z"`
	Texts [][]string  `json:"texts,omitempty"`
}

// Indicator carte de KPI
type Indicator struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

// Empty indique qu'aucune donnée n'alimente le graphique
func (f Figure) Empty() bool {
	if f.Heatmap != nil && len(f.Heatmap.Z) > 0 {
		return false
	}
	if len(f.Indicators) > 0 {
		return false
	}
	for _, t := range f.Traces {
		if t.Len() > 0 {
			return false
		}
	}
	return true
}

// ShortLabel tronque un libellé à n caractères
func ShortLabel(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
