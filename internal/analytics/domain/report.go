package domain

import (
	"fmt"

	shareddomain "jnmoveis/internal/shared/domain"
)

// ColumnKind nature d'une colonne, détermine le formatage d'affichage
type ColumnKind int

const (
	ColumnText ColumnKind = iota
	ColumnInteger
	ColumnCurrency
	ColumnPercent
	ColumnDecimal
	ColumnVariation
)

var columnKindNames = [...]string{"text", "integer", "currency", "percent", "decimal", "variation"}

func (k ColumnKind) String() string {
	if int(k) < 0 || int(k) >= len(columnKindNames) {
		return fmt.Sprintf("column(%d)", int(k))
	}
	return columnKindNames[k]
}

// MarshalText encode le type de colonne par son nom
func (k ColumnKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Numeric indique si la colonne porte une valeur numérique
func (k ColumnKind) Numeric() bool {
	return k != ColumnText
}

// Column description d'une colonne de résultat
type Column struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Kind  ColumnKind `json:"kind"`
}

// Cell valeur d'une cellule: le nombre et sa forme affichée sont produits ensemble
// et ne sont jamais dérivés l'un de l'autre.
type Cell struct {
	Value   float64 `json:"value"`
	Text    string  `json:"text"`
	Missing bool    `json:"missing,omitempty"`
}

// TextCell cellule textuelle
func TextCell(s string) Cell {
	return Cell{Text: s}
}

// NumberCell cellule numérique formatée selon le type de colonne
func NumberCell(kind ColumnKind, v float64) Cell {
	switch kind {
	case ColumnInteger:
		return Cell{Value: v, Text: shareddomain.FormatInt(int(v))}
	case ColumnCurrency:
		return Cell{Value: v, Text: shareddomain.FormatCurrency(v)}
	case ColumnPercent:
		return Cell{Value: v, Text: shareddomain.FormatPercent(v)}
	case ColumnVariation:
		return Cell{Value: v, Text: shareddomain.FormatVariation(v)}
	case ColumnDecimal:
		return Cell{Value: v, Text: shareddomain.FormatDecimal(v)}
	default:
		return Cell{Value: v, Text: shareddomain.FormatDecimal(v)}
	}
}

// IntCell raccourci pour un entier
func IntCell(n int) Cell {
	return NumberCell(ColumnInteger, float64(n))
}

// MoneyCell raccourci pour un montant en réais
func MoneyCell(v float64) Cell {
	return NumberCell(ColumnCurrency, v)
}

// PercentCell raccourci pour un pourcentage
func PercentCell(v float64) Cell {
	return NumberCell(ColumnPercent, v)
}

// MissingCell ratio indéfini, affiché "-"
func MissingCell() Cell {
	return Cell{Text: shareddomain.EmptyRatio, Missing: true}
}

// VariationCell variation optionnelle: "-" quand la base est nulle ou absente
func VariationCell(v float64, ok bool) Cell {
	if !ok {
		return MissingCell()
	}
	return NumberCell(ColumnVariation, v)
}

// Row ligne de résultat, alignée sur les colonnes de la table
type Row []Cell

// Table résultat tabulaire d'une vue
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable crée une table vide avec ses colonnes
func NewTable(columns ...Column) *Table {
	return &Table{Columns: columns, Rows: make([]Row, 0)}
}

// AddRow ajoute une ligne; le nombre de cellules doit égaler le nombre de colonnes
func (t *Table) AddRow(cells ...Cell) {
	if len(cells) != len(t.Columns) {
		panic(fmt.Sprintf("table row has %d cells, want %d", len(cells), len(t.Columns)))
	}
	t.Rows = append(t.Rows, Row(cells))
}

// Len nombre de lignes
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex position d'une colonne par clé
func (t *Table) ColumnIndex(key string) (int, bool) {
	for i, c := range t.Columns {
		if c.Key == key {
			return i, true
		}
	}
	return -1, false
}

// Values valeurs numériques d'une colonne (nil si la colonne n'existe pas)
func (t *Table) Values(key string) []float64 {
	idx, ok := t.ColumnIndex(key)
	if !ok {
		return nil
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx].Value
	}
	return out
}

// Texts valeurs affichées d'une colonne
func (t *Table) Texts(key string) []string {
	idx, ok := t.ColumnIndex(key)
	if !ok {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx].Text
	}
	return out
}

// Field paire libellé/valeur d'un résumé scalaire
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Cell  Cell   `json:"cell"`
}

// Section bloc d'un rapport: une table, des champs scalaires et/ou des lignes libres
type Section struct {
	Title  string   `json:"title,omitempty"`
	Table  *Table   `json:"table,omitempty"`
	Fields []Field  `json:"fields,omitempty"`
	Lines  []string `json:"lines,omitempty"`
}

// Field retrouve un champ scalaire par clé
func (s Section) Field(key string) (Cell, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f.Cell, true
		}
	}
	return Cell{}, false
}

// Report résultat complet d'une vue, prêt pour l'affichage, l'export ou les graphiques
type Report struct {
	Kind     ViewKind  `json:"kind"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// NewReport rapport vide titré d'après la vue
func NewReport(kind ViewKind) Report {
	return Report{Kind: kind, Title: kind.Title()}
}

// Add ajoute une section
func (r *Report) Add(s Section) {
	r.Sections = append(r.Sections, s)
}

// MainTable première table du rapport (nil si le rapport n'est qu'un résumé)
func (r Report) MainTable() *Table {
	for _, s := range r.Sections {
		if s.Table != nil {
			return s.Table
		}
	}
	return nil
}

// Fields tous les champs scalaires du rapport, dans l'ordre
func (r Report) Fields() []Field {
	var out []Field
	for _, s := range r.Sections {
		out = append(out, s.Fields...)
	}
	return out
}

// Empty vrai quand aucune section ne porte de donnée
func (r Report) Empty() bool {
	for _, s := range r.Sections {
		if s.Table.Len() > 0 || len(s.Fields) > 0 || len(s.Lines) > 0 {
			return false
		}
	}
	return true
}

// Reportable résultat typé convertible en rapport
type Reportable interface {
	Report() Report
}
