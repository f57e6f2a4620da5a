package application

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"jnmoveis/internal/analytics/domain"
)

// emptyResult texte rendu pour un résultat sans ligne
const emptyResult = "Nenhum dado encontrado."

// TextRenderer rend les rapports en texte: tables alignées et lignes "clé: valeur"
type TextRenderer struct {
	Border lipgloss.Border
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
}

// PlainRenderer rendu sans couleur, bordure markdown (outils de l'assistant, exports texte)
func PlainRenderer() TextRenderer {
	return TextRenderer{
		Border: lipgloss.MarkdownBorder(),
		Title:  lipgloss.NewStyle(),
		Header: lipgloss.NewStyle().Padding(0, 1),
		Cell:   lipgloss.NewStyle().Padding(0, 1),
	}
}

// Render rend un rapport complet
func (r TextRenderer) Render(report domain.Report) string {
	var b strings.Builder
	b.WriteString(r.Title.Render("=== " + strings.ToUpper(report.Title) + " ==="))
	b.WriteString("\n")
	if report.Empty() {
		b.WriteString("\n" + emptyResult + "\n")
		return b.String()
	}

	for _, s := range report.Sections {
		b.WriteString("\n")
		if s.Title != "" {
			b.WriteString(r.Title.Render(s.Title + ":"))
			b.WriteString("\n")
		}
		for _, f := range s.Fields {
			b.WriteString(f.Label + ": " + f.Cell.Text + "\n")
		}
		if s.Table != nil {
			b.WriteString(r.Table(s.Table))
			b.WriteString("\n")
		}
		for _, line := range s.Lines {
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Table rend une table; les colonnes numériques sont alignées à droite
func (r TextRenderer) Table(t *domain.Table) string {
	if t.Len() == 0 {
		return emptyResult
	}

	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Label
	}
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = c.Text
		}
		rows[i] = cells
	}

	tbl := table.New().
		Border(r.Border).
		BorderTop(false).
		BorderBottom(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.Header
			}
			if col < len(t.Columns) && t.Columns[col].Kind.Numeric() {
				return r.Cell.Align(lipgloss.Right)
			}
			return r.Cell
		})
	return tbl.String()
}

// RenderText rendu texte brut d'un rapport
func RenderText(report domain.Report) string {
	return PlainRenderer().Render(report)
}

// TerminalRenderer rendu coloré pour la ligne de commande
func TerminalRenderer() TextRenderer {
	accent := lipgloss.Color("#C2185B")
	return TextRenderer{
		Border: lipgloss.RoundedBorder(),
		Title:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Header: lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(accent),
		Cell:   lipgloss.NewStyle().Padding(0, 1),
	}
}
