package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"jnmoveis/internal/analytics/domain"
	shareddomain "jnmoveis/internal/shared/domain"
)

func TestRenderText_Table(t *testing.T) {
	e := fixtureEngine(t)

	out := RenderText(e.SalesByChannel().Report())

	assert.True(t, strings.HasPrefix(out, "=== VENDAS POR CANAL ==="))
	assert.Contains(t, out, "Loja Física")
	assert.Contains(t, out, "R$ 4.235,00")
	assert.Contains(t, out, "|")
}

func TestRenderText_FieldsAndLines(t *testing.T) {
	e := fixtureEngine(t)

	out := RenderText(e.Campaign("", "trimestre").Report())

	assert.Contains(t, out, "Sugestões (trimestre):")
	for _, s := range domain.CampaignSuggestions {
		assert.Contains(t, out, s)
	}

	summary := RenderText(e.TotalSales(shareddomain.AllTime()).Report())
	assert.Contains(t, summary, ": R$ 5.155,00")
}

func TestRenderText_Empty(t *testing.T) {
	e := NewEngineFromDataset(nil)

	out := RenderText(e.TopProducts(10).Report())

	assert.Contains(t, out, "=== PRODUTOS MAIS VENDIDOS ===")
	assert.Contains(t, out, emptyResult)
}

func TestTextRenderer_EmptyTable(t *testing.T) {
	assert.Equal(t, emptyResult, PlainRenderer().Table(nil))
}

func TestTerminalRenderer(t *testing.T) {
	e := fixtureEngine(t)

	out := TerminalRenderer().Render(e.SalesByYear().Report())

	assert.Contains(t, out, "VENDAS POR ANO")
	assert.Contains(t, out, "2023")
	assert.Contains(t, out, "R$ 3.080,00")
}
