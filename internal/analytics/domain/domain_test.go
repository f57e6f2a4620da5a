package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() *Dataset {
	return &Dataset{
		Customers: []Customer{{ID: "1", Name: "Ana", Sex: "F"}, {ID: "2", Name: "Bruno", Sex: "M"}},
		Orders: []Order{
			{ID: "10", CustomerID: "1", Total: 100, Year: 2023, Month: 3},
			{ID: "11", CustomerID: "99", Total: 50},
		},
		SaleLines: []SaleLine{
			{ID: "1", OrderID: "10", ProductID: "5", ColorID: "1", Quantity: 2, Subtotal: 60},
			{ID: "2", OrderID: "10", ProductID: "6", ColorID: "7", Quantity: 1, Subtotal: 40},
			{ID: "3", OrderID: "11", ProductID: "5", ColorID: "1", Quantity: 1, Subtotal: 30},
			{ID: "4", OrderID: "404", ProductID: "404", ColorID: "", Quantity: 1, Subtotal: 10},
		},
		Products: []Product{
			{ID: "5", Name: "Cadeira Hidráulica", Category: "Cadeiras"},
			{ID: "5", Name: "Duplicado", Category: "Outro"},
			{ID: "6", Name: "Shampoo", Category: "Cosméticos"},
		},
		Colors: []Color{{ID: "1", Name: "Preto"}},
	}
}

func TestConsolidate_KeepsEverySaleLine(t *testing.T) {
	ds := sampleDataset()

	facts := Consolidate(ds)

	require.Len(t, facts, len(ds.SaleLines))

	assert.Equal(t, "Ana", facts[0].Customer.Name)
	assert.Equal(t, "Cadeira Hidráulica", facts[0].Product.Name, "first product row wins")
	assert.Equal(t, "Preto", facts[0].Color.Name)

	assert.Nil(t, facts[1].Color, "unknown color stays nil")
	assert.Nil(t, facts[2].Customer, "order of unknown customer keeps nil customer")
	assert.Equal(t, "99", facts[2].CustomerID())

	assert.Nil(t, facts[3].Order)
	assert.Nil(t, facts[3].Product)
	assert.Equal(t, "", facts[3].Category())
	assert.Equal(t, "", facts[3].Channel())
}

func TestConsolidate_EmptyDataset(t *testing.T) {
	assert.Empty(t, Consolidate(&Dataset{}))
}

func TestParseViewKind(t *testing.T) {
	for _, kind := range AllViews() {
		parsed, err := ParseViewKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
		assert.NotEmpty(t, kind.Title())
	}

	parsed, err := ParseViewKind(" Top-Products ")
	require.NoError(t, err)
	assert.Equal(t, ViewTopProducts, parsed)

	_, err = ParseViewKind("foo")
	assert.True(t, errors.Is(err, ErrUnknownView))
}

func TestViewKind_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Kind ViewKind `json:"kind"`
	}{ViewPareto})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"pareto"}`, string(data))

	var decoded struct {
		Kind ViewKind `json:"kind"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"seasonality"}`), &decoded))
	assert.Equal(t, ViewSeasonality, decoded.Kind)

	_, err = ViewKind(0).MarshalText()
	assert.Error(t, err)
}

func TestBuildQuery_Defaults(t *testing.T) {
	q, err := BuildQuery(ViewValuableCustomers, Params{})
	require.NoError(t, err)
	assert.Equal(t, ValuableCustomersQuery{TopN: DefaultTopCustomers}, q)

	q, err = BuildQuery(ViewTopProducts, Params{TopN: 3})
	require.NoError(t, err)
	assert.Equal(t, TopProductsQuery{TopN: 3}, q)

	q, err = BuildQuery(ViewTopChairs, Params{})
	require.NoError(t, err)
	assert.Equal(t, TopChairsQuery{TopN: DefaultTopFiltered}, q)

	q, err = BuildQuery(ViewCampaign, Params{Category: "Cadeiras"})
	require.NoError(t, err)
	assert.Equal(t, CampaignQuery{Category: "Cadeiras", Horizon: "trimestre"}, q)

	for _, kind := range AllViews() {
		if kind == ViewMonthComparison {
			continue
		}
		q, err := BuildQuery(kind, Params{})
		require.NoError(t, err, kind.String())
		assert.Equal(t, kind, q.Kind())
	}
}

func TestBuildQuery_MonthComparison(t *testing.T) {
	_, err := BuildQuery(ViewMonthComparison, Params{BaseYear: 2022, CompareYear: 2023})
	assert.True(t, errors.Is(err, ErrMissingParameter))

	_, err = BuildQuery(ViewMonthComparison, Params{Month: 13, CompareYear: 2023})
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = BuildQuery(ViewMonthComparison, Params{Month: 3})
	assert.True(t, errors.Is(err, ErrMissingParameter))

	q, err := BuildQuery(ViewMonthComparison, Params{Month: 3, Year: 2023})
	require.NoError(t, err)
	assert.Equal(t, MonthComparisonQuery{Month: 3, BaseYear: 2022, CompareYear: 2023}, q)
}

func TestBuildQuery_InvalidParameters(t *testing.T) {
	_, err := BuildQuery(ViewTopProducts, Params{TopN: -1})
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = BuildQuery(ViewTotalSales, Params{Month: 4})
	assert.True(t, errors.Is(err, ErrInvalidParameter), "month without year")

	_, err = BuildQuery(ViewKind(99), Params{})
	assert.True(t, errors.Is(err, ErrUnknownView))
}

func TestTable_CellsCarryValueAndText(t *testing.T) {
	table := YearlySales{
		{Year: 2022, Orders: 1, Value: 100, AvgOrder: 100},
		{Year: 2023, Orders: 1, Value: 150, AvgOrder: 150, ValueGrowth: 50, ValueGrowthOK: true},
	}.Table()

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []float64{100, 150}, table.Values("valor_total"))
	assert.Equal(t, []string{"R$ 100,00", "R$ 150,00"}, table.Texts("valor_total"))
	assert.Equal(t, []string{"-", "+50,00%"}, table.Texts("crescimento_valor"))
	assert.Equal(t, []string{"2022", "2023"}, table.Texts("ano"))
	assert.Nil(t, table.Values("unknown"))
}

func TestTable_AddRowPanicsOnWidthMismatch(t *testing.T) {
	table := NewTable(textCol("a", "A"), intCol("b", "B"))
	assert.Panics(t, func() { table.AddRow(TextCell("x")) })
}

func TestReport_SummaryFields(t *testing.T) {
	report := TotalSales{}.Report()

	assert.Nil(t, report.MainTable())
	require.Len(t, report.Sections, 1)
	cell, ok := report.Sections[0].Field("valor_total_vendas")
	require.True(t, ok)
	assert.Equal(t, "R$ 0,00", cell.Text)
	assert.False(t, report.Empty())

	assert.True(t, NewReport(ViewPareto).Empty())
}

func TestCampaign_Report(t *testing.T) {
	report := Campaign{Category: "Cadeiras", Horizon: "semestre", Suggestions: CampaignSuggestions}.Report()

	require.Len(t, report.Sections, 4)
	assert.Contains(t, report.Sections[0].Title, "Cadeiras")
	assert.Equal(t, CampaignSuggestions, report.Sections[3].Lines)
}

func TestQuote_Fields(t *testing.T) {
	q := Quote{Product: Product{ID: "5", Name: "Cadeira"}, Quantity: 1, UnitPrice: 10, Total: 10}
	assert.Len(t, q.Fields(), 4)

	q.Quantity, q.Total, q.SalesCount = 3, 30, 2
	assert.Len(t, q.Fields(), 7)
}
