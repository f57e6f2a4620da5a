package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/tmc/langchaingo/tools"

	analyticsapp "jnmoveis/internal/analytics/application"
	analyticsdomain "jnmoveis/internal/analytics/domain"
	"jnmoveis/internal/assistant/domain"
	"jnmoveis/internal/observability"
	shareddomain "jnmoveis/internal/shared/domain"
)

// Analytics accès aux vues et au moteur (EngineProvider de l'assistant)
type Analytics interface {
	Run(ctx context.Context, q analyticsdomain.Query) (analyticsdomain.Report, error)
	Engine(ctx context.Context) (*analyticsapp.Engine, error)
}

type handler func(ctx context.Context, args json.RawMessage) (string, error)

// Tool outil appelable par le modèle; l'entrée est un objet JSON d'arguments.
// Les problèmes d'arguments produisent un texte explicatif, seules les erreurs de chargement remontent.
type Tool struct {
	name        string
	description string
	parameters  jsonschema.Definition
	handle      handler
	metrics     *observability.Metrics
	logger      *slog.Logger
}

var _ tools.Tool = (*Tool)(nil)

func (t *Tool) Name() string        { return t.name }
func (t *Tool) Description() string { return t.description }

// Definition déclaration de fonction pour l'API de chat
func (t *Tool) Definition() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        t.name,
			Description: t.description,
			Parameters:  t.parameters,
		},
	}
}

// Call exécute l'outil avec des arguments JSON (vide équivaut à {})
func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		input = "{}"
	}
	out, err := t.handle(ctx, json.RawMessage(input))
	t.metrics.RecordToolCall(t.name, err)
	if err != nil {
		t.logger.Error("tool failed", "tool", t.name, "error", err)
		return "", err
	}
	t.logger.Debug("tool called", "tool", t.name, "args", input, "output_len", len(out))
	return out, nil
}

// Toolset registre des outils d'analyse
type Toolset struct {
	analytics Analytics
	renderer  analyticsapp.TextRenderer
	tools     []*Tool
}

// NewToolset crée les outils au-dessus du moteur d'analyse
func NewToolset(analytics Analytics, logger *slog.Logger, metrics *observability.Metrics) *Toolset {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Toolset{analytics: analytics, renderer: analyticsapp.PlainRenderer()}
	add := func(name, description string, params jsonschema.Definition, h handler) {
		s.tools = append(s.tools, &Tool{
			name:        name,
			description: description,
			parameters:  params,
			handle:      h,
			metrics:     metrics,
			logger:      logger,
		})
	}

	add("analisar_clientes",
		"Realiza análises sobre clientes da JN Moveis. tipo: "+strings.Join(customerSelectors.names(), ", ")+". top_n limita rankings.",
		object(map[string]jsonschema.Definition{
			"tipo":  enum("Tipo de análise", customerSelectors.names()),
			"top_n": integer("Número de resultados (análises com ranking)"),
		}, "tipo"),
		s.selectorHandler("analisar_clientes", customerSelectors))

	add("analisar_produtos",
		"Realiza análises sobre produtos da JN Moveis. tipo: "+strings.Join(productSelectors.names(), ", ")+".",
		object(map[string]jsonschema.Definition{
			"tipo":  enum("Tipo de análise", productSelectors.names()),
			"top_n": integer("Quantidade de resultados"),
		}, "tipo"),
		s.selectorHandler("analisar_produtos", productSelectors))

	add("analisar_vendas",
		"Realiza análises sobre vendas da JN Moveis. tipo: "+strings.Join(salesSelectors, ", ")+
			". 'total' e 'mensal' aceitam 'ano'; 'canal' aceita 'ano' e 'mes'; 'comparar_meses' exige 'mes' e 'ano' (comparado com 'ano_base', padrão ano anterior).",
		object(map[string]jsonschema.Definition{
			"tipo":     enum("Tipo de análise", salesSelectors),
			"ano":      integer("Ano para filtro (ex.: 2023)"),
			"mes":      integer("Mês para filtro (1-12)"),
			"ano_base": integer("Ano de referência para 'comparar_meses'"),
			"top_n":    integer("Quantidade de resultados (pareto)"),
		}, "tipo"),
		s.sales)

	add("recomendar_campanha",
		"Gera recomendações de campanhas de marketing baseadas em análises de vendas. Use apenas quando pedido.",
		object(map[string]jsonschema.Definition{
			"categoria": {Type: jsonschema.String, Description: "Categoria de produtos (opcional)"},
			"periodo":   enum("Período da campanha", campaignHorizons),
		}),
		s.campaign)

	add("analisar_mix_produtos",
		"Analisa quantos produtos diferentes compõem os pedidos. Útil para combos e cross-sell.",
		object(map[string]jsonschema.Definition{
			"top_n": integer("Quantidade de pedidos listados"),
		}),
		s.productMix)

	add("obter_cotacao_produto",
		"Retorna a cotação (preço) de um produto, por nome parcial ou ID exato, para uma quantidade.",
		object(map[string]jsonschema.Definition{
			"nome_produto": {Type: jsonschema.String, Description: "Nome do produto (busca parcial)"},
			"id_produto":   integer("ID exato do produto"),
			"quantidade":   integer("Quantidade (padrão 1)"),
		}),
		s.quote)

	add("buscar_produto",
		"Busca produtos por nome ou categoria quando o nome exato é desconhecido.",
		object(map[string]jsonschema.Definition{
			"criterio": {Type: jsonschema.String, Description: "Termo de busca"},
			"top_n":    integer("Quantidade de resultados"),
		}, "criterio"),
		s.searchProducts)

	return s
}

// Tools outils sous l'interface langchaingo, dans l'ordre d'enregistrement
func (s *Toolset) Tools() []tools.Tool {
	out := make([]tools.Tool, len(s.tools))
	for i, t := range s.tools {
		out[i] = t
	}
	return out
}

// Lookup outil par nom
func (s *Toolset) Lookup(name string) (tools.Tool, bool) {
	i := slices.IndexFunc(s.tools, func(t *Tool) bool { return t.name == name })
	if i < 0 {
		return nil, false
	}
	return s.tools[i], true
}

// Definitions déclarations de fonctions pour l'API de chat
func (s *Toolset) Definitions() []openai.Tool {
	out := make([]openai.Tool, len(s.tools))
	for i, t := range s.tools {
		out[i] = t.Definition()
	}
	return out
}

// ============================================================================
// Sélecteurs
// ============================================================================

type selector struct {
	name string
	kind analyticsdomain.ViewKind
}

type selectors []selector

func (s selectors) names() []string {
	out := make([]string, len(s))
	for i, sel := range s {
		out[i] = sel.name
	}
	return out
}

func (s selectors) find(name string) (analyticsdomain.ViewKind, bool) {
	for _, sel := range s {
		if sel.name == name {
			return sel.kind, true
		}
	}
	return 0, false
}

var customerSelectors = selectors{
	{"sexo", analyticsdomain.ViewCustomersBySex},
	{"regiao", analyticsdomain.ViewCustomersByRegion},
	{"canal_venda", analyticsdomain.ViewChannelPurchases},
	{"valiosos", analyticsdomain.ViewValuableCustomers},
	{"categoria", analyticsdomain.ViewCategoryPreference},
	{"valor_medio", analyticsdomain.ViewCustomerValueSummary},
}

var productSelectors = selectors{
	{"top_vendidos", analyticsdomain.ViewTopProducts},
	{"segmento", analyticsdomain.ViewSalesBySegment},
	{"cores", analyticsdomain.ViewColorsSold},
	{"cosmeticos", analyticsdomain.ViewTopCosmetics},
	{"cadeiras", analyticsdomain.ViewTopChairs},
	{"rentabilidade", analyticsdomain.ViewProductProfitability},
	{"top3_segmento", analyticsdomain.ViewTop3PerSegment},
}

var salesSelectors = []string{"ano", "mensal", "canal", "pagamento", "total", "sazonalidade", "comparar_meses", "pareto"}

var campaignHorizons = []string{"trimestre", "semestre", "ano"}

// ============================================================================
// Handlers
// ============================================================================

type rankingArgs struct {
	Tipo string  `json:"tipo"`
	TopN flexInt `json:"top_n"`
}

func (s *Toolset) selectorHandler(tool string, sels selectors) handler {
	return func(ctx context.Context, raw json.RawMessage) (string, error) {
		var args rankingArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return domain.InvalidArguments(tool, err), nil
		}
		kind, ok := sels.find(strings.TrimSpace(args.Tipo))
		if !ok {
			return domain.UnknownSelector(args.Tipo, sels.names()), nil
		}
		return s.runView(ctx, kind, analyticsdomain.Params{TopN: int(args.TopN)})
	}
}

type salesArgs struct {
	Tipo    string  `json:"tipo"`
	Ano     flexInt `json:"ano"`
	Mes     flexInt `json:"mes"`
	AnoBase flexInt `json:"ano_base"`
	TopN    flexInt `json:"top_n"`
}

func (s *Toolset) sales(ctx context.Context, raw json.RawMessage) (string, error) {
	var args salesArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return domain.InvalidArguments("analisar_vendas", err), nil
	}
	params := analyticsdomain.Params{
		Year:     int(args.Ano),
		Month:    int(args.Mes),
		BaseYear: int(args.AnoBase),
		TopN:     int(args.TopN),
	}

	var kind analyticsdomain.ViewKind
	switch strings.TrimSpace(args.Tipo) {
	case "ano":
		kind = analyticsdomain.ViewSalesByYear
	case "mensal":
		kind = analyticsdomain.ViewMonthlySales
	case "canal":
		kind = analyticsdomain.ViewSalesByChannel
		if params.Year != 0 {
			kind = analyticsdomain.ViewChannelSalesByMonth
		}
	case "pagamento":
		kind = analyticsdomain.ViewSalesByPayment
	case "total":
		kind = analyticsdomain.ViewTotalSales
	case "sazonalidade":
		kind = analyticsdomain.ViewSeasonality
	case "pareto":
		kind = analyticsdomain.ViewPareto
	case "comparar_meses":
		if params.Month == 0 {
			return "Para comparar meses, forneça o parâmetro 'mes' (1-12)", nil
		}
		if params.Year == 0 {
			return domain.MissingParameter("ano", "Informe o ano a comparar; 'ano_base' padrão é o ano anterior."), nil
		}
		kind = analyticsdomain.ViewMonthComparison
	default:
		return domain.UnknownSelector(args.Tipo, salesSelectors), nil
	}
	return s.runView(ctx, kind, params)
}

type campaignArgs struct {
	Categoria string `json:"categoria"`
	Periodo   string `json:"periodo"`
}

func (s *Toolset) campaign(ctx context.Context, raw json.RawMessage) (string, error) {
	var args campaignArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return domain.InvalidArguments("recomendar_campanha", err), nil
	}
	horizon := strings.TrimSpace(args.Periodo)
	if horizon != "" && !slices.Contains(campaignHorizons, horizon) {
		return domain.UnknownSelector(horizon, campaignHorizons), nil
	}
	return s.runView(ctx, analyticsdomain.ViewCampaign, analyticsdomain.Params{
		Category: strings.TrimSpace(args.Categoria),
		Horizon:  horizon,
	})
}

type topArgs struct {
	TopN flexInt `json:"top_n"`
}

func (s *Toolset) productMix(ctx context.Context, raw json.RawMessage) (string, error) {
	var args topArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return domain.InvalidArguments("analisar_mix_produtos", err), nil
	}
	n := int(args.TopN)
	if n == 0 {
		n = analyticsdomain.DefaultTopProducts
	}
	return s.runView(ctx, analyticsdomain.ViewProductMix, analyticsdomain.Params{TopN: n})
}

type quoteArgs struct {
	Nome       string     `json:"nome_produto"`
	ID         flexString `json:"id_produto"`
	Quantidade flexInt    `json:"quantidade"`
}

func (s *Toolset) quote(ctx context.Context, raw json.RawMessage) (string, error) {
	var args quoteArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return domain.InvalidArguments("obter_cotacao_produto", err), nil
	}
	engine, err := s.analytics.Engine(ctx)
	if err != nil {
		return "", err
	}

	quote, matches, err := engine.QuoteProduct(string(args.ID), args.Nome, int(args.Quantidade))
	switch {
	case errors.Is(err, analyticsdomain.ErrMissingParameter):
		return "Erro: Forneça o nome_produto ou id_produto para buscar a cotação.", nil
	case errors.Is(err, analyticsdomain.ErrProductNotFound):
		search := args.Nome
		if args.ID != "" {
			search = "ID " + string(args.ID)
		}
		return domain.ProductNotFound(search), nil
	case err != nil:
		return "", err
	}

	var b strings.Builder
	if len(matches) > 1 {
		fmt.Fprintf(&b, "Encontrados %d produtos correspondentes:\n\n", len(matches))
		for _, p := range matches {
			fmt.Fprintf(&b, "• ID %s: %s - %s\n", p.ID, p.Name, shareddomain.FormatCurrency(p.UnitPrice))
		}
		b.WriteString("\nEspecifique melhor o produto ou use o ID para cotação exata.")
		return b.String(), nil
	}

	b.WriteString("=== COTAÇÃO ===\n\n")
	for _, f := range quote.Fields() {
		b.WriteString(f.Label + ": " + f.Cell.Text + "\n")
	}
	return b.String(), nil
}

type searchArgs struct {
	Criterio string  `json:"criterio"`
	TopN     flexInt `json:"top_n"`
}

func (s *Toolset) searchProducts(ctx context.Context, raw json.RawMessage) (string, error) {
	var args searchArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return domain.InvalidArguments("buscar_produto", err), nil
	}
	engine, err := s.analytics.Engine(ctx)
	if err != nil {
		return "", err
	}

	found, err := engine.SearchProducts(args.Criterio, int(args.TopN))
	if errors.Is(err, analyticsdomain.ErrMissingParameter) {
		return domain.MissingParameter("criterio", "Informe parte do nome ou a categoria do produto."), nil
	}
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return domain.NoProductsFound(args.Criterio), nil
	}
	return "Produtos encontrados para '" + args.Criterio + "':\n\n" + s.renderer.Table(found.Table()), nil
}

// runView construit et exécute une vue; les paramètres invalides deviennent un texte explicatif
func (s *Toolset) runView(ctx context.Context, kind analyticsdomain.ViewKind, params analyticsdomain.Params) (string, error) {
	q, err := analyticsdomain.BuildQuery(kind, params)
	if err != nil {
		return parameterProblem(err)
	}
	report, err := s.analytics.Run(ctx, q)
	if err != nil {
		if msg, err := parameterProblem(err); err == nil {
			return msg, nil
		}
		return "", err
	}
	return s.renderer.Render(report), nil
}

func parameterProblem(err error) (string, error) {
	switch {
	case errors.Is(err, analyticsdomain.ErrMissingParameter):
		return domain.MissingParameter(strings.TrimPrefix(err.Error(), analyticsdomain.ErrMissingParameter.Error()+": "), ""), nil
	case errors.Is(err, analyticsdomain.ErrInvalidParameter):
		return domain.InvalidParameter(err), nil
	default:
		return "", err
	}
}

// ============================================================================
// Schéma et arguments tolérants
// ============================================================================

func object(props map[string]jsonschema.Definition, required ...string) jsonschema.Definition {
	return jsonschema.Definition{Type: jsonschema.Object, Properties: props, Required: required}
}

func integer(description string) jsonschema.Definition {
	return jsonschema.Definition{Type: jsonschema.Integer, Description: description}
}

func enum(description string, values []string) jsonschema.Definition {
	return jsonschema.Definition{Type: jsonschema.String, Description: description, Enum: values}
}

// flexInt entier accepté en nombre, en chaîne ou null; une fraction ou un dépassement est refusé
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("número esperado, recebido %s", b)
	}
	if math.Trunc(f) != f {
		return fmt.Errorf("número inteiro esperado, recebido %s", b)
	}
	if math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("número fora do intervalo permitido: %s", b)
	}
	*n = flexInt(f)
	return nil
}

// flexString identifiant accepté en nombre ou en chaîne
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		*s = flexString(strings.TrimSpace(text))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("identificador esperado, recebido %s", b)
	}
	*s = flexString(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}
