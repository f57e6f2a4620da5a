package application

import (
	"fmt"
	"strings"

	"jnmoveis/internal/analytics/domain"
	shareddomain "jnmoveis/internal/shared/domain"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

const (
	defaultSearchResults = 5
	maxQuoteMatches      = 10
)

// Campaign recommandation composite: top 5 produits (éventuellement d'une catégorie),
// top 3 canaux, profil des clients et suggestions fixes
func (e *Engine) Campaign(category, horizon string) domain.Campaign {
	var keep func(domain.Fact) bool
	if c := fold(category); c != "" {
		keep = func(f domain.Fact) bool { return strings.Contains(fold(f.Product.Category), c) }
	}

	channels := e.SalesByChannel().Rows
	return domain.Campaign{
		Category:    category,
		Horizon:     horizon,
		Products:    e.topProductsWhere(domain.CampaignTopProducts, keep),
		Channels:    topN(channels, domain.CampaignTopChannels),
		Sexes:       e.CustomersBySex(),
		Suggestions: append([]string(nil), domain.CampaignSuggestions...),
	}
}

// SearchProducts produits dont le nom ou la catégorie contient term (casse et accents ignorés)
func (e *Engine) SearchProducts(term string, n int) (domain.ProductMatches, error) {
	needle := fold(term)
	if needle == "" {
		return nil, fmt.Errorf("%w: criterio", domain.ErrMissingParameter)
	}
	if n <= 0 {
		n = defaultSearchResults
	}

	out := make(domain.ProductMatches, 0, n)
	for _, p := range e.dataset.Products {
		if strings.Contains(fold(p.Name), needle) || strings.Contains(fold(p.Category), needle) {
			out = append(out, p)
			if len(out) == n {
				break
			}
		}
	}
	return out, nil
}

// QuoteProduct cote un produit par identifiant exact ou par nom partiel.
// Plusieurs correspondances par nom sont retournées sans cotation pour que l'appelant précise.
func (e *Engine) QuoteProduct(id, name string, quantity int) (domain.Quote, domain.ProductMatches, error) {
	var matches domain.ProductMatches
	switch key := sharedinfra.NormalizeKey(id); {
	case key != "":
		for _, p := range e.dataset.Products {
			if p.ID == key {
				matches = append(matches, p)
				break
			}
		}
	case fold(name) != "":
		needle := fold(name)
		for _, p := range e.dataset.Products {
			if strings.Contains(fold(p.Name), needle) {
				matches = append(matches, p)
			}
		}
	default:
		return domain.Quote{}, nil, fmt.Errorf("%w: nome_produto ou id_produto", domain.ErrMissingParameter)
	}

	switch len(matches) {
	case 0:
		search := name
		if id != "" {
			search = "ID " + id
		}
		return domain.Quote{}, nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, search)
	case 1:
	default:
		return domain.Quote{}, topN(matches, maxQuoteMatches), nil
	}

	product := matches[0]
	qty := shareddomain.QuantityOrDefault(quantity, 1)
	total := qty.Price(shareddomain.MoneyOf(product.UnitPrice))

	sales := 0
	for _, line := range e.dataset.SaleLines {
		if line.ProductID == product.ID {
			sales++
		}
	}
	return domain.Quote{
		Product:    product,
		Quantity:   qty.Value(),
		UnitPrice:  product.UnitPrice,
		Total:      total.Amount(),
		SalesCount: sales,
	}, matches, nil
}
