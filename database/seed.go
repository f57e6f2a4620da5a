package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

// ErrAlreadySeeded le magasin contient déjà des clients
var ErrAlreadySeeded = errors.New("store already contains customers")

// SeedOptions paramètres de génération des données de démonstration
type SeedOptions struct {
	Years     int
	Customers int
	// Seed graine du générateur; deux appels avec la même graine produisent les mêmes documents
	Seed  uint64
	End   time.Time
	Force bool
}

// SeedStats nombre de documents écrits par collection
type SeedStats struct {
	Customers int
	Products  int
	Colors    int
	Orders    int
	SaleLines int
}

type seedProduct struct {
	name     string
	category string
	supplier string
	price    float64
}

var seedCatalog = []seedProduct{
	{"Cadeira Hidráulica Paris", "Cadeiras", "Ferrante", 1890},
	{"Cadeira Barbeiro Vintage", "Cadeiras", "Ferrante", 3450},
	{"Cadeira Reclinável Milão", "Cadeiras", "Dompel", 2290},
	{"Cadeira Manicure Lisboa", "Cadeiras", "Dompel", 690},
	{"Lavatório Portátil", "Lavatórios", "Ferrante", 980},
	{"Lavatório Louça Italiana", "Lavatórios", "Dompel", 2750},
	{"Lavatório Shiatsu Premium", "Lavatórios", "Kixiki", 5900},
	{"Maca Estética Elétrica", "Macas", "Kixiki", 4100},
	{"Maca Fixa Madeira", "Macas", "Ferrante", 1250},
	{"Espelho Bancada Camarim", "Mobiliário", "Ferrante", 1480},
	{"Carrinho Auxiliar Inox", "Mobiliário", "Dompel", 420},
	{"Recepção Curva Luxo", "Mobiliário", "Kixiki", 3200},
	{"Shampoo Profissional 1L", "Cosméticos", "Belle", 45},
	{"Máscara Hidratação 500g", "Cosméticos", "Belle", 62},
	{"Óleo Finalizador 60ml", "Cosméticos", "Belle", 38},
	{"Kit Progressiva", "Cosméticos", "Vitta", 189},
	{"Coloração Creme", "Coloração", "Vitta", 30},
	{"Pó Descolorante 500g", "Coloração", "Vitta", 79},
	{"Oxidante 900ml", "Coloração", "Vitta", 26},
	{"Secador Profissional 2400W", "Acessórios", "Kixiki", 520},
	{"Prancha Titânio", "Acessórios", "Kixiki", 460},
	{"Tesoura Fio Navalha", "Acessórios", "Belle", 210},
}

var (
	seedColors   = []string{"Preto", "Branco", "Rosa", "Vermelho", "Caramelo", "Cinza", "Azul Marinho", "Off White"}
	seedFemale   = []string{"Ana", "Beatriz", "Carla", "Daniela", "Fernanda", "Gabriela", "Juliana", "Larissa", "Mariana", "Patrícia", "Renata", "Tatiana"}
	seedMale     = []string{"André", "Bruno", "Carlos", "Diego", "Eduardo", "Felipe", "Gustavo", "Henrique", "Lucas", "Marcelo", "Rafael", "Thiago"}
	seedSurnames = []string{"Silva", "Souza", "Lima", "Alves", "Pereira", "Costa", "Rocha", "Dias", "Barbosa", "Araújo", "Cavalcanti", "Melo"}
	seedCities   = []struct{ city, state string }{
		{"Recife", "PE"}, {"Olinda", "PE"}, {"Caruaru", "PE"}, {"João Pessoa", "PB"}, {"Natal", "RN"},
		{"Fortaleza", "CE"}, {"Maceió", "AL"}, {"Salvador", "BA"}, {"São Paulo", "SP"}, {"Teresina", "PI"},
	}
	seedChannels = []string{"Loja Física", "Instagram", "WhatsApp", "Site", "Representante"}
	seedPayments = []string{"Pix", "Cartão de Crédito", "Cartão de Débito", "Boleto"}
	// poids relatifs des mois, pic en novembre et décembre
	seedMonthWeight = [12]float64{0.7, 0.7, 0.9, 0.9, 1.0, 0.9, 0.8, 0.9, 1.0, 1.1, 1.5, 1.7}
)

// SeedStore génère des données de démonstration dans le magasin.
// Les commandes de chaque année sont générées en parallèle puis numérotées dans l'ordre chronologique.
func SeedStore(ctx context.Context, store sharedinfra.DocumentStore, opts SeedOptions, logger *slog.Logger) (SeedStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Years <= 0 || opts.Customers <= 0 {
		return SeedStats{}, fmt.Errorf("seed: years and customers must be positive (got %d, %d)", opts.Years, opts.Customers)
	}
	if opts.End.IsZero() {
		opts.End = time.Now()
	}
	if !opts.Force {
		existing, err := store.FindAll(ctx, CollectionCustomers)
		if err != nil {
			return SeedStats{}, err
		}
		if len(existing) > 0 {
			return SeedStats{}, fmt.Errorf("%w (%d)", ErrAlreadySeeded, len(existing))
		}
	}
	start := time.Now()

	rng := rand.New(rand.NewPCG(opts.Seed, 0))
	customers := seedCustomerDocs(rng, opts.Customers)
	products := seedProductDocs()
	colors := seedColorDocs()

	firstYear := opts.End.Year() - opts.Years + 1
	perYear := make([][]seedOrder, opts.Years)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range opts.Years {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			yearRng := rand.New(rand.NewPCG(opts.Seed, uint64(firstYear+i)))
			perYear[i] = seedYearOrders(yearRng, firstYear+i, opts.Customers, opts.End)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SeedStats{}, err
	}

	var orders, lines []sharedinfra.Document
	orderID, lineID := int64(1), int64(1)
	for _, year := range perYear {
		for _, o := range year {
			doc, items := o.documents(orderID, &lineID)
			orders = append(orders, doc)
			lines = append(lines, items...)
			orderID++
		}
	}

	batches := []struct {
		collection string
		docs       []sharedinfra.Document
	}{
		{CollectionCustomers, customers},
		{CollectionProducts, products},
		{CollectionColors, colors},
		{CollectionOrders, orders},
		{CollectionSales, lines},
	}
	for _, b := range batches {
		if err := store.InsertMany(ctx, b.collection, b.docs); err != nil {
			return SeedStats{}, fmt.Errorf("seed %s: %w", b.collection, err)
		}
		logger.Info("collection seeded", "collection", b.collection, "documents", len(b.docs))
	}

	stats := SeedStats{
		Customers: len(customers),
		Products:  len(products),
		Colors:    len(colors),
		Orders:    len(orders),
		SaleLines: len(lines),
	}
	logger.Info("seed completed", "orders", stats.Orders, "sale_lines", stats.SaleLines, "duration", time.Since(start))
	return stats, nil
}

func seedCustomerDocs(rng *rand.Rand, count int) []sharedinfra.Document {
	docs := make([]sharedinfra.Document, 0, count)
	for i := range count {
		sex, first := "F", seedFemale[rng.IntN(len(seedFemale))]
		if rng.Float64() < 0.3 {
			sex, first = "M", seedMale[rng.IntN(len(seedMale))]
		}
		place := seedCities[rng.IntN(len(seedCities))]
		docs = append(docs, sharedinfra.Document{
			FieldCustomerID:    int64(i + 1),
			FieldCustomerName:  first + " " + seedSurnames[rng.IntN(len(seedSurnames))],
			FieldCustomerSex:   sex,
			FieldCustomerCity:  place.city,
			FieldCustomerState: place.state,
			FieldCustomerPhone: fmt.Sprintf("81 9%04d-%04d", rng.IntN(10000), rng.IntN(10000)),
		})
	}
	return docs
}

func seedProductDocs() []sharedinfra.Document {
	docs := make([]sharedinfra.Document, 0, len(seedCatalog))
	for i, p := range seedCatalog {
		docs = append(docs, sharedinfra.Document{
			FieldProductID:       int64(i + 1),
			FieldProductName:     p.name,
			FieldProductCategory: p.category,
			FieldProductSupplier: p.supplier,
			FieldProductPrice:    p.price,
		})
	}
	return docs
}

func seedColorDocs() []sharedinfra.Document {
	docs := make([]sharedinfra.Document, 0, len(seedColors))
	for i, c := range seedColors {
		docs = append(docs, sharedinfra.Document{FieldColorID: int64(i + 1), FieldColorName: c})
	}
	return docs
}

type seedItem struct {
	product  int
	color    int
	quantity int
	subtotal float64
}

type seedOrder struct {
	customer int
	date     time.Time
	payment  string
	channel  string
	items    []seedItem
}

func (o seedOrder) documents(id int64, nextLine *int64) (sharedinfra.Document, []sharedinfra.Document) {
	var total float64
	lines := make([]sharedinfra.Document, 0, len(o.items))
	for _, it := range o.items {
		total += it.subtotal
		lines = append(lines, sharedinfra.Document{
			FieldSaleID:       *nextLine,
			FieldSaleOrder:    id,
			FieldSaleProduct:  int64(it.product),
			FieldSaleColor:    int64(it.color),
			FieldSaleQuantity: it.quantity,
			FieldSaleSubtotal: it.subtotal,
		})
		*nextLine++
	}
	order := sharedinfra.Document{
		FieldOrderID:       id,
		FieldOrderCustomer: int64(o.customer),
		FieldOrderDate:     o.date.Format(OrderDateLayout),
		FieldOrderTotal:    roundCents(total),
		FieldOrderPayment:  o.payment,
		FieldOrderChannel:  o.channel,
	}
	return order, lines
}

// seedYearOrders commandes d'une année, triées par date; rien après end
func seedYearOrders(rng *rand.Rand, year, customers int, end time.Time) []seedOrder {
	var out []seedOrder
	base := float64(customers) / 6
	for month := time.January; month <= time.December; month++ {
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		if first.After(end) {
			break
		}
		days := first.AddDate(0, 1, -1).Day()
		count := int(math.Round(base * seedMonthWeight[month-1] * (0.85 + 0.3*rng.Float64())))
		for range count {
			date := first.AddDate(0, 0, rng.IntN(days))
			if date.After(end) {
				continue
			}
			out = append(out, seedOrder{
				customer: 1 + rng.IntN(customers),
				date:     date,
				payment:  seedPayments[rng.IntN(len(seedPayments))],
				channel:  seedChannels[rng.IntN(len(seedChannels))],
				items:    seedItems(rng),
			})
		}
	}
	sortOrdersByDate(out)
	return out
}

func seedItems(rng *rand.Rand) []seedItem {
	n := 1 + rng.IntN(4)
	items := make([]seedItem, 0, n)
	for range n {
		idx := rng.IntN(len(seedCatalog))
		p := seedCatalog[idx]
		qty := 1
		if p.price < 200 {
			qty += rng.IntN(6)
		}
		// remise ou majoration jusqu'à 10%
		unit := p.price * (0.9 + 0.2*rng.Float64())
		items = append(items, seedItem{
			product:  idx + 1,
			color:    1 + rng.IntN(len(seedColors)),
			quantity: qty,
			subtotal: roundCents(unit * float64(qty)),
		})
	}
	return items
}

func sortOrdersByDate(orders []seedOrder) {
	slices.SortStableFunc(orders, func(a, b seedOrder) int { return a.date.Compare(b.date) })
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
