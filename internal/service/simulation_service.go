package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/card-fee-simulator/internal/model"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Calculate prices one sale against one provider's brand tables. Any input
// that cannot be priced gives an unavailable result instead of an error.
func Calculate(mode model.CalcMode, amount model.Selection[float64], brand model.Selection[string], installments model.Selection[int], tables map[string]model.RateTable) model.Result {
	amt, ok := amount.Get()
	if !ok || math.IsNaN(amt) || math.IsInf(amt, 0) || amt <= 0 {
		return model.Unavailable(model.ReasonInvalidAmount)
	}
	b, ok := brand.Get()
	if !ok {
		return model.Unavailable(model.ReasonBrandNotSelected)
	}
	n, ok := installments.Get()
	if !ok {
		return model.Unavailable(model.ReasonInstallmentsNotChosen)
	}
	table, ok := tables[b]
	if !ok || len(table) == 0 {
		return model.Unavailable(model.ReasonBrandNotOffered)
	}
	rate, ok := table[n]
	if !ok || n <= 0 {
		return model.Unavailable(model.ReasonInstallmentsNotOffered)
	}

	amountDec := decimal.NewFromFloat(amt)
	rateDec := decimal.NewFromFloat(rate)

	var total decimal.Decimal
	switch mode {
	case model.ModeDiscount:
		divisor := one.Sub(rateDec)
		if !divisor.IsPositive() {
			return model.Unavailable(model.ReasonInvalidRate)
		}
		total = amountDec.Div(divisor)
	default:
		total = amountDec.Mul(one.Add(rateDec.Div(hundred)))
	}

	totalF := total.InexactFloat64()
	if math.IsInf(totalF, 0) {
		return model.Unavailable(model.ReasonInvalidAmount)
	}

	return model.Available(model.Quote{
		Installments:    n,
		Total:           totalF,
		PerInstallment:  total.Div(decimal.NewFromInt(int64(n))).InexactFloat64(),
		NetReceived:     amt,
		TransactionCost: total.Sub(amountDec).InexactFloat64(),
		Rate:            rate,
	})
}

// Brands lists every brand offered by at least one provider, sorted.
func Brands(catalog *model.RateCatalog) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range catalog.Providers() {
		for b := range catalog.Brands(p) {
			if !seen[b] {
				seen[b] = true
				out = append(out, b)
			}
		}
	}
	sort.Strings(out)
	return out
}

// AvailableInstallments is the ascending union of installment counts any
// provider offers for brand.
func AvailableInstallments(catalog *model.RateCatalog, brand string) []int {
	seen := make(map[int]bool)
	var out []int
	for _, p := range catalog.Providers() {
		table, ok := catalog.Table(p, brand)
		if !ok {
			continue
		}
		for n := range table {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Ints(out)
	return out
}

// DefaultInstallment prefers a single installment, then the smallest count.
func DefaultInstallment(catalog *model.RateCatalog, brand string) model.Selection[int] {
	counts := AvailableInstallments(catalog, brand)
	if len(counts) == 0 {
		return model.NotSelected[int]()
	}
	for _, n := range counts {
		if n == 1 {
			return model.Selected(1)
		}
	}
	return model.Selected(counts[0])
}

// BuildComparison prices every available installment count for every
// provider. Providers lacking a count get an unavailable cell on that row.
func BuildComparison(catalog *model.RateCatalog, amount float64, brand string) model.Comparison {
	providers := catalog.Providers()
	cmp := model.Comparison{
		Brand:     brand,
		Amount:    amount,
		Providers: providers,
	}

	tables := make([]map[string]model.RateTable, len(providers))
	for i, p := range providers {
		tables[i] = catalog.Brands(p)
	}

	for _, n := range AvailableInstallments(catalog, brand) {
		row := model.ComparisonRow{Installments: n, Cells: make([]model.ComparisonCell, len(providers))}
		for i, p := range providers {
			row.Cells[i] = model.ComparisonCell{
				Provider: p,
				Result:   Calculate(catalog.Mode(), model.Selected(amount), model.Selected(brand), model.Selected(n), tables[i]),
			}
		}
		cmp.Rows = append(cmp.Rows, row)
	}
	return cmp
}

type CatalogProvider interface {
	Catalog(ctx context.Context) (*model.RateCatalog, error)
}

type SimulationService struct {
	catalogs CatalogProvider
	cache    *cache.Cache
}

// NewSimulationService caches comparisons for cacheTTL; zero or less disables
// the cache.
func NewSimulationService(catalogs CatalogProvider, cacheTTL time.Duration) *SimulationService {
	s := &SimulationService{catalogs: catalogs}
	if cacheTTL > 0 {
		s.cache = cache.New(cacheTTL, 2*cacheTTL)
	}
	return s
}

func (s *SimulationService) Catalog(ctx context.Context) (*model.RateCatalog, error) {
	return s.catalogs.Catalog(ctx)
}

// Simulate prices the request for each selected provider. An unselected
// installment count falls back to DefaultInstallment.
func (s *SimulationService) Simulate(ctx context.Context, req model.SimulationRequest) (*model.Simulation, error) {
	catalog, err := s.catalogs.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	brand, _ := req.Brand.Get()
	amount, _ := req.Amount.Get()
	installments := req.Installments.Count()
	if !installments.IsSelected() && !req.Installments.IsAll() && req.Brand.IsSelected() {
		installments = DefaultInstallment(catalog, brand)
	}

	sim := &model.Simulation{
		Brand:        brand,
		Amount:       amount,
		Installments: installments,
	}

	providers := catalog.Providers()
	if p, ok := req.Provider.Get(); ok {
		if !catalog.HasProvider(p) {
			sim.Results = []model.ProviderResult{{Provider: p, Result: model.Unavailable(model.ReasonUnknownProvider)}}
			return sim, nil
		}
		providers = []string{p}
	}

	for _, p := range providers {
		sim.Results = append(sim.Results, model.ProviderResult{
			Provider: p,
			Result:   Calculate(catalog.Mode(), req.Amount, req.Brand, installments, catalog.Brands(p)),
		})
	}
	return sim, nil
}

// Compare returns the all-installments view, cached per brand and amount
// when the cache is enabled.
func (s *SimulationService) Compare(ctx context.Context, amount float64, brand string) (*model.Comparison, error) {
	catalog, err := s.catalogs.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache == nil {
		cmp := BuildComparison(catalog, amount, brand)
		return &cmp, nil
	}

	key := fmt.Sprintf("cmp-%s-%s", brand, strconv.FormatFloat(amount, 'f', -1, 64))
	if cached, found := s.cache.Get(key); found {
		return cached.(*model.Comparison), nil
	}

	cmp := BuildComparison(catalog, amount, brand)
	s.cache.Set(key, &cmp, cache.DefaultExpiration)
	return &cmp, nil
}
