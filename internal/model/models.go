package model

import (
	"fmt"
	"sort"
)

// CalcMode selects how a rate is applied to the sale amount. It is fixed per
// deployment and shared by every table of a catalog.
type CalcMode string

const (
	// ModeSurcharge treats the rate as a percentage added on top of the amount (3.5 = 3.5%).
	ModeSurcharge CalcMode = "surcharge"
	// ModeDiscount treats the rate as a fraction the amount is grossed up by (0.035 = 3.5%).
	ModeDiscount CalcMode = "discount"
)

func ParseCalcMode(s string) (CalcMode, error) {
	switch CalcMode(s) {
	case ModeSurcharge, ModeDiscount:
		return CalcMode(s), nil
	case "":
		return ModeSurcharge, nil
	}
	return "", fmt.Errorf("unknown calculation mode %q", s)
}

type RateSource struct {
	Provider string `json:"provider"`
	Brand    string `json:"brand"`
	Locator  string `json:"locator"`
}

func (s RateSource) String() string {
	return fmt.Sprintf("%s/%s (%s)", s.Provider, s.Brand, s.Locator)
}

// RateTable maps an installment count to the rate charged for it.
type RateTable map[int]float64

// Installments returns the table keys in ascending order.
func (t RateTable) Installments() []int {
	out := make([]int, 0, len(t))
	for n := range t {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

func (t RateTable) clone() RateTable {
	out := make(RateTable, len(t))
	for n, r := range t {
		out[n] = r
	}
	return out
}

// RateCatalog holds every provider's rate tables. It is immutable once built
// and safe to share between goroutines.
type RateCatalog struct {
	mode      CalcMode
	providers []string
	tables    map[string]map[string]RateTable
}

// NewRateCatalog copies tables into a new catalog. Providers keep the order
// given; providers present in tables but missing from the order are appended
// alphabetically.
func NewRateCatalog(mode CalcMode, providers []string, tables map[string]map[string]RateTable) *RateCatalog {
	c := &RateCatalog{
		mode:   mode,
		tables: make(map[string]map[string]RateTable, len(tables)),
	}

	seen := make(map[string]bool, len(providers))
	for _, p := range providers {
		if seen[p] {
			continue
		}
		seen[p] = true
		c.providers = append(c.providers, p)
	}
	var extra []string
	for p := range tables {
		if !seen[p] {
			extra = append(extra, p)
		}
	}
	sort.Strings(extra)
	c.providers = append(c.providers, extra...)

	for _, p := range c.providers {
		brands := make(map[string]RateTable, len(tables[p]))
		for b, t := range tables[p] {
			brands[b] = t.clone()
		}
		c.tables[p] = brands
	}
	return c
}

func (c *RateCatalog) Mode() CalcMode { return c.mode }

// Providers returns provider names in display order.
func (c *RateCatalog) Providers() []string {
	return append([]string(nil), c.providers...)
}

func (c *RateCatalog) HasProvider(provider string) bool {
	_, ok := c.tables[provider]
	return ok
}

// Brands returns a copy of one provider's brand tables, or nil if the provider
// is unknown.
func (c *RateCatalog) Brands(provider string) map[string]RateTable {
	brands, ok := c.tables[provider]
	if !ok {
		return nil
	}
	out := make(map[string]RateTable, len(brands))
	for b, t := range brands {
		out[b] = t.clone()
	}
	return out
}

// Table returns a copy of the rate table for one provider and brand.
func (c *RateCatalog) Table(provider, brand string) (RateTable, bool) {
	t, ok := c.tables[provider][brand]
	if !ok {
		return nil, false
	}
	return t.clone(), true
}
