package dto

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/anyulbade/card-fee-simulator/internal/model"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SimulationQuery struct {
	Amount       string `form:"amount"`
	Brand        string `form:"brand"`
	Installments string `form:"installments"`
	Provider     string `form:"provider"`
}

type ComparisonQuery struct {
	Amount string `form:"amount"`
	Brand  string `form:"brand" binding:"required"`
}

type InstallmentsQuery struct {
	Brand string `form:"brand" binding:"required"`
}

// ParseAmount accepts "5000", "5000,50", "5000.50", "5.000", "5.000,00",
// "5,000.00" and an optional "R$" prefix. When both separators appear the last
// one is the decimal mark; a single point followed by exactly three digits
// groups thousands. An empty, unparseable or non-finite amount is reported as
// not selected.
func ParseAmount(s string) model.Selection[float64] {
	normalized, ok := normalizeAmount(s)
	if !ok {
		return model.NotSelected[float64]()
	}
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return model.NotSelected[float64]()
	}
	return model.Selected(v)
}

func normalizeAmount(s string) (string, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return "", false
	}

	decimalMark, groupMark := amountSeparators(s)
	intPart, frac := s, ""
	if decimalMark != 0 {
		i := strings.LastIndexByte(s, decimalMark)
		intPart, frac = s[:i], s[i+1:]
		if frac == "" || strings.ContainsAny(frac, ".,") {
			return "", false
		}
	}

	if groupMark != 0 && strings.IndexByte(intPart, groupMark) >= 0 {
		groups := strings.Split(intPart, string(groupMark))
		lead := strings.TrimLeft(groups[0], "+-")
		if len(lead) == 0 || len(lead) > 3 || lead[0] == '0' {
			return "", false
		}
		for _, g := range groups[1:] {
			if len(g) != 3 {
				return "", false
			}
		}
		intPart = strings.Join(groups, "")
	}
	if strings.ContainsAny(intPart, ".,") {
		return "", false
	}

	if frac != "" {
		return intPart + "." + frac, true
	}
	return intPart, true
}

// amountSeparators returns the decimal mark and the thousands mark of s; zero
// means the mark is absent.
func amountSeparators(s string) (decimalMark, groupMark byte) {
	dots, commas := strings.Count(s, "."), strings.Count(s, ",")
	switch {
	case dots > 0 && commas > 0:
		if strings.LastIndexByte(s, ',') > strings.LastIndexByte(s, '.') {
			return ',', '.'
		}
		return '.', ','
	case commas > 1:
		return 0, ','
	case commas == 1:
		return ',', 0
	case dots > 1:
		return 0, '.'
	case dots == 1 && len(s)-strings.LastIndexByte(s, '.')-1 == 3:
		return 0, '.'
	case dots == 1:
		return '.', 0
	}
	return 0, 0
}

func optional(s string) model.Selection[string] {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.NotSelected[string]()
	}
	return model.Selected(s)
}

// ToRequest validates the query shape; value checks are left to the calculator.
func (q SimulationQuery) ToRequest() (model.SimulationRequest, error) {
	installments, err := model.ParseInstallmentChoice(strings.TrimSpace(q.Installments))
	if err != nil {
		return model.SimulationRequest{}, fmt.Errorf("invalid installments: %w", err)
	}

	provider := optional(q.Provider)
	if p, ok := provider.Get(); ok && strings.EqualFold(p, "all") {
		provider = model.NotSelected[string]()
	}

	return model.SimulationRequest{
		Amount:       ParseAmount(q.Amount),
		Brand:        optional(q.Brand),
		Installments: installments,
		Provider:     provider,
	}, nil
}
