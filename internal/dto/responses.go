package dto

import (
	"time"

	"github.com/anyulbade/card-fee-simulator/internal/model"
)

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type QuoteResponse struct {
	Installments    int     `json:"installments"`
	Total           float64 `json:"total"`
	PerInstallment  float64 `json:"per_installment"`
	NetReceived     float64 `json:"net_received"`
	TransactionCost float64 `json:"transaction_cost"`
	Rate            float64 `json:"rate"`

	TotalDisplay           string `json:"total_display"`
	PerInstallmentDisplay  string `json:"per_installment_display"`
	NetReceivedDisplay     string `json:"net_received_display"`
	TransactionCostDisplay string `json:"transaction_cost_display"`
	RateDisplay            string `json:"rate_display"`
}

type ResultResponse struct {
	Provider  string         `json:"provider"`
	Available bool           `json:"available"`
	Reason    string         `json:"reason,omitempty"`
	Quote     *QuoteResponse `json:"quote,omitempty"`
}

type SimulationResponse struct {
	Brand        string           `json:"brand"`
	Amount       float64          `json:"amount"`
	Installments *int             `json:"installments"`
	Mode         string           `json:"mode"`
	Results      []ResultResponse `json:"results"`
}

type ComparisonRowResponse struct {
	Installments int              `json:"installments"`
	Cells        []ResultResponse `json:"cells"`
}

type ComparisonResponse struct {
	Brand     string                  `json:"brand"`
	Amount    float64                 `json:"amount"`
	Mode      string                  `json:"mode"`
	Providers []string                `json:"providers"`
	Rows      []ComparisonRowResponse `json:"rows"`
}

type InstallmentsResponse struct {
	Brand        string `json:"brand"`
	Installments []int  `json:"installments"`
	Default      *int   `json:"default"`
}

type LoadErrorResponse struct {
	Kind     string `json:"kind"`
	Provider string `json:"provider"`
	Brand    string `json:"brand"`
	Locator  string `json:"locator"`
	Message  string `json:"message"`
}

// Presenter turns core results into responses for one currency and mode.
type Presenter struct {
	Currency string
	Mode     model.CalcMode
}

func (p Presenter) Result(provider string, r model.Result) ResultResponse {
	resp := ResultResponse{Provider: provider, Available: r.Available, Reason: string(r.Reason)}
	if !r.Available {
		return resp
	}
	q := r.Quote
	resp.Quote = &QuoteResponse{
		Installments:           q.Installments,
		Total:                  q.Total,
		PerInstallment:         q.PerInstallment,
		NetReceived:            q.NetReceived,
		TransactionCost:        q.TransactionCost,
		Rate:                   q.Rate,
		TotalDisplay:           FormatMoney(q.Total, p.Currency),
		PerInstallmentDisplay:  FormatMoney(q.PerInstallment, p.Currency),
		NetReceivedDisplay:     FormatMoney(q.NetReceived, p.Currency),
		TransactionCostDisplay: FormatMoney(q.TransactionCost, p.Currency),
		RateDisplay:            FormatRate(q.Rate, p.Mode == model.ModeDiscount),
	}
	return resp
}

func (p Presenter) Simulation(sim *model.Simulation) SimulationResponse {
	resp := SimulationResponse{
		Brand:   sim.Brand,
		Amount:  sim.Amount,
		Mode:    string(p.Mode),
		Results: make([]ResultResponse, len(sim.Results)),
	}
	if n, ok := sim.Installments.Get(); ok {
		resp.Installments = &n
	}
	for i, r := range sim.Results {
		resp.Results[i] = p.Result(r.Provider, r.Result)
	}
	return resp
}

func (p Presenter) Comparison(cmp *model.Comparison) ComparisonResponse {
	resp := ComparisonResponse{
		Brand:     cmp.Brand,
		Amount:    cmp.Amount,
		Mode:      string(p.Mode),
		Providers: cmp.Providers,
		Rows:      make([]ComparisonRowResponse, len(cmp.Rows)),
	}
	for i, row := range cmp.Rows {
		cells := make([]ResultResponse, len(row.Cells))
		for j, c := range row.Cells {
			cells[j] = p.Result(c.Provider, c.Result)
		}
		resp.Rows[i] = ComparisonRowResponse{Installments: row.Installments, Cells: cells}
	}
	return resp
}
