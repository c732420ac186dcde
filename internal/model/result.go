package model

type UnavailableReason string

const (
	ReasonNone                   UnavailableReason = ""
	ReasonInvalidAmount          UnavailableReason = "invalid_amount"
	ReasonBrandNotSelected       UnavailableReason = "brand_not_selected"
	ReasonInstallmentsNotChosen  UnavailableReason = "installments_not_selected"
	ReasonBrandNotOffered        UnavailableReason = "brand_not_offered"
	ReasonInstallmentsNotOffered UnavailableReason = "installments_not_offered"
	ReasonInvalidRate            UnavailableReason = "invalid_rate"
	ReasonUnknownProvider        UnavailableReason = "unknown_provider"
)

// Quote is the outcome of applying one rate to one sale.
type Quote struct {
	Installments    int     `json:"installments"`
	Total           float64 `json:"total"`
	PerInstallment  float64 `json:"per_installment"`
	NetReceived     float64 `json:"net_received"`
	TransactionCost float64 `json:"transaction_cost"`
	Rate            float64 `json:"rate"`
}

// Result is a Quote when Available, otherwise Reason says why there is none.
type Result struct {
	Quote     Quote
	Available bool
	Reason    UnavailableReason
}

func Available(q Quote) Result { return Result{Quote: q, Available: true} }

func Unavailable(reason UnavailableReason) Result { return Result{Reason: reason} }

type ProviderResult struct {
	Provider string
	Result   Result
}

type Simulation struct {
	Brand        string
	Amount       float64
	Installments Selection[int]
	Results      []ProviderResult
}

type ComparisonCell struct {
	Provider string
	Result   Result
}

type ComparisonRow struct {
	Installments int
	Cells        []ComparisonCell
}

// Comparison lists every installment count any provider offers for a brand,
// with one cell per provider on each row.
type Comparison struct {
	Brand     string
	Amount    float64
	Providers []string
	Rows      []ComparisonRow
}
