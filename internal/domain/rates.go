package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LiveRatesSnapshot holds target-currency keyed rates against Base.
type LiveRatesSnapshot struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	Timestamp *int64             `json:"timestamp,omitempty"`
}

// RateQuote is the units of target currency per one unit of base currency.
type RateQuote struct {
	Rate decimal.Decimal
	AsOf *time.Time
}
