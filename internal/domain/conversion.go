package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionRequest is the caller input for a single conversion.
// Amount and ReasonID are pointers so absence can be told apart from zero.
type ConversionRequest struct {
	Amount         *float64
	BaseCurrency   string
	TargetCurrency string
	ReasonID       *int64
}

// Conversion is a computed but not yet persisted conversion.
// ConvertedAmount is fixed at creation time and never recomputed.
type Conversion struct {
	Amount          decimal.Decimal
	BaseCurrency    string
	TargetCurrency  string
	ConvertedAmount decimal.Decimal
	ConversionRate  decimal.Decimal
	ReasonID        *int64
}

type StoredConversion struct {
	Conversion
	ID        int64
	CreatedAt time.Time
	Reason    *Reason
}

type Reason struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}
