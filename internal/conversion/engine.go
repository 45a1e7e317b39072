package conversion

import (
	"context"

	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
)

// Engine validates a conversion request, asks the rate client for a unit rate
// and computes the record to persist. It never touches the store.
type Engine struct {
	rates  adapters.RateClient
	policy Policy
}

func (e *Engine) Convert(ctx context.Context, req domain.ConversionRequest) (domain.Conversion, error) {
	valid, err := e.policy.validate(req)
	if err != nil {
		return domain.Conversion{}, err
	}

	// rate client errors already carry their kind and go out untouched
	quote, err := e.rates.GetConversionRate(ctx, valid.base, valid.target)
	if err != nil {
		return domain.Conversion{}, err
	}

	return domain.Conversion{
		Amount:          valid.amount,
		BaseCurrency:    valid.base,
		TargetCurrency:  valid.target,
		ConvertedAmount: valid.amount.Mul(quote.Rate),
		ConversionRate:  quote.Rate,
		ReasonID:        req.ReasonID,
	}, nil
}

func NewEngine(rates adapters.RateClient, policy Policy) *Engine {
	return &Engine{rates: rates, policy: policy}
}
