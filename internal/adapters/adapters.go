package adapters

import (
	"context"
	"fxconvert/internal/domain"
)

type RateClient interface {
	GetLiveRates(ctx context.Context) (domain.LiveRatesSnapshot, error)
	GetConversionRate(ctx context.Context, base string, target string) (domain.RateQuote, error)
}

type ConversionRepository interface {
	Create(ctx context.Context, conversion domain.Conversion) (domain.StoredConversion, error)
	ListAll(ctx context.Context) ([]domain.StoredConversion, error)
}

type ReasonRepository interface {
	List(ctx context.Context) ([]domain.Reason, error)
	GetByID(ctx context.Context, id int64) (domain.Reason, error)
}

type ReasonCache interface {
	Get(id int64) (domain.Reason, bool)
	All() ([]domain.Reason, bool)
	SetAll(reasons []domain.Reason)
}
