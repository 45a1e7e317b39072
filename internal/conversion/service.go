package conversion

import (
	"context"
	"fmt"

	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"fxconvert/internal/metrics"

	"github.com/sirupsen/logrus"
)

// Service is what the HTTP layer talks to: it runs the engine and then hands
// the result to the store.
type Service struct {
	engine  *Engine
	rates   adapters.RateClient
	repo    adapters.ConversionRepository
	reasons adapters.ReasonRepository
	cache   adapters.ReasonCache
}

func (s *Service) Convert(ctx context.Context, req domain.ConversionRequest) (domain.StoredConversion, error) {
	conversion, err := s.engine.Convert(ctx, req)
	if err != nil {
		return domain.StoredConversion{}, err
	}

	stored, err := s.repo.Create(ctx, conversion)
	if err != nil {
		return domain.StoredConversion{}, err
	}

	metrics.ConversionsCreatedTotal.Inc()
	logrus.WithFields(logrus.Fields{
		"conversion_id": stored.ID,
		"base":          stored.BaseCurrency,
		"target":        stored.TargetCurrency,
	}).Debug("conversion stored")
	return stored, nil
}

// List returns every stored conversion, newest first.
func (s *Service) List(ctx context.Context) ([]domain.StoredConversion, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) LiveRates(ctx context.Context) (domain.LiveRatesSnapshot, error) {
	return s.rates.GetLiveRates(ctx)
}

// Reasons serves the catalogue from cache and falls back to the store on a miss.
func (s *Service) Reasons(ctx context.Context) ([]domain.Reason, error) {
	if s.cache != nil {
		if reasons, ok := s.cache.All(); ok {
			return reasons, nil
		}
	}

	reasons, err := s.reasons.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reasons: %w", err)
	}
	if s.cache != nil {
		s.cache.SetAll(reasons)
	}
	return reasons, nil
}

// Reason resolves one reason by id, from cache first and the store on a miss.
func (s *Service) Reason(ctx context.Context, id int64) (domain.Reason, error) {
	if s.cache != nil {
		if reason, ok := s.cache.Get(id); ok {
			return reason, nil
		}
	}
	return s.reasons.GetByID(ctx, id)
}

func NewService(
	engine *Engine,
	rates adapters.RateClient,
	repo adapters.ConversionRepository,
	reasons adapters.ReasonRepository,
	cache adapters.ReasonCache,
) *Service {
	return &Service{engine: engine, rates: rates, repo: repo, reasons: reasons, cache: cache}
}
