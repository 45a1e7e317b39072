package conversion

import (
	"context"

	"fxconvert/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- Testify mocks ---

type MockRateClient struct{ mock.Mock }

func (m *MockRateClient) GetLiveRates(ctx context.Context) (domain.LiveRatesSnapshot, error) {
	args := m.Called(ctx)
	snapshot, _ := args.Get(0).(domain.LiveRatesSnapshot)
	return snapshot, args.Error(1)
}

func (m *MockRateClient) GetConversionRate(ctx context.Context, base string, target string) (domain.RateQuote, error) {
	args := m.Called(ctx, base, target)
	quote, _ := args.Get(0).(domain.RateQuote)
	return quote, args.Error(1)
}

type MockConversionRepository struct{ mock.Mock }

func (m *MockConversionRepository) Create(ctx context.Context, conversion domain.Conversion) (domain.StoredConversion, error) {
	args := m.Called(ctx, conversion)
	stored, _ := args.Get(0).(domain.StoredConversion)
	return stored, args.Error(1)
}

func (m *MockConversionRepository) ListAll(ctx context.Context) ([]domain.StoredConversion, error) {
	args := m.Called(ctx)
	stored, _ := args.Get(0).([]domain.StoredConversion)
	return stored, args.Error(1)
}

type MockReasonRepository struct{ mock.Mock }

func (m *MockReasonRepository) List(ctx context.Context) ([]domain.Reason, error) {
	args := m.Called(ctx)
	reasons, _ := args.Get(0).([]domain.Reason)
	return reasons, args.Error(1)
}

func (m *MockReasonRepository) GetByID(ctx context.Context, id int64) (domain.Reason, error) {
	args := m.Called(ctx, id)
	reason, _ := args.Get(0).(domain.Reason)
	return reason, args.Error(1)
}

type MockReasonCache struct{ mock.Mock }

func (m *MockReasonCache) Get(id int64) (domain.Reason, bool) {
	args := m.Called(id)
	reason, _ := args.Get(0).(domain.Reason)
	return reason, args.Bool(1)
}

func (m *MockReasonCache) All() ([]domain.Reason, bool) {
	args := m.Called()
	reasons, _ := args.Get(0).([]domain.Reason)
	return reasons, args.Bool(1)
}

func (m *MockReasonCache) SetAll(reasons []domain.Reason) {
	m.Called(reasons)
}

func ptr[T any](v T) *T { return &v }
