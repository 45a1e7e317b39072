package conversion

import (
	"context"
	"math"
	"testing"

	"fxconvert/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quoteOf(rate string) domain.RateQuote {
	return domain.RateQuote{Rate: decimal.RequireFromString(rate)}
}

func TestEngine_Convert_Success(t *testing.T) {
	rates := new(MockRateClient)
	engine := NewEngine(rates, Policy{})

	rates.On("GetConversionRate", mock.Anything, "USD", "EUR").Return(quoteOf("0.9215"), nil).Once()

	got, err := engine.Convert(context.Background(), domain.ConversionRequest{
		Amount:         ptr(100.10),
		BaseCurrency:   "USD",
		TargetCurrency: "EUR",
		ReasonID:       ptr(int64(3)),
	})

	require.NoError(t, err)
	require.Equal(t, "USD", got.BaseCurrency)
	require.Equal(t, "EUR", got.TargetCurrency)
	require.True(t, got.Amount.Equal(decimal.RequireFromString("100.1")), got.Amount.String())
	require.True(t, got.ConversionRate.Equal(decimal.RequireFromString("0.9215")))
	require.True(t, got.ConvertedAmount.Equal(decimal.RequireFromString("92.24215")), got.ConvertedAmount.String())
	require.Equal(t, int64(3), *got.ReasonID)
	rates.AssertExpectations(t)
}

func TestEngine_Convert_ConvertedAmountIsExactProduct(t *testing.T) {
	cases := []struct {
		amount float64
		rate   string
	}{
		{amount: 0.1, rate: "0.2"},
		{amount: 1, rate: "1.000001"},
		{amount: 19.99, rate: "151.234567891"},
		{amount: 123456789.12, rate: "0.000012345678"},
		{amount: 0.01, rate: "3"},
	}

	for _, tc := range cases {
		rates := new(MockRateClient)
		engine := NewEngine(rates, Policy{})
		rates.On("GetConversionRate", mock.Anything, "GBP", "JPY").Return(quoteOf(tc.rate), nil).Once()

		got, err := engine.Convert(context.Background(), domain.ConversionRequest{
			Amount:         ptr(tc.amount),
			BaseCurrency:   "GBP",
			TargetCurrency: "JPY",
		})

		require.NoError(t, err)
		require.True(t, got.ConvertedAmount.Equal(got.Amount.Mul(got.ConversionRate)))
		require.True(t, got.Amount.Equal(decimal.NewFromFloat(tc.amount)))
	}
}

func TestEngine_Convert_UppercasesCodes(t *testing.T) {
	rates := new(MockRateClient)
	engine := NewEngine(rates, Policy{})

	rates.On("GetConversionRate", mock.Anything, "USD", "EUR").Return(quoteOf("0.9"), nil).Once()

	got, err := engine.Convert(context.Background(), domain.ConversionRequest{
		Amount:         ptr(10.0),
		BaseCurrency:   "usd",
		TargetCurrency: "eur",
	})

	require.NoError(t, err)
	require.Equal(t, "USD", got.BaseCurrency)
	require.Equal(t, "EUR", got.TargetCurrency)
	rates.AssertExpectations(t)
}

func TestEngine_Convert_ValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		req     domain.ConversionRequest
		policy  Policy
		wantErr *domain.Error
	}{
		{
			name:    "amount missing",
			req:     domain.ConversionRequest{BaseCurrency: "USD", TargetCurrency: "EUR"},
			wantErr: ErrAmountRequired,
		},
		{
			name:    "amount NaN",
			req:     domain.ConversionRequest{Amount: ptr(math.NaN()), BaseCurrency: "USD", TargetCurrency: "EUR"},
			wantErr: ErrAmountNotFinite,
		},
		{
			name:    "amount infinite",
			req:     domain.ConversionRequest{Amount: ptr(math.Inf(1)), BaseCurrency: "USD", TargetCurrency: "EUR"},
			wantErr: ErrAmountNotFinite,
		},
		{
			name:    "base missing",
			req:     domain.ConversionRequest{Amount: ptr(1.0), TargetCurrency: "EUR"},
			wantErr: ErrCodesRequired,
		},
		{
			name:    "target empty",
			req:     domain.ConversionRequest{Amount: ptr(1.0), BaseCurrency: "USD", TargetCurrency: ""},
			wantErr: ErrCodesRequired,
		},
		{
			name:    "target blank is not a code",
			req:     domain.ConversionRequest{Amount: ptr(1.0), BaseCurrency: "USD", TargetCurrency: "   "},
			wantErr: ErrCodeFormat,
		},
		{
			name:    "base with trailing space",
			req:     domain.ConversionRequest{Amount: ptr(1.0), BaseCurrency: "USD ", TargetCurrency: "EUR"},
			wantErr: ErrCodeFormat,
		},
		{
			name:    "base with leading space",
			req:     domain.ConversionRequest{Amount: ptr(1.0), BaseCurrency: " USD", TargetCurrency: "EUR"},
			wantErr: ErrCodeFormat,
		},
		{
			name:    "target padded",
			req:     domain.ConversionRequest{Amount: ptr(1.0), BaseCurrency: "USD", TargetCurrency: " eur "},
			wantErr: ErrCodeFormat,
		},
		{
			name:    "base too long",
			req:     domain.ConversionRequest{Amount: ptr(1.0), BaseCurrency: "USDT", TargetCurrency: "EUR"},
			wantErr: ErrCodeFormat,
		},
		{
			name:    "target not letters",
			req:     domain.ConversionRequest{Amount: ptr(1.0), BaseCurrency: "USD", TargetCurrency: "E1R"},
			wantErr: ErrCodeFormat,
		},
		{
			name:    "format checked before amount sign",
			req:     domain.ConversionRequest{Amount: ptr(-5.0), BaseCurrency: "US", TargetCurrency: "EUR"},
			wantErr: ErrCodeFormat,
		},
		{
			name:    "amount zero",
			req:     domain.ConversionRequest{Amount: ptr(0.0), BaseCurrency: "USD", TargetCurrency: "EUR"},
			wantErr: ErrAmountNotPositive,
		},
		{
			name:    "amount negative",
			req:     domain.ConversionRequest{Amount: ptr(-0.01), BaseCurrency: "USD", TargetCurrency: "EUR"},
			wantErr: ErrAmountNotPositive,
		},
		{
			name:    "same codes",
			req:     domain.ConversionRequest{Amount: ptr(1.0), BaseCurrency: "USD", TargetCurrency: "USD"},
			wantErr: ErrSameCodes,
		},
		{
			name:    "same codes after uppercasing",
			req:     domain.ConversionRequest{Amount: ptr(1.0), BaseCurrency: "usd", TargetCurrency: "USD"},
			wantErr: ErrSameCodes,
		},
		{
			name:    "amount sign checked before same codes",
			req:     domain.ConversionRequest{Amount: ptr(0.0), BaseCurrency: "usd", TargetCurrency: "USD"},
			wantErr: ErrAmountNotPositive,
		},
		{
			name:    "reason required by policy",
			req:     domain.ConversionRequest{Amount: ptr(1.0), BaseCurrency: "USD", TargetCurrency: "EUR"},
			policy:  Policy{ReasonRequired: true},
			wantErr: ErrReasonRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rates := new(MockRateClient)
			engine := NewEngine(rates, tc.policy)

			_, err := engine.Convert(context.Background(), tc.req)

			require.Same(t, tc.wantErr, err)
			require.ErrorIs(t, err, domain.ErrInvalidRequest)
			require.Equal(t, 400, domain.StatusOf(err))
			rates.AssertNotCalled(t, "GetConversionRate", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestEngine_Convert_NonPositiveAmountNeverCallsRateClient(t *testing.T) {
	rates := new(MockRateClient)
	engine := NewEngine(rates, Policy{})

	for _, amount := range []float64{0, -1, -0.0001, -1e9} {
		_, err := engine.Convert(context.Background(), domain.ConversionRequest{
			Amount:         ptr(amount),
			BaseCurrency:   "USD",
			TargetCurrency: "EUR",
		})
		require.ErrorIs(t, err, domain.ErrInvalidRequest)
	}

	rates.AssertNumberOfCalls(t, "GetConversionRate", 0)
}

func TestEngine_Convert_ReasonOptionalByDefault(t *testing.T) {
	rates := new(MockRateClient)
	engine := NewEngine(rates, Policy{})
	rates.On("GetConversionRate", mock.Anything, "USD", "EUR").Return(quoteOf("1.5"), nil).Once()

	got, err := engine.Convert(context.Background(), domain.ConversionRequest{
		Amount:         ptr(2.0),
		BaseCurrency:   "USD",
		TargetCurrency: "EUR",
	})

	require.NoError(t, err)
	require.Nil(t, got.ReasonID)
}

func TestEngine_Convert_PropagatesRateClientErrorUnchanged(t *testing.T) {
	cases := []*domain.Error{
		domain.NewError(domain.KindInvalidCurrencyPair, 0, "invalid"),
		domain.NewError(domain.KindUpstreamRejected, 429, "rate limited"),
		domain.NewError(domain.KindUpstreamUnavailable, 0, "No response from Forex API"),
		domain.NewError(domain.KindRateClientFailure, 0, "Failed to fetch conversion rate"),
	}

	for _, wantErr := range cases {
		rates := new(MockRateClient)
		engine := NewEngine(rates, Policy{ReasonRequired: true})
		rates.On("GetConversionRate", mock.Anything, "USD", "EUR").Return(domain.RateQuote{}, wantErr).Once()

		got, err := engine.Convert(context.Background(), domain.ConversionRequest{
			Amount:         ptr(1.0),
			BaseCurrency:   "USD",
			TargetCurrency: "EUR",
			ReasonID:       ptr(int64(1)),
		})

		require.Same(t, wantErr, err)
		require.Equal(t, domain.Conversion{}, got)
		rates.AssertExpectations(t)
	}
}
