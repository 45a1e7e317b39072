package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesByKind(t *testing.T) {
	err := NewError(KindInvalidCurrencyPair, 0, "invalid")

	require.ErrorIs(t, err, ErrInvalidCurrencyPair)
	require.NotErrorIs(t, err, ErrUpstreamRejected)

	wrapped := fmt.Errorf("while converting: %w", err)
	require.ErrorIs(t, wrapped, ErrInvalidCurrencyPair)
	require.Equal(t, KindInvalidCurrencyPair, KindOf(wrapped))
}

func TestError_UnwrapKeepsCauseOutOfMessage(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewError(KindUpstreamUnavailable, 0, "No response from Forex API").WithCause(cause)

	require.ErrorIs(t, err, cause)
	require.Equal(t, "No response from Forex API", err.Error())
	require.NotContains(t, err.Error(), "connection refused")
}

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid request", err: InvalidRequest("bad"), want: http.StatusBadRequest},
		{name: "invalid pair", err: NewError(KindInvalidCurrencyPair, 0, "x"), want: http.StatusBadRequest},
		{name: "rejected default", err: NewError(KindUpstreamRejected, 0, "x"), want: http.StatusBadGateway},
		{name: "rejected echoed", err: NewError(KindUpstreamRejected, http.StatusTooManyRequests, "x"), want: http.StatusTooManyRequests},
		{name: "unavailable", err: NewError(KindUpstreamUnavailable, 0, "x"), want: http.StatusServiceUnavailable},
		{name: "reason not found", err: ReasonNotFound("x"), want: http.StatusNotFound},
		{name: "client failure", err: NewError(KindRateClientFailure, 0, "x"), want: http.StatusInternalServerError},
		{name: "foreign", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, StatusOf(tc.err))
		})
	}
}

func TestKindOf_Foreign(t *testing.T) {
	require.Equal(t, KindInternal, KindOf(errors.New("boom")))
	require.Equal(t, "internal", KindOf(nil).String())
}

func TestError_BuildersLeaveReceiverUntouched(t *testing.T) {
	base := InvalidRequest("Base and target currencies must be different")

	detailed := base.WithDetails(map[string]string{"field": "targetCurrency"})
	caused := base.WithCause(errors.New("boom"))

	require.NotSame(t, base, detailed)
	require.NotSame(t, base, caused)
	require.Nil(t, base.Details)
	require.Nil(t, errors.Unwrap(base))
	require.Equal(t, map[string]string{"field": "targetCurrency"}, detailed.Details)
	require.EqualError(t, errors.Unwrap(caused), "boom")
	require.Nil(t, caused.Details)
	require.ErrorIs(t, detailed, ErrInvalidRequest)
}

func TestError_SentinelsSurviveDecoration(t *testing.T) {
	_ = ErrReasonNotFound.WithDetails("id 9").WithCause(errors.New("no rows"))

	require.Nil(t, ErrReasonNotFound.Details)
	require.Nil(t, errors.Unwrap(ErrReasonNotFound))
}
