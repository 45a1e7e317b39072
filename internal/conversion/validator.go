package conversion

import (
	"math"
	"strings"

	"fxconvert/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrAmountRequired    = domain.InvalidRequest("Missing required field: amount")
	ErrAmountNotFinite   = domain.InvalidRequest("Amount must be a finite number")
	ErrCodesRequired     = domain.InvalidRequest("Missing required fields: baseCurrency, targetCurrency")
	ErrCodeFormat        = domain.InvalidRequest("Currency codes must be 3 letters (e.g., USD, EUR)")
	ErrAmountNotPositive = domain.InvalidRequest("Amount must be greater than zero")
	ErrSameCodes         = domain.InvalidRequest("Base and target currencies must be different")
	ErrReasonRequired    = domain.InvalidRequest("reasonId is required")
)

// Policy holds the request rules that depend on how the store is set up.
type Policy struct {
	ReasonRequired bool
}

type validRequest struct {
	amount decimal.Decimal
	base   string
	target string
}

// validate applies the checks in order and returns the first failure.
// Codes are compared only after they are uppercased.
func (p Policy) validate(req domain.ConversionRequest) (validRequest, error) {
	if req.Amount == nil {
		return validRequest{}, ErrAmountRequired
	}
	if math.IsNaN(*req.Amount) || math.IsInf(*req.Amount, 0) {
		return validRequest{}, ErrAmountNotFinite
	}

	base, target := req.BaseCurrency, req.TargetCurrency
	if base == "" || target == "" {
		return validRequest{}, ErrCodesRequired
	}
	if !isCodeFormat(base) || !isCodeFormat(target) {
		return validRequest{}, ErrCodeFormat
	}

	amount := decimal.NewFromFloat(*req.Amount)
	if !amount.IsPositive() {
		return validRequest{}, ErrAmountNotPositive
	}

	base = strings.ToUpper(base)
	target = strings.ToUpper(target)
	if base == target {
		return validRequest{}, ErrSameCodes
	}

	if p.ReasonRequired && req.ReasonID == nil {
		return validRequest{}, ErrReasonRequired
	}

	return validRequest{amount: amount, base: base, target: target}, nil
}

func isCodeFormat(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}
