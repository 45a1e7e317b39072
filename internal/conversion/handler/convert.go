package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"fxconvert/internal/conversion"
	"fxconvert/internal/domain"
)

const maxConvertBodyBytes = 1 << 10

type ConvertRequest struct {
	Amount         *float64 `json:"amount" example:"100.5"`
	BaseCurrency   string   `json:"baseCurrency" example:"USD"`
	TargetCurrency string   `json:"targetCurrency" example:"EUR"`
	ReasonID       *int64   `json:"reasonId,omitempty" example:"1"`
}

type ConversionResponse struct {
	ID              int64          `json:"id" example:"42"`
	Amount          json.Number    `json:"amount" swaggertype:"number" example:"100.5"`
	BaseCurrency    string         `json:"baseCurrency" example:"USD"`
	TargetCurrency  string         `json:"targetCurrency" example:"EUR"`
	ConvertedAmount json.Number    `json:"convertedAmount" swaggertype:"number" example:"92.61075"`
	ConversionRate  json.Number    `json:"conversionRate" swaggertype:"number" example:"0.9215"`
	CreatedAt       time.Time      `json:"createdAt"`
	Reason          *domain.Reason `json:"reason,omitempty"`
}

func toConversionResponse(sc domain.StoredConversion) ConversionResponse {
	return ConversionResponse{
		ID:              sc.ID,
		Amount:          json.Number(sc.Amount.String()),
		BaseCurrency:    sc.BaseCurrency,
		TargetCurrency:  sc.TargetCurrency,
		ConvertedAmount: json.Number(sc.ConvertedAmount.String()),
		ConversionRate:  json.Number(sc.ConversionRate.String()),
		CreatedAt:       sc.CreatedAt,
		Reason:          sc.Reason,
	}
}

// Convert godoc
// @Summary      Convert an amount between two currencies
// @Description  Fetches the live rate for the pair, computes the converted amount and stores the conversion.
// @Tags         conversions
// @Accept       json
// @Produce      json
// @Param        request  body      ConvertRequest  true  "Conversion request"
// @Success      201      {object}  dataResponse{data=ConversionResponse}
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      500      {object}  errorResponse
// @Failure      502      {object}  errorResponse
// @Failure      503      {object}  errorResponse
// @Router       /api/convert [post]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxConvertBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req ConvertRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, "Convert", decodeError(err))
		return
	}

	stored, err := h.service.Convert(r.Context(), domain.ConversionRequest{
		Amount:         req.Amount,
		BaseCurrency:   req.BaseCurrency,
		TargetCurrency: req.TargetCurrency,
		ReasonID:       req.ReasonID,
	})
	if err != nil {
		writeError(w, r, "Convert", err)
		return
	}

	writeData(w, http.StatusCreated, toConversionResponse(stored))
}

func decodeError(err error) error {
	var (
		tooLarge  *http.MaxBytesError
		typeError *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &tooLarge):
		return domain.NewError(domain.KindInvalidRequest, http.StatusRequestEntityTooLarge, "Request body too large").WithCause(err)
	case errors.As(err, &typeError):
		switch typeError.Field {
		case "amount":
			if strings.HasPrefix(typeError.Value, "number") {
				return conversion.ErrAmountNotFinite
			}
			return domain.InvalidRequest("Amount must be a number").WithCause(err)
		case "baseCurrency", "targetCurrency":
			return domain.InvalidRequest("Currency codes must be strings").WithCause(err)
		case "reasonId":
			return domain.InvalidRequest("reasonId must be an integer").WithCause(err)
		}
	}
	return domain.InvalidRequest("Invalid request body").WithCause(err)
}
