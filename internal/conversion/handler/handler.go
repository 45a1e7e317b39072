package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"fxconvert/internal/domain"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const internalErrorMessage = "Internal Server Error"

type Service interface {
	Convert(ctx context.Context, req domain.ConversionRequest) (domain.StoredConversion, error)
	List(ctx context.Context) ([]domain.StoredConversion, error)
	LiveRates(ctx context.Context) (domain.LiveRatesSnapshot, error)
	Reasons(ctx context.Context) ([]domain.Reason, error)
	Reason(ctx context.Context, id int64) (domain.Reason, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorBody struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, dataResponse{Success: true, Data: data})
}

// writeError renders err as the public error body. Only *domain.Error messages
// reach the caller; anything else is logged and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, handlerName string, err error) {
	fields := logrus.Fields{"handler": handlerName, "request_id": middleware.GetReqID(r.Context())}

	var de *domain.Error
	if !errors.As(err, &de) || de.Kind == domain.KindInternal {
		fields["error_id"] = uuid.NewString()
		logrus.WithError(err).WithFields(fields).Error("unexpected failure")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorBody{Message: internalErrorMessage}})
		return
	}

	status := domain.StatusOf(de)
	fields["kind"] = de.Kind.String()
	fields["status"] = status
	entry := logrus.WithError(err).WithFields(fields)
	if status >= http.StatusInternalServerError {
		if cause := errors.Unwrap(de); cause != nil {
			entry = entry.WithField("cause", cause.Error())
		}
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	writeJSON(w, status, errorResponse{Error: errorBody{Message: de.Message, Details: de.Details}})
}
