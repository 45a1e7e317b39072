package domain

import (
	"errors"
	"net/http"
)

// Kind classifies every failure that can reach a client.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidRequest
	KindInvalidCurrencyPair
	KindUpstreamRejected
	KindUpstreamUnavailable
	KindReasonNotFound
	KindRateClientFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindInvalidCurrencyPair:
		return "invalid_currency_pair"
	case KindUpstreamRejected:
		return "upstream_rejected"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindReasonNotFound:
		return "reason_not_found"
	case KindRateClientFailure:
		return "rate_client_failure"
	default:
		return "internal"
	}
}

// DefaultStatus is the HTTP status used when a failure carries none of its own.
func (k Kind) DefaultStatus() int {
	switch k {
	case KindInvalidRequest, KindInvalidCurrencyPair:
		return http.StatusBadRequest
	case KindUpstreamRejected:
		return http.StatusBadGateway
	case KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	case KindReasonNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is the single error shape shared by the rate client, the conversion
// engine and the stores. Message is safe to show to callers; cause is not.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details any
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// Is matches on Kind so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidRequest      = &Error{Kind: KindInvalidRequest, Message: "invalid request"}
	ErrInvalidCurrencyPair = &Error{Kind: KindInvalidCurrencyPair, Message: "invalid currency pair"}
	ErrUpstreamRejected    = &Error{Kind: KindUpstreamRejected, Message: "upstream rejected request"}
	ErrUpstreamUnavailable = &Error{Kind: KindUpstreamUnavailable, Message: "upstream unavailable"}
	ErrReasonNotFound      = &Error{Kind: KindReasonNotFound, Message: "reason not found"}
	ErrRateClientFailure   = &Error{Kind: KindRateClientFailure, Message: "rate client failure"}
)

func NewError(kind Kind, status int, message string) *Error {
	if status == 0 {
		status = kind.DefaultStatus()
	}
	return &Error{Kind: kind, Status: status, Message: message}
}

// WithCause returns a copy of e carrying cause. e itself is left untouched so
// package-level errors can be decorated safely.
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.cause = cause
	return &c
}

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details any) *Error {
	c := *e
	c.Details = details
	return &c
}

func InvalidRequest(message string) *Error {
	return NewError(KindInvalidRequest, 0, message)
}

func ReasonNotFound(message string) *Error {
	return NewError(KindReasonNotFound, 0, message)
}

// KindOf reports the Kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// StatusOf reports the HTTP status for err, 500 for foreign errors.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		if e.Status != 0 {
			return e.Status
		}
		return e.Kind.DefaultStatus()
	}
	return http.StatusInternalServerError
}
