package forex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fxconvert/internal/config"
	"fxconvert/internal/domain"
	"fxconvert/internal/metrics"

	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// Client talks to an exchangerate.host compatible provider. It never retries
// and never caches: every call is one round trip.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

type providerError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

type liveResponse struct {
	Success   bool               `json:"success"`
	Source    string             `json:"source"`
	Timestamp *int64             `json:"timestamp"`
	Quotes    map[string]float64 `json:"quotes"`
	Error     *providerError     `json:"error"`
}

type convertResponse struct {
	Success bool `json:"success"`
	Info    *struct {
		Timestamp *int64       `json:"timestamp"`
		Quote     *json.Number `json:"quote"`
	} `json:"info"`
	Error *providerError `json:"error"`
}

// GetLiveRates returns the provider's bulk quotes keyed by target currency.
//
// Quote keys arrive as source+target ("USDEUR") and the source prefix is
// trimmed. A key that does not start with the source is kept as is, and two
// keys that trim to the same code collapse into one entry.
func (c *Client) GetLiveRates(ctx context.Context) (snapshot domain.LiveRatesSnapshot, err error) {
	started := time.Now()
	defer func() { metrics.ObserveUpstream("live", outcome(err), started) }()

	var body liveResponse
	status, err := c.fetch(ctx, "live", url.Values{}, &body, "Failed to fetch forex rates")
	if err != nil {
		return domain.LiveRatesSnapshot{}, err
	}
	if !isSuccessStatus(status) {
		return domain.LiveRatesSnapshot{}, domain.NewError(
			domain.KindUpstreamRejected, status, "Forex API error: "+body.Error.info("Unknown error"),
		)
	}
	if !body.Success {
		return domain.LiveRatesSnapshot{}, domain.NewError(
			domain.KindUpstreamRejected, body.Error.status(http.StatusBadGateway), body.Error.info("Failed to fetch rates"),
		)
	}

	rates := make(map[string]float64, len(body.Quotes))
	for key, value := range body.Quotes {
		rates[strings.TrimPrefix(key, body.Source)] = value
	}

	return domain.LiveRatesSnapshot{
		Base:      body.Source,
		Rates:     rates,
		Timestamp: body.Timestamp,
	}, nil
}

// GetConversionRate returns units of target per one unit of base, exactly as
// the provider reports it.
func (c *Client) GetConversionRate(ctx context.Context, base string, target string) (quote domain.RateQuote, err error) {
	started := time.Now()
	defer func() { metrics.ObserveUpstream("convert", outcome(err), started) }()

	query := url.Values{}
	query.Set("from", strings.ToUpper(base))
	query.Set("to", strings.ToUpper(target))
	query.Set("amount", "1")

	const failureMsg = "Failed to fetch conversion rate"

	var body convertResponse
	status, err := c.fetch(ctx, "convert", query, &body, failureMsg)
	if err != nil {
		return domain.RateQuote{}, err
	}
	if !isSuccessStatus(status) {
		return domain.RateQuote{}, domain.NewError(
			domain.KindUpstreamRejected, status, body.Error.info("Invalid currency pair"),
		)
	}
	if !body.Success {
		return domain.RateQuote{}, domain.NewError(
			domain.KindInvalidCurrencyPair, body.Error.status(http.StatusBadRequest), body.Error.info("Conversion failed"),
		)
	}
	if body.Info == nil || body.Info.Quote == nil {
		return domain.RateQuote{}, clientFailure(failureMsg, errors.New("response has no info.quote"))
	}

	rate, err := decimal.NewFromString(body.Info.Quote.String())
	if err != nil {
		return domain.RateQuote{}, clientFailure(failureMsg, fmt.Errorf("failed to parse quote %q: %w", body.Info.Quote.String(), err))
	}
	if !rate.IsPositive() {
		return domain.RateQuote{}, clientFailure(failureMsg, fmt.Errorf("non-positive quote %s", rate))
	}

	quote = domain.RateQuote{Rate: rate}
	if body.Info.Timestamp != nil {
		asOf := time.Unix(*body.Info.Timestamp, 0).UTC()
		quote.AsOf = &asOf
	}
	return quote, nil
}

// fetch performs GET {baseURL}/{path} and decodes the JSON body into out.
// Non-2xx responses are returned with a nil error so callers can map them;
// out then holds whatever error payload could be decoded.
func (c *Client) fetch(ctx context.Context, path string, query url.Values, out any, failureMsg string) (int, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return 0, clientFailure(failureMsg, fmt.Errorf("failed to parse base URL: %w", err))
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + path
	query.Set("access_key", c.apiKey)
	query.Set("format", "1")
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, clientFailure(failureMsg, fmt.Errorf("failed to create request for %q: %w", path, err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// *url.Error carries the full URL including the access key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return 0, domain.NewError(domain.KindUpstreamUnavailable, 0, "No response from Forex API").
			WithCause(fmt.Errorf("failed to execute request for %q: %w", path, err))
	}
	defer resp.Body.Close()

	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out)
	if !isSuccessStatus(resp.StatusCode) {
		return resp.StatusCode, nil
	}
	if decodeErr != nil {
		return resp.StatusCode, clientFailure(failureMsg, fmt.Errorf("failed to decode response for %q: %w", path, decodeErr))
	}
	return resp.StatusCode, nil
}

func (e *providerError) info(fallback string) string {
	if e == nil || strings.TrimSpace(e.Info) == "" {
		return fallback
	}
	return e.Info
}

// status returns the provider code when it looks like an HTTP status.
func (e *providerError) status(fallback int) int {
	if e == nil || e.Code < 400 || e.Code > 599 {
		return fallback
	}
	return e.Code
}

func clientFailure(message string, cause error) *domain.Error {
	return domain.NewError(domain.KindRateClientFailure, 0, message).WithCause(cause)
}

func isSuccessStatus(code int) bool { return code >= 200 && code < 300 }

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return domain.KindOf(err).String()
}

func NewClient(httpClient *http.Client, cfg config.Forex) *Client {
	return &Client{http: httpClient, baseURL: cfg.BaseURL, apiKey: cfg.APIKey}
}
