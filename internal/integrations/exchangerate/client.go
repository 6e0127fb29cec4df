// Package exchangerate is a client for exchangerate-api.com v6 style rate
// tables. It implements contracts.RateProvider.
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"

	"github.com/murkotick/product-pricing-service/internal/app/product/domain"
	"github.com/murkotick/product-pricing-service/internal/pkg/outcome"
)

const (
	MsgCommunicationFailed = "Failed to communicate with the exchange rate API. Try again later."
	ErrorTypeUnsupported   = "unsupported-code"
)

// Config holds the connection settings of the rate API.
type Config struct {
	BaseURL      string
	APIKey       string
	Endpoint     string
	BaseCurrency string
	Timeout      time.Duration
	CacheTTL     time.Duration
	CacheSize    int
}

// ratesResponse is the subset of the v6 payload the client reads.
type ratesResponse struct {
	Result          string                     `json:"result"`
	ErrorType       string                     `json:"error-type"`
	BaseCode        string                     `json:"base_code"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      *expirable.LRU[string, map[string]decimal.Decimal]
	logger     *slog.Logger
}

// New builds a Client. A zero CacheTTL disables caching.
func New(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.BaseCurrency = strings.ToUpper(cfg.BaseCurrency)

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With(slog.String("component", "exchangerate")),
	}
	if cfg.CacheTTL > 0 {
		size := cfg.CacheSize
		if size <= 0 {
			size = 64
		}
		c.cache = expirable.NewLRU[string, map[string]decimal.Decimal](size, nil, cfg.CacheTTL)
	}
	return c
}

// GetRate returns how many units of currency one unit of the base currency
// buys. Every failure is reported as HttpClientCommunicationFailed.
func (c *Client) GetRate(ctx context.Context, currency string) outcome.Result[decimal.Decimal, domain.HttpClientCommunicationFailed] {
	code := strings.ToUpper(strings.TrimSpace(currency))

	rates, failed := c.table(ctx, code)
	if failed != nil {
		return outcome.Err[decimal.Decimal](*failed)
	}

	rate, ok := rates[code]
	if !ok {
		return outcome.Err[decimal.Decimal](invalidCode(ErrorTypeUnsupported, code))
	}
	return outcome.Ok[decimal.Decimal, domain.HttpClientCommunicationFailed](rate)
}

func (c *Client) table(ctx context.Context, code string) (map[string]decimal.Decimal, *domain.HttpClientCommunicationFailed) {
	if c.cache != nil {
		if rates, ok := c.cache.Get(c.cfg.BaseCurrency); ok {
			return rates, nil
		}
	}

	rates, failed := c.fetch(ctx, code)
	if failed != nil {
		return nil, failed
	}
	if c.cache != nil {
		c.cache.Add(c.cfg.BaseCurrency, rates)
	}
	return rates, nil
}

func (c *Client) fetch(ctx context.Context, code string) (map[string]decimal.Decimal, *domain.HttpClientCommunicationFailed) {
	endpoint := fmt.Sprintf("%s/%s/%s/%s", c.cfg.BaseURL,
		url.PathEscape(c.cfg.APIKey), url.PathEscape(c.cfg.Endpoint), url.PathEscape(c.cfg.BaseCurrency))

	c.logger.InfoContext(ctx, "fetching exchange rates",
		slog.String("base_currency", c.cfg.BaseCurrency),
		slog.String("currency", code),
		slog.String("endpoint", c.cfg.Endpoint),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, c.communicationFailed(ctx, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.communicationFailed(ctx, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var body ratesResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	// The API reports bad codes and keys with a JSON body on a 4xx status.
	if decodeErr == nil && body.Result == "error" {
		errorType := body.ErrorType
		if errorType == "" {
			errorType = "Could not obtain conversion rates"
		}
		c.logger.WarnContext(ctx, "exchange rate api rejected request",
			slog.Int("status", resp.StatusCode),
			slog.String("error_type", errorType),
		)
		failed := invalidCode(errorType, code)
		return nil, &failed
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.communicationFailed(ctx, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if decodeErr != nil {
		return nil, c.communicationFailed(ctx, fmt.Errorf("decode response: %w", decodeErr))
	}
	if body.Result != "success" || body.ConversionRates == nil {
		return nil, c.communicationFailed(ctx, fmt.Errorf("unexpected result %q", body.Result))
	}
	return body.ConversionRates, nil
}

func (c *Client) communicationFailed(ctx context.Context, cause error) *domain.HttpClientCommunicationFailed {
	c.logger.ErrorContext(ctx, "exchange rate request failed", slog.Any("error", cause))
	failed := domain.CommunicationFailed(MsgCommunicationFailed)
	return &failed
}

func invalidCode(errorType, code string) domain.HttpClientCommunicationFailed {
	return domain.CommunicationFailed(fmt.Sprintf("%s. Invalid currency code: %s", errorType, code))
}
