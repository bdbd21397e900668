// Package forex fetches INR exchange rates for converted price displays.
// The fetch is best effort: a failed or slow request degrades to a fixed
// approximate rate table and is never surfaced to the user.
package forex

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/glasspack/api/internal/enum"
	"github.com/shopspring/decimal"
)

// DefaultRatesURL is the public rate API keyed by INR.
const DefaultRatesURL = "https://api.exchangerate-api.com/v4/latest/INR"

// fallbackRates approximate INR conversion when the rate API is
// unreachable.
var fallbackRates = map[string]decimal.Decimal{
	enum.CurrencyUSD: decimal.NewFromFloat(0.012),
	enum.CurrencyEUR: decimal.NewFromFloat(0.011),
	enum.CurrencyGBP: decimal.NewFromFloat(0.0095),
}

// Converter holds the fetched rate table. Until Load completes, Convert
// reports not-ready so callers can show a placeholder instead of a stale or
// zero value.
type Converter struct {
	url    string
	client *http.Client

	mu      sync.Mutex
	rates   map[string]decimal.Decimal
	loaded  bool
	loading bool
}

// NewConverter creates a Converter against the given rate API URL.
// An empty url selects DefaultRatesURL.
func NewConverter(url string, client *http.Client) *Converter {
	if url == "" {
		url = DefaultRatesURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Converter{url: url, client: client}
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Load fetches the rate table once. Concurrent calls while a fetch is in
// flight return immediately; a repeated call after completion is a no-op.
// Any failure installs the fallback table instead of returning an error to
// the caller.
func (c *Converter) Load(ctx context.Context) {
	c.mu.Lock()
	if c.loaded || c.loading {
		c.mu.Unlock()
		return
	}
	c.loading = true
	c.mu.Unlock()

	rates, err := c.fetch(ctx)
	if err != nil {
		log.Printf("ERROR: fetch exchange rates: %v (using fallback table)", err)
		rates = fallbackRates
	}

	c.mu.Lock()
	c.rates = rates
	c.loaded = true
	c.loading = false
	c.mu.Unlock()
}

func (c *Converter) fetch(ctx context.Context) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate API returned %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	rates := make(map[string]decimal.Decimal, 3)
	for _, cur := range []string{enum.CurrencyUSD, enum.CurrencyEUR, enum.CurrencyGBP} {
		v, ok := body.Rates[cur]
		if !ok {
			return nil, fmt.Errorf("rate API response missing %s", cur)
		}
		rates[cur] = decimal.NewFromFloat(v)
	}
	return rates, nil
}

// Ready reports whether a rate table (fetched or fallback) is installed.
func (c *Converter) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Convert multiplies an INR amount by the rate for currency. ok is false
// while rates are still loading or for an unknown currency; callers show a
// placeholder in that case.
func (c *Converter) Convert(inr decimal.Decimal, currency string) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return decimal.Zero, false
	}
	rate, ok := c.rates[currency]
	if !ok {
		return decimal.Zero, false
	}
	return inr.Mul(rate), true
}
