package forex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glasspack/api/internal/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestConvertNotReadyBeforeLoad(t *testing.T) {
	c := NewConverter("http://127.0.0.1:0", nil)
	_, ok := c.Convert(decimal.NewFromInt(100), enum.CurrencyUSD)
	assert.False(t, ok, "conversion must report not-ready until a table is installed")
	assert.False(t, c.Ready())
}

func TestLoadFetchesRates(t *testing.T) {
	srv := rateServer(t, http.StatusOK, `{"rates":{"USD":0.012,"EUR":0.011,"GBP":0.0095,"JPY":1.8}}`)
	defer srv.Close()

	c := NewConverter(srv.URL, srv.Client())
	c.Load(context.Background())
	require.True(t, c.Ready())

	got, ok := c.Convert(decimal.NewFromInt(1000), enum.CurrencyUSD)
	require.True(t, ok)
	assert.True(t, got.Equal(decimal.NewFromInt(12)), "got %s", got)

	got, ok = c.Convert(decimal.NewFromInt(1000), enum.CurrencyGBP)
	require.True(t, ok)
	want := decimal.NewFromFloat(9.5)
	assert.True(t, got.Equal(want), "got %s", got)
}

// Any fetch failure silently installs the fallback table; the user just
// sees approximate conversions.
func TestLoadFailureInstallsFallback(t *testing.T) {
	srv := rateServer(t, http.StatusInternalServerError, "")
	defer srv.Close()

	c := NewConverter(srv.URL, srv.Client())
	c.Load(context.Background())
	require.True(t, c.Ready())

	got, ok := c.Convert(decimal.NewFromInt(1000), enum.CurrencyEUR)
	require.True(t, ok)
	assert.True(t, got.Equal(decimal.NewFromInt(11)), "got %s", got)
}

// A response missing one of the needed currencies counts as a failure.
func TestLoadIncompleteResponseFallsBack(t *testing.T) {
	srv := rateServer(t, http.StatusOK, `{"rates":{"USD":0.012}}`)
	defer srv.Close()

	c := NewConverter(srv.URL, srv.Client())
	c.Load(context.Background())

	got, ok := c.Convert(decimal.NewFromInt(1000), enum.CurrencyGBP)
	require.True(t, ok)
	assert.True(t, got.Equal(decimal.NewFromFloat(9.5)), "got %s", got)
}

func TestLoadIsIdempotent(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"rates":{"USD":0.012,"EUR":0.011,"GBP":0.0095}}`))
	}))
	defer srv.Close()

	c := NewConverter(srv.URL, srv.Client())
	c.Load(context.Background())
	c.Load(context.Background())
	assert.Equal(t, 1, calls)
}

func TestConvertUnknownCurrency(t *testing.T) {
	srv := rateServer(t, http.StatusOK, `{"rates":{"USD":0.012,"EUR":0.011,"GBP":0.0095}}`)
	defer srv.Close()

	c := NewConverter(srv.URL, srv.Client())
	c.Load(context.Background())

	_, ok := c.Convert(decimal.NewFromInt(100), "JPY")
	assert.False(t, ok)
}
