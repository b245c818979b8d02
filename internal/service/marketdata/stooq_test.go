package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/domain/repository"
	phttp "MarketPulse/pkg/http"
)

const stooqFixture = `Date,Open,High,Low,Close,Volume
2025-01-02,589.39,591.13,585.00,588.32,34512300
2025-01-03,590.00,595.50,589.10,594.22,41233100
2025-01-06,595.00,599.90,594.00,598.10,38871200
`

func TestParseStooqCSV(t *testing.T) {
	bars, err := parseStooqCSV([]byte(stooqFixture))
	require.NoError(t, err)
	require.Len(t, bars, 3)

	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), bars[0].Date)
	assert.InDelta(t, 588.32, bars[0].Close, 1e-9)
	assert.InDelta(t, 34512300, bars[0].Volume, 1e-9)
	assert.InDelta(t, 598.10, bars[2].Close, 1e-9)
}

func TestParseStooqCSVSkipsBadRows(t *testing.T) {
	body := "Date,Open,High,Low,Close,Volume\nnot-a-date,1,2,3,4,5\n2025-01-02,1,2,3,4,5\n"
	bars, err := parseStooqCSV([]byte(body))
	require.NoError(t, err)
	assert.Len(t, bars, 1)
}

func TestParseStooqCSVBadHeader(t *testing.T) {
	_, err := parseStooqCSV([]byte("<html>No data</html>"))
	assert.Error(t, err)
}

func TestStooqSymbol(t *testing.T) {
	assert.Equal(t, "^gspc", stooqSymbol("^GSPC"))
	assert.Equal(t, "spy.us", stooqSymbol("SPY"))
	assert.Equal(t, "cl=f", stooqSymbol("CL=F"))
	assert.Equal(t, "aaa.de", stooqSymbol("AAA.DE"))
}

func TestStooqClientFetchSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "spy.us", r.URL.Query().Get("s"))
		assert.Equal(t, "d", r.URL.Query().Get("i"))
		_, _ = w.Write([]byte(stooqFixture))
	}))
	defer srv.Close()

	c := NewStooqClient(phttp.NewClient(), srv.URL, zerolog.Nop())
	series, err := c.FetchSeries(context.Background(), "SPY", repository.Period1Y)
	require.NoError(t, err)
	assert.Equal(t, "SPY", series.Symbol)
	assert.Equal(t, "stooq", series.Source)
	assert.Equal(t, 3, series.Len())
}

func TestStooqClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewStooqClient(phttp.NewClient(), srv.URL, zerolog.Nop())
	_, err := c.FetchSeries(context.Background(), "SPY", repository.Period1Y)
	assert.Error(t, err)
}

func TestStooqClientEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Date,Open,High,Low,Close,Volume\n"))
	}))
	defer srv.Close()

	c := NewStooqClient(phttp.NewClient(), srv.URL, zerolog.Nop())
	_, err := c.FetchSeries(context.Background(), "SPY", repository.Period1Y)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCoinGeckoClientFetchSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"prices": [[1735689600000, 93500.5], [1735776000000, 94210.2]],
			"total_volumes": [[1735689600000, 21000000000], [1735776000000, 19500000000]]
		}`))
	}))
	defer srv.Close()

	c := NewCoinGeckoClient(phttp.NewClient(), srv.URL, "", zerolog.Nop())
	series, err := c.FetchSeries(context.Background(), "BTC-USD", repository.Period1Y)
	require.NoError(t, err)
	require.Equal(t, 2, series.Len())
	assert.Equal(t, "coingecko", series.Source)
	assert.InDelta(t, 93500.5, series.Bars[0].Close, 1e-9)
	assert.InDelta(t, 21000000000, series.Bars[0].Volume, 1e-9)
}

func TestCoinGeckoClientUnknownSymbol(t *testing.T) {
	c := NewCoinGeckoClient(phttp.NewClient(), "http://unused", "", zerolog.Nop())
	_, err := c.FetchSeries(context.Background(), "DOGE-USD", repository.Period1Y)
	assert.Error(t, err)
}
