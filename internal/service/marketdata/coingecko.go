package marketdata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/domain/repository"
	phttp "MarketPulse/pkg/http"
)

// cryptoIDs maps dashboard symbols to CoinGecko coin ids.
var cryptoIDs = map[string]string{
	"BTC-USD": "bitcoin",
	"ETH-USD": "ethereum",
	"BNB-USD": "binancecoin",
	"ADA-USD": "cardano",
}

// IsCryptoSymbol reports whether a symbol is served by CoinGecko.
func IsCryptoSymbol(symbol string) bool {
	_, ok := cryptoIDs[symbol]
	return ok
}

// CoinGeckoClient fetches crypto price history from the public
// market_chart endpoint. Only closes are available, so OHLC collapse
// to the same value per point.
type CoinGeckoClient struct {
	http    *phttp.Client
	baseURL string
	apiKey  string
	log     zerolog.Logger
}

func NewCoinGeckoClient(client *phttp.Client, baseURL, apiKey string, log zerolog.Logger) *CoinGeckoClient {
	return &CoinGeckoClient{
		http:    client,
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log.With().Str("source", "coingecko").Logger(),
	}
}

type marketChartResponse struct {
	Prices       [][2]float64 `json:"prices"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}

// FetchSeries downloads daily price points for one coin.
func (c *CoinGeckoClient) FetchSeries(ctx context.Context, symbol string, period repository.Period) (models.PriceSeries, error) {
	coinID, ok := cryptoIDs[symbol]
	if !ok {
		return models.PriceSeries{}, fmt.Errorf("coingecko: unknown symbol %q", symbol)
	}

	headers := map[string]string{}
	if c.apiKey != "" {
		headers["x-cg-demo-api-key"] = c.apiKey
	}

	var resp marketChartResponse
	err := c.http.SendAndParse(ctx, &phttp.RequestOptions{
		Method:  phttp.MethodGet,
		URL:     fmt.Sprintf("%s/coins/%s/market_chart", c.baseURL, coinID),
		Headers: headers,
		QueryParams: map[string][]string{
			"vs_currency": {"usd"},
			"days":        {strconv.Itoa(period.Days())},
			"interval":    {"daily"},
		},
	}, &resp)
	if err != nil {
		return models.PriceSeries{}, fmt.Errorf("coingecko fetch %s: %w", coinID, err)
	}
	if len(resp.Prices) == 0 {
		return models.PriceSeries{}, fmt.Errorf("coingecko %s: %w", coinID, ErrInsufficientData)
	}

	volumes := make(map[int64]float64, len(resp.TotalVolumes))
	for _, v := range resp.TotalVolumes {
		volumes[int64(v[0])] = v[1]
	}

	bars := make([]models.Bar, 0, len(resp.Prices))
	for _, p := range resp.Prices {
		ms := int64(p[0])
		price := p[1]
		bars = append(bars, models.Bar{
			Date:   time.UnixMilli(ms).UTC(),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: volumes[ms],
		})
	}

	c.log.Debug().Str("symbol", symbol).Int("bars", len(bars)).Msg("series fetched")
	return models.PriceSeries{Symbol: symbol, Source: "coingecko", Bars: bars}, nil
}
