package marketdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/domain/repository"
	phttp "MarketPulse/pkg/http"
)

const stooqDateLayout = "2006-01-02"

// StooqClient fetches daily OHLCV history from the Stooq CSV export
// endpoint. Stooq serves plain CSV with a header row and needs no key.
type StooqClient struct {
	http    *phttp.Client
	baseURL string
	log     zerolog.Logger
	now     func() time.Time
}

func NewStooqClient(client *phttp.Client, baseURL string, log zerolog.Logger) *StooqClient {
	return &StooqClient{
		http:    client,
		baseURL: baseURL,
		log:     log.With().Str("source", "stooq").Logger(),
		now:     time.Now,
	}
}

// FetchSeries downloads and parses one symbol's daily bars for the
// given lookback period.
func (s *StooqClient) FetchSeries(ctx context.Context, symbol string, period repository.Period) (models.PriceSeries, error) {
	end := s.now()
	start := end.AddDate(0, 0, -period.Days())

	var body []byte
	err := s.http.SendAndParse(ctx, &phttp.RequestOptions{
		Method: phttp.MethodGet,
		URL:    s.baseURL,
		QueryParams: map[string][]string{
			"s":  {stooqSymbol(symbol)},
			"d1": {start.Format("20060102")},
			"d2": {end.Format("20060102")},
			"i":  {"d"},
		},
	}, &body)
	if err != nil {
		return models.PriceSeries{}, fmt.Errorf("stooq fetch %s: %w", symbol, err)
	}

	bars, err := parseStooqCSV(body)
	if err != nil {
		return models.PriceSeries{}, fmt.Errorf("stooq parse %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return models.PriceSeries{}, fmt.Errorf("stooq %s: %w", symbol, ErrInsufficientData)
	}

	s.log.Debug().Str("symbol", symbol).Int("bars", len(bars)).Msg("series fetched")
	return models.PriceSeries{Symbol: symbol, Source: "stooq", Bars: bars}, nil
}

// stooqSymbol maps common tickers to Stooq's naming. US listed symbols
// carry a ".us" suffix, index symbols keep their caret form.
func stooqSymbol(symbol string) string {
	if strings.HasPrefix(symbol, "^") {
		return strings.ToLower(symbol)
	}
	lower := strings.ToLower(symbol)
	if strings.Contains(lower, ".") || strings.Contains(lower, "=") {
		return lower
	}
	return lower + ".us"
}

func parseStooqCSV(body []byte) ([]models.Bar, error) {
	r := csv.NewReader(strings.NewReader(string(body)))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 5 || !strings.EqualFold(header[0], "Date") {
		return nil, fmt.Errorf("unexpected header %q", strings.Join(header, ","))
	}

	var bars []models.Bar
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(rec) < 5 {
			continue
		}
		date, err := time.Parse(stooqDateLayout, rec[0])
		if err != nil {
			continue
		}
		open, err1 := strconv.ParseFloat(rec[1], 64)
		high, err2 := strconv.ParseFloat(rec[2], 64)
		low, err3 := strconv.ParseFloat(rec[3], 64)
		cl, err4 := strconv.ParseFloat(rec[4], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		var vol float64
		if len(rec) > 5 {
			vol, _ = strconv.ParseFloat(rec[5], 64)
		}
		bars = append(bars, models.Bar{
			Date: date, Open: open, High: high, Low: low, Close: cl, Volume: vol,
		})
	}
	return bars, nil
}
