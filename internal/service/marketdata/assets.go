package marketdata

import "MarketPulse/internal/domain/models"

// catalog lists the browsable assets by display group. Symbols use the
// caret index convention for equities and SYMBOL-USD for crypto.
var catalog = []models.AssetGroup{
	{
		Name: "US Equities",
		Assets: []models.Asset{
			{Name: "S&P 500", Symbol: "^GSPC"},
			{Name: "Nasdaq-100", Symbol: "^IXIC"},
			{Name: "Russell 2000", Symbol: "^RUT"},
			{Name: "Dow Jones", Symbol: "^DJI"},
		},
	},
	{
		Name: "Europe Equities",
		Assets: []models.Asset{
			{Name: "STOXX 600", Symbol: "^STOXX"},
			{Name: "DAX", Symbol: "^GDAXI"},
			{Name: "FTSE 100", Symbol: "^FTSE"},
			{Name: "CAC 40", Symbol: "^FCHI"},
		},
	},
	{
		Name: "Asia Equities",
		Assets: []models.Asset{
			{Name: "Nikkei 225", Symbol: "^N225"},
			{Name: "TOPIX", Symbol: "^TOPX"},
			{Name: "Hang Seng", Symbol: "^HSI"},
			{Name: "Shanghai Composite", Symbol: "^SSEC"},
		},
	},
	{
		Name: "Commodities",
		Assets: []models.Asset{
			{Name: "WTI Crude", Symbol: "CL=F"},
			{Name: "Brent Crude", Symbol: "BZ=F"},
			{Name: "Gold", Symbol: "GC=F"},
			{Name: "Copper", Symbol: "HG=F"},
			{Name: "Silver", Symbol: "SI=F"},
		},
	},
	{
		Name: "Bonds",
		Assets: []models.Asset{
			{Name: "10Y Treasury", Symbol: "^TNX"},
			{Name: "13W Treasury", Symbol: "^IRX"},
			{Name: "30Y Treasury", Symbol: "^TYX"},
			{Name: "2Y Treasury", Symbol: "^UST2YR"},
		},
	},
	{
		Name: "Crypto",
		Assets: []models.Asset{
			{Name: "Bitcoin", Symbol: "BTC-USD"},
			{Name: "Ethereum", Symbol: "ETH-USD"},
			{Name: "Binance Coin", Symbol: "BNB-USD"},
			{Name: "Cardano", Symbol: "ADA-USD"},
		},
	},
}

// Catalog returns the asset groups for the browsing view.
func Catalog() []models.AssetGroup { return catalog }

// KnownSymbol reports whether a symbol appears in the catalog.
func KnownSymbol(symbol string) bool {
	for _, g := range catalog {
		for _, a := range g.Assets {
			if a.Symbol == symbol {
				return true
			}
		}
	}
	return false
}
