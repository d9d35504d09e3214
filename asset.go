package finvest

import (
	"fmt"

	"github.com/google/uuid"
)

// AssetType classifies an asset for allocation purposes.
type AssetType string

const (
	Stock          AssetType = "stock"
	RealEstateFund AssetType = "fund"
	Crypto         AssetType = "crypto"
	FixedIncome    AssetType = "fixed-income"
	Cash           AssetType = "cash"
)

// AssetTypes lists every type in display order.
var AssetTypes = []AssetType{Stock, RealEstateFund, Crypto, FixedIncome, Cash}

// ParseAssetType returns the AssetType matching s.
func ParseAssetType(s string) (AssetType, error) {
	for _, t := range AssetTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown asset type %q", s)
}

// Label returns the human readable name of the type.
func (t AssetType) Label() string {
	switch t {
	case Stock:
		return "Stock"
	case RealEstateFund:
		return "Real Estate Fund"
	case Crypto:
		return "Crypto"
	case FixedIncome:
		return "Fixed Income"
	case Cash:
		return "Cash"
	}
	return string(t)
}

// Asset is a single holding in the portfolio. Assets are never mutated
// in place: replacing one is a removal followed by a new addition.
//
// Tickers are not required to be unique; the id is the only identity.
type Asset struct {
	ID           string    `json:"id"`
	Ticker       string    `json:"ticker"`
	Name         string    `json:"name"`
	Type         AssetType `json:"type"`
	Quantity     Quantity  `json:"quantity"`
	AveragePrice Money     `json:"average_price"`
	CurrentPrice Money     `json:"current_price"`
	Sector       string    `json:"sector,omitempty"`
}

// Validate checks the asset before it enters the store.
func (a Asset) Validate() error {
	if a.Ticker == "" {
		return fmt.Errorf("ticker is required")
	}
	if a.Quantity.IsNegative() {
		return fmt.Errorf("quantity cannot be negative")
	}
	if _, err := ParseAssetType(string(a.Type)); err != nil {
		return err
	}
	return nil
}

// Valuation holds the per-asset display figures. Like the portfolio
// summary it is derived on every read, never stored.
type Valuation struct {
	MarketValue Money   `json:"market_value"`
	Gain        Money   `json:"gain"`
	GainPercent Percent `json:"gain_percent"`
}

// Valuation computes the asset's market value and gain over its cost
// basis. GainPercent is 0 when the average price is zero: a position
// acquired for nothing has no meaningful return figure.
func (a Asset) Valuation() Valuation {
	invested := a.AveragePrice.Mul(a.Quantity)
	value := a.CurrentPrice.Mul(a.Quantity)
	gain := value.Sub(invested)
	return Valuation{
		MarketValue: value,
		Gain:        gain,
		GainPercent: gain.PercentOf(invested),
	}
}

// SeedAssets returns the example portfolio the application starts with.
func SeedAssets() []Asset {
	return []Asset{
		{ID: uuid.NewString(), Ticker: "PETR4", Name: "PETROBRAS PN", Type: Stock, Quantity: Q(100), AveragePrice: M(28.50), CurrentPrice: M(35.20), Sector: "Energy"},
		{ID: uuid.NewString(), Ticker: "HGLG11", Name: "CSHG LOGISTICA", Type: RealEstateFund, Quantity: Q(15), AveragePrice: M(155.00), CurrentPrice: M(162.30), Sector: "Logistics"},
		{ID: uuid.NewString(), Ticker: "BTC", Name: "BITCOIN", Type: Crypto, Quantity: Q(0.005), AveragePrice: M(250000), CurrentPrice: M(380000), Sector: "Crypto"},
		{ID: uuid.NewString(), Ticker: "TESOURO SELIC", Name: "TESOURO SELIC 2027", Type: FixedIncome, Quantity: Q(1), AveragePrice: M(12000), CurrentPrice: M(12500), Sector: "Government"},
	}
}
