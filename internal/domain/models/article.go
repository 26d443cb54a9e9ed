package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceType classifies a price history entry.
type PriceType string

const (
	PriceInitial PriceType = "initial"
	PriceUpdate  PriceType = "update"
	PriceSale    PriceType = "sale"
)

// Valid reports whether t is one of the known price event types.
func (t PriceType) Valid() bool {
	switch t {
	case PriceInitial, PriceUpdate, PriceSale:
		return true
	}
	return false
}

// PriceHistory records one price-setting event of an article.
type PriceHistory struct {
	ID    string          `json:"id"`
	Price decimal.Decimal `json:"price"`
	Date  time.Time       `json:"date"`
	Type  PriceType       `json:"type"`
}

// Article is a single item held for resale.
type Article struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Brand         string           `json:"brand"`
	Size          string           `json:"size"`
	Description   string           `json:"description"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice,omitempty"`
	SalePrice     decimal.Decimal  `json:"salePrice"`
	CreatedAt     time.Time        `json:"createdAt"`
	Sold          bool             `json:"sold"`
	SoldDate      *time.Time       `json:"soldDate,omitempty"`
	PriceHistory  []PriceHistory   `json:"priceHistory"`
}

// PurchaseCost returns the purchase price, or zero when it is unknown.
func (a Article) PurchaseCost() decimal.Decimal {
	if a.PurchasePrice == nil {
		return decimal.Zero
	}
	return *a.PurchasePrice
}

// ExpectedProfit is the margin between the current sale price and the
// purchase price. ok is false when the purchase price is unknown.
func (a Article) ExpectedProfit() (profit decimal.Decimal, ok bool) {
	if a.PurchasePrice == nil {
		return decimal.Zero, false
	}
	return a.SalePrice.Sub(*a.PurchasePrice), true
}

// LastPrice returns the most recent history entry.
func (a Article) LastPrice() (PriceHistory, bool) {
	if len(a.PriceHistory) == 0 {
		return PriceHistory{}, false
	}
	return a.PriceHistory[len(a.PriceHistory)-1], true
}
