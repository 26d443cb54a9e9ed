package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/resaletracker/internal/domain/models"
)

// ArticleInput carries the raw form values used to create an article.
// Prices stay textual so malformed numbers can be reported as invalid input.
type ArticleInput struct {
	Title         string
	Brand         string
	Size          string
	Description   string
	PurchasePrice string // optional
	SalePrice     string
}

type validatedInput struct {
	title, brand, size, description string
	purchasePrice                   *decimal.Decimal
	salePrice                       decimal.Decimal
}

func (in ArticleInput) validate() (validatedInput, error) {
	v := validatedInput{
		title:       strings.TrimSpace(in.Title),
		brand:       strings.TrimSpace(in.Brand),
		size:        strings.TrimSpace(in.Size),
		description: strings.TrimSpace(in.Description),
	}

	var missing []string
	if v.title == "" {
		missing = append(missing, "title")
	}
	if v.brand == "" {
		missing = append(missing, "brand")
	}
	if v.size == "" {
		missing = append(missing, "size")
	}
	if len(missing) > 0 {
		return validatedInput{}, fmt.Errorf("%w: missing %s", models.ErrInvalidInput, strings.Join(missing, ", "))
	}

	sale, err := ParsePrice(in.SalePrice)
	if err != nil {
		return validatedInput{}, fmt.Errorf("sale price: %w", err)
	}
	v.salePrice = sale

	if strings.TrimSpace(in.PurchasePrice) != "" {
		purchase, err := parseAmount(in.PurchasePrice)
		if err != nil {
			return validatedInput{}, fmt.Errorf("purchase price: %w", err)
		}
		if purchase.IsNegative() {
			return validatedInput{}, fmt.Errorf("purchase price: %w: %s is negative", models.ErrInvalidInput, purchase)
		}
		v.purchasePrice = &purchase
	}
	return v, nil
}

// ParsePrice parses a strictly positive monetary amount. A comma is
// accepted as decimal separator.
func ParsePrice(raw string) (decimal.Decimal, error) {
	d, err := parseAmount(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if err := requirePositive(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: price is required", models.ErrInvalidInput)
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", models.ErrInvalidInput, raw)
	}
	return d, nil
}

func requirePositive(d decimal.Decimal) error {
	if !d.IsPositive() {
		return fmt.Errorf("%w: price must be positive, got %s", models.ErrInvalidInput, d)
	}
	return nil
}
