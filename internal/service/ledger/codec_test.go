package ledger

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mamadbah2/resaletracker/internal/domain/models"
)

func TestCodecRoundTripKeepsOptionalFieldsAbsent(t *testing.T) {
	sold := soldArticle("sold", "30", "10", day("2024-01-12 16:30"))
	sold.Title = "Sneakers"
	sold.CreatedAt = day("2024-01-10 09:00")
	sold.PriceHistory = []models.PriceHistory{
		{ID: "h1", Price: dec("25"), Date: day("2024-01-10 09:00"), Type: models.PriceInitial},
		{ID: "h2", Price: dec("30"), Date: day("2024-01-12 16:30"), Type: models.PriceSale},
	}
	unsold := models.Article{
		ID:        "unsold",
		Title:     "Scarf",
		SalePrice: dec("12.5"),
		CreatedAt: day("2024-01-11 08:00"),
		PriceHistory: []models.PriceHistory{
			{ID: "h3", Price: dec("12.5"), Date: day("2024-01-11 08:00"), Type: models.PriceInitial},
		},
	}
	in := []models.Article{sold, unsold}

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	text := string(data)
	unsoldJSON := text[strings.Index(text, `"id":"unsold"`):]
	for _, field := range []string{"purchasePrice", "soldDate"} {
		if strings.Contains(unsoldJSON, field) {
			t.Errorf("absent %s was serialised: %s", field, unsoldJSON)
		}
	}

	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-in +out):\n%s", diff)
	}
	if out[1].PurchasePrice != nil || out[1].SoldDate != nil {
		t.Error("optional fields came back present")
	}
}

func TestDecodeAcceptsNumericPrices(t *testing.T) {
	legacy := `[{"id":"1","title":"Jacket","brand":"Levi's","size":"M","description":"",
		"purchasePrice":10,"salePrice":25.5,"createdAt":"2024-01-10T09:00:00.000Z","sold":false,
		"priceHistory":[{"id":"p1","price":25.5,"date":"2024-01-10T09:00:00.000Z","type":"initial"}]}]`

	got, err := Decode([]byte(legacy))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("decoded %d articles, want 1", len(got))
	}
	a := got[0]
	if !a.SalePrice.Equal(dec("25.5")) || a.PurchasePrice == nil || !a.PurchasePrice.Equal(dec("10")) {
		t.Errorf("prices = %s / %v", a.SalePrice, a.PurchasePrice)
	}
	if a.PriceHistory[0].Type != models.PriceInitial || !a.PriceHistory[0].Type.Valid() {
		t.Errorf("history type = %q", a.PriceHistory[0].Type)
	}
}

func TestEncodeEmpty(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("Encode(nil) = %s, want []", data)
	}
	got, err := Decode(nil)
	if err != nil || len(got) != 0 {
		t.Errorf("Decode(nil) = %v, %v", got, err)
	}
}
