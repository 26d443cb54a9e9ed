package reporting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/resaletracker/internal/domain/models"
	"github.com/mamadbah2/resaletracker/internal/service/ledger"
)

type fakeLedger struct {
	sold []models.Article
	err  error
}

func (f *fakeLedger) ComputeAnalytics(_ context.Context, now time.Time) (models.Analytics, error) {
	if f.err != nil {
		return models.Analytics{}, f.err
	}
	return ledger.Aggregate(f.sold, now), nil
}

func (f *fakeLedger) ListSoldArticles(context.Context) ([]models.Article, error) {
	return f.sold, f.err
}

type fakeSheets struct {
	cleared []string
	written map[string][][]interface{}
}

func (f *fakeSheets) ClearRange(_ context.Context, r string) error {
	f.cleared = append(f.cleared, r)
	return nil
}

func (f *fakeSheets) WriteRows(_ context.Context, r string, rows [][]interface{}) error {
	if f.written == nil {
		f.written = map[string][][]interface{}{}
	}
	f.written[r] = rows
	return nil
}

func sold(id, price, cost string, at time.Time) models.Article {
	a := models.Article{ID: id, Title: "title " + id, Brand: "brand", Size: "M", SalePrice: decimal.RequireFromString(price), Sold: true, SoldDate: &at}
	if cost != "" {
		c := decimal.RequireFromString(cost)
		a.PurchasePrice = &c
	}
	return a
}

func TestWeeklySummary(t *testing.T) {
	now := time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC)
	fl := &fakeLedger{sold: []models.Article{
		sold("a", "30", "10", time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)),
		sold("b", "20", "", time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)),
	}}
	svc := NewService(fl, nil, "EUR", "", zaptest.NewLogger(t))

	got, err := svc.WeeklySummary(context.Background(), now)
	if err != nil {
		t.Fatalf("WeeklySummary: %v", err)
	}

	for _, want := range []string{
		"Weekly summary (2024-01-07 - 2024-01-13)",
		"This week: " + svc.FormatAmount(decimal.NewFromInt(30)),
		"(+50.00% vs last week)",
		"All time: 2 sold",
		"profit " + svc.FormatAmount(decimal.NewFromInt(40)),
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestWeeklySummaryWithoutSales(t *testing.T) {
	svc := NewService(&fakeLedger{}, nil, "", "", nil)
	got, err := svc.WeeklySummary(context.Background(), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, "No sales recorded yet.") {
		t.Errorf("summary = %q", got)
	}
}

func TestWeeklySummaryPropagatesErrors(t *testing.T) {
	svc := NewService(&fakeLedger{err: models.ErrStoreIO}, nil, "", "", nil)
	if _, err := svc.WeeklySummary(context.Background(), time.Now()); !errors.Is(err, models.ErrStoreIO) {
		t.Errorf("err = %v, want ErrStoreIO", err)
	}
}

func TestFormatAmountRoundsToMinorUnit(t *testing.T) {
	svc := NewService(&fakeLedger{}, nil, "EUR", "", nil)
	a := svc.FormatAmount(decimal.RequireFromString("12.345"))
	b := svc.FormatAmount(decimal.RequireFromString("12.35"))
	if a != b {
		t.Errorf("FormatAmount(12.345) = %q, FormatAmount(12.35) = %q; want equal", a, b)
	}
	if !strings.Contains(b, "12") || !strings.Contains(b, "35") {
		t.Errorf("FormatAmount(12.35) = %q", b)
	}
}

func TestFormatAmountBeyondMinorUnitRange(t *testing.T) {
	svc := NewService(&fakeLedger{}, nil, "EUR", "", nil)
	tests := []struct {
		in   string
		want string
	}{
		{"1e18", "1000000000000000000.00 EUR"},
		{"-1e18", "-1000000000000000000.00 EUR"},
	}
	for _, tt := range tests {
		if got := svc.FormatAmount(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}

	// the largest amount still held in int64 minor units keeps the currency formatter
	edge := svc.FormatAmount(decimal.RequireFromString("92233720368547758.07"))
	if strings.HasPrefix(edge, "-") || strings.HasSuffix(edge, " EUR") {
		t.Errorf("FormatAmount(max int64 cents) = %q", edge)
	}
}

func TestExportSold(t *testing.T) {
	at := time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC)
	fl := &fakeLedger{sold: []models.Article{sold("a", "30", "10.5", at), sold("b", "20", "", at)}}
	sheets := &fakeSheets{}
	svc := NewService(fl, sheets, "EUR", "Export!A:H", nil)

	n, err := svc.ExportSold(context.Background())
	if err != nil {
		t.Fatalf("ExportSold: %v", err)
	}
	if n != 2 {
		t.Errorf("exported %d, want 2", n)
	}
	if diff := cmp.Diff([]string{"Export!A:H"}, sheets.cleared); diff != "" {
		t.Errorf("cleared ranges (-want +got):\n%s", diff)
	}

	want := [][]interface{}{
		{"id", "title", "brand", "size", "purchase_price", "sale_price", "profit", "sold_date"},
		{"a", "title a", "brand", "M", "10.50", "30.00", "19.50", "2024-02-14"},
		{"b", "title b", "brand", "M", "", "20.00", "20.00", "2024-02-14"},
	}
	if diff := cmp.Diff(want, sheets.written["Export!A:H"]); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestExportSoldDisabled(t *testing.T) {
	svc := NewService(&fakeLedger{}, nil, "", "", nil)
	if _, err := svc.ExportSold(context.Background()); !errors.Is(err, ErrExportDisabled) {
		t.Errorf("err = %v, want ErrExportDisabled", err)
	}
}
