package reporting

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/resaletracker/internal/domain/models"
	repo "github.com/mamadbah2/resaletracker/internal/repository/sheets"
)

const (
	dateLayout         = "2006-01-02"
	DefaultExportRange = "Sales!A:H"
	DefaultCurrency    = "EUR"
)

// ErrExportDisabled is returned by ExportSold when no spreadsheet is configured.
var ErrExportDisabled = errors.New("sheets export is not configured")

// LedgerReader is the subset of the ledger the reports are built from.
type LedgerReader interface {
	ComputeAnalytics(ctx context.Context, now time.Time) (models.Analytics, error)
	ListSoldArticles(ctx context.Context) ([]models.Article, error)
}

// Service renders analytics summaries and exports the sold ledger.
type Service struct {
	ledger      LedgerReader
	sheets      repo.Repository
	exportRange string
	currency    string
	logger      *zap.Logger
}

// NewService wires a new reporting service instance. sheets may be nil,
// in which case ExportSold reports ErrExportDisabled.
func NewService(ledger LedgerReader, sheets repo.Repository, currency, exportRange string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if exportRange == "" {
		exportRange = DefaultExportRange
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Service{
		ledger:      ledger,
		sheets:      sheets,
		exportRange: exportRange,
		currency:    currency,
		logger:      logger,
	}
}

// WeeklySummary builds the human readable activity summary as of now.
func (s *Service) WeeklySummary(ctx context.Context, now time.Time) (string, error) {
	report, err := s.ledger.ComputeAnalytics(ctx, now)
	if err != nil {
		return "", fmt.Errorf("compute analytics: %w", err)
	}
	return s.FormatSummary(report), nil
}

// FormatSummary renders report as plain text.
func (s *Service) FormatSummary(report models.Analytics) string {
	w := report.Windows
	weekEnd := w.WeekStart.AddDate(0, 0, 6)

	var b strings.Builder
	fmt.Fprintf(&b, "Weekly summary (%s - %s)\n", w.WeekStart.Format(dateLayout), weekEnd.Format(dateLayout))

	if report.TotalSold == 0 {
		b.WriteString("No sales recorded yet.")
		return b.String()
	}

	fmt.Fprintf(&b, "This week: %s", s.FormatAmount(report.WeeklyRevenue))
	if report.PreviousWeekRevenue.IsPositive() {
		fmt.Fprintf(&b, " (%s%% vs last week)", signed(report.WeeklyGrowth.Round(2)))
	} else {
		b.WriteString(" (no sales last week)")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Last week: %s\n", s.FormatAmount(report.PreviousWeekRevenue))
	fmt.Fprintf(&b, "Month to date: %s\n", s.FormatAmount(report.MonthlyRevenue))
	fmt.Fprintf(&b, "Last 12 months: %s\n", s.FormatAmount(report.YearlyRevenue))
	fmt.Fprintf(&b, "All time: %d sold, revenue %s, profit %s, average profit %s.",
		report.TotalSold,
		s.FormatAmount(report.TotalRevenue),
		s.FormatAmount(report.TotalProfit),
		s.FormatAmount(report.AverageProfit))
	return b.String()
}

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// FormatAmount formats an amount in the configured currency, rounded to
// the currency's minor unit. Amounts whose minor units overflow int64 are
// printed as plain decimals followed by the currency code.
func (s *Service) FormatAmount(amount decimal.Decimal) string {
	cur := *money.New(0, s.currency).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return amount.StringFixed(int32(cur.Fraction)) + " " + cur.Code
	}
	return cur.Formatter().Format(minor.IntPart())
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}

// ExportSold rewrites the export range with a header and one row per sold
// article. It returns the number of articles written.
func (s *Service) ExportSold(ctx context.Context) (int, error) {
	if s.sheets == nil {
		return 0, ErrExportDisabled
	}

	sold, err := s.ledger.ListSoldArticles(ctx)
	if err != nil {
		return 0, fmt.Errorf("list sold articles: %w", err)
	}

	if err := s.sheets.ClearRange(ctx, s.exportRange); err != nil {
		return 0, err
	}
	if err := s.sheets.WriteRows(ctx, s.exportRange, ExportRows(sold)); err != nil {
		return 0, err
	}

	s.logger.Info("sold ledger exported", zap.Int("articles", len(sold)), zap.String("range", s.exportRange))
	return len(sold), nil
}

// ExportRows converts sold articles into spreadsheet rows, header first.
func ExportRows(sold []models.Article) [][]interface{} {
	rows := make([][]interface{}, 0, len(sold)+1)
	rows = append(rows, []interface{}{"id", "title", "brand", "size", "purchase_price", "sale_price", "profit", "sold_date"})

	for _, a := range sold {
		purchase := ""
		if a.PurchasePrice != nil {
			purchase = a.PurchasePrice.StringFixed(2)
		}
		soldDate := ""
		if a.SoldDate != nil {
			soldDate = a.SoldDate.Format(dateLayout)
		}
		profit := a.SalePrice.Sub(a.PurchaseCost())
		rows = append(rows, []interface{}{
			a.ID, a.Title, a.Brand, a.Size,
			purchase, a.SalePrice.StringFixed(2), profit.StringFixed(2), soldDate,
		})
	}
	return rows
}
