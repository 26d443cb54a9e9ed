package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/resaletracker/internal/domain/models"
)

var hundred = decimal.NewFromInt(100)

// ComputeAnalytics aggregates the sold articles relative to now. Calendar
// windows are evaluated in the service location.
func (s *Service) ComputeAnalytics(ctx context.Context, now time.Time) (models.Analytics, error) {
	sold, err := s.ListSoldArticles(ctx)
	if err != nil {
		return models.Analytics{}, err
	}
	return Aggregate(sold, now.In(s.loc)), nil
}

// AnalyticsAsOf reports the ledger as it stood at asOf: articles sold after
// asOf are left out of every total and window.
func (s *Service) AnalyticsAsOf(ctx context.Context, asOf time.Time) (models.Analytics, error) {
	sold, err := s.ListSoldArticles(ctx)
	if err != nil {
		return models.Analytics{}, err
	}
	kept := sold[:0]
	for _, a := range sold {
		if a.SoldDate != nil && a.SoldDate.After(asOf) {
			continue
		}
		kept = append(kept, a)
	}
	return Aggregate(kept, asOf.In(s.loc)), nil
}

// CurrentAnalytics is ComputeAnalytics at the service clock's current instant.
func (s *Service) CurrentAnalytics(ctx context.Context) (models.Analytics, error) {
	return s.ComputeAnalytics(ctx, s.now())
}

// WindowsAt derives every window boundary from the single instant now, in
// now's location. Weeks start on Sunday at midnight.
func WindowsAt(now time.Time) models.Windows {
	y, m, d := now.Date()
	loc := now.Location()
	weekday := int(now.Weekday())

	return models.Windows{
		WeekStart:         time.Date(y, m, d-weekday, 0, 0, 0, 0, loc),
		PreviousWeekStart: time.Date(y, m, d-weekday-7, 0, 0, 0, 0, loc),
		MonthStart:        time.Date(y, m, 1, 0, 0, 0, 0, loc),
		YearStart:         time.Date(y-1, m, d, 0, 0, 0, 0, loc),
	}
}

// Aggregate computes the analytics report over articles. Articles that are
// not sold are ignored.
func Aggregate(articles []models.Article, now time.Time) models.Analytics {
	w := WindowsAt(now)
	report := models.Analytics{
		GeneratedAt:         now,
		TotalRevenue:        decimal.Zero,
		TotalPurchaseCost:   decimal.Zero,
		WeeklyRevenue:       decimal.Zero,
		PreviousWeekRevenue: decimal.Zero,
		MonthlyRevenue:      decimal.Zero,
		YearlyRevenue:       decimal.Zero,
		Windows:             w,
	}

	for _, a := range articles {
		if !a.Sold {
			continue
		}
		revenue := a.SalePrice
		report.TotalSold++
		report.TotalRevenue = report.TotalRevenue.Add(revenue)
		report.TotalPurchaseCost = report.TotalPurchaseCost.Add(a.PurchaseCost())

		if a.SoldDate == nil {
			continue
		}
		at := *a.SoldDate
		if !at.Before(w.WeekStart) {
			report.WeeklyRevenue = report.WeeklyRevenue.Add(revenue)
		}
		if !at.Before(w.PreviousWeekStart) && at.Before(w.WeekStart) {
			report.PreviousWeekRevenue = report.PreviousWeekRevenue.Add(revenue)
		}
		if !at.Before(w.MonthStart) {
			report.MonthlyRevenue = report.MonthlyRevenue.Add(revenue)
		}
		if !at.Before(w.YearStart) {
			report.YearlyRevenue = report.YearlyRevenue.Add(revenue)
		}
	}

	report.TotalProfit = report.TotalRevenue.Sub(report.TotalPurchaseCost)
	report.AverageProfit = decimal.Zero
	if report.TotalSold > 0 {
		report.AverageProfit = report.TotalProfit.Div(decimal.NewFromInt(int64(report.TotalSold)))
	}
	report.WeeklyGrowth = decimal.Zero
	if report.PreviousWeekRevenue.IsPositive() {
		report.WeeklyGrowth = report.WeeklyRevenue.Sub(report.PreviousWeekRevenue).
			Div(report.PreviousWeekRevenue).
			Mul(hundred)
	}
	return report
}
