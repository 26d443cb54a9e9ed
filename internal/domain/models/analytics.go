package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Analytics is the aggregate revenue and profit report over sold articles.
type Analytics struct {
	GeneratedAt         time.Time       `json:"generatedAt"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	TotalPurchaseCost   decimal.Decimal `json:"totalPurchaseCost"`
	TotalProfit         decimal.Decimal `json:"totalProfit"`
	TotalSold           int             `json:"totalSold"`
	AverageProfit       decimal.Decimal `json:"averageProfit"`
	WeeklyRevenue       decimal.Decimal `json:"weeklyRevenue"`
	PreviousWeekRevenue decimal.Decimal `json:"previousWeekRevenue"`
	MonthlyRevenue      decimal.Decimal `json:"monthlyRevenue"`
	YearlyRevenue       decimal.Decimal `json:"yearlyRevenue"`
	WeeklyGrowth        decimal.Decimal `json:"weeklyGrowth"` // percent
	Windows             Windows         `json:"windows"`
}

// Windows holds the boundaries used to compute the windowed revenues.
type Windows struct {
	WeekStart         time.Time `json:"weekStart"`
	PreviousWeekStart time.Time `json:"previousWeekStart"`
	MonthStart        time.Time `json:"monthStart"`
	YearStart         time.Time `json:"yearStart"`
}

// Period selects one of the revenue windows.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod converts user input into a Period.
func ParsePeriod(value string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(value))); p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown period %q", ErrInvalidInput, value)
}

// RevenueFor returns the revenue of the window selected by p.
func (a Analytics) RevenueFor(p Period) decimal.Decimal {
	switch p {
	case PeriodMonth:
		return a.MonthlyRevenue
	case PeriodYear:
		return a.YearlyRevenue
	default:
		return a.WeeklyRevenue
	}
}
