package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/resaletracker/internal/domain/models"
	"github.com/mamadbah2/resaletracker/internal/service/reporting"
)

// AnalyticsService computes the analytics report.
type AnalyticsService interface {
	CurrentAnalytics(ctx context.Context) (models.Analytics, error)
}

// ReportRunner triggers the scheduled reports on demand.
type ReportRunner interface {
	SendWeeklyReport(ctx context.Context) error
	ExportSold(ctx context.Context) (int, error)
}

// AnalyticsHandler serves analytics and report endpoints.
type AnalyticsHandler struct {
	analytics AnalyticsService
	reports   ReportRunner
	logger    *zap.Logger
}

// NewAnalyticsHandler constructs the HTTP handler adapter.
func NewAnalyticsHandler(analytics AnalyticsService, reports ReportRunner, logger *zap.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsHandler{analytics: analytics, reports: reports, logger: logger}
}

// Get returns the full report. With ?period=week|month|year the response
// also carries the revenue of the selected window.
func (h *AnalyticsHandler) Get(c *gin.Context) {
	report, err := h.analytics.CurrentAnalytics(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	raw, ok := c.GetQuery("period")
	if !ok {
		c.JSON(http.StatusOK, report)
		return
	}
	period, err := models.ParsePeriod(raw)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"period":    period,
		"revenue":   report.RevenueFor(period),
		"analytics": report,
	})
}

// SendWeekly delivers the weekly summary now.
func (h *AnalyticsHandler) SendWeekly(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	if err := h.reports.SendWeeklyReport(ctx); err != nil {
		h.logger.Error("failed sending weekly report", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send report"})
		return
	}
	c.Status(http.StatusAccepted)
}

// Export writes the sold ledger to the configured spreadsheet now.
func (h *AnalyticsHandler) Export(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Minute)
	defer cancel()

	n, err := h.reports.ExportSold(ctx)
	switch {
	case errors.Is(err, reporting.ErrExportDisabled):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logger.Error("failed exporting sold ledger", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to export"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exported": n})
}
