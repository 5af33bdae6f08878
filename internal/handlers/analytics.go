package handlers

import (
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/Ramsey-B/clover/pkg/analytics"
	"github.com/Ramsey-B/clover/pkg/metrics"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/repositories"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// salesWindow is how far back the sales summary looks.
const salesWindow = 30 * 24 * time.Hour

// AnalyticsHandler builds the derived-analytics snapshot for the dashboard.
type AnalyticsHandler struct {
	submissions repositories.SubmissionRepo
	inventory   repositories.InventoryRepo
	forecast    repositories.ForecastRepo
	sales       repositories.SaleRepo
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(
	submissions repositories.SubmissionRepo,
	inventory repositories.InventoryRepo,
	forecast repositories.ForecastRepo,
	sales repositories.SaleRepo,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		submissions: submissions,
		inventory:   inventory,
		forecast:    forecast,
		sales:       sales,
	}
}

// SnapshotResponse is the full analytics payload rendered by the dashboard.
type SnapshotResponse struct {
	WeeklyIntake  []analytics.Point       `json:"weekly_intake"`
	CycleTrend    []int                   `json:"cycle_trend"`
	TrendPolyline string                  `json:"trend_polyline"`
	StatusMix     []analytics.StatusSlice `json:"status_mix"`
	Sales         analytics.SalesSummary  `json:"sales"`
	MetricCards   []analytics.MetricCard  `json:"metric_cards"`
	GeneratedAt   time.Time               `json:"generated_at"`
}

// RegisterRoutes registers the analytics routes
func (h *AnalyticsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/analytics", h.Snapshot)
}

// Snapshot handles GET /analytics. The four row sets are fetched concurrently;
// any fetch error fails the whole snapshot rather than rendering partial data.
func (h *AnalyticsHandler) Snapshot(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "handlers.AnalyticsHandler.Snapshot")
	defer span.End()

	start := time.Now()
	now := time.Now()

	var (
		submissions []models.Submission
		inventory   []models.InventoryItem
		forecast    []models.ForecastItem
		sales       []models.SaleRecord
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		submissions, err = h.submissions.ListCreatedSince(groupCtx, analytics.IntakeWindowStart(now))
		return err
	})
	group.Go(func() error {
		var err error
		inventory, err = h.inventory.List(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		forecast, err = h.forecast.List(groupCtx, forecastListLimit)
		return err
	})
	group.Go(func() error {
		var err error
		sales, err = h.sales.ListCreatedSince(groupCtx, now.Add(-salesWindow))
		return err
	})

	if err := group.Wait(); err != nil {
		return err
	}

	trend := analytics.CycleTimeTrend(forecast)
	summary := analytics.SummarizeSales(sales, inventory)

	response := SnapshotResponse{
		WeeklyIntake:  analytics.WeeklyIntake(now, submissions),
		CycleTrend:    trend,
		TrendPolyline: analytics.TrendPolyline(trend),
		StatusMix:     analytics.StatusMix(forecast),
		Sales:         summary,
		MetricCards:   analytics.MetricCards(summary),
		GeneratedAt:   now,
	}

	metrics.AnalyticsDuration.Observe(time.Since(start).Seconds())

	return SuccessResponse(c, response)
}
