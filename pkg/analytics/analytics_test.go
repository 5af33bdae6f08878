package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

func TestWeeklyIntake(t *testing.T) {
	// Wednesday 2026-08-26 UTC; window is Thu 20th through Wed 26th.
	now := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)

	t.Run("should yield seven zero slots for no submissions", func(t *testing.T) {
		points := WeeklyIntake(now, nil)

		require.Len(t, points, 7)
		assert.Equal(t, "Thu", points[0].Label)
		assert.Equal(t, "Wed", points[6].Label)
		for _, p := range points {
			assert.Equal(t, 0, p.Value)
		}
	})

	t.Run("should bucket submissions by UTC date", func(t *testing.T) {
		submissions := []models.Submission{
			{CreatedAt: time.Date(2026, 8, 26, 1, 0, 0, 0, time.UTC)},
			{CreatedAt: time.Date(2026, 8, 26, 23, 59, 0, 0, time.UTC)},
			{CreatedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)},
			// Outside the window, must be ignored.
			{CreatedAt: time.Date(2026, 8, 19, 12, 0, 0, 0, time.UTC)},
		}

		points := WeeklyIntake(now, submissions)

		require.Len(t, points, 7)
		assert.Equal(t, 1, points[0].Value)
		assert.Equal(t, 2, points[6].Value)
	})

	t.Run("should bucket a non-UTC timestamp by its UTC date", func(t *testing.T) {
		loc := time.FixedZone("UTC-5", -5*3600)
		submissions := []models.Submission{
			// 22:00 local on the 25th is 03:00 UTC on the 26th.
			{CreatedAt: time.Date(2026, 8, 25, 22, 0, 0, 0, loc)},
		}

		points := WeeklyIntake(now, submissions)

		assert.Equal(t, 1, points[6].Value)
		assert.Equal(t, 0, points[5].Value)
	})
}

func TestCycleTimeTrend(t *testing.T) {
	row := func(created, due time.Time) models.ForecastItem {
		return models.ForecastItem{CreatedAt: created, DueDate: due}
	}
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("should round spans to whole days preserving order", func(t *testing.T) {
		rows := []models.ForecastItem{
			row(base, base.AddDate(0, 0, 3)),
			row(base, base.Add(36*time.Hour)), // 1.5 days rounds to 2
			row(base, base),
		}

		assert.Equal(t, []int{3, 2, 0}, CycleTimeTrend(rows))
	})

	t.Run("should clamp a past-due span to zero", func(t *testing.T) {
		rows := []models.ForecastItem{row(base, base.AddDate(0, 0, -4))}

		assert.Equal(t, []int{0}, CycleTimeTrend(rows))
	})

	t.Run("should cap the window at eight rows", func(t *testing.T) {
		rows := make([]models.ForecastItem, 12)
		for i := range rows {
			rows[i] = row(base, base.AddDate(0, 0, i))
		}

		trend := CycleTimeTrend(rows)

		require.Len(t, trend, TrendWindowSize)
		assert.Equal(t, 7, trend[7])
	})
}

func TestTrendPolyline(t *testing.T) {
	t.Run("should render the flat baseline for under two points", func(t *testing.T) {
		assert.Equal(t, "0,80 280,80", TrendPolyline(nil))
		assert.Equal(t, "0,80 280,80", TrendPolyline([]int{5}))
	})

	t.Run("should span the full box between min and max", func(t *testing.T) {
		// min 0 maps to y=80, max maps to y=10.
		assert.Equal(t, "0,80 280,10", TrendPolyline([]int{0, 7}))
	})

	t.Run("should render equal points on one line", func(t *testing.T) {
		// The min is seeded at zero, so a constant series normalizes to 1.
		polyline := TrendPolyline([]int{4, 4, 4})

		assert.Equal(t, "0,10 140,10 280,10", polyline)
	})
}

func TestStatusMix(t *testing.T) {
	t.Run("should yield all zero percentages for no rows", func(t *testing.T) {
		mix := StatusMix(nil)

		require.Len(t, mix, 4)
		for _, slice := range mix {
			assert.Equal(t, 0, slice.Value)
		}
		assert.Equal(t, "Planned", mix[0].Label)
		assert.Equal(t, "#4dabf7", mix[0].Color)
	})

	t.Run("should round each status share of the total", func(t *testing.T) {
		rows := []models.ForecastItem{
			{Status: models.ForecastStatusPlanned},
			{Status: models.ForecastStatusPlanned},
			{Status: models.ForecastStatusAtRisk},
		}

		mix := StatusMix(rows)

		assert.Equal(t, 67, mix[0].Value)
		assert.Equal(t, 0, mix[1].Value)
		assert.Equal(t, 33, mix[2].Value)
		assert.Equal(t, 0, mix[3].Value)
	})

	t.Run("should ignore rows outside the fixed status set", func(t *testing.T) {
		rows := []models.ForecastItem{
			{Status: models.ForecastStatus("cancelled")},
			{Status: models.ForecastStatusDelivered},
		}

		mix := StatusMix(rows)

		assert.Equal(t, 50, mix[3].Value)
	})
}

func TestSummarizeSales(t *testing.T) {
	mugID := uuid.New()
	bagID := uuid.New()

	t.Run("should fall back to -- with no sales", func(t *testing.T) {
		summary := SummarizeSales(nil, nil)

		assert.Equal(t, 0, summary.TotalSold)
		assert.Equal(t, "--", summary.TopItemName)
		assert.Equal(t, 0, summary.RestockCount)
	})

	t.Run("should total units and resolve the top item", func(t *testing.T) {
		sales := []models.SaleRecord{
			{ItemID: mugID, Quantity: 3},
			{ItemID: bagID, Quantity: 5},
			{ItemID: mugID, Quantity: 4},
		}
		inventory := []models.InventoryItem{
			{ID: mugID, Name: "Mug", Quantity: 20},
			{ID: bagID, Name: "Tote bag", Quantity: 12},
		}

		summary := SummarizeSales(sales, inventory)

		assert.Equal(t, 12, summary.TotalSold)
		assert.Equal(t, "Mug", summary.TopItemName)
		assert.Equal(t, 7, summary.TopItemCount)
	})

	t.Run("should keep -- when the top item is not in inventory", func(t *testing.T) {
		sales := []models.SaleRecord{{ItemID: uuid.New(), Quantity: 2}}

		summary := SummarizeSales(sales, nil)

		assert.Equal(t, 2, summary.TotalSold)
		assert.Equal(t, "--", summary.TopItemName)
	})

	t.Run("should pick the three lowest-quantity restock items", func(t *testing.T) {
		inventory := []models.InventoryItem{
			{Name: "A", Quantity: 5},
			{Name: "B", Quantity: 1},
			{Name: "C", Quantity: 9},
			{Name: "D", Quantity: 3},
			{Name: "E", Quantity: 0},
		}

		summary := SummarizeSales(nil, inventory)

		assert.Equal(t, 4, summary.RestockCount)
		require.Len(t, summary.RestockItems, 3)
		assert.Equal(t, "E", summary.RestockItems[0].Name)
		assert.Equal(t, "B", summary.RestockItems[1].Name)
		assert.Equal(t, "D", summary.RestockItems[2].Name)
	})
}

func TestMetricCards(t *testing.T) {
	t.Run("should note no sales yet", func(t *testing.T) {
		cards := MetricCards(SalesSummary{TopItemName: "--"})

		require.Len(t, cards, 3)
		assert.Equal(t, "Items sold (30d)", cards[0].Label)
		assert.Equal(t, "0", cards[0].Value)
		assert.Equal(t, "--", cards[1].Value)
		assert.Equal(t, "No sales yet", cards[1].Note)
		assert.Equal(t, "Qty <= 5", cards[2].Note)
	})

	t.Run("should show unit counts when sales exist", func(t *testing.T) {
		cards := MetricCards(SalesSummary{
			TotalSold:    12,
			TopItemName:  "Mug",
			TopItemCount: 7,
			RestockCount: 2,
		})

		assert.Equal(t, "12", cards[0].Value)
		assert.Equal(t, "7 units", cards[1].Note)
		assert.Equal(t, "2", cards[2].Value)
	})
}
