// Package analytics reduces already-fetched row sets into display-ready
// metrics. Every function is pure and tolerates empty or nil inputs.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ramsey-B/clover/pkg/models"
)

// RestockThreshold is the quantity at or below which an item is flagged for
// restocking.
const RestockThreshold = 5

// TrendWindowSize is how many leading forecast rows feed the cycle-time trend.
const TrendWindowSize = 8

var dayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Point is one labeled value in a chart series.
type Point struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// StatusSlice is one status share of the pipeline-health mix.
type StatusSlice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// MetricCard is one headline number with supporting note.
type MetricCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Note  string `json:"note"`
}

// utcDay truncates t to its UTC calendar date.
func utcDay(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), t.UTC().Month(), t.UTC().Day(), 0, 0, 0, 0, time.UTC)
}

// IntakeWindowStart returns the start of the trailing 7-day window ending on
// now's UTC date. Submissions created at or after this instant belong to the
// weekly intake chart.
func IntakeWindowStart(now time.Time) time.Time {
	return utcDay(now).AddDate(0, 0, -6)
}

// WeeklyIntake buckets submissions by UTC date into the trailing 7-day window,
// one slot per day in chronological order. Slots are pre-seeded to zero, so an
// empty submission set still yields all seven days.
func WeeklyIntake(now time.Time, submissions []models.Submission) []Point {
	start := IntakeWindowStart(now)

	counts := map[time.Time]int{}
	days := make([]time.Time, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		days[i] = day
		counts[day] = 0
	}

	for _, sub := range submissions {
		key := utcDay(sub.CreatedAt)
		if _, ok := counts[key]; ok {
			counts[key]++
		}
	}

	points := make([]Point, 7)
	for i, day := range days {
		points[i] = Point{
			Label: dayLabels[int(day.Weekday())],
			Value: counts[day],
		}
	}
	return points
}

// daysBetween rounds the span between two instants to whole days.
func daysBetween(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Hours() / 24))
}

// CycleTimeTrend computes the cycle-time series over the leading trend window
// of forecast rows, preserving row order. Negative spans clamp to zero.
func CycleTimeTrend(rows []models.ForecastItem) []int {
	window := rows
	if len(window) > TrendWindowSize {
		window = window[:TrendWindowSize]
	}

	trend := make([]int, 0, len(window))
	for _, row := range window {
		days := daysBetween(row.CreatedAt, row.DueDate)
		if days < 0 {
			days = 0
		}
		trend = append(trend, days)
	}
	return trend
}

// TrendPolyline maps a trend series onto a fixed 280x80 coordinate box,
// normalizing values between the series min and max. Fewer than two points
// render as a flat baseline.
func TrendPolyline(trend []int) string {
	if len(trend) < 2 {
		return "0,80 280,80"
	}

	maxTrend := 1
	minTrend := 0
	for _, v := range trend {
		if v > maxTrend {
			maxTrend = v
		}
		if v < minTrend {
			minTrend = v
		}
	}

	spread := float64(maxTrend - minTrend)
	if spread == 0 {
		spread = 1
	}

	points := make([]string, len(trend))
	for i, v := range trend {
		x := float64(i) / float64(len(trend)-1) * 280
		normalized := float64(v-minTrend) / spread
		y := 80 - normalized*70
		points[i] = strconv.FormatFloat(x, 'f', -1, 64) + "," + strconv.FormatFloat(y, 'f', -1, 64)
	}
	return strings.Join(points, " ")
}

var statusDisplay = []struct {
	status models.ForecastStatus
	label  string
	color  string
}{
	{models.ForecastStatusPlanned, "Planned", "#4dabf7"},
	{models.ForecastStatusInProgress, "In progress", "#22b8cf"},
	{models.ForecastStatusAtRisk, "At risk", "#f59f00"},
	{models.ForecastStatusDelivered, "Delivered", "#74c0fc"},
}

// StatusMix counts forecast rows per status and converts each to a percentage
// of the total. Rows with a status outside the fixed set are ignored. An empty
// set yields 0% across the board.
func StatusMix(rows []models.ForecastItem) []StatusSlice {
	counts := map[models.ForecastStatus]int{}
	for _, row := range rows {
		counts[row.Status]++
	}

	total := len(rows)
	if total == 0 {
		total = 1
	}

	mix := make([]StatusSlice, len(statusDisplay))
	for i, display := range statusDisplay {
		mix[i] = StatusSlice{
			Label: display.label,
			Value: int(math.Round(float64(counts[display.status]) / float64(total) * 100)),
			Color: display.color,
		}
	}
	return mix
}

// SalesSummary is the 30-day sales and restock rollup.
type SalesSummary struct {
	TotalSold    int                    `json:"total_sold"`
	TopItemName  string                 `json:"top_item_name"`
	TopItemCount int                    `json:"top_item_count"`
	RestockItems []models.InventoryItem `json:"restock_items"`
	RestockCount int                    `json:"restock_count"`
}

// SummarizeSales totals sold units, resolves the highest-selling item to its
// display name ("--" when unresolved), and picks the three lowest-quantity
// items at or below the restock threshold.
func SummarizeSales(sales []models.SaleRecord, inventory []models.InventoryItem) SalesSummary {
	summary := SalesSummary{TopItemName: "--"}

	byItem := map[uuid.UUID]int{}
	for _, sale := range sales {
		summary.TotalSold += sale.Quantity
		byItem[sale.ItemID] += sale.Quantity
	}

	var topItemID uuid.UUID
	for itemID, count := range byItem {
		if count > summary.TopItemCount {
			topItemID = itemID
			summary.TopItemCount = count
		}
	}

	names := map[uuid.UUID]string{}
	for _, item := range inventory {
		names[item.ID] = item.Name
	}
	if name, ok := names[topItemID]; ok && summary.TopItemCount > 0 {
		summary.TopItemName = name
	}

	restock := make([]models.InventoryItem, 0)
	for _, item := range inventory {
		if item.Quantity <= RestockThreshold {
			restock = append(restock, item)
		}
	}
	summary.RestockCount = len(restock)

	sort.SliceStable(restock, func(i, j int) bool {
		return restock[i].Quantity < restock[j].Quantity
	})
	if len(restock) > 3 {
		restock = restock[:3]
	}
	summary.RestockItems = restock

	return summary
}

// MetricCards renders the analytics headline cards from a sales summary.
func MetricCards(summary SalesSummary) []MetricCard {
	topNote := "No sales yet"
	if summary.TopItemCount > 0 {
		topNote = fmt.Sprintf("%d units", summary.TopItemCount)
	}

	return []MetricCard{
		{
			Label: "Items sold (30d)",
			Value: strconv.Itoa(summary.TotalSold),
			Note:  "Based on shop sales",
		},
		{
			Label: "Most sold item",
			Value: summary.TopItemName,
			Note:  topNote,
		},
		{
			Label: "Needs restock",
			Value: strconv.Itoa(summary.RestockCount),
			Note:  fmt.Sprintf("Qty <= %d", RestockThreshold),
		},
	}
}
