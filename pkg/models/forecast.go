package models

import (
	"time"

	"github.com/google/uuid"
)

// ForecastStatus is the delivery state of a forecast row.
type ForecastStatus string

const (
	ForecastStatusPlanned    ForecastStatus = "planned"
	ForecastStatusInProgress ForecastStatus = "in_progress"
	ForecastStatusAtRisk     ForecastStatus = "at_risk"
	ForecastStatusDelivered  ForecastStatus = "delivered"
)

// ForecastStatuses is the fixed status set, in display order.
var ForecastStatuses = []ForecastStatus{
	ForecastStatusPlanned,
	ForecastStatusInProgress,
	ForecastStatusAtRisk,
	ForecastStatusDelivered,
}

// ForecastRisk is the risk grade of a forecast row.
type ForecastRisk string

const (
	ForecastRiskLow    ForecastRisk = "low"
	ForecastRiskMedium ForecastRisk = "medium"
	ForecastRiskHigh   ForecastRisk = "high"
)

// ForecastItem is one tracked delivery in the forecast table.
type ForecastItem struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	ProjectName string         `db:"project_name" json:"project_name"`
	Owner       string         `db:"owner" json:"owner"`
	DueDate     time.Time      `db:"due_date" json:"due_date"`
	Status      ForecastStatus `db:"status" json:"status"`
	Risk        ForecastRisk   `db:"risk" json:"risk"`
	Notes       *string        `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// TableName returns the database table name
func (ForecastItem) TableName() string {
	return "delivery_forecast"
}
