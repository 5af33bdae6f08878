package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Ramsey-B/clover/pkg/models"
)

// SubmissionRepo persists dashboard form submissions.
type SubmissionRepo interface {
	Create(ctx context.Context, submission *models.Submission) error
	UpdatePayload(ctx context.Context, id uuid.UUID, payload map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPage(ctx context.Context, page models.SubmissionPage, limit int) ([]models.Submission, error)
	ListCreatedSince(ctx context.Context, since time.Time) ([]models.Submission, error)
}

// InventoryRepo persists inventory items.
type InventoryRepo interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.InventoryItem, error)
	GetStock(ctx context.Context, id uuid.UUID) (int, models.InventoryStatus, error)
	UpdateStock(ctx context.Context, id uuid.UUID, quantity int, status models.InventoryStatus) error
}

// ForecastRepo persists delivery forecast rows.
type ForecastRepo interface {
	Create(ctx context.Context, item *models.ForecastItem) error
	Update(ctx context.Context, item *models.ForecastItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit int) ([]models.ForecastItem, error)
}

// SaleRepo appends to and reads the sales ledger.
type SaleRepo interface {
	Create(ctx context.Context, sale *models.SaleRecord) error
	ListCreatedSince(ctx context.Context, since time.Time) ([]models.SaleRecord, error)
}
