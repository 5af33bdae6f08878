package repositories

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

const salesTable = "inventory_sales"

var saleStruct = database.NewStruct(new(models.SaleRecord))

// SaleRepository handles database operations for the sales ledger
type SaleRepository struct {
	*Repository
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db database.DB, logger ectologger.Logger) *SaleRepository {
	return &SaleRepository{
		Repository: NewRepository(db, logger),
	}
}

// Create appends a sale to the ledger
func (r *SaleRepository) Create(ctx context.Context, sale *models.SaleRecord) error {
	ctx, span := tracing.StartSpan(ctx, "SaleRepository.Create")
	defer span.End()

	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(salesTable).
		Cols("id", "item_id", "quantity", "created_at").
		Values(sale.ID, sale.ItemID, sale.Quantity, sqlbuilder.Raw("NOW()")).
		Returning("created_at")

	query, args := ib.Build()
	err := r.DB().QueryRowContext(ctx, query, args...).Scan(&sale.CreatedAt)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"item_id":  sale.ItemID,
			"quantity": sale.Quantity,
		}).Error("failed to create sale record")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to create sale record")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"sale_id": sale.ID,
		"item_id": sale.ItemID,
	}).Debugf("Created %s", salesTable)
	return nil
}

// ListCreatedSince retrieves sales recorded at or after the given instant
func (r *SaleRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]models.SaleRecord, error) {
	ctx, span := tracing.StartSpan(ctx, "SaleRepository.ListCreatedSince")
	defer span.End()

	sb := saleStruct.SelectFrom(salesTable)
	sb.Where(sb.GreaterEqualThan("created_at", since))

	query, args := sb.Build()
	var sales []models.SaleRecord
	err := r.DB().SelectContext(ctx, &sales, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list sale records")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list sale records")
	}

	return sales, nil
}
