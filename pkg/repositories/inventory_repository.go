package repositories

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

const inventoryTable = "inventory_items"

var inventoryStruct = database.NewStruct(new(models.InventoryItem))

// InventoryRepository handles database operations for inventory items
type InventoryRepository struct {
	*Repository
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db database.DB, logger ectologger.Logger) *InventoryRepository {
	return &InventoryRepository{
		Repository: NewRepository(db, logger),
	}
}

// Create inserts a new inventory item
func (r *InventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	ctx, span := tracing.StartSpan(ctx, "InventoryRepository.Create")
	defer span.End()

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(inventoryTable).
		Cols("id", "name", "sku", "quantity", "location", "status", "notes", "created_at").
		Values(item.ID, item.Name, item.SKU, item.Quantity, item.Location, item.Status, item.Notes, sqlbuilder.Raw("NOW()")).
		Returning("created_at")

	query, args := ib.Build()
	err := r.DB().QueryRowContext(ctx, query, args...).Scan(&item.CreatedAt)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"item_id": item.ID,
			"sku":     item.SKU,
		}).Error("failed to create inventory item")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to create inventory item")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"item_id": item.ID,
		"sku":     item.SKU,
	}).Debugf("Created %s", inventoryTable)
	return nil
}

// Update replaces the editable fields of an inventory item
func (r *InventoryRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	ctx, span := tracing.StartSpan(ctx, "InventoryRepository.Update")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(inventoryTable).
		Set(
			ub.Assign("name", item.Name),
			ub.Assign("sku", item.SKU),
			ub.Assign("quantity", item.Quantity),
			ub.Assign("location", item.Location),
			ub.Assign("status", item.Status),
			ub.Assign("notes", item.Notes),
		).
		Where(ub.Equal("id", item.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"item_id": item.ID,
		}).Error("failed to update inventory item")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update inventory item")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"item_id": item.ID,
		}).Error("failed to update inventory item")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update inventory item")
	}
	if rows == 0 {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "inventory item %s does not exist", item.ID)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"item_id": item.ID,
	}).Debugf("Updated %s", inventoryTable)
	return nil
}

// Delete removes an inventory item by ID
func (r *InventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "InventoryRepository.Delete")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom(inventoryTable).
		Where(db.Equal("id", id))

	query, args := db.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"item_id": id,
		}).Error("failed to delete inventory item")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete inventory item")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"item_id": id,
		}).Error("failed to delete inventory item")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete inventory item")
	}
	if rows == 0 {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "inventory item %s does not exist", id)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"item_id": id,
	}).Debugf("Deleted %s", inventoryTable)
	return nil
}

// List retrieves all inventory items, newest first
func (r *InventoryRepository) List(ctx context.Context) ([]models.InventoryItem, error) {
	ctx, span := tracing.StartSpan(ctx, "InventoryRepository.List")
	defer span.End()

	sb := inventoryStruct.SelectFrom(inventoryTable)
	sb.OrderBy("created_at").Desc()

	query, args := sb.Build()
	var items []models.InventoryItem
	err := r.DB().SelectContext(ctx, &items, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list inventory items")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list inventory items")
	}

	return items, nil
}

// GetStock reads the current quantity and status of an item
func (r *InventoryRepository) GetStock(ctx context.Context, id uuid.UUID) (int, models.InventoryStatus, error) {
	ctx, span := tracing.StartSpan(ctx, "InventoryRepository.GetStock")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("quantity", "status").From(inventoryTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var stock struct {
		Quantity int                    `db:"quantity"`
		Status   models.InventoryStatus `db:"status"`
	}
	err := r.DB().GetContext(ctx, &stock, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", httperror.NewHTTPErrorf(http.StatusNotFound, "inventory item %s does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"item_id": id,
		}).Error("failed to get inventory stock")
		return 0, "", httperror.NewHTTPError(http.StatusInternalServerError, "failed to get inventory stock")
	}

	return stock.Quantity, stock.Status, nil
}

// UpdateStock writes the post-sale quantity and status of an item
func (r *InventoryRepository) UpdateStock(ctx context.Context, id uuid.UUID, quantity int, status models.InventoryStatus) error {
	ctx, span := tracing.StartSpan(ctx, "InventoryRepository.UpdateStock")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(inventoryTable).
		Set(
			ub.Assign("quantity", quantity),
			ub.Assign("status", status),
		).
		Where(ub.Equal("id", id))

	query, args := ub.Build()
	_, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"item_id":  id,
			"quantity": quantity,
		}).Error("failed to update inventory stock")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update inventory stock")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"item_id":  id,
		"quantity": quantity,
		"status":   status,
	}).Debugf("Updated stock on %s", inventoryTable)
	return nil
}
