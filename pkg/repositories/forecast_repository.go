package repositories

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

const forecastTable = "delivery_forecast"

var forecastStruct = database.NewStruct(new(models.ForecastItem))

// ForecastRepository handles database operations for the delivery forecast
type ForecastRepository struct {
	*Repository
}

// NewForecastRepository creates a new forecast repository
func NewForecastRepository(db database.DB, logger ectologger.Logger) *ForecastRepository {
	return &ForecastRepository{
		Repository: NewRepository(db, logger),
	}
}

// Create inserts a new forecast row
func (r *ForecastRepository) Create(ctx context.Context, item *models.ForecastItem) error {
	ctx, span := tracing.StartSpan(ctx, "ForecastRepository.Create")
	defer span.End()

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(forecastTable).
		Cols("id", "project_name", "owner", "due_date", "status", "risk", "notes", "created_at").
		Values(item.ID, item.ProjectName, item.Owner, item.DueDate, item.Status, item.Risk, item.Notes, sqlbuilder.Raw("NOW()")).
		Returning("created_at")

	query, args := ib.Build()
	err := r.DB().QueryRowContext(ctx, query, args...).Scan(&item.CreatedAt)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"forecast_id": item.ID,
		}).Error("failed to create forecast item")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to create forecast item")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"forecast_id": item.ID,
	}).Debugf("Created %s", forecastTable)
	return nil
}

// Update replaces the editable fields of a forecast row
func (r *ForecastRepository) Update(ctx context.Context, item *models.ForecastItem) error {
	ctx, span := tracing.StartSpan(ctx, "ForecastRepository.Update")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(forecastTable).
		Set(
			ub.Assign("project_name", item.ProjectName),
			ub.Assign("owner", item.Owner),
			ub.Assign("due_date", item.DueDate),
			ub.Assign("status", item.Status),
			ub.Assign("risk", item.Risk),
			ub.Assign("notes", item.Notes),
		).
		Where(ub.Equal("id", item.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"forecast_id": item.ID,
		}).Error("failed to update forecast item")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update forecast item")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"forecast_id": item.ID,
		}).Error("failed to update forecast item")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update forecast item")
	}
	if rows == 0 {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "forecast item %s does not exist", item.ID)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"forecast_id": item.ID,
	}).Debugf("Updated %s", forecastTable)
	return nil
}

// Delete removes a forecast row by ID
func (r *ForecastRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "ForecastRepository.Delete")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom(forecastTable).
		Where(db.Equal("id", id))

	query, args := db.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"forecast_id": id,
		}).Error("failed to delete forecast item")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete forecast item")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"forecast_id": id,
		}).Error("failed to delete forecast item")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete forecast item")
	}
	if rows == 0 {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "forecast item %s does not exist", id)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"forecast_id": id,
	}).Debugf("Deleted %s", forecastTable)
	return nil
}

// List retrieves forecast rows in store order up to the given limit
func (r *ForecastRepository) List(ctx context.Context, limit int) ([]models.ForecastItem, error) {
	ctx, span := tracing.StartSpan(ctx, "ForecastRepository.List")
	defer span.End()

	sb := forecastStruct.SelectFrom(forecastTable)
	sb.Limit(limit)

	query, args := sb.Build()
	var items []models.ForecastItem
	err := r.DB().SelectContext(ctx, &items, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list forecast items")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list forecast items")
	}

	return items, nil
}
