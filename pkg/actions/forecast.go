package actions

import (
	"context"
	"strings"

	"github.com/google/uuid"

	appctx "github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/forms"
	"github.com/Ramsey-B/clover/pkg/metrics"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

const forecastForm = "forecast"

var forecastTableName = models.ForecastItem{}.TableName()

// AddForecastItem handles the delivery forecast add form.
func (s *Service) AddForecastItem(ctx context.Context, f forms.Fields) Result {
	ctx, span := tracing.StartSpan(ctx, "actions.Service.AddForecastItem")
	defer span.End()

	input, fieldErrors := forms.ValidateForecast(f)
	if len(fieldErrors) > 0 {
		metrics.ActionsTotal.WithLabelValues(forecastForm, metrics.OutcomeInvalid).Inc()
		return Invalid(msgFixAndRetry, fieldErrors)
	}

	item := &models.ForecastItem{
		ProjectName: input.ProjectName,
		Owner:       input.Owner,
		DueDate:     input.DueDate,
		Status:      input.Status,
		Risk:        input.Risk,
		Notes:       input.Notes,
	}

	if err := s.forecast.Create(ctx, item); err != nil {
		metrics.StoreFailuresTotal.WithLabelValues(forecastTableName).Inc()
		metrics.ActionsTotal.WithLabelValues(forecastForm, metrics.OutcomeFailed).Inc()
		return Failure("Unable to save the forecast item.")
	}

	metrics.ActionsTotal.WithLabelValues(forecastForm, metrics.OutcomeOK).Inc()
	s.emitter.EmitRecordEvent(ctx, "forecast.created", "forecast_item", item.ID.String(), appctx.GetUserID(ctx), item)
	return Success("Forecast item added.")
}

// UpdateForecastItem handles the delivery forecast edit form.
func (s *Service) UpdateForecastItem(ctx context.Context, id string, f forms.Fields) Result {
	ctx, span := tracing.StartSpan(ctx, "actions.Service.UpdateForecastItem")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return Invalid(msgFixAndRetry, map[string]string{"id": "Missing id."})
	}

	itemID, err := uuid.Parse(id)
	if err != nil {
		return Failure("Unable to update the forecast item.")
	}

	input, fieldErrors := forms.ValidateForecast(f)
	if len(fieldErrors) > 0 {
		metrics.ActionsTotal.WithLabelValues(forecastForm, metrics.OutcomeInvalid).Inc()
		return Invalid(msgFixAndRetry, fieldErrors)
	}

	item := &models.ForecastItem{
		ID:          itemID,
		ProjectName: input.ProjectName,
		Owner:       input.Owner,
		DueDate:     input.DueDate,
		Status:      input.Status,
		Risk:        input.Risk,
		Notes:       input.Notes,
	}

	if err := s.forecast.Update(ctx, item); err != nil {
		metrics.StoreFailuresTotal.WithLabelValues(forecastTableName).Inc()
		metrics.ActionsTotal.WithLabelValues(forecastForm, metrics.OutcomeFailed).Inc()
		return Failure("Unable to update the forecast item.")
	}

	metrics.ActionsTotal.WithLabelValues(forecastForm, metrics.OutcomeOK).Inc()
	s.emitter.EmitRecordEvent(ctx, "forecast.updated", "forecast_item", id, appctx.GetUserID(ctx), item)
	return Success("Forecast item updated.")
}

// DeleteForecastItem removes a forecast row by id.
func (s *Service) DeleteForecastItem(ctx context.Context, id string) Result {
	ctx, span := tracing.StartSpan(ctx, "actions.Service.DeleteForecastItem")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return Invalid(msgFixAndRetry, map[string]string{"id": "Missing id."})
	}

	itemID, err := uuid.Parse(id)
	if err != nil {
		return Failure("Unable to delete the forecast item.")
	}

	if err := s.forecast.Delete(ctx, itemID); err != nil {
		metrics.StoreFailuresTotal.WithLabelValues(forecastTableName).Inc()
		return Failure("Unable to delete the forecast item.")
	}

	s.emitter.EmitRecordEvent(ctx, "forecast.deleted", "forecast_item", id, appctx.GetUserID(ctx), nil)
	return Success("Forecast item deleted.")
}
