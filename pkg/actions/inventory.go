package actions

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	appctx "github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/forms"
	"github.com/Ramsey-B/clover/pkg/metrics"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

const inventoryForm = "inventory"

var inventoryTableName = models.InventoryItem{}.TableName()
var salesTableName = models.SaleRecord{}.TableName()

// AddInventoryItem handles the inventory add form. An item submitted at zero
// quantity is stored sold_out regardless of the submitted status.
func (s *Service) AddInventoryItem(ctx context.Context, f forms.Fields) Result {
	ctx, span := tracing.StartSpan(ctx, "actions.Service.AddInventoryItem")
	defer span.End()

	input, fieldErrors := forms.ValidateInventory(f)
	if len(fieldErrors) > 0 {
		metrics.ActionsTotal.WithLabelValues(inventoryForm, metrics.OutcomeInvalid).Inc()
		return Invalid(msgFixAndRetry, fieldErrors)
	}

	item := &models.InventoryItem{
		Name:     input.Name,
		SKU:      input.SKU,
		Location: input.Location,
		Quantity: input.Quantity,
		Status:   models.NormalizeStatus(input.Quantity, input.Status),
		Notes:    input.Notes,
	}

	if err := s.inventory.Create(ctx, item); err != nil {
		metrics.StoreFailuresTotal.WithLabelValues(inventoryTableName).Inc()
		metrics.ActionsTotal.WithLabelValues(inventoryForm, metrics.OutcomeFailed).Inc()
		return Failure("Unable to save the item right now.")
	}

	metrics.ActionsTotal.WithLabelValues(inventoryForm, metrics.OutcomeOK).Inc()
	s.emitter.EmitRecordEvent(ctx, "inventory.created", "inventory_item", item.ID.String(), appctx.GetUserID(ctx), item)
	return Success("Item added.")
}

// UpdateInventoryItem handles the inventory edit form.
func (s *Service) UpdateInventoryItem(ctx context.Context, id string, f forms.Fields) Result {
	ctx, span := tracing.StartSpan(ctx, "actions.Service.UpdateInventoryItem")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return Invalid(msgFixAndRetry, map[string]string{"id": "Missing item id."})
	}

	itemID, err := uuid.Parse(id)
	if err != nil {
		return Failure("Unable to update the item right now.")
	}

	input, fieldErrors := forms.ValidateInventory(f)
	if len(fieldErrors) > 0 {
		metrics.ActionsTotal.WithLabelValues(inventoryForm, metrics.OutcomeInvalid).Inc()
		return Invalid(msgFixAndRetry, fieldErrors)
	}

	item := &models.InventoryItem{
		ID:       itemID,
		Name:     input.Name,
		SKU:      input.SKU,
		Location: input.Location,
		Quantity: input.Quantity,
		Status:   models.NormalizeStatus(input.Quantity, input.Status),
		Notes:    input.Notes,
	}

	if err := s.inventory.Update(ctx, item); err != nil {
		metrics.StoreFailuresTotal.WithLabelValues(inventoryTableName).Inc()
		metrics.ActionsTotal.WithLabelValues(inventoryForm, metrics.OutcomeFailed).Inc()
		return Failure("Unable to update the item right now.")
	}

	metrics.ActionsTotal.WithLabelValues(inventoryForm, metrics.OutcomeOK).Inc()
	s.emitter.EmitRecordEvent(ctx, "inventory.updated", "inventory_item", id, appctx.GetUserID(ctx), item)
	return Success("Item updated.")
}

// DeleteInventoryItem removes an inventory item by id.
func (s *Service) DeleteInventoryItem(ctx context.Context, id string) Result {
	ctx, span := tracing.StartSpan(ctx, "actions.Service.DeleteInventoryItem")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return Invalid(msgFixAndRetry, map[string]string{"id": "Missing item id."})
	}

	itemID, err := uuid.Parse(id)
	if err != nil {
		return Failure("Unable to delete the item right now.")
	}

	if err := s.inventory.Delete(ctx, itemID); err != nil {
		metrics.StoreFailuresTotal.WithLabelValues(inventoryTableName).Inc()
		return Failure("Unable to delete the item right now.")
	}

	s.emitter.EmitRecordEvent(ctx, "inventory.deleted", "inventory_item", id, appctx.GetUserID(ctx), nil)
	return Success("Item deleted.")
}

// SellInventoryItem sells up to amount units of an item. The requested amount
// clamps to available stock, and an item that hits zero is marked sold_out.
// The inventory update and the sales-ledger insert are two independent
// writes: a failed ledger insert still reports overall success with a
// softened message.
func (s *Service) SellInventoryItem(ctx context.Context, id string, amountRaw string) SellResult {
	ctx, span := tracing.StartSpan(ctx, "actions.Service.SellInventoryItem")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return sellFailure("Missing item id.")
	}

	amountRaw = strings.TrimSpace(amountRaw)
	if amountRaw == "" {
		amountRaw = "1"
	}
	amount, err := strconv.Atoi(amountRaw)
	if err != nil || amount <= 0 {
		return sellFailure("Enter a valid amount.")
	}

	itemID, err := uuid.Parse(id)
	if err != nil {
		return sellFailure("Unable to find the item.")
	}

	currentQty, currentStatus, err := s.inventory.GetStock(ctx, itemID)
	if err != nil {
		return sellFailure("Unable to find the item.")
	}

	if currentQty <= 0 {
		return sellFailure("Item is sold out.")
	}

	soldAmount := amount
	if soldAmount > currentQty {
		soldAmount = currentQty
	}
	nextQty := currentQty - soldAmount
	nextStatus := currentStatus
	if nextQty == 0 {
		nextStatus = models.InventoryStatusSoldOut
	}

	if err := s.inventory.UpdateStock(ctx, itemID, nextQty, nextStatus); err != nil {
		metrics.StoreFailuresTotal.WithLabelValues(inventoryTableName).Inc()
		return sellFailure("Unable to process the sale.")
	}

	metrics.UnitsSoldTotal.Add(float64(soldAmount))

	sale := &models.SaleRecord{
		ItemID:   itemID,
		Quantity: soldAmount,
	}
	saleErr := s.sales.Create(ctx, sale)
	if saleErr != nil {
		metrics.StoreFailuresTotal.WithLabelValues(salesTableName).Inc()
		s.logger.WithContext(ctx).WithError(saleErr).WithFields(map[string]any{
			"item_id":     id,
			"sold_amount": soldAmount,
		}).Warn("sale ledger insert failed after inventory update; analytics will lag")
	} else {
		s.emitter.EmitRecordEvent(ctx, "sale.recorded", "sale", sale.ID.String(), appctx.GetUserID(ctx), sale)
	}

	message := "Sale recorded."
	switch {
	case saleErr != nil:
		message = "Sale recorded (analytics pending)."
	case nextQty == 0:
		message = "Marked sold out."
	}

	return SellResult{
		Result:   Success(message),
		Quantity: &nextQty,
		Status:   &nextStatus,
	}
}
