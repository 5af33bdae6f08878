package actions

import (
	"context"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appctx "github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/forms"
	"github.com/Ramsey-B/clover/pkg/models"
)

func getTestLogger() ectologger.Logger {
	zapLogger, _ := zap.NewDevelopment()
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

type fakeSubmissionRepo struct {
	createCalls  int
	updateCalls  int
	deleteCalls  int
	lastCreated  *models.Submission
	lastPayload  map[string]any
	failCreate   error
	failUpdate   error
	failDelete   error
}

func (f *fakeSubmissionRepo) Create(_ context.Context, submission *models.Submission) error {
	f.createCalls++
	if f.failCreate != nil {
		return f.failCreate
	}
	submission.ID = uuid.New()
	f.lastCreated = submission
	return nil
}

func (f *fakeSubmissionRepo) UpdatePayload(_ context.Context, _ uuid.UUID, payload map[string]any) error {
	f.updateCalls++
	if f.failUpdate != nil {
		return f.failUpdate
	}
	f.lastPayload = payload
	return nil
}

func (f *fakeSubmissionRepo) Delete(_ context.Context, _ uuid.UUID) error {
	f.deleteCalls++
	return f.failDelete
}

func (f *fakeSubmissionRepo) ListByPage(_ context.Context, _ models.SubmissionPage, _ int) ([]models.Submission, error) {
	return nil, nil
}

func (f *fakeSubmissionRepo) ListCreatedSince(_ context.Context, _ time.Time) ([]models.Submission, error) {
	return nil, nil
}

type fakeInventoryRepo struct {
	createCalls      int
	updateCalls      int
	deleteCalls      int
	updateStockCalls int
	lastCreated      *models.InventoryItem
	lastUpdated      *models.InventoryItem
	stockQty         int
	stockStatus      models.InventoryStatus
	lastStockQty     int
	lastStockStatus  models.InventoryStatus
	failCreate       error
	failGetStock     error
	failUpdateStock  error
}

func (f *fakeInventoryRepo) Create(_ context.Context, item *models.InventoryItem) error {
	f.createCalls++
	if f.failCreate != nil {
		return f.failCreate
	}
	item.ID = uuid.New()
	f.lastCreated = item
	return nil
}

func (f *fakeInventoryRepo) Update(_ context.Context, item *models.InventoryItem) error {
	f.updateCalls++
	f.lastUpdated = item
	return nil
}

func (f *fakeInventoryRepo) Delete(_ context.Context, _ uuid.UUID) error {
	f.deleteCalls++
	return nil
}

func (f *fakeInventoryRepo) List(_ context.Context) ([]models.InventoryItem, error) {
	return nil, nil
}

func (f *fakeInventoryRepo) GetStock(_ context.Context, _ uuid.UUID) (int, models.InventoryStatus, error) {
	if f.failGetStock != nil {
		return 0, "", f.failGetStock
	}
	return f.stockQty, f.stockStatus, nil
}

func (f *fakeInventoryRepo) UpdateStock(_ context.Context, _ uuid.UUID, quantity int, status models.InventoryStatus) error {
	f.updateStockCalls++
	if f.failUpdateStock != nil {
		return f.failUpdateStock
	}
	f.lastStockQty = quantity
	f.lastStockStatus = status
	return nil
}

type fakeForecastRepo struct {
	createCalls int
	updateCalls int
	deleteCalls int
	lastCreated *models.ForecastItem
	failCreate  error
}

func (f *fakeForecastRepo) Create(_ context.Context, item *models.ForecastItem) error {
	f.createCalls++
	if f.failCreate != nil {
		return f.failCreate
	}
	item.ID = uuid.New()
	f.lastCreated = item
	return nil
}

func (f *fakeForecastRepo) Update(_ context.Context, _ *models.ForecastItem) error {
	f.updateCalls++
	return nil
}

func (f *fakeForecastRepo) Delete(_ context.Context, _ uuid.UUID) error {
	f.deleteCalls++
	return nil
}

func (f *fakeForecastRepo) List(_ context.Context, _ int) ([]models.ForecastItem, error) {
	return nil, nil
}

type fakeSaleRepo struct {
	createCalls int
	lastSale    *models.SaleRecord
	failCreate  error
}

func (f *fakeSaleRepo) Create(_ context.Context, sale *models.SaleRecord) error {
	f.createCalls++
	if f.failCreate != nil {
		return f.failCreate
	}
	sale.ID = uuid.New()
	f.lastSale = sale
	return nil
}

func (f *fakeSaleRepo) ListCreatedSince(_ context.Context, _ time.Time) ([]models.SaleRecord, error) {
	return nil, nil
}

type harness struct {
	service     *Service
	submissions *fakeSubmissionRepo
	inventory   *fakeInventoryRepo
	forecast    *fakeForecastRepo
	sales       *fakeSaleRepo
}

func newHarness() *harness {
	h := &harness{
		submissions: &fakeSubmissionRepo{},
		inventory:   &fakeInventoryRepo{},
		forecast:    &fakeForecastRepo{},
		sales:       &fakeSaleRepo{},
	}
	h.service = NewService(h.submissions, h.inventory, h.forecast, h.sales, nil, getTestLogger())
	return h
}

var errStore = assert.AnError

func validIntake() forms.Fields {
	return forms.Fields{
		"fullName":  "Ada Vendor",
		"workEmail": "ada@acme.io",
		"company":   "Acme",
		"summary":   "New supplier onboarding",
	}
}

func TestSubmitIntake(t *testing.T) {
	t.Run("should not touch the store when validation fails", func(t *testing.T) {
		h := newHarness()

		result := h.service.SubmitIntake(context.Background(), forms.Fields{"workEmail": "bad"})

		assert.False(t, result.OK)
		assert.Equal(t, "Fix the highlighted fields and resubmit.", result.Message)
		assert.Equal(t, "Enter a valid email.", result.FieldErrors["workEmail"])
		assert.Equal(t, 0, h.submissions.createCalls)
	})

	t.Run("should persist the normalized payload with the requesting user", func(t *testing.T) {
		h := newHarness()
		ctx := appctx.SetUserID(context.Background(), "user-7")

		result := h.service.SubmitIntake(ctx, validIntake())

		require.True(t, result.OK)
		assert.Equal(t, "Submission saved.", result.Message)
		assert.Empty(t, result.FieldErrors)
		require.NotNil(t, h.submissions.lastCreated)
		assert.Equal(t, models.PageIntake, h.submissions.lastCreated.Page)
		require.NotNil(t, h.submissions.lastCreated.UserID)
		assert.Equal(t, "user-7", *h.submissions.lastCreated.UserID)
		assert.Equal(t, "Ada Vendor", h.submissions.lastCreated.Payload.Data["fullName"])
	})

	t.Run("should report a generic failure when the insert fails", func(t *testing.T) {
		h := newHarness()
		h.submissions.failCreate = errStore

		result := h.service.SubmitIntake(context.Background(), validIntake())

		assert.False(t, result.OK)
		assert.Equal(t, "Unable to save right now. Please try again.", result.Message)
		assert.Empty(t, result.FieldErrors)
	})
}

func TestSubmitOpsRequest(t *testing.T) {
	t.Run("should collect every missing field before writing", func(t *testing.T) {
		h := newHarness()

		result := h.service.SubmitOpsRequest(context.Background(), forms.Fields{})

		assert.False(t, result.OK)
		assert.Len(t, result.FieldErrors, 4)
		assert.Equal(t, 0, h.submissions.createCalls)
	})

	t.Run("should persist a complete request", func(t *testing.T) {
		h := newHarness()

		result := h.service.SubmitOpsRequest(context.Background(), forms.Fields{
			"team":     "Fulfillment",
			"priority": "high",
			"dueDate":  "2026-09-01",
			"request":  "Extra shelving",
		})

		require.True(t, result.OK)
		assert.Equal(t, models.PageOps, h.submissions.lastCreated.Page)
		assert.Nil(t, h.submissions.lastCreated.UserID)
	})
}

func TestSubmitRiskReview(t *testing.T) {
	h := newHarness()

	result := h.service.SubmitRiskReview(context.Background(), forms.Fields{
		"area":       "Receiving",
		"level":      "medium",
		"impact":     "Delayed intake",
		"mitigation": "Second dock slot",
	})

	require.True(t, result.OK)
	assert.Equal(t, models.PageRisk, h.submissions.lastCreated.Page)
}

func TestUpdateSubmission(t *testing.T) {
	id := uuid.NewString()

	t.Run("should fail on missing metadata without a store call", func(t *testing.T) {
		h := newHarness()

		result := h.service.UpdateSubmission(context.Background(), "", "intake", forms.Fields{})

		assert.False(t, result.OK)
		assert.Equal(t, "Missing submission metadata.", result.Message)
		assert.Equal(t, 0, h.submissions.updateCalls)
	})

	t.Run("should reject an unknown page", func(t *testing.T) {
		h := newHarness()

		result := h.service.UpdateSubmission(context.Background(), id, "settings", forms.Fields{})

		assert.False(t, result.OK)
		assert.Equal(t, "Unknown submission page.", result.FieldErrors["page"])
		assert.Equal(t, 0, h.submissions.updateCalls)
	})

	t.Run("should skip the write entirely on any field error", func(t *testing.T) {
		h := newHarness()

		result := h.service.UpdateSubmission(context.Background(), id, "ops", forms.Fields{
			"team":     "Fulfillment",
			"priority": "",
			"dueDate":  "2026-09-01",
			"request":  "Extra shelving",
		})

		assert.False(t, result.OK)
		assert.Equal(t, "This field is required.", result.FieldErrors["priority"])
		assert.Equal(t, 0, h.submissions.updateCalls)
	})

	t.Run("should replace the payload when every field passes", func(t *testing.T) {
		h := newHarness()

		result := h.service.UpdateSubmission(context.Background(), id, "intake", forms.Fields{
			"fullName":  "Ada Vendor",
			"workEmail": "ada@acme.io",
			"company":   "Acme",
			"summary":   "Revised summary",
			"budget":    "900",
		})

		require.True(t, result.OK)
		assert.Equal(t, "Submission updated.", result.Message)
		assert.Equal(t, "Revised summary", h.submissions.lastPayload["summary"])
		assert.Equal(t, 900.0, h.submissions.lastPayload["budget"])
	})
}

func TestDeleteSubmission(t *testing.T) {
	t.Run("should fail on a blank id without a store call", func(t *testing.T) {
		h := newHarness()

		result := h.service.DeleteSubmission(context.Background(), "  ")

		assert.False(t, result.OK)
		assert.Equal(t, "Missing submission id.", result.Message)
		assert.Equal(t, 0, h.submissions.deleteCalls)
	})

	t.Run("should delete by id", func(t *testing.T) {
		h := newHarness()

		result := h.service.DeleteSubmission(context.Background(), uuid.NewString())

		require.True(t, result.OK)
		assert.Equal(t, "Submission deleted.", result.Message)
		assert.Equal(t, 1, h.submissions.deleteCalls)
	})
}

func TestAddInventoryItem(t *testing.T) {
	t.Run("should store sold_out when quantity is zero", func(t *testing.T) {
		h := newHarness()

		result := h.service.AddInventoryItem(context.Background(), forms.Fields{
			"name":     "Mug",
			"sku":      "MUG-1",
			"location": "A1",
			"quantity": "0",
			"status":   "active",
		})

		require.True(t, result.OK)
		assert.Equal(t, models.InventoryStatusSoldOut, h.inventory.lastCreated.Status)
	})

	t.Run("should reset sold_out to active when stock exists", func(t *testing.T) {
		h := newHarness()

		result := h.service.AddInventoryItem(context.Background(), forms.Fields{
			"name":     "Mug",
			"sku":      "MUG-1",
			"location": "A1",
			"quantity": "5",
			"status":   "sold_out",
		})

		require.True(t, result.OK)
		assert.Equal(t, models.InventoryStatusActive, h.inventory.lastCreated.Status)
	})

	t.Run("should not write on validation failure", func(t *testing.T) {
		h := newHarness()

		result := h.service.AddInventoryItem(context.Background(), forms.Fields{"quantity": "-1"})

		assert.False(t, result.OK)
		assert.Equal(t, 0, h.inventory.createCalls)
	})

	t.Run("should report a generic failure on a store error", func(t *testing.T) {
		h := newHarness()
		h.inventory.failCreate = errStore

		result := h.service.AddInventoryItem(context.Background(), forms.Fields{
			"name":     "Mug",
			"sku":      "MUG-1",
			"location": "A1",
			"quantity": "5",
		})

		assert.False(t, result.OK)
		assert.Equal(t, "Unable to save the item right now.", result.Message)
	})
}

func TestUpdateInventoryItem(t *testing.T) {
	t.Run("should flag a missing id without a store call", func(t *testing.T) {
		h := newHarness()

		result := h.service.UpdateInventoryItem(context.Background(), "", forms.Fields{})

		assert.False(t, result.OK)
		assert.Equal(t, "Missing item id.", result.FieldErrors["id"])
		assert.Equal(t, 0, h.inventory.updateCalls)
	})

	t.Run("should normalize status on update too", func(t *testing.T) {
		h := newHarness()

		result := h.service.UpdateInventoryItem(context.Background(), uuid.NewString(), forms.Fields{
			"name":     "Mug",
			"sku":      "MUG-1",
			"location": "A1",
			"quantity": "0",
			"status":   "backorder",
		})

		require.True(t, result.OK)
		assert.Equal(t, models.InventoryStatusSoldOut, h.inventory.lastUpdated.Status)
	})
}

func TestDeleteInventoryItem(t *testing.T) {
	t.Run("should flag a missing id without a store call", func(t *testing.T) {
		h := newHarness()

		result := h.service.DeleteInventoryItem(context.Background(), "")

		assert.False(t, result.OK)
		assert.Equal(t, "Missing item id.", result.FieldErrors["id"])
		assert.Equal(t, 0, h.inventory.deleteCalls)
	})

	t.Run("should delete by id", func(t *testing.T) {
		h := newHarness()

		result := h.service.DeleteInventoryItem(context.Background(), uuid.NewString())

		require.True(t, result.OK)
		assert.Equal(t, "Item deleted.", result.Message)
	})
}

func TestSellInventoryItem(t *testing.T) {
	itemID := uuid.NewString()

	t.Run("should decrement stock and record the sale", func(t *testing.T) {
		h := newHarness()
		h.inventory.stockQty = 5
		h.inventory.stockStatus = models.InventoryStatusActive

		result := h.service.SellInventoryItem(context.Background(), itemID, "2")

		require.True(t, result.OK)
		assert.Equal(t, "Sale recorded.", result.Message)
		assert.Equal(t, 3, h.inventory.lastStockQty)
		assert.Equal(t, models.InventoryStatusActive, h.inventory.lastStockStatus)
		require.NotNil(t, result.Quantity)
		assert.Equal(t, 3, *result.Quantity)
		require.NotNil(t, h.sales.lastSale)
		assert.Equal(t, 2, h.sales.lastSale.Quantity)
	})

	t.Run("should default the amount to one", func(t *testing.T) {
		h := newHarness()
		h.inventory.stockQty = 5
		h.inventory.stockStatus = models.InventoryStatusActive

		result := h.service.SellInventoryItem(context.Background(), itemID, "")

		require.True(t, result.OK)
		assert.Equal(t, 4, h.inventory.lastStockQty)
	})

	t.Run("should reject a non-positive amount", func(t *testing.T) {
		h := newHarness()

		result := h.service.SellInventoryItem(context.Background(), itemID, "0")

		assert.False(t, result.OK)
		assert.Equal(t, "Enter a valid amount.", result.Message)
		assert.Equal(t, 0, h.inventory.updateStockCalls)
	})

	t.Run("should refuse to sell a sold-out item without writing", func(t *testing.T) {
		h := newHarness()
		h.inventory.stockQty = 0
		h.inventory.stockStatus = models.InventoryStatusSoldOut

		result := h.service.SellInventoryItem(context.Background(), itemID, "1")

		assert.False(t, result.OK)
		assert.Equal(t, "Item is sold out.", result.Message)
		assert.Equal(t, 0, h.inventory.updateStockCalls)
		assert.Equal(t, 0, h.sales.createCalls)
	})

	t.Run("should clamp the amount to available stock and mark sold out", func(t *testing.T) {
		h := newHarness()
		h.inventory.stockQty = 3
		h.inventory.stockStatus = models.InventoryStatusActive

		result := h.service.SellInventoryItem(context.Background(), itemID, "10")

		require.True(t, result.OK)
		assert.Equal(t, "Marked sold out.", result.Message)
		assert.Equal(t, 0, h.inventory.lastStockQty)
		assert.Equal(t, models.InventoryStatusSoldOut, h.inventory.lastStockStatus)
		assert.Equal(t, 3, h.sales.lastSale.Quantity)
		require.NotNil(t, result.Status)
		assert.Equal(t, models.InventoryStatusSoldOut, *result.Status)
	})

	t.Run("should soften the message when the ledger insert fails", func(t *testing.T) {
		h := newHarness()
		h.inventory.stockQty = 5
		h.inventory.stockStatus = models.InventoryStatusActive
		h.sales.failCreate = errStore

		result := h.service.SellInventoryItem(context.Background(), itemID, "2")

		require.True(t, result.OK)
		assert.Equal(t, "Sale recorded (analytics pending).", result.Message)
		assert.Equal(t, 3, h.inventory.lastStockQty)
	})

	t.Run("should fail when the stock update fails", func(t *testing.T) {
		h := newHarness()
		h.inventory.stockQty = 5
		h.inventory.stockStatus = models.InventoryStatusActive
		h.inventory.failUpdateStock = errStore

		result := h.service.SellInventoryItem(context.Background(), itemID, "2")

		assert.False(t, result.OK)
		assert.Equal(t, "Unable to process the sale.", result.Message)
		assert.Equal(t, 0, h.sales.createCalls)
	})

	t.Run("should fail on a blank id", func(t *testing.T) {
		h := newHarness()

		result := h.service.SellInventoryItem(context.Background(), "", "1")

		assert.False(t, result.OK)
		assert.Equal(t, "Missing item id.", result.Message)
	})
}

func TestAddForecastItem(t *testing.T) {
	t.Run("should not write on validation failure", func(t *testing.T) {
		h := newHarness()

		result := h.service.AddForecastItem(context.Background(), forms.Fields{})

		assert.False(t, result.OK)
		assert.Equal(t, "Fix the highlighted fields and try again.", result.Message)
		assert.Equal(t, 0, h.forecast.createCalls)
	})

	t.Run("should persist with defaulted status and risk", func(t *testing.T) {
		h := newHarness()

		result := h.service.AddForecastItem(context.Background(), forms.Fields{
			"projectName": "Store refit",
			"owner":       "Priya",
			"dueDate":     "2026-10-15",
		})

		require.True(t, result.OK)
		assert.Equal(t, "Forecast item added.", result.Message)
		assert.Equal(t, models.ForecastStatusPlanned, h.forecast.lastCreated.Status)
		assert.Equal(t, models.ForecastRiskLow, h.forecast.lastCreated.Risk)
	})

	t.Run("should report a generic failure on a store error", func(t *testing.T) {
		h := newHarness()
		h.forecast.failCreate = errStore

		result := h.service.AddForecastItem(context.Background(), forms.Fields{
			"projectName": "Store refit",
			"owner":       "Priya",
			"dueDate":     "2026-10-15",
		})

		assert.False(t, result.OK)
		assert.Equal(t, "Unable to save the forecast item.", result.Message)
	})
}

func TestUpdateForecastItem(t *testing.T) {
	t.Run("should flag a missing id without a store call", func(t *testing.T) {
		h := newHarness()

		result := h.service.UpdateForecastItem(context.Background(), "", forms.Fields{})

		assert.False(t, result.OK)
		assert.Equal(t, "Missing id.", result.FieldErrors["id"])
		assert.Equal(t, 0, h.forecast.updateCalls)
	})

	t.Run("should update by id", func(t *testing.T) {
		h := newHarness()

		result := h.service.UpdateForecastItem(context.Background(), uuid.NewString(), forms.Fields{
			"projectName": "Store refit",
			"owner":       "Priya",
			"dueDate":     "2026-11-01",
			"status":      "in_progress",
			"risk":        "medium",
		})

		require.True(t, result.OK)
		assert.Equal(t, "Forecast item updated.", result.Message)
		assert.Equal(t, 1, h.forecast.updateCalls)
	})
}

func TestDeleteForecastItem(t *testing.T) {
	t.Run("should flag a missing id without a store call", func(t *testing.T) {
		h := newHarness()

		result := h.service.DeleteForecastItem(context.Background(), "")

		assert.False(t, result.OK)
		assert.Equal(t, "Missing id.", result.FieldErrors["id"])
		assert.Equal(t, 0, h.forecast.deleteCalls)
	})

	t.Run("should delete by id", func(t *testing.T) {
		h := newHarness()

		result := h.service.DeleteForecastItem(context.Background(), uuid.NewString())

		require.True(t, result.OK)
		assert.Equal(t, "Forecast item deleted.", result.Message)
	})
}
