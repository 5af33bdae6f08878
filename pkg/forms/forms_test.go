package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

func TestValidateIntake(t *testing.T) {
	t.Run("should error every missing required field", func(t *testing.T) {
		payload, fieldErrors := ValidateIntake(Fields{})

		assert.Nil(t, payload)
		assert.Equal(t, map[string]string{
			"fullName":  "Full name is required.",
			"workEmail": "Email is required.",
			"company":   "Company is required.",
			"summary":   "Project summary is required.",
		}, fieldErrors)
	})

	t.Run("should reject a malformed email", func(t *testing.T) {
		payload, fieldErrors := ValidateIntake(Fields{
			"fullName":  "Ada Vendor",
			"workEmail": "not-an-email",
			"company":   "Acme",
			"summary":   "New supplier onboarding",
		})

		assert.Nil(t, payload)
		assert.Equal(t, map[string]string{"workEmail": "Enter a valid email."}, fieldErrors)
	})

	t.Run("should reject a negative budget", func(t *testing.T) {
		_, fieldErrors := ValidateIntake(Fields{
			"fullName":  "Ada Vendor",
			"workEmail": "ada@acme.io",
			"company":   "Acme",
			"summary":   "New supplier onboarding",
			"budget":    "-10",
		})

		assert.Equal(t, map[string]string{"budget": "Budget must be a positive number."}, fieldErrors)
	})

	t.Run("should trim fields and normalize the payload", func(t *testing.T) {
		payload, fieldErrors := ValidateIntake(Fields{
			"fullName":  "  Ada Vendor  ",
			"workEmail": "ada@acme.io",
			"company":   "Acme",
			"summary":   "New supplier onboarding",
			"budget":    "2500.50",
		})

		require.Empty(t, fieldErrors)
		assert.Equal(t, "Ada Vendor", payload["fullName"])
		assert.Equal(t, 2500.50, payload["budget"])
	})

	t.Run("should leave budget nil when omitted", func(t *testing.T) {
		payload, fieldErrors := ValidateIntake(Fields{
			"fullName":  "Ada Vendor",
			"workEmail": "ada@acme.io",
			"company":   "Acme",
			"summary":   "New supplier onboarding",
		})

		require.Empty(t, fieldErrors)
		assert.Nil(t, payload["budget"])
	})
}

func TestValidateOpsRequest(t *testing.T) {
	t.Run("should require every field", func(t *testing.T) {
		payload, fieldErrors := ValidateOpsRequest(Fields{"team": "Fulfillment"})

		assert.Nil(t, payload)
		assert.Len(t, fieldErrors, 3)
		assert.Contains(t, fieldErrors, "priority")
		assert.Contains(t, fieldErrors, "dueDate")
		assert.Contains(t, fieldErrors, "request")
	})

	t.Run("should pass a complete request", func(t *testing.T) {
		payload, fieldErrors := ValidateOpsRequest(Fields{
			"team":     "Fulfillment",
			"priority": "high",
			"dueDate":  "2026-09-01",
			"request":  "Extra shelving for aisle 4",
		})

		require.Empty(t, fieldErrors)
		assert.Equal(t, "Fulfillment", payload["team"])
	})
}

func TestValidateRiskReview(t *testing.T) {
	t.Run("should require every field", func(t *testing.T) {
		payload, fieldErrors := ValidateRiskReview(Fields{})

		assert.Nil(t, payload)
		assert.Len(t, fieldErrors, 4)
	})

	t.Run("should pass a complete review", func(t *testing.T) {
		payload, fieldErrors := ValidateRiskReview(Fields{
			"area":       "Receiving",
			"level":      "medium",
			"impact":     "Delayed intake",
			"mitigation": "Add a second dock slot",
		})

		require.Empty(t, fieldErrors)
		assert.Equal(t, "Receiving", payload["area"])
	})
}

func TestValidateSubmissionUpdate(t *testing.T) {
	t.Run("should reject an unknown page", func(t *testing.T) {
		payload, fieldErrors := ValidateSubmissionUpdate(models.SubmissionPage("settings"), Fields{})

		assert.Nil(t, payload)
		assert.Equal(t, map[string]string{"page": "Unknown submission page."}, fieldErrors)
	})

	t.Run("should require text fields per the page schema", func(t *testing.T) {
		payload, fieldErrors := ValidateSubmissionUpdate(models.PageOps, Fields{
			"team":     "Fulfillment",
			"priority": "",
			"dueDate":  "2026-09-01",
			"request":  "Extra shelving",
		})

		assert.Nil(t, payload)
		assert.Equal(t, map[string]string{"priority": "This field is required."}, fieldErrors)
	})

	t.Run("should reject a non-numeric value for a numeric field", func(t *testing.T) {
		payload, fieldErrors := ValidateSubmissionUpdate(models.PageIntake, Fields{
			"fullName":  "Ada Vendor",
			"workEmail": "ada@acme.io",
			"company":   "Acme",
			"summary":   "Onboarding",
			"budget":    "lots",
		})

		assert.Nil(t, payload)
		assert.Equal(t, map[string]string{"budget": "Enter a valid number."}, fieldErrors)
	})

	t.Run("should store nil for an empty optional numeric field", func(t *testing.T) {
		payload, fieldErrors := ValidateSubmissionUpdate(models.PageIntake, Fields{
			"fullName":  "Ada Vendor",
			"workEmail": "ada@acme.io",
			"company":   "Acme",
			"summary":   "Onboarding",
			"budget":    "",
		})

		require.Empty(t, fieldErrors)
		assert.Contains(t, payload, "budget")
		assert.Nil(t, payload["budget"])
	})
}

func TestValidateInventory(t *testing.T) {
	t.Run("should error missing name, sku, and location", func(t *testing.T) {
		input, fieldErrors := ValidateInventory(Fields{"quantity": "3"})

		assert.Nil(t, input)
		assert.Equal(t, map[string]string{
			"name":     "Name is required.",
			"sku":      "SKU is required.",
			"location": "Location is required.",
		}, fieldErrors)
	})

	t.Run("should reject a negative quantity", func(t *testing.T) {
		_, fieldErrors := ValidateInventory(Fields{
			"name":     "Mug",
			"sku":      "MUG-1",
			"location": "A1",
			"quantity": "-2",
		})

		assert.Equal(t, map[string]string{"quantity": "Quantity must be 0 or more."}, fieldErrors)
	})

	t.Run("should default status to active", func(t *testing.T) {
		input, fieldErrors := ValidateInventory(Fields{
			"name":     "Mug",
			"sku":      "MUG-1",
			"location": "A1",
			"quantity": "4",
		})

		require.Empty(t, fieldErrors)
		assert.Equal(t, models.InventoryStatusActive, input.Status)
		assert.Equal(t, 4, input.Quantity)
	})
}

func TestValidateForecast(t *testing.T) {
	t.Run("should require project name, owner, and due date", func(t *testing.T) {
		input, fieldErrors := ValidateForecast(Fields{})

		assert.Nil(t, input)
		assert.Equal(t, map[string]string{
			"projectName": "Project name is required.",
			"owner":       "Owner is required.",
			"dueDate":     "Due date is required.",
		}, fieldErrors)
	})

	t.Run("should reject an unparseable due date", func(t *testing.T) {
		_, fieldErrors := ValidateForecast(Fields{
			"projectName": "Store refit",
			"owner":       "Priya",
			"dueDate":     "next tuesday",
		})

		assert.Equal(t, map[string]string{"dueDate": "Enter a valid date."}, fieldErrors)
	})

	t.Run("should default status and risk", func(t *testing.T) {
		input, fieldErrors := ValidateForecast(Fields{
			"projectName": "Store refit",
			"owner":       "Priya",
			"dueDate":     "2026-10-15",
		})

		require.Empty(t, fieldErrors)
		assert.Equal(t, models.ForecastStatusPlanned, input.Status)
		assert.Equal(t, models.ForecastRiskLow, input.Risk)
		assert.Equal(t, 2026, input.DueDate.Year())
	})
}
