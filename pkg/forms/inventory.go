package forms

import (
	"strconv"
	"time"

	"github.com/Ramsey-B/clover/pkg/models"
)

// InventoryInput is the normalized inventory add/update form.
type InventoryInput struct {
	Name     string
	SKU      string
	Location string
	Quantity int
	Status   models.InventoryStatus
	Notes    *string
}

// ValidateInventory checks the inventory item form. Status defaults to active;
// the quantity-driven status correction is applied by the action, not here.
func ValidateInventory(f Fields) (*InventoryInput, map[string]string) {
	name := f.Get("name")
	sku := f.Get("sku")
	location := f.Get("location")
	status := f.Get("status")
	notes := f.Get("notes")
	quantityRaw := f.Get("quantity")

	fieldErrors := map[string]string{}
	if name == "" {
		fieldErrors["name"] = "Name is required."
	}
	if sku == "" {
		fieldErrors["sku"] = "SKU is required."
	}
	if location == "" {
		fieldErrors["location"] = "Location is required."
	}

	quantity, err := strconv.Atoi(quantityRaw)
	if err != nil || quantity < 0 {
		fieldErrors["quantity"] = "Quantity must be 0 or more."
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	if status == "" {
		status = string(models.InventoryStatusActive)
	}

	input := &InventoryInput{
		Name:     name,
		SKU:      sku,
		Location: location,
		Quantity: quantity,
		Status:   models.InventoryStatus(status),
	}
	if notes != "" {
		input.Notes = &notes
	}
	return input, nil
}

// ForecastInput is the normalized forecast add/update form.
type ForecastInput struct {
	ProjectName string
	Owner       string
	DueDate     time.Time
	Status      models.ForecastStatus
	Risk        models.ForecastRisk
	Notes       *string
}

// ValidateForecast checks the delivery forecast form. Status defaults to
// planned and risk to low.
func ValidateForecast(f Fields) (*ForecastInput, map[string]string) {
	projectName := f.Get("projectName")
	owner := f.Get("owner")
	dueDateRaw := f.Get("dueDate")
	status := f.Get("status")
	risk := f.Get("risk")
	notes := f.Get("notes")

	fieldErrors := map[string]string{}
	if projectName == "" {
		fieldErrors["projectName"] = "Project name is required."
	}
	if owner == "" {
		fieldErrors["owner"] = "Owner is required."
	}

	var dueDate time.Time
	if dueDateRaw == "" {
		fieldErrors["dueDate"] = "Due date is required."
	} else {
		parsed, err := time.Parse("2006-01-02", dueDateRaw)
		if err != nil {
			fieldErrors["dueDate"] = "Enter a valid date."
		} else {
			dueDate = parsed
		}
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	if status == "" {
		status = string(models.ForecastStatusPlanned)
	}
	if risk == "" {
		risk = string(models.ForecastRiskLow)
	}

	input := &ForecastInput{
		ProjectName: projectName,
		Owner:       owner,
		DueDate:     dueDate,
		Status:      models.ForecastStatus(status),
		Risk:        models.ForecastRisk(risk),
	}
	if notes != "" {
		input.Notes = &notes
	}
	return input, nil
}
