package actions

import "github.com/Ramsey-B/clover/pkg/models"

// Result is the uniform outcome of a form action. A success never carries
// field errors; construct values through Success, Invalid, and Failure so the
// invariant holds.
type Result struct {
	OK          bool              `json:"ok"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"fieldErrors"`
}

// Success returns an ok result with the given user-facing message.
func Success(message string) Result {
	return Result{
		OK:          true,
		Message:     message,
		FieldErrors: map[string]string{},
	}
}

// Invalid returns a validation failure carrying per-field errors.
func Invalid(message string, fieldErrors map[string]string) Result {
	return Result{
		OK:          false,
		Message:     message,
		FieldErrors: fieldErrors,
	}
}

// Failure returns a store or precondition failure with no field errors.
func Failure(message string) Result {
	return Result{
		OK:          false,
		Message:     message,
		FieldErrors: map[string]string{},
	}
}

// SellResult extends Result with the post-sale stock state so the caller can
// update its view without refetching.
type SellResult struct {
	Result
	Quantity *int                    `json:"quantity,omitempty"`
	Status   *models.InventoryStatus `json:"status,omitempty"`
}

func sellFailure(message string) SellResult {
	return SellResult{Result: Failure(message)}
}
