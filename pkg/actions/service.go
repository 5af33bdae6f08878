// Package actions implements the dashboard's form actions: validate the raw
// fields, issue at most one store write, and map the outcome to a uniform
// Result. Store failures never leak upstream detail; they become one generic
// message per action.
package actions

import (
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/pkg/events"
	"github.com/Ramsey-B/clover/pkg/repositories"
)

// Service orchestrates validation, persistence, and event emission for all
// dashboard form actions.
type Service struct {
	submissions repositories.SubmissionRepo
	inventory   repositories.InventoryRepo
	forecast    repositories.ForecastRepo
	sales       repositories.SaleRepo
	emitter     events.Emitter
	logger      ectologger.Logger
}

// NewService creates a new action service
func NewService(
	submissions repositories.SubmissionRepo,
	inventory repositories.InventoryRepo,
	forecast repositories.ForecastRepo,
	sales repositories.SaleRepo,
	emitter events.Emitter,
	logger ectologger.Logger,
) *Service {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	return &Service{
		submissions: submissions,
		inventory:   inventory,
		forecast:    forecast,
		sales:       sales,
		emitter:     emitter,
		logger:      logger,
	}
}
