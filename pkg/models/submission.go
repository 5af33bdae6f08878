package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ramsey-B/clover/pkg/database"
)

// SubmissionPage identifies which dashboard form produced a submission.
type SubmissionPage string

const (
	PageIntake SubmissionPage = "intake"
	PageOps    SubmissionPage = "ops"
	PageRisk   SubmissionPage = "risk"
)

// IsValid reports whether the page is one of the known form types.
func (p SubmissionPage) IsValid() bool {
	switch p {
	case PageIntake, PageOps, PageRisk:
		return true
	}
	return false
}

// Submission is one saved form post. Payload keys are exactly the field set
// declared for the page's form schema.
type Submission struct {
	ID        uuid.UUID                      `db:"id" json:"id"`
	Page      SubmissionPage                 `db:"page" json:"page"`
	Payload   database.JSONB[map[string]any] `db:"payload" json:"payload"`
	UserID    *string                        `db:"user_id" json:"user_id,omitempty"`
	CreatedAt time.Time                      `db:"created_at" json:"created_at"`
}

// TableName returns the database table name
func (Submission) TableName() string {
	return "dashboard_submissions"
}
