package actions

import (
	"context"
	"strings"

	"github.com/google/uuid"

	appctx "github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/forms"
	"github.com/Ramsey-B/clover/pkg/metrics"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

const (
	msgFixAndResubmit = "Fix the highlighted fields and resubmit."
	msgFixAndRetry    = "Fix the highlighted fields and try again."
)

// insertSubmission persists a validated payload for a page, attaching the
// requesting user when one is present.
func (s *Service) insertSubmission(ctx context.Context, page models.SubmissionPage, payload map[string]any) Result {
	submission := &models.Submission{
		Page:    page,
		Payload: database.JSONB[map[string]any]{Data: payload},
	}
	if userID := appctx.GetUserID(ctx); userID != "" {
		submission.UserID = &userID
	}

	if err := s.submissions.Create(ctx, submission); err != nil {
		metrics.StoreFailuresTotal.WithLabelValues(submission.TableName()).Inc()
		metrics.ActionsTotal.WithLabelValues(string(page), metrics.OutcomeFailed).Inc()
		return Failure("Unable to save right now. Please try again.")
	}

	metrics.ActionsTotal.WithLabelValues(string(page), metrics.OutcomeOK).Inc()
	s.emitter.EmitRecordEvent(ctx, "submission.created", "submission", submission.ID.String(), appctx.GetUserID(ctx), submission)
	return Success("Submission saved.")
}

// SubmitIntake handles the vendor intake form.
func (s *Service) SubmitIntake(ctx context.Context, f forms.Fields) Result {
	ctx, span := tracing.StartSpan(ctx, "actions.Service.SubmitIntake")
	defer span.End()

	payload, fieldErrors := forms.ValidateIntake(f)
	if len(fieldErrors) > 0 {
		metrics.ActionsTotal.WithLabelValues(string(models.PageIntake), metrics.OutcomeInvalid).Inc()
		return Invalid(msgFixAndResubmit, fieldErrors)
	}

	return s.insertSubmission(ctx, models.PageIntake, payload)
}

// SubmitOpsRequest handles the store request form.
func (s *Service) SubmitOpsRequest(ctx context.Context, f forms.Fields) Result {
	ctx, span := tracing.StartSpan(ctx, "actions.Service.SubmitOpsRequest")
	defer span.End()

	payload, fieldErrors := forms.ValidateOpsRequest(f)
	if len(fieldErrors) > 0 {
		metrics.ActionsTotal.WithLabelValues(string(models.PageOps), metrics.OutcomeInvalid).Inc()
		return Invalid(msgFixAndResubmit, fieldErrors)
	}

	return s.insertSubmission(ctx, models.PageOps, payload)
}

// SubmitRiskReview handles the issue/risk review form.
func (s *Service) SubmitRiskReview(ctx context.Context, f forms.Fields) Result {
	ctx, span := tracing.StartSpan(ctx, "actions.Service.SubmitRiskReview")
	defer span.End()

	payload, fieldErrors := forms.ValidateRiskReview(f)
	if len(fieldErrors) > 0 {
		metrics.ActionsTotal.WithLabelValues(string(models.PageRisk), metrics.OutcomeInvalid).Inc()
		return Invalid(msgFixAndResubmit, fieldErrors)
	}

	return s.insertSubmission(ctx, models.PageRisk, payload)
}

// UpdateSubmission replaces the payload of a logged submission, re-validating
// every field against the page's declared schema. Any field error means no
// write at all.
func (s *Service) UpdateSubmission(ctx context.Context, id string, page string, f forms.Fields) Result {
	ctx, span := tracing.StartSpan(ctx, "actions.Service.UpdateSubmission")
	defer span.End()

	id = strings.TrimSpace(id)
	page = strings.TrimSpace(page)
	if id == "" || page == "" {
		return Failure("Missing submission metadata.")
	}

	submissionID, err := uuid.Parse(id)
	if err != nil {
		return Failure("Unable to update the submission.")
	}

	payload, fieldErrors := forms.ValidateSubmissionUpdate(models.SubmissionPage(page), f)
	if len(fieldErrors) > 0 {
		metrics.ActionsTotal.WithLabelValues(page, metrics.OutcomeInvalid).Inc()
		return Invalid(msgFixAndRetry, fieldErrors)
	}

	if err := s.submissions.UpdatePayload(ctx, submissionID, payload); err != nil {
		metrics.StoreFailuresTotal.WithLabelValues(submissionsTableName).Inc()
		metrics.ActionsTotal.WithLabelValues(page, metrics.OutcomeFailed).Inc()
		return Failure("Unable to update the submission.")
	}

	metrics.ActionsTotal.WithLabelValues(page, metrics.OutcomeOK).Inc()
	s.emitter.EmitRecordEvent(ctx, "submission.updated", "submission", id, appctx.GetUserID(ctx), payload)
	return Success("Submission updated.")
}

// DeleteSubmission removes a logged submission by id.
func (s *Service) DeleteSubmission(ctx context.Context, id string) Result {
	ctx, span := tracing.StartSpan(ctx, "actions.Service.DeleteSubmission")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return Failure("Missing submission id.")
	}

	submissionID, err := uuid.Parse(id)
	if err != nil {
		return Failure("Unable to delete the submission.")
	}

	if err := s.submissions.Delete(ctx, submissionID); err != nil {
		metrics.StoreFailuresTotal.WithLabelValues(submissionsTableName).Inc()
		return Failure("Unable to delete the submission.")
	}

	s.emitter.EmitRecordEvent(ctx, "submission.deleted", "submission", id, appctx.GetUserID(ctx), nil)
	return Success("Submission deleted.")
}

var submissionsTableName = models.Submission{}.TableName()
