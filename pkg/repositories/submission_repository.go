package repositories

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

const submissionsTable = "dashboard_submissions"

var submissionStruct = database.NewStruct(new(models.Submission))

// SubmissionRepository handles database operations for dashboard submissions
type SubmissionRepository struct {
	*Repository
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db database.DB, logger ectologger.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		Repository: NewRepository(db, logger),
	}
}

// Create inserts a new submission
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	ctx, span := tracing.StartSpan(ctx, "SubmissionRepository.Create")
	defer span.End()

	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(submissionsTable).
		Cols("id", "page", "payload", "user_id", "created_at").
		Values(submission.ID, submission.Page, submission.Payload, submission.UserID, sqlbuilder.Raw("NOW()")).
		Returning("created_at")

	query, args := ib.Build()
	err := r.DB().QueryRowContext(ctx, query, args...).Scan(&submission.CreatedAt)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"submission_id": submission.ID,
			"page":          submission.Page,
		}).Error("failed to create submission")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to create submission")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"submission_id": submission.ID,
		"page":          submission.Page,
	}).Debugf("Created %s", submissionsTable)
	return nil
}

// UpdatePayload replaces the payload of an existing submission
func (r *SubmissionRepository) UpdatePayload(ctx context.Context, id uuid.UUID, payload map[string]any) error {
	ctx, span := tracing.StartSpan(ctx, "SubmissionRepository.UpdatePayload")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(submissionsTable).
		Set(ub.Assign("payload", database.JSONB[map[string]any]{Data: payload})).
		Where(ub.Equal("id", id))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"submission_id": id,
		}).Error("failed to update submission")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update submission")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"submission_id": id,
		}).Error("failed to update submission")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update submission")
	}
	if rows == 0 {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "submission %s does not exist", id)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"submission_id": id,
	}).Debugf("Updated %s", submissionsTable)
	return nil
}

// Delete removes a submission by ID
func (r *SubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "SubmissionRepository.Delete")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom(submissionsTable).
		Where(db.Equal("id", id))

	query, args := db.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"submission_id": id,
		}).Error("failed to delete submission")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete submission")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"submission_id": id,
		}).Error("failed to delete submission")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete submission")
	}
	if rows == 0 {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "submission %s does not exist", id)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"submission_id": id,
	}).Debugf("Deleted %s", submissionsTable)
	return nil
}

// ListByPage retrieves the most recent submissions for a page
func (r *SubmissionRepository) ListByPage(ctx context.Context, page models.SubmissionPage, limit int) ([]models.Submission, error) {
	ctx, span := tracing.StartSpan(ctx, "SubmissionRepository.ListByPage")
	defer span.End()

	sb := submissionStruct.SelectFrom(submissionsTable)
	sb.Where(sb.Equal("page", page))
	sb.OrderBy("created_at").Desc()
	sb.Limit(limit)

	query, args := sb.Build()
	var submissions []models.Submission
	err := r.DB().SelectContext(ctx, &submissions, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"page": page,
		}).Error("failed to list submissions")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list submissions")
	}

	return submissions, nil
}

// ListCreatedSince retrieves submissions created at or after the given instant
func (r *SubmissionRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]models.Submission, error) {
	ctx, span := tracing.StartSpan(ctx, "SubmissionRepository.ListCreatedSince")
	defer span.End()

	sb := submissionStruct.SelectFrom(submissionsTable)
	sb.Where(sb.GreaterEqualThan("created_at", since))

	query, args := sb.Build()
	var submissions []models.Submission
	err := r.DB().SelectContext(ctx, &submissions, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list submissions by window")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list submissions by window")
	}

	return submissions, nil
}
