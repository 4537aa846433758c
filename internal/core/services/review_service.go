package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"projectgate/internal/adapters/persistence/models"
	"projectgate/internal/adapters/persistence/repositories"
	"projectgate/internal/core/domain"

	"gorm.io/gorm"
)

// ReviewService is the state-machine core: it moves a pending request to its
// terminal state, exactly once, via a single conditional update.
type ReviewService struct {
	requestRepo repositories.AccessRequestRepository
	authorizer  Authorizer
}

// NewReviewService creates a new review service
func NewReviewService(requestRepo repositories.AccessRequestRepository, authorizer Authorizer) *ReviewService {
	return &ReviewService{
		requestRepo: requestRepo,
		authorizer:  authorizer,
	}
}

// Approve moves a pending request to approved and records the reviewer.
// Racing reviewers are resolved by the store: the conditional update only
// matches status=pending, so exactly one caller wins; the loser gets
// ErrAlreadyFinalized. Approving a second pending request for a pair that is
// already entitled trips the unique active-access index and maps to
// ErrAccessAlreadyGranted.
func (s *ReviewService) Approve(ctx context.Context, requestID, adminID uint, notes string) (*models.AccessRequest, error) {
	if err := s.authorizer.RequireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	if len(notes) > models.MaxAdminNotesLen {
		return nil, domain.NewValidationError("admin_notes")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      models.StatusApproved,
		"approved_by": adminID,
		"approved_at": now,
		"active_key":  models.StatusApproved,
		"updated_at":  now,
	}
	if notes != "" {
		updates["admin_notes"] = notes
	}

	return s.finalize(ctx, requestID, updates)
}

// Reject moves a pending request to rejected. The reason is required and is
// the only reviewer-supplied field persisted on this path.
func (s *ReviewService) Reject(ctx context.Context, requestID, adminID uint, reason string) (*models.AccessRequest, error) {
	if err := s.authorizer.RequireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" || len(reason) > models.MaxRejectionReasonLen {
		return nil, domain.NewValidationError("rejection_reason")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":           models.StatusRejected,
		"rejected_at":      now,
		"rejection_reason": reason,
		"updated_at":       now,
	}

	return s.finalize(ctx, requestID, updates)
}

// finalize runs the conditional update and disambiguates a zero-row result
// into not-found versus already-finalized.
func (s *ReviewService) finalize(ctx context.Context, requestID uint, updates map[string]interface{}) (*models.AccessRequest, error) {
	rows, err := s.requestRepo.FinalizeIfPending(ctx, requestID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAccessAlreadyGranted
		}
		return nil, err
	}

	if rows == 0 {
		current, err := s.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrRequestNotFound
			}
			return nil, err
		}
		return nil, fmt.Errorf("%w: status is %s", domain.ErrAlreadyFinalized, current.Status)
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return request, nil
}
