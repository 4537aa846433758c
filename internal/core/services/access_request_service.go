package services

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"projectgate/internal/adapters/persistence/models"
	"projectgate/internal/adapters/persistence/repositories"
	"projectgate/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessRequestService handles payment-claim submission and request lookups
type AccessRequestService struct {
	requestRepo repositories.AccessRequestRepository
	catalog     ProjectCatalog
}

// NewAccessRequestService creates a new access request service
func NewAccessRequestService(requestRepo repositories.AccessRequestRepository, catalog ProjectCatalog) *AccessRequestService {
	return &AccessRequestService{
		requestRepo: requestRepo,
		catalog:     catalog,
	}
}

// SubmitInput represents a payment claim for a gated project
type SubmitInput struct {
	ProjectID       uint    `json:"project_id" validate:"required"`
	PaymentMethod   string  `json:"payment_method" validate:"required"`
	PaymentAmount   float64 `json:"payment_amount" validate:"gte=0"`
	PaymentCurrency string  `json:"payment_currency,omitempty"`
	TransactionID   string  `json:"transaction_id" validate:"required"`
	PaymentProof    string  `json:"payment_proof" validate:"required,uri"`
	Message         string  `json:"message,omitempty"`
}

// Submit validates a claim and creates a pending access request.
// Returns a ValidationError listing every offending field, ErrProjectNotFound
// for unknown projects, or ErrAccessAlreadyGranted while an approved request
// exists for the pair. Nothing is persisted on any error path.
func (s *AccessRequestService) Submit(ctx context.Context, userID uint, input *SubmitInput) (*models.AccessRequest, error) {
	if fields := validateClaim(input); len(fields) > 0 {
		return nil, domain.NewValidationError(fields...)
	}

	if _, err := s.catalog.GetByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	approved, err := s.requestRepo.HasApproved(ctx, userID, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if approved {
		return nil, domain.ErrAccessAlreadyGranted
	}

	currency := strings.ToUpper(strings.TrimSpace(input.PaymentCurrency))
	if currency == "" {
		currency = "USD"
	}

	request := &models.AccessRequest{
		RequestNo:       uuid.NewString(),
		UserID:          userID,
		ProjectID:       input.ProjectID,
		Status:          models.StatusPending,
		PaymentMethod:   input.PaymentMethod,
		PaymentAmount:   input.PaymentAmount,
		PaymentCurrency: currency,
		TransactionID:   strings.TrimSpace(input.TransactionID),
		PaymentProof:    input.PaymentProof,
		Message:         input.Message,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

// validateClaim collects every invalid submission field
func validateClaim(input *SubmitInput) []string {
	var fields []string

	if input.ProjectID == 0 {
		fields = append(fields, "project_id")
	}
	if !models.ValidPaymentMethods[input.PaymentMethod] {
		fields = append(fields, "payment_method")
	}
	if input.PaymentAmount < 0 {
		fields = append(fields, "payment_amount")
	}
	if strings.TrimSpace(input.TransactionID) == "" {
		fields = append(fields, "transaction_id")
	}
	if !isURIShaped(input.PaymentProof) {
		fields = append(fields, "payment_proof")
	}
	if len(input.Message) > models.MaxMessageLen {
		fields = append(fields, "message")
	}
	if len(input.PaymentCurrency) > 10 {
		fields = append(fields, "payment_currency")
	}

	return fields
}

// isURIShaped checks that the payment proof looks like an absolute URI.
// The proof is never fetched or verified beyond its shape.
func isURIShaped(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	u, err := url.ParseRequestURI(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// GetByID gets an access request by ID
func (s *AccessRequestService) GetByID(ctx context.Context, id uint) (*models.AccessRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

// List lists access requests, optionally filtered by status
func (s *AccessRequestService) List(ctx context.Context, status string, offset, limit int) ([]*models.AccessRequest, int64, error) {
	if status != "" && status != models.StatusPending && status != models.StatusApproved && status != models.StatusRejected {
		return nil, 0, domain.NewValidationError("status")
	}
	return s.requestRepo.List(ctx, status, offset, limit)
}

// ListByUser lists a user's own access requests
func (s *AccessRequestService) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.AccessRequest, int64, error) {
	return s.requestRepo.ListByUser(ctx, userID, offset, limit)
}
