package handlers

import (
	"errors"
	"strconv"

	"projectgate/internal/adapters/persistence/models"
	"projectgate/internal/core/domain"
	"projectgate/internal/core/services"
	"projectgate/internal/pkg/pagination"
	"projectgate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AccessRequestHandler handles access request endpoints
type AccessRequestHandler struct {
	requestService *services.AccessRequestService
	reviewService  *services.ReviewService
}

// NewAccessRequestHandler creates a new access request handler
func NewAccessRequestHandler(requestService *services.AccessRequestService, reviewService *services.ReviewService) *AccessRequestHandler {
	return &AccessRequestHandler{
		requestService: requestService,
		reviewService:  reviewService,
	}
}

// CreateAccessRequest represents a claim submission body
type CreateAccessRequest struct {
	ProjectID       uint    `json:"project_id"`
	PaymentMethod   string  `json:"payment_method"`
	PaymentAmount   float64 `json:"payment_amount"`
	PaymentCurrency string  `json:"payment_currency,omitempty"`
	TransactionID   string  `json:"transaction_id"`
	PaymentProof    string  `json:"payment_proof"`
	Message         string  `json:"message,omitempty"`
}

// Create submits a payment claim for a gated project
// @Summary Submit access request
// @Description Submit a payment claim for access to a gated project
// @Tags AccessRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateAccessRequest true "Payment claim"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /access-requests [post]
func (h *AccessRequestHandler) Create(c *fiber.Ctx) error {
	var req CreateAccessRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return response.Unauthorized(c, "Unauthorized")
	}

	input := &services.SubmitInput{
		ProjectID:       req.ProjectID,
		PaymentMethod:   req.PaymentMethod,
		PaymentAmount:   req.PaymentAmount,
		PaymentCurrency: req.PaymentCurrency,
		TransactionID:   req.TransactionID,
		PaymentProof:    req.PaymentProof,
		Message:         req.Message,
	}

	request, err := h.requestService.Submit(c.Context(), userID, input)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			return response.ValidationFailed(c, "Invalid submission", vErr.Fields)
		case errors.Is(err, domain.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, domain.ErrAccessAlreadyGranted):
			return response.Conflict(c, "Access already granted")
		default:
			return response.InternalServerError(c, "Failed to submit access request")
		}
	}

	return response.Created(c, "Access request submitted successfully", fiber.Map{
		"access_request": request.ToResponse(),
	})
}

// List lists access requests (admin)
// @Summary List access requests
// @Description List all access requests, optionally filtered by status (Admin only)
// @Tags AccessRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /access-requests [get]
func (h *AccessRequestHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := c.Query("status")

	requests, total, err := h.requestService.List(c.Context(), status, params.Offset, params.Limit)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return response.ValidationFailed(c, "Invalid filter", vErr.Fields)
		}
		return response.InternalServerError(c, "Failed to list access requests")
	}

	result := make([]*models.AccessRequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, r.ToResponse())
	}

	return response.Success(c, "Access requests retrieved successfully", pagination.NewResponse(result, params, total))
}

// GetMy lists the caller's own access requests
// @Summary Get my access requests
// @Description Get current user's access requests
// @Tags AccessRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /access-requests/my [get]
func (h *AccessRequestHandler) GetMy(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	requests, total, err := h.requestService.ListByUser(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to get access requests")
	}

	result := make([]*models.AccessRequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, r.ToResponse())
	}

	return response.Success(c, "Access requests retrieved successfully", pagination.NewResponse(result, params, total))
}

// GetByID gets an access request by ID (admin)
// @Summary Get access request by ID
// @Description Get a specific access request (Admin only)
// @Tags AccessRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Access request ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /access-requests/{id} [get]
func (h *AccessRequestHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid access request ID")
	}

	request, err := h.requestService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			return response.NotFound(c, "Access request not found")
		}
		return response.InternalServerError(c, "Failed to get access request")
	}

	return response.Success(c, "Access request retrieved successfully", fiber.Map{
		"access_request": request.ToResponse(),
	})
}

// Review actions
const (
	actionApprove = "approve"
	actionReject  = "reject"
)

// ReviewRequest represents an adjudication body
type ReviewRequest struct {
	Action          string `json:"action"`
	AdminNotes      string `json:"admin_notes,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// Review approves or rejects a pending access request
// @Summary Review access request
// @Description Approve or reject a pending access request (Admin only)
// @Tags AccessRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Access request ID"
// @Param body body ReviewRequest true "Review action"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /access-requests/{id} [put]
func (h *AccessRequestHandler) Review(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid access request ID")
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	adminID, ok := c.Locals("userID").(uint)
	if !ok || adminID == 0 {
		return response.Unauthorized(c, "Unauthorized")
	}

	var request *models.AccessRequest
	switch req.Action {
	case actionApprove:
		request, err = h.reviewService.Approve(c.Context(), uint(id), adminID, req.AdminNotes)
	case actionReject:
		request, err = h.reviewService.Reject(c.Context(), uint(id), adminID, req.RejectionReason)
	default:
		return response.ValidationFailed(c, "Invalid review action", []string{"action"})
	}

	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			return response.ValidationFailed(c, "Invalid review", vErr.Fields)
		case errors.Is(err, domain.ErrRequestNotFound):
			return response.NotFound(c, "Access request not found")
		case errors.Is(err, domain.ErrAlreadyFinalized):
			return response.Conflict(c, err.Error())
		case errors.Is(err, domain.ErrAccessAlreadyGranted):
			return response.Conflict(c, "Access already granted")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin role required")
		default:
			return response.InternalServerError(c, "Failed to review access request")
		}
	}

	return response.Success(c, "Access request reviewed successfully", fiber.Map{
		"access_request": request.ToResponse(),
	})
}
