package services

import (
	"context"

	"projectgate/internal/adapters/persistence/models"
	"projectgate/internal/adapters/persistence/repositories"
	"projectgate/internal/core/domain"
)

// EntitlementService answers entitlement questions and is the sole release
// point for gated project fields.
type EntitlementService struct {
	requestRepo repositories.AccessRequestRepository
}

// NewEntitlementService creates a new entitlement service
func NewEntitlementService(requestRepo repositories.AccessRequestRepository) *EntitlementService {
	return &EntitlementService{requestRepo: requestRepo}
}

// HasActiveAccess reports whether the user holds an approved request for the
// project. Absence of any record simply means no access.
func (s *EntitlementService) HasActiveAccess(ctx context.Context, userID, projectID uint) (bool, error) {
	return s.requestRepo.HasApproved(ctx, userID, projectID)
}

// History returns all requests for the pair, newest first
func (s *EntitlementService) History(ctx context.Context, userID, projectID uint) ([]*models.AccessRequest, error) {
	return s.requestRepo.FindByUserAndProject(ctx, userID, projectID)
}

// ProjectAccess is the per-user entitlement view of a project
type ProjectAccess struct {
	HasAccess bool                  `json:"has_access"`
	Request   *models.AccessRequest `json:"access_request,omitempty"`
}

// ProjectAccess returns the entitlement plus the latest request for the pair.
// It never errors on a missing record.
func (s *EntitlementService) ProjectAccess(ctx context.Context, userID, projectID uint) (*ProjectAccess, error) {
	hasAccess, err := s.requestRepo.HasApproved(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	latest, err := s.requestRepo.LatestByUserAndProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	return &ProjectAccess{
		HasAccess: hasAccess,
		Request:   latest,
	}, nil
}

// ResolveGatedFields returns the project's demo/download URLs only when the
// user is entitled. This is the trust boundary: callers pass an identity
// resolved from their own credentials, never a client-supplied access flag.
func (s *EntitlementService) ResolveGatedFields(ctx context.Context, userID uint, project *domain.Project) (domain.GatedFields, error) {
	if userID == 0 {
		return domain.GatedFields{}, nil
	}

	hasAccess, err := s.requestRepo.HasApproved(ctx, userID, project.ID)
	if err != nil {
		return domain.GatedFields{}, err
	}
	if !hasAccess {
		return domain.GatedFields{}, nil
	}

	return domain.GatedFields{
		DemoURL:     project.DemoURL,
		DownloadURL: project.DownloadURL,
	}, nil
}
