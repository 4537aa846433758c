package repositories

import (
	"context"
	"time"

	"projectgate/internal/adapters/persistence/models"
)

// AccessRequestRepository defines the entitlement store. All mutation after
// creation goes through FinalizeIfPending; everything else reads or inserts.
type AccessRequestRepository interface {
	Create(ctx context.Context, request *models.AccessRequest) error
	GetByID(ctx context.Context, id uint) (*models.AccessRequest, error)
	GetByRequestNo(ctx context.Context, requestNo string) (*models.AccessRequest, error)
	FindByUserAndProject(ctx context.Context, userID, projectID uint) ([]*models.AccessRequest, error)
	LatestByUserAndProject(ctx context.Context, userID, projectID uint) (*models.AccessRequest, error)
	HasApproved(ctx context.Context, userID, projectID uint) (bool, error)
	List(ctx context.Context, status string, offset, limit int) ([]*models.AccessRequest, int64, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.AccessRequest, int64, error)
	FinalizeIfPending(ctx context.Context, id uint, updates map[string]interface{}) (int64, error)
	CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// UserRepository defines read-only access to the shared users table
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// ProjectRepository defines read-only access to the shared projects table
type ProjectRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	List(ctx context.Context, offset, limit int) ([]*models.Project, int64, error)
}
