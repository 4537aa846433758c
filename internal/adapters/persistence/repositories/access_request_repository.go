package repositories

import (
	"context"
	"time"

	"projectgate/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// GormAccessRequestRepository handles access request data access
type GormAccessRequestRepository struct {
	db *gorm.DB
}

// NewAccessRequestRepository creates a new access request repository
func NewAccessRequestRepository(db *gorm.DB) *GormAccessRequestRepository {
	return &GormAccessRequestRepository{db: db}
}

// Create inserts a new access request
func (r *GormAccessRequestRepository) Create(ctx context.Context, request *models.AccessRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// GetByID gets an access request by ID with relations
func (r *GormAccessRequestRepository) GetByID(ctx context.Context, id uint) (*models.AccessRequest, error) {
	var request models.AccessRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Project").
		Preload("Approver").
		First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetByRequestNo gets an access request by its public reference number
func (r *GormAccessRequestRepository) GetByRequestNo(ctx context.Context, requestNo string) (*models.AccessRequest, error) {
	var request models.AccessRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Project").
		Where("request_no = ?", requestNo).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// FindByUserAndProject returns the full request history for a (user, project)
// pair, newest first
func (r *GormAccessRequestRepository) FindByUserAndProject(ctx context.Context, userID, projectID uint) ([]*models.AccessRequest, error) {
	var requests []*models.AccessRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// LatestByUserAndProject returns the most recent request for a pair, or nil
// when the user never submitted one
func (r *GormAccessRequestRepository) LatestByUserAndProject(ctx context.Context, userID, projectID uint) (*models.AccessRequest, error) {
	var request models.AccessRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Order("created_at DESC").
		First(&request).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// HasApproved reports whether an approved request exists for the pair.
// Single lookup on idx_user_project_status.
func (r *GormAccessRequestRepository) HasApproved(ctx context.Context, userID, projectID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AccessRequest{}).
		Where("user_id = ? AND project_id = ? AND status = ?", userID, projectID, models.StatusApproved).
		Count(&count).Error
	return count > 0, err
}

// List lists access requests with optional status filter and pagination
func (r *GormAccessRequestRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.AccessRequest, int64, error) {
	var requests []*models.AccessRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AccessRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("User").
		Preload("Project").
		Preload("Approver").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error

	return requests, total, err
}

// ListByUser lists a user's own requests with pagination
func (r *GormAccessRequestRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.AccessRequest, int64, error) {
	var requests []*models.AccessRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AccessRequest{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Project").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error

	return requests, total, err
}

// FinalizeIfPending applies updates to a request only while it is still
// pending, as a single conditional UPDATE. Returns the number of rows
// changed: 1 when this caller won the terminal transition, 0 when the record
// is missing or already finalized. A gorm.ErrDuplicatedKey error means the
// updates tried to set active_key while another approved row already exists
// for the same (user, project) pair.
func (r *GormAccessRequestRepository) FinalizeIfPending(ctx context.Context, id uint, updates map[string]interface{}) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.AccessRequest{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(updates)
	return tx.RowsAffected, tx.Error
}

// CountPendingOlderThan counts pending requests created before the cutoff
func (r *GormAccessRequestRepository) CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AccessRequest{}).
		Where("status = ? AND created_at < ?", models.StatusPending, cutoff).
		Count(&count).Error
	return count, err
}
