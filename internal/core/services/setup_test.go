package services

import (
	"testing"
	"time"

	"projectgate/internal/adapters/persistence/models"
	"projectgate/internal/adapters/persistence/repositories"
	"projectgate/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB creates an in-memory SQLite database. A single connection is
// forced so every query sees the same in-memory database and conditional
// updates serialize the way a real store would.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role domain.Role) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     string(role),
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProject(t *testing.T, db *gorm.DB, slug string) *models.Project {
	t.Helper()

	project := &models.Project{
		Title:       slug,
		Slug:        slug,
		Price:       2000,
		Currency:    "USD",
		DemoURL:     "https://demo.example.com/" + slug,
		DownloadURL: "https://files.example.com/" + slug + ".zip",
		IsPublished: true,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// seedRequest inserts a request directly, bypassing submission validation
func seedRequest(t *testing.T, db *gorm.DB, userID, projectID uint, status string, createdAt time.Time) *models.AccessRequest {
	t.Helper()

	request := &models.AccessRequest{
		RequestNo:       uuid.NewString(),
		UserID:          userID,
		ProjectID:       projectID,
		Status:          status,
		PaymentMethod:   models.PaymentBankTransfer,
		PaymentAmount:   2000,
		PaymentCurrency: "USD",
		TransactionID:   "TX-" + uuid.NewString()[:8],
		PaymentProof:    "https://proof.example.com/receipt.png",
		CreatedAt:       createdAt,
	}
	if status == models.StatusApproved {
		key := models.StatusApproved
		now := time.Now()
		adminID := uint(1)
		request.ActiveKey = &key
		request.ApprovedBy = &adminID
		request.ApprovedAt = &now
	}
	if status == models.StatusRejected {
		now := time.Now()
		request.RejectedAt = &now
		request.RejectionReason = "proof unreadable"
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

func newRequestService(db *gorm.DB) *AccessRequestService {
	requestRepo := repositories.NewAccessRequestRepository(db)
	catalog := NewCatalogService(repositories.NewProjectRepository(db))
	return NewAccessRequestService(requestRepo, catalog)
}

func newReviewService(db *gorm.DB) *ReviewService {
	requestRepo := repositories.NewAccessRequestRepository(db)
	directory := NewDirectoryService(repositories.NewUserRepository(db))
	return NewReviewService(requestRepo, NewDirectoryAuthorizer(directory))
}

// validClaim returns a submission that passes validation
func validClaim(projectID uint) *SubmitInput {
	return &SubmitInput{
		ProjectID:     projectID,
		PaymentMethod: models.PaymentBankTransfer,
		PaymentAmount: 2000,
		TransactionID: "TX1",
		PaymentProof:  "https://proof.example.com/receipt.png",
	}
}
