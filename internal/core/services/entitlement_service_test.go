package services

import (
	"context"
	"testing"
	"time"

	"projectgate/internal/adapters/persistence/models"
	"projectgate/internal/adapters/persistence/repositories"
	"projectgate/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEntitlementService(db *gorm.DB) *EntitlementService {
	return NewEntitlementService(repositories.NewAccessRequestRepository(db))
}

func TestHasActiveAccessOnlyWhenApproved(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice", domain.RoleUser)
	pending := seedProject(t, db, "pending-project")
	rejected := seedProject(t, db, "rejected-project")
	approved := seedProject(t, db, "approved-project")
	untouched := seedProject(t, db, "untouched-project")
	seedRequest(t, db, user.ID, pending.ID, models.StatusPending, time.Now())
	seedRequest(t, db, user.ID, rejected.ID, models.StatusRejected, time.Now())
	seedRequest(t, db, user.ID, approved.ID, models.StatusApproved, time.Now())
	svc := newEntitlementService(db)

	tests := []struct {
		projectID uint
		want      bool
	}{
		{pending.ID, false},
		{rejected.ID, false},
		{approved.ID, true},
		{untouched.ID, false},
	}
	for _, tt := range tests {
		got, err := svc.HasActiveAccess(context.Background(), user.ID, tt.projectID)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestEntitlementIsPerUserAndProject(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", domain.RoleUser)
	bob := seedUser(t, db, "bob", domain.RoleUser)
	project := seedProject(t, db, "shop-template")
	seedRequest(t, db, alice.ID, project.ID, models.StatusApproved, time.Now())
	svc := newEntitlementService(db)

	got, err := svc.HasActiveAccess(context.Background(), bob.ID, project.ID)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestHistoryNewestFirst(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice", domain.RoleUser)
	project := seedProject(t, db, "shop-template")
	oldest := seedRequest(t, db, user.ID, project.ID, models.StatusRejected, time.Now().Add(-2*time.Hour))
	middle := seedRequest(t, db, user.ID, project.ID, models.StatusRejected, time.Now().Add(-time.Hour))
	newest := seedRequest(t, db, user.ID, project.ID, models.StatusPending, time.Now())
	svc := newEntitlementService(db)

	history, err := svc.History(context.Background(), user.ID, project.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, newest.ID, history[0].ID)
	assert.Equal(t, middle.ID, history[1].ID)
	assert.Equal(t, oldest.ID, history[2].ID)
}

func TestProjectAccessNeverErrorsOnAbsence(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice", domain.RoleUser)
	project := seedProject(t, db, "shop-template")
	svc := newEntitlementService(db)

	access, err := svc.ProjectAccess(context.Background(), user.ID, project.ID)
	require.NoError(t, err)
	assert.False(t, access.HasAccess)
	assert.Nil(t, access.Request)
}

func TestProjectAccessReturnsLatestRequest(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice", domain.RoleUser)
	project := seedProject(t, db, "shop-template")
	seedRequest(t, db, user.ID, project.ID, models.StatusRejected, time.Now().Add(-time.Hour))
	latest := seedRequest(t, db, user.ID, project.ID, models.StatusPending, time.Now())
	svc := newEntitlementService(db)

	access, err := svc.ProjectAccess(context.Background(), user.ID, project.ID)
	require.NoError(t, err)
	assert.False(t, access.HasAccess)
	require.NotNil(t, access.Request)
	assert.Equal(t, latest.ID, access.Request.ID)
}

func TestResolveGatedFields(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", domain.RoleUser)
	bob := seedUser(t, db, "bob", domain.RoleUser)
	project := seedProject(t, db, "shop-template")
	seedRequest(t, db, alice.ID, project.ID, models.StatusApproved, time.Now())
	svc := newEntitlementService(db)

	catalog := NewCatalogService(repositories.NewProjectRepository(db))
	view, err := catalog.GetByID(context.Background(), project.ID)
	require.NoError(t, err)

	// entitled user gets both URLs
	gated, err := svc.ResolveGatedFields(context.Background(), alice.ID, view)
	require.NoError(t, err)
	assert.Equal(t, project.DemoURL, gated.DemoURL)
	assert.Equal(t, project.DownloadURL, gated.DownloadURL)

	// anyone else gets nothing
	gated, err = svc.ResolveGatedFields(context.Background(), bob.ID, view)
	require.NoError(t, err)
	assert.Equal(t, domain.GatedFields{}, gated)

	// anonymous callers get nothing
	gated, err = svc.ResolveGatedFields(context.Background(), 0, view)
	require.NoError(t, err)
	assert.Equal(t, domain.GatedFields{}, gated)
}
