package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitAccessRequestEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	user := seedUser(t, db, "alice", "USER")
	project := seedProject(t, db, "shop-template")
	token := tokenFor(t, user)

	// no token
	status, envelope := doRequest(t, app, http.MethodPost, "/api/v1/access-requests", "", validClaimBody(project.ID))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, envelope["success"])

	// valid claim
	status, envelope = doRequest(t, app, http.MethodPost, "/api/v1/access-requests", token, validClaimBody(project.ID))
	require.Equal(t, http.StatusCreated, status)
	request := data(t, envelope)["access_request"].(map[string]interface{})
	assert.Equal(t, "pending", request["status"])
	assert.Equal(t, "USD", request["payment_currency"])
	assert.NotEmpty(t, request["request_no"])

	// invalid claim reports the offending fields
	body := validClaimBody(project.ID)
	body["payment_method"] = "cash"
	body["transaction_id"] = ""
	status, envelope = doRequest(t, app, http.MethodPost, "/api/v1/access-requests", token, body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.ElementsMatch(t, []interface{}{"payment_method", "transaction_id"}, envelope["fields"])

	// unknown project
	status, _ = doRequest(t, app, http.MethodPost, "/api/v1/access-requests", token, validClaimBody(999))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestResubmitAfterApprovalConflicts(t *testing.T) {
	app, db := newTestApp(t)
	admin := seedUser(t, db, "admin", "ADMIN")
	user := seedUser(t, db, "alice", "USER")
	project := seedProject(t, db, "shop-template")
	pending := seedPendingRequest(t, db, user.ID, project.ID)

	reviewURL := fmt.Sprintf("/api/v1/access-requests/%d", pending.ID)
	status, _ := doRequest(t, app, http.MethodPut, reviewURL, tokenFor(t, admin), map[string]interface{}{"action": "approve"})
	require.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, app, http.MethodPost, "/api/v1/access-requests", tokenFor(t, user), validClaimBody(project.ID))
	assert.Equal(t, http.StatusConflict, status)
}

func TestReviewEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	admin := seedUser(t, db, "admin", "ADMIN")
	user := seedUser(t, db, "alice", "USER")
	project := seedProject(t, db, "shop-template")
	pending := seedPendingRequest(t, db, user.ID, project.ID)
	adminToken := tokenFor(t, admin)
	reviewURL := fmt.Sprintf("/api/v1/access-requests/%d", pending.ID)

	// non-admin tokens never reach the handler
	status, _ := doRequest(t, app, http.MethodPut, reviewURL, tokenFor(t, user), map[string]interface{}{"action": "approve"})
	assert.Equal(t, http.StatusForbidden, status)

	// unknown action
	status, envelope := doRequest(t, app, http.MethodPut, reviewURL, adminToken, map[string]interface{}{"action": "escalate"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []interface{}{"action"}, envelope["fields"])

	// reject without a reason
	status, envelope = doRequest(t, app, http.MethodPut, reviewURL, adminToken, map[string]interface{}{"action": "reject"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []interface{}{"rejection_reason"}, envelope["fields"])

	// approve
	status, envelope = doRequest(t, app, http.MethodPut, reviewURL, adminToken, map[string]interface{}{
		"action":      "approve",
		"admin_notes": "verified",
	})
	require.Equal(t, http.StatusOK, status)
	request := data(t, envelope)["access_request"].(map[string]interface{})
	assert.Equal(t, "approved", request["status"])
	assert.EqualValues(t, admin.ID, request["approved_by"])
	assert.Equal(t, "verified", request["admin_notes"])

	// second decision conflicts
	status, _ = doRequest(t, app, http.MethodPut, reviewURL, adminToken, map[string]interface{}{"action": "approve"})
	assert.Equal(t, http.StatusConflict, status)

	// unknown request
	status, _ = doRequest(t, app, http.MethodPut, "/api/v1/access-requests/999", adminToken, map[string]interface{}{"action": "approve"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListAccessRequestsIsAdminOnly(t *testing.T) {
	app, db := newTestApp(t)
	admin := seedUser(t, db, "admin", "ADMIN")
	user := seedUser(t, db, "alice", "USER")
	project := seedProject(t, db, "shop-template")
	seedPendingRequest(t, db, user.ID, project.ID)

	status, _ := doRequest(t, app, http.MethodGet, "/api/v1/access-requests", tokenFor(t, user), nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, envelope := doRequest(t, app, http.MethodGet, "/api/v1/access-requests?status=pending", tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, status)
	listing := data(t, envelope)
	meta := listing["meta"].(map[string]interface{})
	assert.EqualValues(t, 1, meta["total"])

	// bad filter
	status, envelope = doRequest(t, app, http.MethodGet, "/api/v1/access-requests?status=cancelled", tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []interface{}{"status"}, envelope["fields"])
}

func TestGetMyAccessRequests(t *testing.T) {
	app, db := newTestApp(t)
	alice := seedUser(t, db, "alice", "USER")
	bob := seedUser(t, db, "bob", "USER")
	project := seedProject(t, db, "shop-template")
	seedPendingRequest(t, db, alice.ID, project.ID)

	status, envelope := doRequest(t, app, http.MethodGet, "/api/v1/access-requests/my", tokenFor(t, alice), nil)
	require.Equal(t, http.StatusOK, status)
	meta := data(t, envelope)["meta"].(map[string]interface{})
	assert.EqualValues(t, 1, meta["total"])

	// other users see nothing
	status, envelope = doRequest(t, app, http.MethodGet, "/api/v1/access-requests/my", tokenFor(t, bob), nil)
	require.Equal(t, http.StatusOK, status)
	meta = data(t, envelope)["meta"].(map[string]interface{})
	assert.EqualValues(t, 0, meta["total"])
}
