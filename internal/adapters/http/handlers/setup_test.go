package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"projectgate/internal/adapters/http/routes"
	"projectgate/internal/adapters/persistence/models"
	"projectgate/internal/config"
	"projectgate/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "handler-test-secret"

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:          testSecret,
			AccessTokenMins: 15,
		},
	}
}

// newTestApp wires the full route tree over an in-memory database
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
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

	app := fiber.New()
	routes.Setup(app, db, testConfig())
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     role,
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

func seedPendingRequest(t *testing.T, db *gorm.DB, userID, projectID uint) *models.AccessRequest {
	t.Helper()

	request := &models.AccessRequest{
		RequestNo:       uuid.NewString(),
		UserID:          userID,
		ProjectID:       projectID,
		Status:          models.StatusPending,
		PaymentMethod:   models.PaymentBankTransfer,
		PaymentAmount:   2000,
		PaymentCurrency: "USD",
		TransactionID:   "TX-" + uuid.NewString()[:8],
		PaymentProof:    "https://proof.example.com/receipt.png",
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := jwt.GenerateAccessToken(user.ID, user.Username, user.Role, testSecret, 15)
	require.NoError(t, err)
	return token
}

// doRequest performs a request against the app and decodes the envelope
func doRequest(t *testing.T, app *fiber.App, method, target, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp.StatusCode, envelope
}

func validClaimBody(projectID uint) map[string]interface{} {
	return map[string]interface{}{
		"project_id":     projectID,
		"payment_method": models.PaymentBankTransfer,
		"payment_amount": 2000,
		"transaction_id": "TX1",
		"payment_proof":  "https://proof.example.com/receipt.png",
	}
}

// data unwraps the envelope's data object
func data(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()

	d, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "envelope has no data object: %v", envelope)
	return d
}
