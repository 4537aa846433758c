package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Shared Tables (owned by the main site - Read Only)
// ============================================================

// User represents the shared users table. The identity service owns this
// table; this service only reads it to resolve roles.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'USER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Project represents the shared projects table (catalog service owns it).
// DemoURL and DownloadURL must never reach a caller without an entitlement.
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Slug        string         `gorm:"uniqueIndex;size:200;not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"type:decimal(15,2);not null" json:"price"`
	Currency    string         `gorm:"size:10;default:'USD'" json:"currency"`
	DemoURL     string         `gorm:"size:500" json:"-"`
	DownloadURL string         `gorm:"size:500" json:"-"`
	IsPublished bool           `gorm:"default:true" json:"is_published"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string {
	return "projects"
}

// ============================================================
// Access Request (the one table this service owns)
// ============================================================

// Request status. pending is initial; approved and rejected are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Payment methods accepted on submission
const (
	PaymentBankTransfer = "bank_transfer"
	PaymentPaypal       = "paypal"
	PaymentStripe       = "stripe"
	PaymentCrypto       = "crypto"
	PaymentOther        = "other"
)

// ValidPaymentMethods lists the accepted payment method values
var ValidPaymentMethods = map[string]bool{
	PaymentBankTransfer: true,
	PaymentPaypal:       true,
	PaymentStripe:       true,
	PaymentCrypto:       true,
	PaymentOther:        true,
}

// Field length limits from the submission contract
const (
	MaxMessageLen         = 1000
	MaxAdminNotesLen      = 1000
	MaxRejectionReasonLen = 500
)

// AccessRequest คำขอสิทธิ์เข้าถึงโปรเจกต์ (ตารางหลัก)
//
// Rows are append-only: a record is created as pending and mutated exactly
// once, by the terminal transition. ActiveKey is NULL except on approved rows,
// where it holds the literal status value; the unique index on
// (user_id, project_id, active_key) therefore allows any number of pending and
// rejected rows per pair but at most one approved row.
type AccessRequest struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	RequestNo       string     `gorm:"size:36;uniqueIndex;not null" json:"request_no"`
	UserID          uint       `gorm:"not null;index:idx_user_project_status,priority:1;uniqueIndex:uniq_active_access,priority:1" json:"user_id"`
	ProjectID       uint       `gorm:"not null;index:idx_user_project_status,priority:2;uniqueIndex:uniq_active_access,priority:2" json:"project_id"`
	Status          string     `gorm:"size:20;not null;default:'pending';index:idx_user_project_status,priority:3;index:idx_status_created,priority:1" json:"status"`
	ActiveKey       *string    `gorm:"size:20;uniqueIndex:uniq_active_access,priority:3" json:"-"`
	PaymentMethod   string     `gorm:"size:20;not null" json:"payment_method"`
	PaymentAmount   float64    `gorm:"type:decimal(15,2);not null" json:"payment_amount"`
	PaymentCurrency string     `gorm:"size:10;not null;default:'USD'" json:"payment_currency"`
	TransactionID   string     `gorm:"size:100;not null" json:"transaction_id"`
	PaymentProof    string     `gorm:"size:500;not null" json:"payment_proof"`
	Message         string     `gorm:"type:text" json:"message,omitempty"`
	AdminNotes      string     `gorm:"type:text" json:"admin_notes,omitempty"`
	ApprovedBy      *uint      `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason string     `gorm:"size:500" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index:idx_status_created,priority:2" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User     *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project  *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Approver *User    `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
}

func (AccessRequest) TableName() string {
	return "access_requests"
}

// IsPending reports whether the request is still awaiting review
func (r *AccessRequest) IsPending() bool {
	return r.Status == StatusPending
}

// IsApproved reports whether the request grants active access
func (r *AccessRequest) IsApproved() bool {
	return r.Status == StatusApproved
}

// AccessRequestResponse DTO
type AccessRequestResponse struct {
	ID              uint       `json:"id"`
	RequestNo       string     `json:"request_no"`
	UserID          uint       `json:"user_id"`
	Username        string     `json:"username,omitempty"`
	ProjectID       uint       `json:"project_id"`
	ProjectTitle    string     `json:"project_title,omitempty"`
	Status          string     `json:"status"`
	PaymentMethod   string     `json:"payment_method"`
	PaymentAmount   float64    `json:"payment_amount"`
	PaymentCurrency string     `json:"payment_currency"`
	TransactionID   string     `json:"transaction_id"`
	PaymentProof    string     `json:"payment_proof"`
	Message         string     `json:"message,omitempty"`
	AdminNotes      string     `json:"admin_notes,omitempty"`
	ApprovedBy      *uint      `json:"approved_by,omitempty"`
	ApproverName    string     `json:"approver_name,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (r *AccessRequest) ToResponse() *AccessRequestResponse {
	resp := &AccessRequestResponse{
		ID:              r.ID,
		RequestNo:       r.RequestNo,
		UserID:          r.UserID,
		ProjectID:       r.ProjectID,
		Status:          r.Status,
		PaymentMethod:   r.PaymentMethod,
		PaymentAmount:   r.PaymentAmount,
		PaymentCurrency: r.PaymentCurrency,
		TransactionID:   r.TransactionID,
		PaymentProof:    r.PaymentProof,
		Message:         r.Message,
		AdminNotes:      r.AdminNotes,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		RejectedAt:      r.RejectedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.User != nil {
		resp.Username = r.User.Username
	}
	if r.Project != nil {
		resp.ProjectTitle = r.Project.Title
	}
	if r.Approver != nil {
		resp.ApproverName = r.Approver.Username
	}

	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration. The users and projects tables are shared
// with the main site; migrating them here is safe in dev and a no-op against
// the already-provisioned production schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Project{},
		&AccessRequest{},
	)
}
