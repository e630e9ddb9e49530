package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction classifies entries in the platform audit log.
type AuditAction string

const (
	AuditUserLogin          AuditAction = "user_login"
	AuditUserApproved       AuditAction = "user_approved"
	AuditUserRejected       AuditAction = "user_rejected"
	AuditUserDisabled       AuditAction = "user_disabled"
	AuditOrderCreated       AuditAction = "order_created"
	AuditOrderStatusChanged AuditAction = "order_status_changed"
	AuditOrderETAUpdated    AuditAction = "order_eta_updated"
	AuditProductCreated     AuditAction = "product_created"
	AuditProductUpdated     AuditAction = "product_updated"
	AuditProductDeleted     AuditAction = "product_deleted"
	AuditStockUpdated       AuditAction = "stock_updated"
	AuditDocumentUploaded   AuditAction = "document_uploaded"
)

// AuditLog is an append-only record of a significant platform action.
type AuditLog struct {
	ID        uuid.UUID
	ActorID   *uuid.UUID
	Action    AuditAction
	TargetID  *uuid.UUID
	Detail    string
	CreatedAt time.Time
}
