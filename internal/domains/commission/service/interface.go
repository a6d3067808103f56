package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"commission-backend/internal/domains/commission/model"
	"commission-backend/internal/shared"
)

// =====================================================
// COMMISSION SERVICE INTERFACE
// =====================================================
type CommissionService interface {
	// Queries
	Get(ctx context.Context, actor shared.Actor, id string) (*model.Commission, error)
	List(ctx context.Context, status string, page, limit int) ([]model.Commission, int, error)
	ListMine(ctx context.Context, actor shared.Actor, page, limit int) ([]model.Commission, int, error)

	// Lifecycle operations
	Create(ctx context.Context, actor shared.Actor, req model.CreateCommissionRequest) (*model.Commission, error)
	ConfirmPayment(ctx context.Context, actor shared.Actor, id string) error
	AdminConfirmPayment(ctx context.Context, actor shared.Actor, id string) error
	AddPreview(ctx context.Context, actor shared.Actor, id string, req model.AddPreviewRequest) error
	ApprovePhase(ctx context.Context, actor shared.Actor, id string) error
	RequestRevision(ctx context.Context, actor shared.Actor, id string, req model.RequestRevisionRequest) error
	UpdateStatus(ctx context.Context, actor shared.Actor, id string, req model.UpdateStatusRequest) error
	Cancel(ctx context.Context, actor shared.Actor, id string) error
	Delete(ctx context.Context, actor shared.Actor, id string) error

	// Appends
	AddComment(ctx context.Context, actor shared.Actor, id string, req model.AddCommentRequest) error
	UpdateDetails(ctx context.Context, actor shared.Actor, id string, req model.UpdateDetailsRequest) error
}

// =====================================================
// TYPE CATALOG INTERFACE (settings domain)
// =====================================================

// TypeDefinition is one entry of the commission type catalog
type TypeDefinition struct {
	Label  string
	Price  decimal.Decimal
	Phases []model.Phase // nil means use the default phase catalog
}

// PhaseCatalog resolves commission types and phase defaults at creation time
type PhaseCatalog interface {
	ResolveType(ctx context.Context, commissionType string) (*TypeDefinition, error)
	DefaultPhases(ctx context.Context) ([]model.Phase, error)
}

// =====================================================
// NOTIFIER INTERFACE (notification domain)
// =====================================================

// Notifier persists notification rows and triggers external delivery.
// A nil userID targets all administrators.
type Notifier interface {
	NotifyAdmins(ctx context.Context, message string, commissionID *string) error
	NotifyUser(ctx context.Context, userID uuid.UUID, message string, commissionID *string) error
}
