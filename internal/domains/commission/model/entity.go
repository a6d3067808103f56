package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/xid"
	"github.com/shopspring/decimal"
)

// =====================================================
// LIFECYCLE STATUS
// =====================================================
const (
	StatusPendingPayment  = "pending_payment"
	StatusInProgress      = "in_progress"
	StatusWaitingApproval = "waiting_approval"
	StatusRevisions       = "revisions"
	StatusCompleted       = "completed"
	StatusCancelled       = "cancelled"
)

// =====================================================
// PAYMENT STATUS (independent axis)
// =====================================================
const (
	PaymentUnpaid               = "unpaid"
	PaymentAwaitingConfirmation = "awaiting_confirmation"
	PaymentPaid                 = "paid"
)

// statusLabels maps lifecycle statuses to the labels shown in the
// audit trail and notifications
var statusLabels = map[string]string{
	StatusPendingPayment:  "Pagamento Pendente",
	StatusInProgress:      "Em Progresso",
	StatusWaitingApproval: "Aguardando Aprovação",
	StatusRevisions:       "Em Revisão",
	StatusCompleted:       "Finalizado",
	StatusCancelled:       "Cancelado",
}

// TranslateStatus returns the display label for a lifecycle status
func TranslateStatus(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// IsValidStatus reports whether s is a known lifecycle status
func IsValidStatus(s string) bool {
	_, ok := statusLabels[s]
	return ok
}

// =====================================================
// COLLECTION ELEMENTS (JSON-encoded columns)
// =====================================================

// Phase is a named stage with its own revision quota,
// fixed at commission-creation time.
type Phase struct {
	Name           string `json:"name"`
	RevisionsLimit int    `json:"revisions_limit"`
}

// Comment is an append-only client/artist exchange entry
type Comment struct {
	Author            string    `json:"author"`
	IsArtist          bool      `json:"is_artist"`
	Timestamp         time.Time `json:"timestamp"`
	Text              string    `json:"text"`
	IsRevisionRequest bool      `json:"is_revision_request,omitempty"`
	PhaseName         string    `json:"phase_name,omitempty"`
}

// Preview is a delivered work-in-progress version
type Preview struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	URL       string    `json:"url"`
	Comment   string    `json:"comment"`
}

// LogEntry is one immutable audit-trail record
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Message   string    `json:"message"`
}

// =====================================================
// COMMISSION ENTITY
// =====================================================

// Commission is the central entity. Status, payment status, phase cursor
// and revision counter are written only by the lifecycle service.
type Commission struct {
	ID          string          `json:"id"`
	ClientName  string          `json:"client_name"`
	Type        string          `json:"type"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	Deadline    *time.Time      `json:"deadline,omitempty"`

	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`

	// CurrentPhaseIndex ranges 0..len(Phases); len(Phases) means all cleared
	Phases            []Phase `json:"phases"`
	CurrentPhaseIndex int     `json:"current_phase_index"`
	RevisionsUsed     int     `json:"revisions_used"`

	Comments       []Comment  `json:"comments"`
	Previews       []Preview  `json:"previews"`
	CurrentPreview int        `json:"current_preview"`
	EventLog       []LogEntry `json:"event_log"`

	ClientID          *uuid.UUID  `json:"client_id,omitempty"`
	AssignedArtistIDs []uuid.UUID `json:"assigned_artist_ids"`
}

// NewCommissionID generates a client-visible, time-sortable identifier
func NewCommissionID() string {
	return "ART-" + xid.New().String()
}

// IsTerminal reports whether the commission reached a final state
func (c *Commission) IsTerminal() bool {
	return c.Status == StatusCompleted || c.Status == StatusCancelled
}

// CurrentPhase returns the active phase, or nil when all phases are cleared
func (c *Commission) CurrentPhase() *Phase {
	if c.CurrentPhaseIndex < 0 || c.CurrentPhaseIndex >= len(c.Phases) {
		return nil
	}
	return &c.Phases[c.CurrentPhaseIndex]
}

// IsOwnedBy reports whether the given user is the owning client
func (c *Commission) IsOwnedBy(userID uuid.UUID) bool {
	return c.ClientID != nil && *c.ClientID == userID
}

// AppendLog appends one immutable audit entry
func (c *Commission) AppendLog(actor, message string) {
	c.EventLog = append(c.EventLog, LogEntry{
		Timestamp: time.Now().UTC(),
		Actor:     actor,
		Message:   message,
	})
}
