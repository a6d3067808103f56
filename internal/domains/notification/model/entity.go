package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Notification is one inbox entry. A nil UserID targets all
// administrators; a set UserID targets exactly that user.
// Only the read flag is ever updated, in bulk, by the owner.
type Notification struct {
	ID                  uuid.UUID  `json:"id"`
	UserID              *uuid.UUID `json:"user_id,omitempty"`
	Message             string     `json:"message"`
	IsRead              bool       `json:"is_read"`
	CreatedAt           time.Time  `json:"created_at"`
	RelatedCommissionID *string    `json:"related_commission_id,omitempty"`
}

var (
	ErrNotificationNotFound = errors.New("notification not found")
)
