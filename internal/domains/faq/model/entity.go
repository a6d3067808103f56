package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Faq is one question/answer pair, ordered by Position
type Faq struct {
	ID       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Position int       `json:"position"`
}

var ErrFaqNotFound = errors.New("faq not found")

// =====================================================
// DTOs
// =====================================================

// SyncFaqItem carries one entry of the full-list sync. A nil ID means
// the entry is new; existing rows absent from the list are deleted.
type SyncFaqItem struct {
	ID       *uuid.UUID `json:"id"`
	Question string     `json:"question"`
	Answer   string     `json:"answer"`
}

func (i SyncFaqItem) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Question, validation.Required, validation.Length(1, 500)),
		validation.Field(&i.Answer, validation.Required, validation.Length(1, 5000)),
	)
}

type SyncFaqsRequest struct {
	Faqs []SyncFaqItem `json:"faqs"`
}

func (r SyncFaqsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Faqs, validation.NotNil),
	)
}
