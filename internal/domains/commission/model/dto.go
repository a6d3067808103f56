package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateCommissionRequest creates a new commission. Admins may set the
// price and assign artists; client self-service requests resolve the
// price from the type catalog.
type CreateCommissionRequest struct {
	ClientName        string      `json:"client_name"`
	Type              string      `json:"type"`
	Price             *float64    `json:"price,omitempty"`
	Deadline          *time.Time  `json:"deadline,omitempty"`
	Description       string      `json:"description"`
	ClientID          *uuid.UUID  `json:"client_id,omitempty"`
	AssignedArtistIDs []uuid.UUID `json:"assigned_artist_ids,omitempty"`
}

func (r CreateCommissionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ClientName, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Type, validation.Required, validation.Length(1, 80)),
		validation.Field(&r.Price, validation.Min(0.0)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	)
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.By(func(value interface{}) error {
			s, _ := value.(string)
			if !IsValidStatus(s) {
				return ErrInvalidStatus
			}
			return nil
		})),
	)
}

type AddPreviewRequest struct {
	URL     string `json:"url"`
	Comment string `json:"comment"`
}

func (r AddPreviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required, validation.Length(1, 2048)),
		validation.Field(&r.Comment, validation.Length(0, 2000)),
	)
}

type RequestRevisionRequest struct {
	Comment string `json:"comment"`
}

func (r RequestRevisionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Comment, validation.Required, validation.Length(1, 2000)),
	)
}

type AddCommentRequest struct {
	Text string `json:"text"`
}

func (r AddCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required, validation.Length(1, 2000)),
	)
}

// UpdateDetailsRequest edits the general fields of a commission.
// Only non-nil fields are applied.
type UpdateDetailsRequest struct {
	ClientName  *string    `json:"client_name,omitempty"`
	Type        *string    `json:"type,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Description *string    `json:"description,omitempty"`
}

func (r UpdateDetailsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ClientName, validation.Length(1, 120)),
		validation.Field(&r.Type, validation.Length(1, 80)),
		validation.Field(&r.Price, validation.Min(0.0)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	)
}
