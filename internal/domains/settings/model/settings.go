package model

import (
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Well-known settings keys. Values are JSON documents.
const (
	KeyCommissionTypes  = "commission_types"
	KeyDefaultPhases    = "default_phases"
	KeyCommissionExtras = "commission_extras"
	KeySocialLinks      = "social_links"
	KeySupportContacts  = "support_contacts"

	KeyTelegramTemplateNewOrder  = "telegram_template_new_order"
	KeyTelegramTemplateNewClient = "telegram_template_new_client"
)

// Setting is one key-value row
type Setting struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// CommissionTypeDef is one entry of the commission type catalog
type CommissionTypeDef struct {
	Label  string          `json:"label"`
	Price  float64         `json:"price"`
	Phases []PhaseOverride `json:"phases,omitempty"`
}

// PhaseOverride is a type-specific phase definition
type PhaseOverride struct {
	Name           string `json:"name"`
	RevisionsLimit int    `json:"revisions_limit"`
}

// =====================================================
// ERRORS
// =====================================================
var (
	ErrSettingNotFound = errors.New("setting not found")
	ErrInvalidValue    = errors.New("setting value is not valid JSON")
)

// =====================================================
// DTOs
// =====================================================

// UpdateSettingsRequest replaces the value of each given key
type UpdateSettingsRequest map[string]json.RawMessage

func (r UpdateSettingsRequest) Validate() error {
	return validation.Validate(map[string]json.RawMessage(r),
		validation.Required,
		validation.By(func(value interface{}) error {
			for key := range r {
				if key == "" {
					return errors.New("settings keys must not be empty")
				}
			}
			return nil
		}),
	)
}
