package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	commissionModel "commission-backend/internal/domains/commission/model"
	commission "commission-backend/internal/domains/commission/service"
	"commission-backend/internal/domains/settings/model"
	"commission-backend/internal/domains/settings/repository"
	"commission-backend/pkg/cache"
)

const settingsCacheTTL = 5 * time.Minute

// =====================================================
// SETTINGS SERVICE INTERFACE
// =====================================================
type SettingsService interface {
	// Also serves as the commission type catalog
	commission.PhaseCatalog

	Get(ctx context.Context, key string) (*model.Setting, error)
	GetAll(ctx context.Context) ([]model.Setting, error)
	Update(ctx context.Context, req model.UpdateSettingsRequest) error

	// Template returns a stored message template, found = false when unset
	Template(ctx context.Context, key string) (string, bool)
}

// fallbackDefaultPhases is used until the admin configures the catalog
var fallbackDefaultPhases = []commissionModel.Phase{
	{Name: "Esboço", RevisionsLimit: 2},
	{Name: "Colorização", RevisionsLimit: 2},
	{Name: "Finalização", RevisionsLimit: 1},
}

// =====================================================
// IMPLEMENTATION
// =====================================================
type settingsService struct {
	repo  repository.SettingsRepository
	cache cache.Cache
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo repository.SettingsRepository, c cache.Cache) SettingsService {
	return &settingsService{repo: repo, cache: c}
}

func settingCacheKey(key string) string {
	return "settings:" + key
}

func (s *settingsService) Get(ctx context.Context, key string) (*model.Setting, error) {
	var cached model.Setting
	if found, err := s.cache.Get(ctx, settingCacheKey(key), &cached); err == nil && found {
		return &cached, nil
	}

	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, settingCacheKey(key), setting, settingsCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[SettingsService] Failed to cache setting")
	}

	return setting, nil
}

func (s *settingsService) GetAll(ctx context.Context) ([]model.Setting, error) {
	return s.repo.GetAll(ctx)
}

func (s *settingsService) Update(ctx context.Context, req model.UpdateSettingsRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	settings := make([]model.Setting, 0, len(req))
	for key, value := range req {
		if !json.Valid(value) {
			return fmt.Errorf("setting %q: %w", key, model.ErrInvalidValue)
		}
		settings = append(settings, model.Setting{Key: key, Value: value})
	}

	if err := s.repo.UpsertAll(ctx, settings); err != nil {
		return err
	}

	if err := s.cache.DeletePattern(ctx, "settings:*"); err != nil {
		log.Warn().Err(err).Msg("[SettingsService] Failed to invalidate settings cache")
	}

	log.Info().
		Int("keys", len(req)).
		Msg("[SettingsService] Settings updated")

	return nil
}

// =====================================================
// TYPE CATALOG (commission.PhaseCatalog)
// =====================================================

// ResolveType looks the label up in the commission_types catalog.
// Returns nil when the type is unknown.
func (s *settingsService) ResolveType(ctx context.Context, commissionType string) (*commission.TypeDefinition, error) {
	setting, err := s.repo.Get(ctx, model.KeyCommissionTypes)
	if err != nil {
		if errors.Is(err, model.ErrSettingNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var types []model.CommissionTypeDef
	if err := json.Unmarshal(setting.Value, &types); err != nil {
		return nil, fmt.Errorf("failed to decode commission types: %w", err)
	}

	for _, def := range types {
		if !strings.EqualFold(def.Label, commissionType) {
			continue
		}

		resolved := &commission.TypeDefinition{
			Label: def.Label,
			Price: decimal.NewFromFloat(def.Price),
		}
		for _, p := range def.Phases {
			resolved.Phases = append(resolved.Phases, commissionModel.Phase{
				Name:           p.Name,
				RevisionsLimit: p.RevisionsLimit,
			})
		}
		return resolved, nil
	}

	return nil, nil
}

// DefaultPhases returns the configured default phase sequence
func (s *settingsService) DefaultPhases(ctx context.Context) ([]commissionModel.Phase, error) {
	setting, err := s.repo.Get(ctx, model.KeyDefaultPhases)
	if err != nil {
		if errors.Is(err, model.ErrSettingNotFound) {
			return fallbackDefaultPhases, nil
		}
		return nil, err
	}

	var phases []commissionModel.Phase
	if err := json.Unmarshal(setting.Value, &phases); err != nil {
		return nil, fmt.Errorf("failed to decode default phases: %w", err)
	}

	if len(phases) == 0 {
		return fallbackDefaultPhases, nil
	}

	return phases, nil
}

// =====================================================
// MESSAGE TEMPLATES
// =====================================================

func (s *settingsService) Template(ctx context.Context, key string) (string, bool) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", false
	}

	var template string
	if err := json.Unmarshal(setting.Value, &template); err != nil || template == "" {
		return "", false
	}

	return template, true
}
