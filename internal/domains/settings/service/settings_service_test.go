package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commission-backend/internal/domains/settings/model"
)

// =====================================================
// MOCKS
// =====================================================

type mockSettingsRepo struct {
	settings map[string]json.RawMessage
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{settings: make(map[string]json.RawMessage)}
}

func (m *mockSettingsRepo) set(key, value string) {
	m.settings[key] = json.RawMessage(value)
}

func (m *mockSettingsRepo) Get(ctx context.Context, key string) (*model.Setting, error) {
	value, ok := m.settings[key]
	if !ok {
		return nil, model.ErrSettingNotFound
	}
	return &model.Setting{Key: key, Value: value}, nil
}

func (m *mockSettingsRepo) GetAll(ctx context.Context) ([]model.Setting, error) {
	out := make([]model.Setting, 0, len(m.settings))
	for key, value := range m.settings {
		out = append(out, model.Setting{Key: key, Value: value})
	}
	return out, nil
}

func (m *mockSettingsRepo) Upsert(ctx context.Context, setting *model.Setting) error {
	m.settings[setting.Key] = setting.Value
	return nil
}

func (m *mockSettingsRepo) UpsertAll(ctx context.Context, settings []model.Setting) error {
	for _, s := range settings {
		m.settings[s.Key] = s.Value
	}
	return nil
}

// mockCache is a pass-through cache that records invalidations
type mockCache struct {
	invalidatedPatterns []string
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error { return nil }

func (m *mockCache) DeletePattern(ctx context.Context, pattern string) error {
	m.invalidatedPatterns = append(m.invalidatedPatterns, pattern)
	return nil
}

func (m *mockCache) Ping(ctx context.Context) error { return nil }

func newTestService() (*mockSettingsRepo, *mockCache, SettingsService) {
	repo := newMockSettingsRepo()
	c := &mockCache{}
	return repo, c, NewSettingsService(repo, c)
}

// =====================================================
// TYPE CATALOG
// =====================================================

func TestResolveTypeMatchesCaseInsensitively(t *testing.T) {
	repo, _, svc := newTestService()
	repo.set(model.KeyCommissionTypes, `[
		{"label": "Ilustração", "price": 150, "phases": [
			{"name": "Esboço", "revisions_limit": 2},
			{"name": "Finalização", "revisions_limit": 1}
		]},
		{"label": "Chibi", "price": 80}
	]`)

	def, err := svc.ResolveType(context.Background(), "ilustração")
	require.NoError(t, err)
	require.NotNil(t, def)

	assert.Equal(t, "Ilustração", def.Label)
	assert.True(t, def.Price.Equal(decimal.NewFromInt(150)))
	require.Len(t, def.Phases, 2)
	assert.Equal(t, "Esboço", def.Phases[0].Name)
	assert.Equal(t, 2, def.Phases[0].RevisionsLimit)
}

func TestResolveTypeWithoutPhaseOverride(t *testing.T) {
	repo, _, svc := newTestService()
	repo.set(model.KeyCommissionTypes, `[{"label": "Chibi", "price": 80}]`)

	def, err := svc.ResolveType(context.Background(), "Chibi")
	require.NoError(t, err)
	require.NotNil(t, def)

	// No override: the caller falls back to the default phase sequence
	assert.Nil(t, def.Phases)
}

func TestResolveTypeUnknown(t *testing.T) {
	repo, _, svc := newTestService()
	repo.set(model.KeyCommissionTypes, `[{"label": "Chibi", "price": 80}]`)

	def, err := svc.ResolveType(context.Background(), "Escultura")
	require.NoError(t, err)
	assert.Nil(t, def)
}

func TestResolveTypeWithoutCatalog(t *testing.T) {
	_, _, svc := newTestService()

	def, err := svc.ResolveType(context.Background(), "Ilustração")
	require.NoError(t, err)
	assert.Nil(t, def)
}

// =====================================================
// DEFAULT PHASES
// =====================================================

func TestDefaultPhasesFallback(t *testing.T) {
	_, _, svc := newTestService()

	phases, err := svc.DefaultPhases(context.Background())
	require.NoError(t, err)

	require.Len(t, phases, 3)
	assert.Equal(t, "Esboço", phases[0].Name)
	assert.Equal(t, "Colorização", phases[1].Name)
	assert.Equal(t, "Finalização", phases[2].Name)
}

func TestDefaultPhasesConfigured(t *testing.T) {
	repo, _, svc := newTestService()
	repo.set(model.KeyDefaultPhases, `[{"name": "Rascunho", "revisions_limit": 5}]`)

	phases, err := svc.DefaultPhases(context.Background())
	require.NoError(t, err)

	require.Len(t, phases, 1)
	assert.Equal(t, "Rascunho", phases[0].Name)
	assert.Equal(t, 5, phases[0].RevisionsLimit)
}

func TestDefaultPhasesEmptyConfigFallsBack(t *testing.T) {
	repo, _, svc := newTestService()
	repo.set(model.KeyDefaultPhases, `[]`)

	phases, err := svc.DefaultPhases(context.Background())
	require.NoError(t, err)
	assert.Len(t, phases, 3)
}

// =====================================================
// TEMPLATES
// =====================================================

func TestTemplateLookup(t *testing.T) {
	repo, _, svc := newTestService()
	repo.set(model.KeyTelegramTemplateNewOrder, `"🎨 {message}"`)

	template, found := svc.Template(context.Background(), model.KeyTelegramTemplateNewOrder)
	assert.True(t, found)
	assert.Equal(t, "🎨 {message}", template)

	_, found = svc.Template(context.Background(), model.KeyTelegramTemplateNewClient)
	assert.False(t, found)
}

// =====================================================
// UPDATE
// =====================================================

func TestUpdateRejectsInvalidJSON(t *testing.T) {
	repo, _, svc := newTestService()

	err := svc.Update(context.Background(), model.UpdateSettingsRequest{
		"social_links": json.RawMessage(`{broken`),
	})
	assert.ErrorIs(t, err, model.ErrInvalidValue)
	assert.Empty(t, repo.settings)
}

func TestUpdateWritesAndInvalidatesCache(t *testing.T) {
	repo, c, svc := newTestService()

	err := svc.Update(context.Background(), model.UpdateSettingsRequest{
		model.KeySocialLinks:     json.RawMessage(`{"instagram": "@artista"}`),
		model.KeySupportContacts: json.RawMessage(`["contato@example.com"]`),
	})
	require.NoError(t, err)

	assert.Len(t, repo.settings, 2)
	assert.JSONEq(t, `{"instagram": "@artista"}`, string(repo.settings[model.KeySocialLinks]))
	assert.Contains(t, c.invalidatedPatterns, "settings:*")
}

func TestUpdateRejectsEmptyRequest(t *testing.T) {
	_, _, svc := newTestService()

	err := svc.Update(context.Background(), model.UpdateSettingsRequest{})
	assert.Error(t, err)
}
