package service

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commission-backend/internal/domains/faq/model"
)

// =====================================================
// MOCK REPOSITORY
// =====================================================

type mockFaqRepo struct {
	faqs map[uuid.UUID]model.Faq
}

func newMockFaqRepo(seed ...model.Faq) *mockFaqRepo {
	m := &mockFaqRepo{faqs: make(map[uuid.UUID]model.Faq)}
	for _, f := range seed {
		m.faqs[f.ID] = f
	}
	return m
}

func (m *mockFaqRepo) BeginTx(ctx context.Context) (pgx.Tx, error) { return nil, nil }

func (m *mockFaqRepo) CommitTx(ctx context.Context, tx pgx.Tx) error { return nil }

func (m *mockFaqRepo) RollbackTx(ctx context.Context, tx pgx.Tx) error { return nil }

func (m *mockFaqRepo) ListOrdered(ctx context.Context) ([]model.Faq, error) {
	out := make([]model.Faq, 0, len(m.faqs))
	for _, f := range m.faqs {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *mockFaqRepo) ListOrderedWithTx(ctx context.Context, tx pgx.Tx) ([]model.Faq, error) {
	return m.ListOrdered(ctx)
}

func (m *mockFaqRepo) CreateWithTx(ctx context.Context, tx pgx.Tx, faq *model.Faq) error {
	m.faqs[faq.ID] = *faq
	return nil
}

func (m *mockFaqRepo) UpdateWithTx(ctx context.Context, tx pgx.Tx, faq *model.Faq) error {
	if _, ok := m.faqs[faq.ID]; !ok {
		return model.ErrFaqNotFound
	}
	m.faqs[faq.ID] = *faq
	return nil
}

func (m *mockFaqRepo) DeleteWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	delete(m.faqs, id)
	return nil
}

// =====================================================
// TESTS
// =====================================================

func TestSyncCreatesNewEntries(t *testing.T) {
	repo := newMockFaqRepo()
	svc := NewFaqService(repo)

	result, err := svc.Sync(context.Background(), &model.SyncFaqsRequest{
		Faqs: []model.SyncFaqItem{
			{Question: "Quanto tempo leva?", Answer: "Entre 2 e 4 semanas."},
			{Question: "Aceita revisões?", Answer: "Sim, por fase."},
		},
	})
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, 0, result[0].Position)
	assert.Equal(t, 1, result[1].Position)
	assert.NotEqual(t, uuid.Nil, result[0].ID)
	assert.Len(t, repo.faqs, 2)
}

func TestSyncUpdatesAndReorders(t *testing.T) {
	first := model.Faq{ID: uuid.New(), Question: "Pergunta A", Answer: "Resposta A", Position: 0}
	second := model.Faq{ID: uuid.New(), Question: "Pergunta B", Answer: "Resposta B", Position: 1}
	repo := newMockFaqRepo(first, second)
	svc := NewFaqService(repo)

	// Swap the order and edit the first entry's answer
	result, err := svc.Sync(context.Background(), &model.SyncFaqsRequest{
		Faqs: []model.SyncFaqItem{
			{ID: &second.ID, Question: "Pergunta B", Answer: "Resposta B"},
			{ID: &first.ID, Question: "Pergunta A", Answer: "Resposta A editada"},
		},
	})
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, second.ID, result[0].ID)
	assert.Equal(t, 0, result[0].Position)
	assert.Equal(t, first.ID, result[1].ID)
	assert.Equal(t, 1, result[1].Position)
	assert.Equal(t, "Resposta A editada", repo.faqs[first.ID].Answer)
}

func TestSyncDeletesAbsentEntries(t *testing.T) {
	keep := model.Faq{ID: uuid.New(), Question: "Fica", Answer: "Sim", Position: 0}
	drop := model.Faq{ID: uuid.New(), Question: "Sai", Answer: "Tchau", Position: 1}
	repo := newMockFaqRepo(keep, drop)
	svc := NewFaqService(repo)

	result, err := svc.Sync(context.Background(), &model.SyncFaqsRequest{
		Faqs: []model.SyncFaqItem{
			{ID: &keep.ID, Question: "Fica", Answer: "Sim"},
		},
	})
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Len(t, repo.faqs, 1)
	_, exists := repo.faqs[drop.ID]
	assert.False(t, exists)
}

func TestSyncUnknownIDFails(t *testing.T) {
	repo := newMockFaqRepo()
	svc := NewFaqService(repo)
	unknown := uuid.New()

	_, err := svc.Sync(context.Background(), &model.SyncFaqsRequest{
		Faqs: []model.SyncFaqItem{
			{ID: &unknown, Question: "Pergunta", Answer: "Resposta"},
		},
	})
	assert.ErrorIs(t, err, model.ErrFaqNotFound)
}

func TestSyncEmptyListClearsEverything(t *testing.T) {
	repo := newMockFaqRepo(
		model.Faq{ID: uuid.New(), Question: "A", Answer: "B", Position: 0},
	)
	svc := NewFaqService(repo)

	result, err := svc.Sync(context.Background(), &model.SyncFaqsRequest{
		Faqs: []model.SyncFaqItem{},
	})
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.Empty(t, repo.faqs)
}

func TestListReturnsEmptySliceWhenNoRows(t *testing.T) {
	svc := NewFaqService(newMockFaqRepo())

	faqs, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, faqs)
	assert.Empty(t, faqs)
}
