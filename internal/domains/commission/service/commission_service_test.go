package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commission-backend/internal/domains/commission/model"
	"commission-backend/internal/shared"
)

// =====================================================
// MOCKS
// =====================================================

type mockCommissionRepo struct {
	commissions map[string]*model.Commission
	beginErr    error
	updateErr   error
}

func newMockCommissionRepo() *mockCommissionRepo {
	return &mockCommissionRepo{commissions: make(map[string]*model.Commission)}
}

func (m *mockCommissionRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return nil, m.beginErr
}

func (m *mockCommissionRepo) CommitTx(ctx context.Context, tx pgx.Tx) error   { return nil }
func (m *mockCommissionRepo) RollbackTx(ctx context.Context, tx pgx.Tx) error { return nil }

func (m *mockCommissionRepo) CreateWithTx(ctx context.Context, tx pgx.Tx, c *model.Commission) error {
	m.commissions[c.ID] = cloneCommission(c)
	return nil
}

func (m *mockCommissionRepo) GetByID(ctx context.Context, id string) (*model.Commission, error) {
	c, ok := m.commissions[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return cloneCommission(c), nil
}

func (m *mockCommissionRepo) GetForUpdateWithTx(ctx context.Context, tx pgx.Tx, id string) (*model.Commission, error) {
	return m.GetByID(ctx, id)
}

func (m *mockCommissionRepo) UpdateWithTx(ctx context.Context, tx pgx.Tx, c *model.Commission) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.commissions[c.ID]; !ok {
		return model.ErrNotFound
	}
	m.commissions[c.ID] = cloneCommission(c)
	return nil
}

func (m *mockCommissionRepo) DeleteWithTx(ctx context.Context, tx pgx.Tx, id string) error {
	if _, ok := m.commissions[id]; !ok {
		return model.ErrNotFound
	}
	delete(m.commissions, id)
	return nil
}

func (m *mockCommissionRepo) List(ctx context.Context, status string, page, limit int) ([]model.Commission, int, error) {
	var out []model.Commission
	for _, c := range m.commissions {
		if status == "" || c.Status == status {
			out = append(out, *cloneCommission(c))
		}
	}
	return out, len(out), nil
}

func (m *mockCommissionRepo) ListByClientID(ctx context.Context, clientID uuid.UUID, page, limit int) ([]model.Commission, int, error) {
	var out []model.Commission
	for _, c := range m.commissions {
		if c.IsOwnedBy(clientID) {
			out = append(out, *cloneCommission(c))
		}
	}
	return out, len(out), nil
}

// cloneCommission copies the entity so mutations on the working copy do
// not leak into the stored row before UpdateWithTx runs
func cloneCommission(c *model.Commission) *model.Commission {
	out := *c
	out.Phases = append([]model.Phase(nil), c.Phases...)
	out.Comments = append([]model.Comment(nil), c.Comments...)
	out.Previews = append([]model.Preview(nil), c.Previews...)
	out.EventLog = append([]model.LogEntry(nil), c.EventLog...)
	out.AssignedArtistIDs = append([]uuid.UUID(nil), c.AssignedArtistIDs...)
	return &out
}

type mockCatalog struct {
	types         map[string]*TypeDefinition
	defaultPhases []model.Phase
}

func (m *mockCatalog) ResolveType(ctx context.Context, commissionType string) (*TypeDefinition, error) {
	return m.types[commissionType], nil
}

func (m *mockCatalog) DefaultPhases(ctx context.Context) ([]model.Phase, error) {
	return m.defaultPhases, nil
}

type mockNotifier struct {
	adminMessages []string
	userMessages  map[uuid.UUID][]string
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{userMessages: make(map[uuid.UUID][]string)}
}

func (m *mockNotifier) NotifyAdmins(ctx context.Context, message string, commissionID *string) error {
	m.adminMessages = append(m.adminMessages, message)
	return nil
}

func (m *mockNotifier) NotifyUser(ctx context.Context, userID uuid.UUID, message string, commissionID *string) error {
	m.userMessages[userID] = append(m.userMessages[userID], message)
	return nil
}

type mockBroadcaster struct {
	events   []string
	payloads []map[string]interface{}
}

func (m *mockBroadcaster) Broadcast(ctx context.Context, name string, payload map[string]interface{}) error {
	m.events = append(m.events, name)
	m.payloads = append(m.payloads, payload)
	return nil
}

// =====================================================
// FIXTURES
// =====================================================

type fixture struct {
	repo        *mockCommissionRepo
	catalog     *mockCatalog
	notifier    *mockNotifier
	broadcaster *mockBroadcaster
	service     CommissionService
}

func newFixture() *fixture {
	repo := newMockCommissionRepo()
	catalog := &mockCatalog{
		types: map[string]*TypeDefinition{
			"Ilustração": {
				Label: "Ilustração",
				Price: decimal.NewFromInt(150),
				Phases: []model.Phase{
					{Name: "Esboço", RevisionsLimit: 2},
					{Name: "Finalização", RevisionsLimit: 1},
				},
			},
		},
		defaultPhases: []model.Phase{
			{Name: "Esboço", RevisionsLimit: 2},
			{Name: "Colorização", RevisionsLimit: 2},
			{Name: "Finalização", RevisionsLimit: 1},
		},
	}
	notifier := newMockNotifier()
	broadcaster := &mockBroadcaster{}

	return &fixture{
		repo:        repo,
		catalog:     catalog,
		notifier:    notifier,
		broadcaster: broadcaster,
		service:     NewCommissionService(repo, catalog, notifier, broadcaster),
	}
}

func clientActor() shared.Actor {
	return shared.Actor{UserID: uuid.New(), Username: "cliente1", IsAdmin: false}
}

func adminActor() shared.Actor {
	return shared.Actor{UserID: uuid.New(), Username: "artista1", IsAdmin: true}
}

func (f *fixture) createOrder(t *testing.T, actor shared.Actor) *model.Commission {
	t.Helper()
	created, err := f.service.Create(context.Background(), actor, model.CreateCommissionRequest{
		ClientName: "Maria",
		Type:       "Ilustração",
	})
	require.NoError(t, err)
	return created
}

func (f *fixture) stored(t *testing.T, id string) *model.Commission {
	t.Helper()
	c, ok := f.repo.commissions[id]
	require.True(t, ok, "commission %s not stored", id)
	return c
}

// =====================================================
// CREATE
// =====================================================

func TestCreateResolvesCatalogType(t *testing.T) {
	f := newFixture()
	actor := clientActor()

	created := f.createOrder(t, actor)

	assert.Equal(t, model.StatusPendingPayment, created.Status)
	assert.Equal(t, model.PaymentUnpaid, created.PaymentStatus)
	assert.True(t, created.Price.Equal(decimal.NewFromInt(150)))
	assert.Len(t, created.Phases, 2)
	assert.Equal(t, 0, created.CurrentPhaseIndex)
	assert.Equal(t, -1, created.CurrentPreview)

	require.Len(t, created.EventLog, 1)
	assert.Equal(t, "Pedido criado. Aguardando pagamento.", created.EventLog[0].Message)
	assert.Equal(t, "Cliente", created.EventLog[0].Actor)

	// Clients always own their own orders
	require.NotNil(t, created.ClientID)
	assert.Equal(t, actor.UserID, *created.ClientID)

	assert.Len(t, f.notifier.adminMessages, 1)
}

func TestCreateUnknownTypeWithPriceUsesDefaults(t *testing.T) {
	f := newFixture()
	price := 300.0

	created, err := f.service.Create(context.Background(), adminActor(), model.CreateCommissionRequest{
		ClientName: "João",
		Type:       "Encomenda especial",
		Price:      &price,
	})
	require.NoError(t, err)

	assert.True(t, created.Price.Equal(decimal.NewFromFloat(300)))
	assert.Len(t, created.Phases, 3)
}

func TestCreateUnknownTypeWithoutPriceFails(t *testing.T) {
	f := newFixture()

	_, err := f.service.Create(context.Background(), adminActor(), model.CreateCommissionRequest{
		ClientName: "João",
		Type:       "Encomenda especial",
	})
	assert.ErrorIs(t, err, model.ErrInvalidType)
	assert.Empty(t, f.repo.commissions)
}

func TestCreateExplicitPriceOverridesCatalog(t *testing.T) {
	f := newFixture()
	price := 999.5

	created, err := f.service.Create(context.Background(), adminActor(), model.CreateCommissionRequest{
		ClientName: "Maria",
		Type:       "Ilustração",
		Price:      &price,
	})
	require.NoError(t, err)

	assert.True(t, created.Price.Equal(decimal.NewFromFloat(999.5)))
}

// =====================================================
// PAYMENT
// =====================================================

func TestConfirmPaymentByOwner(t *testing.T) {
	f := newFixture()
	actor := clientActor()
	created := f.createOrder(t, actor)

	err := f.service.ConfirmPayment(context.Background(), actor, created.ID)
	require.NoError(t, err)

	stored := f.stored(t, created.ID)
	assert.Equal(t, model.PaymentAwaitingConfirmation, stored.PaymentStatus)
	assert.Equal(t, model.StatusPendingPayment, stored.Status)
	require.Len(t, stored.EventLog, 2)
	assert.Equal(t, "Confirmou que efetuou o pagamento.", stored.EventLog[1].Message)
}

func TestConfirmPaymentByStrangerFails(t *testing.T) {
	f := newFixture()
	created := f.createOrder(t, clientActor())

	err := f.service.ConfirmPayment(context.Background(), clientActor(), created.ID)
	assert.ErrorIs(t, err, model.ErrNotOwner)

	stored := f.stored(t, created.ID)
	assert.Equal(t, model.PaymentUnpaid, stored.PaymentStatus)
	assert.Len(t, stored.EventLog, 1)
}

func TestAdminConfirmPaymentStartsProgress(t *testing.T) {
	f := newFixture()
	actor := clientActor()
	created := f.createOrder(t, actor)

	err := f.service.AdminConfirmPayment(context.Background(), adminActor(), created.ID)
	require.NoError(t, err)

	stored := f.stored(t, created.ID)
	assert.Equal(t, model.PaymentPaid, stored.PaymentStatus)
	assert.Equal(t, model.StatusInProgress, stored.Status)

	// Exactly two new entries: payment confirmed + status change
	require.Len(t, stored.EventLog, 3)
	assert.Equal(t, "Pagamento confirmado.", stored.EventLog[1].Message)
	assert.Equal(t, "Status do pedido alterado para 'Em Progresso'.", stored.EventLog[2].Message)

	assert.Len(t, f.notifier.userMessages[actor.UserID], 1)
}

// =====================================================
// PREVIEWS AND APPROVAL
// =====================================================

func TestAddPreviewVersioning(t *testing.T) {
	f := newFixture()
	created := f.createOrder(t, clientActor())
	admin := adminActor()

	err := f.service.AddPreview(context.Background(), admin, created.ID, model.AddPreviewRequest{
		URL: "https://cdn.example.com/p1.png",
	})
	require.NoError(t, err)

	stored := f.stored(t, created.ID)
	require.Len(t, stored.Previews, 1)
	assert.Equal(t, "1.0", stored.Previews[0].Version)
	assert.Equal(t, 0, stored.CurrentPreview)
	assert.Equal(t, model.StatusWaitingApproval, stored.Status)
	assert.Equal(t, "Enviou uma prévia para a fase 'Esboço'.", stored.EventLog[len(stored.EventLog)-1].Message)

	err = f.service.AddPreview(context.Background(), admin, created.ID, model.AddPreviewRequest{
		URL: "https://cdn.example.com/p2.png",
	})
	require.NoError(t, err)

	stored = f.stored(t, created.ID)
	require.Len(t, stored.Previews, 2)
	assert.Equal(t, "2.0", stored.Previews[1].Version)
	assert.Equal(t, 1, stored.CurrentPreview)
}

func TestApprovePhaseAdvancesAndResetsQuota(t *testing.T) {
	f := newFixture()
	actor := clientActor()
	created := f.createOrder(t, actor)

	// Spend a revision on the first phase
	require.NoError(t, f.service.RequestRevision(context.Background(), actor, created.ID, model.RequestRevisionRequest{
		Comment: "Ajustar o traço.",
	}))
	assert.Equal(t, 1, f.stored(t, created.ID).RevisionsUsed)

	err := f.service.ApprovePhase(context.Background(), actor, created.ID)
	require.NoError(t, err)

	stored := f.stored(t, created.ID)
	assert.Equal(t, 1, stored.CurrentPhaseIndex)
	assert.Equal(t, 0, stored.RevisionsUsed)
	assert.Equal(t, model.StatusInProgress, stored.Status)

	last := stored.EventLog[len(stored.EventLog)-1]
	assert.Equal(t, shared.ActorSystem, last.Actor)
	assert.Equal(t, "Projeto avançou para a fase 'Finalização'.", last.Message)
}

func TestApproveLastPhaseCompletes(t *testing.T) {
	f := newFixture()
	actor := clientActor()
	created := f.createOrder(t, actor)

	require.NoError(t, f.service.ApprovePhase(context.Background(), actor, created.ID))
	require.NoError(t, f.service.ApprovePhase(context.Background(), actor, created.ID))

	stored := f.stored(t, created.ID)
	assert.Equal(t, model.StatusCompleted, stored.Status)
	assert.Equal(t, len(stored.Phases), stored.CurrentPhaseIndex)
	assert.Nil(t, stored.CurrentPhase())

	last := stored.EventLog[len(stored.EventLog)-1]
	assert.Equal(t, shared.ActorSystem, last.Actor)
	assert.Equal(t, "Todas as fases foram aprovadas. Pedido finalizado.", last.Message)

	// Terminal state blocks further lifecycle operations
	err := f.service.ApprovePhase(context.Background(), actor, created.ID)
	assert.ErrorIs(t, err, model.ErrTerminalState)
}

// =====================================================
// REVISIONS
// =====================================================

func TestRequestRevisionEnforcesQuota(t *testing.T) {
	f := newFixture()
	actor := clientActor()
	created := f.createOrder(t, actor)

	req := model.RequestRevisionRequest{Comment: "Mudar a pose."}
	require.NoError(t, f.service.RequestRevision(context.Background(), actor, created.ID, req))
	require.NoError(t, f.service.RequestRevision(context.Background(), actor, created.ID, req))

	before := cloneCommission(f.stored(t, created.ID))

	// First phase allows 2 revisions, the third must be rejected
	err := f.service.RequestRevision(context.Background(), actor, created.ID, req)
	assert.ErrorIs(t, err, model.ErrQuotaExceeded)

	// Rejection leaves state fully untouched
	after := f.stored(t, created.ID)
	assert.Equal(t, before.RevisionsUsed, after.RevisionsUsed)
	assert.Equal(t, before.Status, after.Status)
	assert.Len(t, after.Comments, len(before.Comments))
	assert.Len(t, after.EventLog, len(before.EventLog))
}

func TestRequestRevisionMarksComment(t *testing.T) {
	f := newFixture()
	actor := clientActor()
	created := f.createOrder(t, actor)

	err := f.service.RequestRevision(context.Background(), actor, created.ID, model.RequestRevisionRequest{
		Comment: "Cores mais quentes, por favor.",
	})
	require.NoError(t, err)

	stored := f.stored(t, created.ID)
	assert.Equal(t, model.StatusRevisions, stored.Status)
	assert.Equal(t, 1, stored.RevisionsUsed)

	require.Len(t, stored.Comments, 1)
	comment := stored.Comments[0]
	assert.True(t, comment.IsRevisionRequest)
	assert.Equal(t, "Esboço", comment.PhaseName)
	assert.Equal(t, "Cores mais quentes, por favor.", comment.Text)
	assert.False(t, comment.IsArtist)

	assert.Equal(t, "Solicitou uma revisão para a fase 'Esboço'.",
		stored.EventLog[len(stored.EventLog)-1].Message)
}

// =====================================================
// STATUS OVERRIDE AND CANCEL
// =====================================================

func TestUpdateStatusOverridesTerminalState(t *testing.T) {
	f := newFixture()
	actor := clientActor()
	created := f.createOrder(t, actor)
	require.NoError(t, f.service.Cancel(context.Background(), actor, created.ID))

	err := f.service.UpdateStatus(context.Background(), adminActor(), created.ID, model.UpdateStatusRequest{
		Status: model.StatusInProgress,
	})
	require.NoError(t, err)

	stored := f.stored(t, created.ID)
	assert.Equal(t, model.StatusInProgress, stored.Status)
	assert.Equal(t, "Alterou o status para 'Em Progresso'.",
		stored.EventLog[len(stored.EventLog)-1].Message)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture()
	created := f.createOrder(t, clientActor())

	err := f.service.UpdateStatus(context.Background(), adminActor(), created.ID, model.UpdateStatusRequest{
		Status: "archived",
	})
	require.Error(t, err)

	var cerr *model.CommissionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, model.ErrCodeInvalidRequest, cerr.Code)
}

func TestCancelByOwner(t *testing.T) {
	f := newFixture()
	actor := clientActor()
	created := f.createOrder(t, actor)

	require.NoError(t, f.service.Cancel(context.Background(), actor, created.ID))

	stored := f.stored(t, created.ID)
	assert.Equal(t, model.StatusCancelled, stored.Status)
	assert.Equal(t, "Pedido cancelado pelo cliente.", stored.EventLog[len(stored.EventLog)-1].Message)

	// Cancelling twice is rejected
	err := f.service.Cancel(context.Background(), actor, created.ID)
	assert.ErrorIs(t, err, model.ErrCannotCancel)
}

// =====================================================
// COMMENTS
// =====================================================

func TestAddCommentNotifiesOtherParty(t *testing.T) {
	f := newFixture()
	actor := clientActor()
	admin := adminActor()
	created := f.createOrder(t, actor)
	adminBefore := len(f.notifier.adminMessages)

	require.NoError(t, f.service.AddComment(context.Background(), actor, created.ID, model.AddCommentRequest{
		Text: "Alguma previsão?",
	}))
	assert.Len(t, f.notifier.adminMessages, adminBefore+1)
	assert.Empty(t, f.notifier.userMessages[actor.UserID])

	require.NoError(t, f.service.AddComment(context.Background(), admin, created.ID, model.AddCommentRequest{
		Text: "Termino amanhã!",
	}))
	assert.Len(t, f.notifier.userMessages[actor.UserID], 1)

	stored := f.stored(t, created.ID)
	require.Len(t, stored.Comments, 2)
	assert.False(t, stored.Comments[0].IsArtist)
	assert.True(t, stored.Comments[1].IsArtist)
}

// =====================================================
// DELETE
// =====================================================

func TestDeleteBroadcastsRemoval(t *testing.T) {
	f := newFixture()
	actor := clientActor()
	created := f.createOrder(t, actor)

	require.NoError(t, f.service.Delete(context.Background(), adminActor(), created.ID))

	_, ok := f.repo.commissions[created.ID]
	assert.False(t, ok)
	assert.Len(t, f.notifier.userMessages[actor.UserID], 1)

	last := f.broadcaster.payloads[len(f.broadcaster.payloads)-1]
	assert.Equal(t, true, last["deleted"])
	assert.Equal(t, created.ID, last["commission_id"])
}

func TestDeleteUnknownCommission(t *testing.T) {
	f := newFixture()

	err := f.service.Delete(context.Background(), adminActor(), "ART-missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

// =====================================================
// ACCESS CONTROL ON READS
// =====================================================

func TestGetHidesForeignOrders(t *testing.T) {
	f := newFixture()
	owner := clientActor()
	created := f.createOrder(t, owner)

	_, err := f.service.Get(context.Background(), clientActor(), created.ID)
	assert.ErrorIs(t, err, model.ErrNotOwner)

	got, err := f.service.Get(context.Background(), owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	got, err = f.service.Get(context.Background(), adminActor(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	f := newFixture()

	_, _, err := f.service.List(context.Background(), "archived", 1, 20)
	assert.ErrorIs(t, err, model.ErrInvalidStatus)
}
