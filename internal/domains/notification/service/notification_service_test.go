package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commission-backend/internal/domains/notification/model"
	"commission-backend/internal/shared"
)

// =====================================================
// MOCKS
// =====================================================

type mockNotificationRepo struct {
	notifications []model.Notification

	markedAdmins bool
	markedUser   *uuid.UUID
	cleanupDays  int
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *mockNotificationRepo) ListForAdmins(ctx context.Context, page, limit int) ([]model.Notification, int, error) {
	var out []model.Notification
	for _, n := range m.notifications {
		if n.UserID == nil {
			out = append(out, n)
		}
	}
	return out, len(out), nil
}

func (m *mockNotificationRepo) ListForUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.Notification, int, error) {
	var out []model.Notification
	for _, n := range m.notifications {
		if n.UserID != nil && *n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, len(out), nil
}

func (m *mockNotificationRepo) CountUnreadForAdmins(ctx context.Context) (int, error) {
	count := 0
	for _, n := range m.notifications {
		if n.UserID == nil && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) CountUnreadForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range m.notifications {
		if n.UserID != nil && *n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkAllReadForAdmins(ctx context.Context) error {
	m.markedAdmins = true
	return nil
}

func (m *mockNotificationRepo) MarkAllReadForUser(ctx context.Context, userID uuid.UUID) error {
	m.markedUser = &userID
	return nil
}

func (m *mockNotificationRepo) DeleteReadOlderThan(ctx context.Context, days int) (int64, error) {
	m.cleanupDays = days
	return 3, nil
}

type mockTemplateStore struct {
	templates map[string]string
}

func (m *mockTemplateStore) Template(ctx context.Context, key string) (string, bool) {
	t, ok := m.templates[key]
	return t, ok
}

func newTestService() (*mockNotificationRepo, NotificationService) {
	repo := &mockNotificationRepo{}
	// nil asynq client: telegram delivery is skipped
	svc := NewNotificationService(repo, &mockTemplateStore{}, nil)
	return repo, svc
}

// =====================================================
// DISPATCH
// =====================================================

func TestNotifyAdminsCreatesBroadcastRow(t *testing.T) {
	repo, svc := newTestService()
	commissionID := "ART-abc123"

	err := svc.NotifyAdmins(context.Background(), "Novo pedido de 'Maria'.", &commissionID)
	require.NoError(t, err)

	require.Len(t, repo.notifications, 1)
	row := repo.notifications[0]
	assert.Nil(t, row.UserID)
	assert.False(t, row.IsRead)
	assert.Equal(t, "Novo pedido de 'Maria'.", row.Message)
	require.NotNil(t, row.RelatedCommissionID)
	assert.Equal(t, commissionID, *row.RelatedCommissionID)
}

func TestNotifyUserTargetsRecipient(t *testing.T) {
	repo, svc := newTestService()
	userID := uuid.New()

	err := svc.NotifyUser(context.Background(), userID, "Seu pagamento foi confirmado!", nil)
	require.NoError(t, err)

	require.Len(t, repo.notifications, 1)
	row := repo.notifications[0]
	require.NotNil(t, row.UserID)
	assert.Equal(t, userID, *row.UserID)
	assert.Nil(t, row.RelatedCommissionID)
}

// =====================================================
// ACTOR-SCOPED INBOX
// =====================================================

func TestInboxRoutingByActor(t *testing.T) {
	_, svc := newTestService()
	clientID := uuid.New()

	require.NoError(t, svc.NotifyAdmins(context.Background(), "Mensagem para a equipe.", nil))
	require.NoError(t, svc.NotifyUser(context.Background(), clientID, "Mensagem para você.", nil))
	require.NoError(t, svc.NotifyUser(context.Background(), uuid.New(), "Mensagem de outra pessoa.", nil))

	admin := shared.Actor{UserID: uuid.New(), IsAdmin: true}
	client := shared.Actor{UserID: clientID}

	adminRows, total, err := svc.ListForActor(context.Background(), admin, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, adminRows, 1)
	assert.Equal(t, "Mensagem para a equipe.", adminRows[0].Message)

	clientRows, total, err := svc.ListForActor(context.Background(), client, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, clientRows, 1)
	assert.Equal(t, "Mensagem para você.", clientRows[0].Message)

	adminUnread, err := svc.UnreadCount(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 1, adminUnread)

	clientUnread, err := svc.UnreadCount(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, 1, clientUnread)
}

func TestMarkAllReadRouting(t *testing.T) {
	repo, svc := newTestService()
	clientID := uuid.New()

	require.NoError(t, svc.MarkAllRead(context.Background(), shared.Actor{UserID: uuid.New(), IsAdmin: true}))
	assert.True(t, repo.markedAdmins)
	assert.Nil(t, repo.markedUser)

	require.NoError(t, svc.MarkAllRead(context.Background(), shared.Actor{UserID: clientID}))
	require.NotNil(t, repo.markedUser)
	assert.Equal(t, clientID, *repo.markedUser)
}

// =====================================================
// MAINTENANCE
// =====================================================

func TestCleanupOldPassesRetention(t *testing.T) {
	repo, svc := newTestService()

	removed, err := svc.CleanupOld(context.Background(), 90)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.Equal(t, 90, repo.cleanupDays)
}
