package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commission-backend/internal/domains/contact/model"
	"commission-backend/internal/infrastructure/realtime"
)

// =====================================================
// MOCKS
// =====================================================

type mockContactRepo struct {
	messages map[uuid.UUID]*model.ContactMessage
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{messages: make(map[uuid.UUID]*model.ContactMessage)}
}

func (m *mockContactRepo) Create(ctx context.Context, message *model.ContactMessage) error {
	copied := *message
	m.messages[message.ID] = &copied
	return nil
}

func (m *mockContactRepo) List(ctx context.Context, page, limit int) ([]model.ContactMessage, int, error) {
	out := make([]model.ContactMessage, 0, len(m.messages))
	for _, msg := range m.messages {
		out = append(out, *msg)
	}
	return out, len(out), nil
}

func (m *mockContactRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	msg, ok := m.messages[id]
	if !ok {
		return model.ErrContactMessageNotFound
	}
	msg.IsRead = true
	return nil
}

func (m *mockContactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.messages[id]; !ok {
		return model.ErrContactMessageNotFound
	}
	delete(m.messages, id)
	return nil
}

func (m *mockContactRepo) CountUnread(ctx context.Context) (int, error) {
	count := 0
	for _, msg := range m.messages {
		if !msg.IsRead {
			count++
		}
	}
	return count, nil
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) NotifyAdmins(ctx context.Context, message string, commissionID *string) error {
	n.messages = append(n.messages, message)
	return nil
}

type recordingBroadcaster struct {
	events []string
}

func (b *recordingBroadcaster) Broadcast(ctx context.Context, name string, payload map[string]interface{}) error {
	b.events = append(b.events, name)
	return nil
}

// =====================================================
// TESTS
// =====================================================

func TestCreateNotifiesAndBroadcasts(t *testing.T) {
	repo := newMockContactRepo()
	notifier := &recordingNotifier{}
	broadcaster := &recordingBroadcaster{}
	svc := NewContactService(repo, notifier, broadcaster)

	message, err := svc.Create(context.Background(), &model.CreateContactMessageRequest{
		Name:    "Maria Souza",
		Email:   "maria@example.com",
		Message: "Gostaria de encomendar uma ilustração.",
	})
	require.NoError(t, err)

	assert.False(t, message.IsRead)
	assert.Len(t, repo.messages, 1)

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Nova mensagem de contato de Maria Souza.", notifier.messages[0])
	assert.Equal(t, []string{realtime.EventNewMessage}, broadcaster.events)
}

func TestMarkReadUpdatesUnreadCount(t *testing.T) {
	repo := newMockContactRepo()
	svc := NewContactService(repo, &recordingNotifier{}, &recordingBroadcaster{})

	message, err := svc.Create(context.Background(), &model.CreateContactMessageRequest{
		Name:    "Maria",
		Email:   "maria@example.com",
		Message: "Olá!",
	})
	require.NoError(t, err)

	unread, err := svc.CountUnread(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	require.NoError(t, svc.MarkRead(context.Background(), message.ID))

	unread, err = svc.CountUnread(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, unread)
}

func TestDeleteBroadcastsRemoval(t *testing.T) {
	repo := newMockContactRepo()
	broadcaster := &recordingBroadcaster{}
	svc := NewContactService(repo, &recordingNotifier{}, broadcaster)

	message, err := svc.Create(context.Background(), &model.CreateContactMessageRequest{
		Name:    "Maria",
		Email:   "maria@example.com",
		Message: "Olá!",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), message.ID))

	assert.Empty(t, repo.messages)
	assert.Equal(t, []string{realtime.EventNewMessage, realtime.EventMessageDeleted}, broadcaster.events)
}

func TestDeleteUnknownMessage(t *testing.T) {
	svc := NewContactService(newMockContactRepo(), &recordingNotifier{}, &recordingBroadcaster{})

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrContactMessageNotFound)
}
