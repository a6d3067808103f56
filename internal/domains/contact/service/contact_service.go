package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"commission-backend/internal/domains/contact/model"
	"commission-backend/internal/domains/contact/repository"
	"commission-backend/internal/infrastructure/realtime"
)

// Notifier delivers admin notifications (notification domain)
type Notifier interface {
	NotifyAdmins(ctx context.Context, message string, commissionID *string) error
}

// =====================================================
// CONTACT SERVICE INTERFACE
// =====================================================
type ContactService interface {
	Create(ctx context.Context, req *model.CreateContactMessageRequest) (*model.ContactMessage, error)
	List(ctx context.Context, page, limit int) ([]model.ContactMessage, int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context) (int, error)
}

type contactService struct {
	repo        repository.ContactRepository
	notifier    Notifier
	broadcaster realtime.Broadcaster
}

// NewContactService creates a new contact service
func NewContactService(
	repo repository.ContactRepository,
	notifier Notifier,
	broadcaster realtime.Broadcaster,
) ContactService {
	return &contactService{
		repo:        repo,
		notifier:    notifier,
		broadcaster: broadcaster,
	}
}

func (s *contactService) Create(ctx context.Context, req *model.CreateContactMessageRequest) (*model.ContactMessage, error) {
	message := &model.ContactMessage{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, message); err != nil {
		return nil, err
	}

	log.Info().
		Str("message_id", message.ID.String()).
		Msg("[ContactService] Contact message received")

	// Side effects after the row is stored, best-effort
	text := fmt.Sprintf("Nova mensagem de contato de %s.", message.Name)
	if err := s.notifier.NotifyAdmins(ctx, text, nil); err != nil {
		log.Warn().Err(err).Msg("[ContactService] Failed to notify admins")
	}
	if err := s.broadcaster.Broadcast(ctx, realtime.EventNewMessage, map[string]interface{}{
		"message_id": message.ID.String(),
	}); err != nil {
		log.Warn().Err(err).Msg("[ContactService] Failed to broadcast new message event")
	}

	return message, nil
}

func (s *contactService) List(ctx context.Context, page, limit int) ([]model.ContactMessage, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.List(ctx, page, limit)
}

func (s *contactService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *contactService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.broadcaster.Broadcast(ctx, realtime.EventMessageDeleted, map[string]interface{}{
		"message_id": id.String(),
	}); err != nil {
		log.Warn().Err(err).Msg("[ContactService] Failed to broadcast message deleted event")
	}

	return nil
}

func (s *contactService) CountUnread(ctx context.Context) (int, error) {
	return s.repo.CountUnread(ctx)
}
