package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"commission-backend/internal/domains/faq/model"
	"commission-backend/internal/domains/faq/repository"
)

// =====================================================
// FAQ SERVICE INTERFACE
// =====================================================
type FaqService interface {
	List(ctx context.Context) ([]model.Faq, error)

	// Sync reconciles the stored list against the submitted one:
	// entries without an id are created, known ids are updated, and
	// rows absent from the submission are deleted. Positions follow
	// the submission order. The whole sync is one transaction.
	Sync(ctx context.Context, req *model.SyncFaqsRequest) ([]model.Faq, error)
}

type faqService struct {
	repo repository.FaqRepository
}

// NewFaqService creates a new faq service
func NewFaqService(repo repository.FaqRepository) FaqService {
	return &faqService{repo: repo}
}

func (s *faqService) List(ctx context.Context) ([]model.Faq, error) {
	faqs, err := s.repo.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}
	if faqs == nil {
		faqs = []model.Faq{}
	}
	return faqs, nil
}

func (s *faqService) Sync(ctx context.Context, req *model.SyncFaqsRequest) ([]model.Faq, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer s.repo.RollbackTx(ctx, tx)

	existing, err := s.repo.ListOrderedWithTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	existingByID := make(map[uuid.UUID]model.Faq, len(existing))
	for _, f := range existing {
		existingByID[f.ID] = f
	}

	// 1. Create or update in submission order
	kept := make(map[uuid.UUID]bool, len(req.Faqs))
	result := make([]model.Faq, 0, len(req.Faqs))
	for position, item := range req.Faqs {
		if item.ID != nil {
			current, ok := existingByID[*item.ID]
			if !ok {
				return nil, model.ErrFaqNotFound
			}

			current.Question = item.Question
			current.Answer = item.Answer
			current.Position = position
			if err := s.repo.UpdateWithTx(ctx, tx, &current); err != nil {
				return nil, err
			}

			kept[current.ID] = true
			result = append(result, current)
			continue
		}

		created := model.Faq{
			ID:       uuid.New(),
			Question: item.Question,
			Answer:   item.Answer,
			Position: position,
		}
		if err := s.repo.CreateWithTx(ctx, tx, &created); err != nil {
			return nil, err
		}
		result = append(result, created)
	}

	// 2. Delete rows missing from the submission
	for _, f := range existing {
		if !kept[f.ID] {
			if err := s.repo.DeleteWithTx(ctx, tx, f.ID); err != nil {
				return nil, err
			}
		}
	}

	if err := s.repo.CommitTx(ctx, tx); err != nil {
		return nil, err
	}

	log.Info().
		Int("count", len(result)).
		Msg("[FaqService] FAQ list synchronized")

	return result, nil
}
