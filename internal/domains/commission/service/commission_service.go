package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"commission-backend/internal/domains/commission/model"
	"commission-backend/internal/domains/commission/repository"
	"commission-backend/internal/infrastructure/realtime"
	"commission-backend/internal/shared"
)

// =====================================================
// COMMISSION SERVICE IMPLEMENTATION
// =====================================================
//
// Every mutating operation follows the same shape: begin a transaction,
// lock the row with GetForUpdateWithTx, validate the transition, mutate
// the entity including its audit log, write it back, commit. Notification
// rows, the realtime broadcast and telegram delivery happen strictly
// after commit and are best-effort: failures are logged, never returned.
type commissionService struct {
	repo        repository.CommissionRepository
	catalog     PhaseCatalog
	notifier    Notifier
	broadcaster realtime.Broadcaster
}

// NewCommissionService creates a new commission service
func NewCommissionService(
	repo repository.CommissionRepository,
	catalog PhaseCatalog,
	notifier Notifier,
	broadcaster realtime.Broadcaster,
) CommissionService {
	return &commissionService{
		repo:        repo,
		catalog:     catalog,
		notifier:    notifier,
		broadcaster: broadcaster,
	}
}

// =====================================================
// QUERIES
// =====================================================

func (s *commissionService) Get(ctx context.Context, actor shared.Actor, id string) (*model.Commission, error) {
	commission, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin && !commission.IsOwnedBy(actor.UserID) {
		return nil, model.ErrNotOwner
	}

	return commission, nil
}

func (s *commissionService) List(ctx context.Context, status string, page, limit int) ([]model.Commission, int, error) {
	if status != "" && !model.IsValidStatus(status) {
		return nil, 0, model.ErrInvalidStatus
	}
	return s.repo.List(ctx, status, normalizePage(page), normalizeLimit(limit))
}

func (s *commissionService) ListMine(ctx context.Context, actor shared.Actor, page, limit int) ([]model.Commission, int, error) {
	return s.repo.ListByClientID(ctx, actor.UserID, normalizePage(page), normalizeLimit(limit))
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizeLimit(limit int) int {
	if limit < 1 || limit > 100 {
		return 20
	}
	return limit
}

// =====================================================
// CREATE
// =====================================================

func (s *commissionService) Create(ctx context.Context, actor shared.Actor, req model.CreateCommissionRequest) (*model.Commission, error) {
	// 1. Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewCommissionError(model.ErrCodeInvalidRequest, "Invalid request", err)
	}

	// 2. Resolve phases and price from the type catalog
	phases, price, err := s.resolveTypeCatalog(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Build entity; clients always own their own requests
	clientID := req.ClientID
	if !actor.IsAdmin {
		id := actor.UserID
		clientID = &id
	}

	commission := &model.Commission{
		ID:                model.NewCommissionID(),
		ClientName:        req.ClientName,
		Type:              req.Type,
		Price:             price,
		Description:       req.Description,
		CreatedAt:         time.Now().UTC(),
		Deadline:          req.Deadline,
		Status:            model.StatusPendingPayment,
		PaymentStatus:     model.PaymentUnpaid,
		Phases:            phases,
		CurrentPhaseIndex: 0,
		RevisionsUsed:     0,
		Comments:          []model.Comment{},
		Previews:          []model.Preview{},
		CurrentPreview:    -1,
		EventLog:          []model.LogEntry{},
		ClientID:          clientID,
		AssignedArtistIDs: req.AssignedArtistIDs,
	}
	commission.AppendLog(actor.Label(), "Pedido criado. Aguardando pagamento.")

	// 4. Persist
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.repo.RollbackTx(ctx, tx)

	if err := s.repo.CreateWithTx(ctx, tx, commission); err != nil {
		return nil, err
	}

	if err := s.repo.CommitTx(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	// 5. Post-commit side effects
	s.notifyAdmins(ctx, commission.ID,
		fmt.Sprintf("Novo pedido de '%s': %s.", commission.ClientName, commission.ID))
	s.broadcastUpdated(ctx, commission.ID, "Novo pedido criado.", false)

	log.Info().
		Str("commission_id", commission.ID).
		Str("type", commission.Type).
		Msg("[CommissionService] Commission created")

	return commission, nil
}

func (s *commissionService) resolveTypeCatalog(ctx context.Context, req model.CreateCommissionRequest) ([]model.Phase, decimal.Decimal, error) {
	def, err := s.catalog.ResolveType(ctx, req.Type)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to resolve commission type: %w", err)
	}

	var phases []model.Phase
	var price decimal.Decimal

	if def != nil {
		phases = def.Phases
		price = def.Price
	} else if req.Price == nil {
		// Unknown type without an explicit price has nothing to charge
		return nil, decimal.Zero, model.ErrInvalidType
	}

	if phases == nil {
		phases, err = s.catalog.DefaultPhases(ctx)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("failed to resolve default phases: %w", err)
		}
	}

	// An explicit price always wins over the catalog price
	if req.Price != nil {
		price = decimal.NewFromFloat(*req.Price)
	}

	return phases, price, nil
}

// =====================================================
// CONFIRM PAYMENT (client)
// =====================================================

func (s *commissionService) ConfirmPayment(ctx context.Context, actor shared.Actor, id string) error {
	commission, err := s.mutate(ctx, id, func(c *model.Commission) error {
		if !actor.IsAdmin && !c.IsOwnedBy(actor.UserID) {
			return model.ErrNotOwner
		}
		if c.IsTerminal() {
			return model.ErrTerminalState
		}

		c.PaymentStatus = model.PaymentAwaitingConfirmation
		c.AppendLog(actor.Label(), "Confirmou que efetuou o pagamento.")
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyAdmins(ctx, commission.ID,
		fmt.Sprintf("O cliente '%s' informou o pagamento do pedido %s.", commission.ClientName, commission.ID))
	s.broadcastUpdated(ctx, commission.ID, "Pagamento informado pelo cliente.", false)

	return nil
}

// =====================================================
// ADMIN CONFIRM PAYMENT
// =====================================================

func (s *commissionService) AdminConfirmPayment(ctx context.Context, actor shared.Actor, id string) error {
	commission, err := s.mutate(ctx, id, func(c *model.Commission) error {
		if c.IsTerminal() {
			return model.ErrTerminalState
		}

		c.PaymentStatus = model.PaymentPaid
		c.Status = model.StatusInProgress
		c.AppendLog(actor.Label(), "Pagamento confirmado.")
		c.AppendLog(actor.Label(), "Status do pedido alterado para 'Em Progresso'.")
		return nil
	})
	if err != nil {
		return err
	}

	if commission.ClientID != nil {
		s.notifyUser(ctx, *commission.ClientID, commission.ID,
			fmt.Sprintf("Seu pagamento do pedido %s foi confirmado! O projeto está em progresso.", commission.ID))
	}
	s.broadcastUpdated(ctx, commission.ID, "Pagamento confirmado.", false)

	return nil
}

// =====================================================
// ADD PREVIEW (admin)
// =====================================================

func (s *commissionService) AddPreview(ctx context.Context, actor shared.Actor, id string, req model.AddPreviewRequest) error {
	if err := req.Validate(); err != nil {
		return model.NewCommissionError(model.ErrCodeInvalidRequest, "Invalid request", err)
	}

	var phaseName string
	commission, err := s.mutate(ctx, id, func(c *model.Commission) error {
		if c.IsTerminal() {
			return model.ErrTerminalState
		}

		phaseName = "final"
		if p := c.CurrentPhase(); p != nil {
			phaseName = p.Name
		}

		c.Previews = append(c.Previews, model.Preview{
			Version:   fmt.Sprintf("%d.0", len(c.Previews)+1),
			Timestamp: time.Now().UTC(),
			URL:       req.URL,
			Comment:   req.Comment,
		})
		c.CurrentPreview = len(c.Previews) - 1
		c.Status = model.StatusWaitingApproval
		c.AppendLog(actor.Label(), fmt.Sprintf("Enviou uma prévia para a fase '%s'.", phaseName))
		return nil
	})
	if err != nil {
		return err
	}

	if commission.ClientID != nil {
		s.notifyUser(ctx, *commission.ClientID, commission.ID,
			fmt.Sprintf("Uma nova prévia foi enviada para o pedido %s.", commission.ID))
	}
	s.notifyAdmins(ctx, commission.ID,
		fmt.Sprintf("Nova prévia enviada para a fase '%s' do pedido %s.", phaseName, commission.ID))
	s.broadcastUpdated(ctx, commission.ID, "Nova prévia enviada.", false)

	return nil
}

// =====================================================
// APPROVE PHASE (client, owner only)
// =====================================================

func (s *commissionService) ApprovePhase(ctx context.Context, actor shared.Actor, id string) error {
	var approvedPhase string
	commission, err := s.mutate(ctx, id, func(c *model.Commission) error {
		if !c.IsOwnedBy(actor.UserID) {
			return model.ErrNotOwner
		}
		if c.IsTerminal() {
			return model.ErrTerminalState
		}
		phase := c.CurrentPhase()
		if phase == nil {
			return model.ErrAllPhasesCleared
		}

		approvedPhase = phase.Name
		c.AppendLog(actor.Label(), fmt.Sprintf("Aprovou a fase '%s'.", approvedPhase))

		if c.CurrentPhaseIndex == len(c.Phases)-1 {
			// Last phase: the commission is done
			c.CurrentPhaseIndex = len(c.Phases)
			c.Status = model.StatusCompleted
			c.AppendLog(shared.ActorSystem, "Todas as fases foram aprovadas. Pedido finalizado.")
		} else {
			// Advance the cursor and reset the per-phase revision counter
			c.CurrentPhaseIndex++
			c.RevisionsUsed = 0
			c.Status = model.StatusInProgress
			c.AppendLog(shared.ActorSystem,
				fmt.Sprintf("Projeto avançou para a fase '%s'.", c.Phases[c.CurrentPhaseIndex].Name))
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyAdmins(ctx, commission.ID,
		fmt.Sprintf("O cliente aprovou a fase '%s' do pedido %s.", approvedPhase, commission.ID))
	s.broadcastUpdated(ctx, commission.ID, "Fase aprovada pelo cliente.", false)

	return nil
}

// =====================================================
// REQUEST REVISION (client, owner only, quota-gated)
// =====================================================

func (s *commissionService) RequestRevision(ctx context.Context, actor shared.Actor, id string, req model.RequestRevisionRequest) error {
	if err := req.Validate(); err != nil {
		return model.NewCommissionError(model.ErrCodeInvalidRequest, "Invalid request", err)
	}

	var phaseName string
	commission, err := s.mutate(ctx, id, func(c *model.Commission) error {
		if !c.IsOwnedBy(actor.UserID) {
			return model.ErrNotOwner
		}
		if c.IsTerminal() {
			return model.ErrTerminalState
		}
		phase := c.CurrentPhase()
		if phase == nil {
			return model.ErrAllPhasesCleared
		}

		// Quota is per-phase, checked before any write
		if c.RevisionsUsed >= phase.RevisionsLimit {
			return model.ErrQuotaExceeded
		}

		phaseName = phase.Name
		c.Status = model.StatusRevisions
		c.RevisionsUsed++
		c.Comments = append(c.Comments, model.Comment{
			Author:            actor.Username,
			IsArtist:          false,
			Timestamp:         time.Now().UTC(),
			Text:              req.Comment,
			IsRevisionRequest: true,
			PhaseName:         phaseName,
		})
		c.AppendLog(actor.Label(), fmt.Sprintf("Solicitou uma revisão para a fase '%s'.", phaseName))
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyAdmins(ctx, commission.ID,
		fmt.Sprintf("O cliente solicitou uma revisão na fase '%s' do pedido %s.", phaseName, commission.ID))
	s.broadcastUpdated(ctx, commission.ID, "Revisão solicitada pelo cliente.", false)

	return nil
}

// =====================================================
// UPDATE STATUS (admin override)
// =====================================================

func (s *commissionService) UpdateStatus(ctx context.Context, actor shared.Actor, id string, req model.UpdateStatusRequest) error {
	if err := req.Validate(); err != nil {
		return model.NewCommissionError(model.ErrCodeInvalidRequest, "Invalid request", err)
	}

	commission, err := s.mutate(ctx, id, func(c *model.Commission) error {
		// Admin override bypasses the normal flow, including terminal states
		c.Status = req.Status
		c.AppendLog(actor.Label(),
			fmt.Sprintf("Alterou o status para '%s'.", model.TranslateStatus(req.Status)))
		return nil
	})
	if err != nil {
		return err
	}

	if commission.ClientID != nil {
		s.notifyUser(ctx, *commission.ClientID, commission.ID,
			fmt.Sprintf("O status do pedido %s mudou para '%s'.", commission.ID, model.TranslateStatus(req.Status)))
	}
	s.notifyAdmins(ctx, commission.ID,
		fmt.Sprintf("Status do pedido %s alterado para '%s'.", commission.ID, model.TranslateStatus(req.Status)))
	s.broadcastUpdated(ctx, commission.ID, "Status alterado.", false)

	return nil
}

// =====================================================
// CANCEL (client, owner only)
// =====================================================

func (s *commissionService) Cancel(ctx context.Context, actor shared.Actor, id string) error {
	commission, err := s.mutate(ctx, id, func(c *model.Commission) error {
		if !c.IsOwnedBy(actor.UserID) {
			return model.ErrNotOwner
		}
		if c.IsTerminal() {
			return model.ErrCannotCancel
		}

		c.Status = model.StatusCancelled
		c.AppendLog(actor.Label(), "Pedido cancelado pelo cliente.")
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyAdmins(ctx, commission.ID,
		fmt.Sprintf("O pedido %s foi cancelado pelo cliente.", commission.ID))
	s.broadcastUpdated(ctx, commission.ID, "Pedido cancelado.", false)

	return nil
}

// =====================================================
// DELETE (admin)
// =====================================================

func (s *commissionService) Delete(ctx context.Context, actor shared.Actor, id string) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.repo.RollbackTx(ctx, tx)

	commission, err := s.repo.GetForUpdateWithTx(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteWithTx(ctx, tx, id); err != nil {
		return err
	}

	if err := s.repo.CommitTx(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.notifyAdmins(ctx, commission.ID,
		fmt.Sprintf("O pedido %s foi removido.", commission.ID))
	if commission.ClientID != nil {
		s.notifyUser(ctx, *commission.ClientID, commission.ID,
			fmt.Sprintf("Seu pedido %s foi removido.", commission.ID))
	}
	s.broadcastUpdated(ctx, commission.ID, "Pedido removido.", true)

	log.Info().
		Str("commission_id", id).
		Msg("[CommissionService] Commission deleted")

	return nil
}

// =====================================================
// ADD COMMENT
// =====================================================

func (s *commissionService) AddComment(ctx context.Context, actor shared.Actor, id string, req model.AddCommentRequest) error {
	if err := req.Validate(); err != nil {
		return model.NewCommissionError(model.ErrCodeInvalidRequest, "Invalid request", err)
	}

	commission, err := s.mutate(ctx, id, func(c *model.Commission) error {
		if !actor.IsAdmin && !c.IsOwnedBy(actor.UserID) {
			return model.ErrNotOwner
		}

		c.Comments = append(c.Comments, model.Comment{
			Author:    actor.Username,
			IsArtist:  actor.IsAdmin,
			Timestamp: time.Now().UTC(),
			Text:      req.Text,
		})
		c.AppendLog(actor.Label(), "Adicionou um novo comentário.")
		return nil
	})
	if err != nil {
		return err
	}

	if actor.IsAdmin {
		if commission.ClientID != nil {
			s.notifyUser(ctx, *commission.ClientID, commission.ID,
				fmt.Sprintf("Novo comentário no pedido %s.", commission.ID))
		}
	} else {
		s.notifyAdmins(ctx, commission.ID,
			fmt.Sprintf("Novo comentário do cliente no pedido %s.", commission.ID))
	}
	s.broadcastUpdated(ctx, commission.ID, "Novo comentário.", false)

	return nil
}

// =====================================================
// UPDATE DETAILS (admin)
// =====================================================

func (s *commissionService) UpdateDetails(ctx context.Context, actor shared.Actor, id string, req model.UpdateDetailsRequest) error {
	if err := req.Validate(); err != nil {
		return model.NewCommissionError(model.ErrCodeInvalidRequest, "Invalid request", err)
	}

	commission, err := s.mutate(ctx, id, func(c *model.Commission) error {
		if req.ClientName != nil {
			c.ClientName = *req.ClientName
		}
		if req.Type != nil {
			c.Type = *req.Type
		}
		if req.Price != nil {
			c.Price = decimal.NewFromFloat(*req.Price)
		}
		if req.Deadline != nil {
			c.Deadline = req.Deadline
		}
		if req.Description != nil {
			c.Description = *req.Description
		}
		c.AppendLog(actor.Label(), "Editou os detalhes gerais do pedido.")
		return nil
	})
	if err != nil {
		return err
	}

	s.broadcastUpdated(ctx, commission.ID, "Detalhes do pedido atualizados.", false)

	return nil
}

// =====================================================
// SHARED MUTATION FLOW
// =====================================================

// mutate runs one atomic lifecycle transition: lock the row, apply fn,
// write back, commit. Business-rule rejections from fn abort before any
// write and leave state untouched.
func (s *commissionService) mutate(ctx context.Context, id string, fn func(*model.Commission) error) (*model.Commission, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.repo.RollbackTx(ctx, tx)

	commission, err := s.repo.GetForUpdateWithTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(commission); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateWithTx(ctx, tx, commission); err != nil {
		return nil, err
	}

	if err := s.repo.CommitTx(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return commission, nil
}

// =====================================================
// POST-COMMIT SIDE EFFECTS (best-effort)
// =====================================================

func (s *commissionService) notifyAdmins(ctx context.Context, commissionID, message string) {
	if err := s.notifier.NotifyAdmins(ctx, message, &commissionID); err != nil {
		log.Warn().
			Err(err).
			Str("commission_id", commissionID).
			Msg("[CommissionService] Failed to notify admins")
	}
}

func (s *commissionService) notifyUser(ctx context.Context, userID uuid.UUID, commissionID, message string) {
	if err := s.notifier.NotifyUser(ctx, userID, message, &commissionID); err != nil {
		log.Warn().
			Err(err).
			Str("commission_id", commissionID).
			Msg("[CommissionService] Failed to notify user")
	}
}

func (s *commissionService) broadcastUpdated(ctx context.Context, commissionID, adminMessage string, deleted bool) {
	payload := map[string]interface{}{
		"commission_id":     commissionID,
		"message_for_admin": adminMessage,
	}
	if deleted {
		payload["deleted"] = true
	}

	if err := s.broadcaster.Broadcast(ctx, realtime.EventCommissionUpdated, payload); err != nil {
		log.Warn().
			Err(err).
			Str("commission_id", commissionID).
			Msg("[CommissionService] Failed to broadcast update")
	}
}
