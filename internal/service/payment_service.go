package service

import (
	"context"
	"time"

	"github.com/doughoff/ksys/internal/apierror"
	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/model"
	"github.com/doughoff/ksys/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// cancelWindow is how long after creation a payment process may be reversed.
const cancelWindow = 7 * 24 * time.Hour

type PaymentService interface {
	Create(ctx context.Context, req dto.CreatePaymentRequest) error
	Cancel(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PaymentProcessResponse, error)
	List(ctx context.Context, filter dto.PaymentProcessFilter) (*dto.PaymentProcessListResponse, error)
}

type paymentService struct {
	repo       repository.PaymentRepository
	creditRepo repository.CreditRepository
	logRepo    repository.LogRepository
}

func NewPaymentService(
	repo repository.PaymentRepository,
	creditRepo repository.CreditRepository,
	logRepo repository.LogRepository,
) PaymentService {
	return &paymentService{repo: repo, creditRepo: creditRepo, logRepo: logRepo}
}

// Create allocates one customer payment across the entity's open credits,
// oldest first (created_at ASC, id ASC). Each credit absorbs
// min(payment_left, remaining); allocation stops when the amount runs out.
// A payment larger than the total debt is rejected before any row is
// written. The whole allocation is one atomic transaction.
func (s *paymentService) Create(ctx context.Context, req dto.CreatePaymentRequest) error {
	entityID, err := uuid.Parse(req.EntityID)
	if err != nil {
		return apierror.Validation("entity_id invalido")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		credits, err := s.creditRepo.FindOpenByEntityTx(tx, entityID)
		if err != nil {
			return err
		}

		totalLeft := decimal.Zero
		for _, credit := range credits {
			totalLeft = totalLeft.Add(credit.PaymentLeft)
		}
		if req.Amount.GreaterThan(totalLeft) {
			return apierror.Validation("El valor es mayor al valor de la deuda")
		}

		process := model.PaymentProcess{
			EntityID: entityID,
			Amount:   req.Amount,
			Status:   model.StatusActive,
		}
		if err := s.repo.CreateProcessTx(tx, &process); err != nil {
			return err
		}
		if err := s.logRepo.CreateTx(tx, "payment_process", process.ID, model.LogCreate, map[string]interface{}{
			"entity_id": entityID.String(),
			"amount":    req.Amount,
		}); err != nil {
			return err
		}

		amountLeft := req.Amount
		for _, credit := range credits {
			if amountLeft.IsZero() {
				break
			}

			allocated := decimal.Min(credit.PaymentLeft, amountLeft)
			amountLeft = amountLeft.Sub(allocated)

			if err := s.creditRepo.AddPaymentLeftTx(tx, credit.ID, allocated.Neg()); err != nil {
				return err
			}
			if err := s.logRepo.CreateTx(tx, "credit", credit.ID, model.LogUpdate, map[string]interface{}{
				"payment_process_id": process.ID.String(),
				"payment_left":       map[string]interface{}{"decrement": allocated},
			}); err != nil {
				return err
			}

			payment := model.Payment{
				PaymentProcessID: process.ID,
				CreditID:         credit.ID,
				Amount:           allocated,
				Status:           model.StatusActive,
			}
			if err := s.repo.CreatePaymentTx(tx, &payment); err != nil {
				return err
			}
			if err := s.logRepo.CreateTx(tx, "payment", payment.ID, model.LogCreate, map[string]interface{}{
				"payment_process_id": process.ID.String(),
				"credit_id":          credit.ID.String(),
				"amount":             allocated,
			}); err != nil {
				return err
			}
		}

		return nil
	})
}

// Cancel reverses a payment process: each allocated amount is added back to
// its credit (which can reopen a fully paid credit) and both the process and
// its payments are soft-deleted. Processes older than 7 days cannot be
// cancelled. Atomic — a partial reversal is never observable.
func (s *paymentService) Cancel(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		process, err := s.repo.FindProcessByIDTx(tx, id)
		if err != nil {
			return apierror.NotFound("No fue encontrado el procedimiento de pago")
		}
		if time.Since(process.CreatedAt) > cancelWindow {
			return apierror.Validation("El procedimiento de pago es muy antiguo, mas de 7 dias")
		}

		now := time.Now()
		if err := s.repo.MarkProcessDeletedTx(tx, process.ID, now); err != nil {
			return err
		}
		if err := s.logRepo.CreateTx(tx, "payment_process", process.ID, model.LogUpdate, map[string]interface{}{
			"status": model.StatusDeleted,
		}); err != nil {
			return err
		}

		for _, payment := range process.Payments {
			if err := s.creditRepo.AddPaymentLeftTx(tx, payment.CreditID, payment.Amount); err != nil {
				return err
			}
			if err := s.logRepo.CreateTx(tx, "credit", payment.CreditID, model.LogUpdate, map[string]interface{}{
				"payment_process_id": process.ID.String(),
				"payment_left":       map[string]interface{}{"increment": payment.Amount},
			}); err != nil {
				return err
			}

			if err := s.repo.MarkPaymentDeletedTx(tx, payment.ID, now); err != nil {
				return err
			}
			if err := s.logRepo.CreateTx(tx, "payment", payment.ID, model.LogUpdate, map[string]interface{}{
				"status": model.StatusDeleted,
			}); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *paymentService) GetByID(ctx context.Context, id uuid.UUID) (*dto.PaymentProcessResponse, error) {
	process, err := s.repo.FindProcessByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("No fue encontrado el procedimiento de pago")
	}
	return processToResponse(process), nil
}

func (s *paymentService) List(ctx context.Context, filter dto.PaymentProcessFilter) (*dto.PaymentProcessListResponse, error) {
	processes, count, err := s.repo.ListProcesses(ctx, filter)
	if err != nil {
		return nil, err
	}
	hasMore := len(processes) > filter.PageSize
	if hasMore {
		processes = processes[:filter.PageSize]
	}
	items := make([]dto.PaymentProcessResponse, 0, len(processes))
	for i := range processes {
		items = append(items, *processToResponse(&processes[i]))
	}
	return &dto.PaymentProcessListResponse{Items: items, Count: count, HasMore: hasMore}, nil
}

func processToResponse(p *model.PaymentProcess) *dto.PaymentProcessResponse {
	payments := make([]dto.PaymentResponse, 0, len(p.Payments))
	for _, payment := range p.Payments {
		payments = append(payments, dto.PaymentResponse{
			ID:       payment.ID.String(),
			CreditID: payment.CreditID.String(),
			Amount:   payment.Amount,
			Status:   payment.Status,
		})
	}
	entityName := ""
	if p.Entity != nil {
		entityName = p.Entity.Name
	}
	return &dto.PaymentProcessResponse{
		ID:         p.ID.String(),
		EntityID:   p.EntityID.String(),
		EntityName: entityName,
		Amount:     p.Amount,
		Status:     p.Status,
		Payments:   payments,
		CreatedAt:  p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
