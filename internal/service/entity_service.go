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
)

type EntityService interface {
	Create(ctx context.Context, req dto.CreateEntityRequest) (*dto.EntityResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateEntityRequest) (*dto.EntityResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.EntityResponse, error)
	List(ctx context.Context, filter dto.EntityFilter) (*dto.EntityListResponse, error)
	ListCredits(ctx context.Context, id uuid.UUID) ([]dto.CreditResponse, error)
}

type entityService struct {
	repo       repository.EntityRepository
	creditRepo repository.CreditRepository
}

func NewEntityService(repo repository.EntityRepository, creditRepo repository.CreditRepository) EntityService {
	return &entityService{repo: repo, creditRepo: creditRepo}
}

func (s *entityService) Create(ctx context.Context, req dto.CreateEntityRequest) (*dto.EntityResponse, error) {
	entity := model.Entity{
		Name:         req.Name,
		DocumentType: req.DocumentType,
		Document:     req.Document,
		Cellphone:    req.Cellphone,
		Address:      req.Address,
		Email:        req.Email,
		CreditLimit:  req.CreditLimit,
		Status:       model.StatusActive,
	}
	if err := s.repo.Create(ctx, &entity); err != nil {
		return nil, err
	}
	return entityToResponse(&entity, decimal.Zero), nil
}

func (s *entityService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateEntityRequest) (*dto.EntityResponse, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Cliente no encontrado")
	}

	if req.Name != nil {
		entity.Name = *req.Name
	}
	if req.DocumentType != nil {
		entity.DocumentType = req.DocumentType
	}
	if req.Document != nil {
		entity.Document = req.Document
	}
	if req.Cellphone != nil {
		entity.Cellphone = req.Cellphone
	}
	if req.Address != nil {
		entity.Address = req.Address
	}
	if req.Email != nil {
		entity.Email = req.Email
	}
	if req.CreditLimit != nil {
		entity.CreditLimit = *req.CreditLimit
	}
	if req.Active != nil {
		if *req.Active {
			entity.Status = model.StatusActive
			entity.DeletedAt = nil
		} else {
			now := time.Now()
			entity.Status = model.StatusDeleted
			entity.DeletedAt = &now
		}
	}

	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, err
	}

	outstanding, _ := s.creditRepo.SumOutstandingTx(s.repo.DB(), id)
	return entityToResponse(entity, outstanding), nil
}

func (s *entityService) GetByID(ctx context.Context, id uuid.UUID) (*dto.EntityResponse, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Cliente no encontrado")
	}
	outstanding, err := s.creditRepo.SumOutstandingTx(s.repo.DB(), id)
	if err != nil {
		return nil, err
	}
	return entityToResponse(entity, outstanding), nil
}

func (s *entityService) List(ctx context.Context, filter dto.EntityFilter) (*dto.EntityListResponse, error) {
	entities, count, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	hasMore := len(entities) > filter.PageSize
	if hasMore {
		entities = entities[:filter.PageSize]
	}
	items := make([]dto.EntityResponse, 0, len(entities))
	for i := range entities {
		outstanding, _ := s.creditRepo.SumOutstandingTx(s.repo.DB(), entities[i].ID)
		items = append(items, *entityToResponse(&entities[i], outstanding))
	}
	return &dto.EntityListResponse{Items: items, Count: count, HasMore: hasMore}, nil
}

// ListCredits returns the entity's full credit history, oldest first,
// including settled and interest-adjusted credits.
func (s *entityService) ListCredits(ctx context.Context, id uuid.UUID) ([]dto.CreditResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, apierror.NotFound("Cliente no encontrado")
	}
	credits, err := s.creditRepo.ListByEntity(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CreditResponse, 0, len(credits))
	for _, c := range credits {
		resp = append(resp, dto.CreditResponse{
			ID:             c.ID.String(),
			SaleID:         c.SaleID.String(),
			Amount:         c.Amount,
			OriginalAmount: c.OriginalAmount,
			PaymentLeft:    c.PaymentLeft,
			InterestAdded:  c.InterestAdded,
			Status:         c.Status,
			CreatedAt:      c.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return resp, nil
}

func entityToResponse(e *model.Entity, outstanding decimal.Decimal) *dto.EntityResponse {
	return &dto.EntityResponse{
		ID:                e.ID.String(),
		Name:              e.Name,
		DocumentType:      e.DocumentType,
		Document:          e.Document,
		Cellphone:         e.Cellphone,
		Address:           e.Address,
		Email:             e.Email,
		CreditLimit:       e.CreditLimit,
		OutstandingCredit: outstanding,
		Status:            e.Status,
		CreatedAt:         e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
