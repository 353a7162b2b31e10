package service

import (
	"context"
	"time"

	"github.com/doughoff/ksys/internal/apierror"
	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/model"
	"github.com/doughoff/ksys/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockEntryService interface {
	Create(ctx context.Context, req dto.CreateStockEntryRequest) (*dto.StockEntryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (*dto.StockEntryResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.StockEntryResponse, error)
	List(ctx context.Context, filter dto.StockEntryFilter) (*dto.StockEntryListResponse, error)
}

type stockEntryService struct {
	repo        repository.StockEntryRepository
	productRepo repository.ProductRepository
	logRepo     repository.LogRepository
}

func NewStockEntryService(
	repo repository.StockEntryRepository,
	productRepo repository.ProductRepository,
	logRepo repository.LogRepository,
) StockEntryService {
	return &stockEntryService{repo: repo, productRepo: productRepo, logRepo: logRepo}
}

// Create records an inventory receipt: entry + items, then per item a stock
// increment and a last_cost overwrite. Items are applied in input order, so
// when one entry carries the same product twice the last item's cost wins.
func (s *stockEntryService) Create(ctx context.Context, req dto.CreateStockEntryRequest) (*dto.StockEntryResponse, error) {
	var entry model.StockEntry

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		entry = model.StockEntry{Status: model.StatusActive}
		for _, item := range req.Items {
			pid, err := uuid.Parse(item.ProductID)
			if err != nil {
				return apierror.Validation("product_id invalido")
			}
			entry.Items = append(entry.Items, model.StockEntryItem{
				ProductID: pid,
				Quantity:  item.Quantity,
				Cost:      item.Cost,
			})
		}
		if err := s.repo.CreateTx(tx, &entry); err != nil {
			return err
		}

		for _, item := range entry.Items {
			if err := s.productRepo.ReceiveStockTx(tx, item.ProductID, item.Quantity, item.Cost); err != nil {
				if err == gorm.ErrRecordNotFound {
					return apierror.NotFound("Producto no encontrado")
				}
				return err
			}
		}

		return s.logRepo.CreateTx(tx, "stock_entry", entry.ID, model.LogCreate, req)
	})
	if txErr != nil {
		return nil, txErr
	}

	return stockEntryToResponse(&entry), nil
}

// Delete reverses an entry: stock decremented by what the entry added, and
// each product's last_cost restored to the newest other ACTIVE entry's cost
// (0 when none remains). The entry is soft-deleted; there is no undelete.
func (s *stockEntryService) Delete(ctx context.Context, id uuid.UUID) (*dto.StockEntryResponse, error) {
	var entry *model.StockEntry

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		found, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return apierror.NotFound("No existe la entrada de stock")
		}
		entry = found
		if entry.Status == model.StatusDeleted {
			return apierror.Validation("La entrada de stock ya fue eliminada")
		}

		for _, item := range entry.Items {
			if err := s.productRepo.AdjustStockTx(tx, item.ProductID, -item.Quantity); err != nil {
				return err
			}
			priorCost, err := s.repo.PriorCostTx(tx, item.ProductID, entry.ID)
			if err != nil {
				return err
			}
			if err := s.productRepo.SetLastCostTx(tx, item.ProductID, priorCost); err != nil {
				return err
			}
		}

		now := time.Now()
		if err := s.repo.MarkDeletedTx(tx, entry.ID, now); err != nil {
			return err
		}
		entry.Status = model.StatusDeleted
		entry.DeletedAt = &now

		return s.logRepo.CreateTx(tx, "stock_entry", entry.ID, model.LogUpdate, map[string]interface{}{
			"status": model.StatusDeleted,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	return stockEntryToResponse(entry), nil
}

func (s *stockEntryService) GetByID(ctx context.Context, id uuid.UUID) (*dto.StockEntryResponse, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("No existe la entrada de stock")
	}
	return stockEntryToResponse(entry), nil
}

func (s *stockEntryService) List(ctx context.Context, filter dto.StockEntryFilter) (*dto.StockEntryListResponse, error) {
	entries, count, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	hasMore := len(entries) > filter.PageSize
	if hasMore {
		entries = entries[:filter.PageSize]
	}
	items := make([]dto.StockEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, *stockEntryToResponse(&entries[i]))
	}
	return &dto.StockEntryListResponse{Items: items, Count: count, HasMore: hasMore}, nil
}

func stockEntryToResponse(e *model.StockEntry) *dto.StockEntryResponse {
	items := make([]dto.StockEntryItemResponse, 0, len(e.Items))
	for _, item := range e.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.StockEntryItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: name,
			Quantity:    item.Quantity,
			Cost:        item.Cost,
		})
	}
	return &dto.StockEntryResponse{
		ID:        e.ID.String(),
		Status:    e.Status,
		Items:     items,
		CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
