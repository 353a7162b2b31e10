package service

import (
	"context"

	"github.com/doughoff/ksys/internal/apierror"
	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/model"
	"github.com/doughoff/ksys/internal/repository"
	"github.com/doughoff/ksys/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	Create(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	AccrueInterest(ctx context.Context) error
}

type saleService struct {
	repo        repository.SaleRepository
	entityRepo  repository.EntityRepository
	productRepo repository.ProductRepository
	creditRepo  repository.CreditRepository
	logRepo     repository.LogRepository
	dispatcher  *worker.Dispatcher
}

func NewSaleService(
	repo repository.SaleRepository,
	entityRepo repository.EntityRepository,
	productRepo repository.ProductRepository,
	creditRepo repository.CreditRepository,
	logRepo repository.LogRepository,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		repo:        repo,
		entityRepo:  entityRepo,
		productRepo: productRepo,
		creditRepo:  creditRepo,
		logRepo:     logRepo,
		dispatcher:  dispatcher,
	}
}

// Create commits a sale in one atomic transaction:
//  1. Total and per-IVA-class subtotals from the request snapshot — item
//     price and description are NOT re-read from the catalog, so later
//     product edits never alter historical sales.
//  2. Sale + items created.
//  3. CREDIT sales: entity must exist, and outstanding payment_left plus
//     this total must stay within the entity's credit limit. A Credit row
//     opens with payment_left = total.
//  4. Stock decremented per item. No sufficiency check — stock may go
//     negative; the sale is flagged stock_conflict instead of rejected.
//  5. Audit log rows for the credit and the sale.
//
// After commit the receipt job is dispatched fire-and-forget; a dead printer
// never fails the sale.
func (s *saleService) Create(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	total := decimal.Zero
	ivaTotals := map[string]decimal.Decimal{
		model.Iva0:  decimal.Zero,
		model.Iva5:  decimal.Zero,
		model.Iva10: decimal.Zero,
	}
	for _, item := range req.Items {
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		ivaTotals[item.Iva] = ivaTotals[item.Iva].Add(lineTotal)
		total = total.Add(lineTotal)
	}

	var entityID *uuid.UUID
	if req.EntityID != nil {
		id, err := uuid.Parse(*req.EntityID)
		if err != nil {
			return nil, apierror.Validation("entity_id invalido")
		}
		entityID = &id
	}

	var sale model.Sale
	var entity *model.Entity

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if req.Type == model.SaleCredit {
			if entityID == nil {
				return apierror.Validation("No se puede crear una venta a credito sin cliente")
			}
			found, err := s.entityRepo.FindByID(ctx, *entityID)
			if err != nil {
				return apierror.NotFound("Cliente no encontrado")
			}
			entity = found

			outstanding, err := s.creditRepo.SumOutstandingTx(tx, *entityID)
			if err != nil {
				return err
			}
			if outstanding.Add(total).GreaterThan(entity.CreditLimit) {
				return apierror.CreditLimit("El cliente no tiene suficiente credito")
			}
		} else if entityID != nil {
			if found, err := s.entityRepo.FindByID(ctx, *entityID); err == nil {
				entity = found
			}
		}

		// Pre-read stock inside the tx to flag oversell before decrementing.
		stockConflict := false
		for _, item := range req.Items {
			pid, err := uuid.Parse(item.ProductID)
			if err != nil {
				return apierror.Validation("product_id invalido")
			}
			p, err := s.productRepo.FindByIDTx(tx, pid)
			if err != nil {
				return apierror.NotFound("Producto no encontrado")
			}
			if p.Stock < item.Quantity {
				stockConflict = true
			}
		}

		sale = model.Sale{
			EntityID:      entityID,
			Address:       req.Address,
			Document:      req.Document,
			Type:          req.Type,
			Total:         total,
			Status:        model.StatusActive,
			StockConflict: stockConflict,
		}
		for _, item := range req.Items {
			pid, _ := uuid.Parse(item.ProductID)
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID:   pid,
				Description: item.Description,
				Quantity:    item.Quantity,
				Price:       item.Price,
				Iva:         item.Iva,
			})
		}
		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return err
		}

		if req.Type == model.SaleCredit {
			credit := model.Credit{
				EntityID:       *entityID,
				SaleID:         sale.ID,
				Amount:         total,
				OriginalAmount: total,
				PaymentLeft:    total,
				InterestAdded:  decimal.Zero,
				Status:         model.StatusActive,
			}
			if err := s.creditRepo.CreateTx(tx, &credit); err != nil {
				return err
			}
			if err := s.logRepo.CreateTx(tx, "credit", credit.ID, model.LogCreate, map[string]interface{}{
				"entity_id":       entityID.String(),
				"amount":          total,
				"original_amount": total,
				"payment_left":    total,
			}); err != nil {
				return err
			}
		}

		for _, item := range sale.Items {
			if err := s.productRepo.AdjustStockTx(tx, item.ProductID, -item.Quantity); err != nil {
				if err == gorm.ErrRecordNotFound {
					return apierror.NotFound("Producto no encontrado")
				}
				return err
			}
		}

		return s.logRepo.CreateTx(tx, "sale", sale.ID, model.LogCreate, req)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Receipt job — best-effort, outside the consistency boundary.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueReceipt(ctx, worker.ReceiptJobPayload{SaleID: sale.ID.String()})
	}

	resp := saleToResponse(&sale)
	resp.IvaTotals = ivaTotals
	if entity != nil {
		resp.EntityName = entity.Name
	}
	return resp, nil
}

func (s *saleService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Venta no encontrada")
	}
	return saleToResponse(sale), nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	sales, count, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	hasMore := len(sales) > filter.PageSize
	if hasMore {
		sales = sales[:filter.PageSize]
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{Items: items, Count: count, HasMore: hasMore}, nil
}

// AccrueInterest compounds 5% monthly interest on every open credit at least
// one month stale. Single set-based statement; safe to trigger daily.
func (s *saleService) AccrueInterest(ctx context.Context) error {
	return s.creditRepo.AccrueMonthlyInterest(ctx)
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	ivaTotals := map[string]decimal.Decimal{
		model.Iva0:  decimal.Zero,
		model.Iva5:  decimal.Zero,
		model.Iva10: decimal.Zero,
	}
	for _, item := range sale.Items {
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		ivaTotals[item.Iva] = ivaTotals[item.Iva].Add(subtotal)
		items = append(items, dto.SaleItemResponse{
			ProductID:   item.ProductID.String(),
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Iva:         item.Iva,
			Subtotal:    subtotal,
		})
	}

	entityName := "Cliente Ocasional"
	var entityID *string
	if sale.EntityID != nil {
		id := sale.EntityID.String()
		entityID = &id
	}
	if sale.Entity != nil {
		entityName = sale.Entity.Name
	}

	return &dto.SaleResponse{
		ID:            sale.ID.String(),
		EntityID:      entityID,
		EntityName:    entityName,
		Type:          sale.Type,
		Total:         sale.Total,
		IvaTotals:     ivaTotals,
		Status:        sale.Status,
		StockConflict: sale.StockConflict,
		Items:         items,
		CreatedAt:     sale.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
