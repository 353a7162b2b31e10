package service

import (
	"context"
	"strings"
	"time"

	"github.com/doughoff/ksys/internal/apierror"
	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/model"
	"github.com/doughoff/ksys/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if existing, err := s.repo.FindByBarcode(ctx, req.Barcode); err == nil && existing != nil {
		return nil, apierror.Conflict("Ya existe un producto con ese codigo de barras")
	}

	iva := req.Iva
	if iva == "" {
		iva = model.Iva10
	}
	product := model.Product{
		Barcode:     req.Barcode,
		Name:        normalizeName(req.Name),
		Description: normalizeDescription(req.Description),
		Stock:       req.Stock,
		Price:       req.Price,
		LastCost:    decimal.Zero,
		Iva:         iva,
		Status:      model.StatusActive,
	}
	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, err
	}
	return productToResponse(&product), nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}

	if req.Barcode != nil && *req.Barcode != product.Barcode {
		if existing, err := s.repo.FindByBarcode(ctx, *req.Barcode); err == nil && existing != nil && existing.ID != id {
			return nil, apierror.Conflict("Ya existe un producto con ese codigo de barras")
		}
		product.Barcode = *req.Barcode
	}
	if req.Name != nil {
		product.Name = normalizeName(*req.Name)
	}
	if req.Description != nil {
		product.Description = normalizeDescription(req.Description)
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Iva != nil {
		product.Iva = *req.Iva
	}
	if req.Active != nil {
		if *req.Active {
			product.Status = model.StatusActive
			product.DeletedAt = nil
		} else {
			now := time.Now()
			product.Status = model.StatusDeleted
			product.DeletedAt = &now
		}
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return productToResponse(product), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}
	return productToResponse(product), nil
}

func (s *productService) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}
	return productToResponse(product), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, count, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	hasMore := len(products) > filter.PageSize
	if hasMore {
		products = products[:filter.PageSize]
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Items: items, Count: count, HasMore: hasMore}, nil
}

// Catalog names are stored uppercase for barcode-scanner friendly lookups.
func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func normalizeDescription(desc *string) *string {
	if desc == nil {
		return nil
	}
	normalized := strings.ToUpper(strings.TrimSpace(*desc))
	return &normalized
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID.String(),
		Barcode:     p.Barcode,
		Name:        p.Name,
		Description: p.Description,
		Stock:       p.Stock,
		Price:       p.Price,
		LastCost:    p.LastCost,
		Iva:         p.Iva,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
