package repository

import (
	"context"

	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)

	// Used inside transactions — callers must pass the tx instance.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	// AdjustStockTx atomically applies a stock delta. Returns
	// gorm.ErrRecordNotFound when the product does not exist.
	AdjustStockTx(tx *gorm.DB, id uuid.UUID, delta int) error
	// ReceiveStockTx applies a stock increment and overwrites last_cost in
	// one statement (stock entry creation).
	ReceiveStockTx(tx *gorm.DB, id uuid.UUID, quantity int, cost decimal.Decimal) error
	// SetLastCostTx overwrites last_cost only (stock entry reversal).
	SetLastCostTx(tx *gorm.DB, id uuid.UUID, cost decimal.Decimal) error

	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) DB() *gorm.DB { return r.db }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&p).Error
	return &p, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var count int64

	q := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.Text != "" {
		pattern := "%" + filter.Text + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ? OR barcode ILIKE ?", pattern, pattern, pattern)
	}

	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at ASC").
		Offset(filter.Offset()).Limit(filter.Take()).
		Find(&products).Error
	return products, count, err
}

func (r *productRepo) AdjustStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	res := tx.Model(&model.Product{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) ReceiveStockTx(tx *gorm.DB, id uuid.UUID, quantity int, cost decimal.Decimal) error {
	res := tx.Model(&model.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"stock":     gorm.Expr("stock + ?", quantity),
		"last_cost": cost,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) SetLastCostTx(tx *gorm.DB, id uuid.UUID, cost decimal.Decimal) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("last_cost", cost).Error
}
