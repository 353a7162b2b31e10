package repository

import (
	"context"

	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	ListByDay(ctx context.Context, day string) ([]model.Sale, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Product").Preload("Entity").Preload("Credit").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var count int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").Preload("Entity").
		Order("created_at DESC").
		Offset(filter.Offset()).Limit(filter.Take()).
		Find(&sales).Error
	return sales, count, err
}

// ListByDay returns the sales of one calendar day, oldest first, for the
// daily summary.
func (r *saleRepo) ListByDay(ctx context.Context, day string) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Where("DATE(created_at) = ?", day).
		Preload("Items").Preload("Entity").
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}
