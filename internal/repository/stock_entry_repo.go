package repository

import (
	"context"
	"time"

	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockEntryRepository interface {
	CreateTx(tx *gorm.DB, e *model.StockEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.StockEntry, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.StockEntry, error)
	MarkDeletedTx(tx *gorm.DB, id uuid.UUID, at time.Time) error
	// PriorCostTx finds the cost a product's last_cost should fall back to
	// when a stock entry is reversed: the newest item for that product whose
	// parent entry is still ACTIVE, excluding the entry being reversed.
	// Returns 0 when no such item exists.
	PriorCostTx(tx *gorm.DB, productID, excludeEntryID uuid.UUID) (decimal.Decimal, error)
	List(ctx context.Context, filter dto.StockEntryFilter) ([]model.StockEntry, int64, error)
	DB() *gorm.DB
}

type stockEntryRepo struct{ db *gorm.DB }

func NewStockEntryRepository(db *gorm.DB) StockEntryRepository { return &stockEntryRepo{db: db} }

func (r *stockEntryRepo) DB() *gorm.DB { return r.db }

func (r *stockEntryRepo) CreateTx(tx *gorm.DB, e *model.StockEntry) error {
	return tx.Create(e).Error
}

func (r *stockEntryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.StockEntry, error) {
	var e model.StockEntry
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *stockEntryRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.StockEntry, error) {
	var e model.StockEntry
	err := tx.Preload("Items").First(&e, "id = ?", id).Error
	return &e, err
}

func (r *stockEntryRepo) MarkDeletedTx(tx *gorm.DB, id uuid.UUID, at time.Time) error {
	return tx.Model(&model.StockEntry{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": model.StatusDeleted, "deleted_at": at}).Error
}

func (r *stockEntryRepo) PriorCostTx(tx *gorm.DB, productID, excludeEntryID uuid.UUID) (decimal.Decimal, error) {
	var item model.StockEntryItem
	err := tx.
		Joins("JOIN stock_entries ON stock_entries.id = stock_entry_items.stock_entry_id").
		Where("stock_entry_items.product_id = ?", productID).
		Where("stock_entries.status = ?", model.StatusActive).
		Where("stock_entry_items.stock_entry_id <> ?", excludeEntryID).
		Order("stock_entry_items.created_at DESC").
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return item.Cost, nil
}

func (r *stockEntryRepo) List(ctx context.Context, filter dto.StockEntryFilter) ([]model.StockEntry, int64, error) {
	var entries []model.StockEntry
	var count int64

	q := r.db.WithContext(ctx).Model(&model.StockEntry{})
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items.Product").
		Order("created_at DESC").
		Offset(filter.Offset()).Limit(filter.Take()).
		Find(&entries).Error
	return entries, count, err
}
