package repository

import (
	"context"

	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntityRepository defines data access for customer accounts. Services depend
// on this interface, not on the concrete GORM implementation, enabling clean
// unit testing via stubs.
type EntityRepository interface {
	Create(ctx context.Context, e *model.Entity) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Entity, error)
	Update(ctx context.Context, e *model.Entity) error
	List(ctx context.Context, filter dto.EntityFilter) ([]model.Entity, int64, error)
	DB() *gorm.DB
}

type entityRepo struct{ db *gorm.DB }

func NewEntityRepository(db *gorm.DB) EntityRepository { return &entityRepo{db: db} }

func (r *entityRepo) DB() *gorm.DB { return r.db }

func (r *entityRepo) Create(ctx context.Context, e *model.Entity) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *entityRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Entity, error) {
	var e model.Entity
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *entityRepo) Update(ctx context.Context, e *model.Entity) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *entityRepo) List(ctx context.Context, filter dto.EntityFilter) ([]model.Entity, int64, error) {
	var entities []model.Entity
	var count int64

	q := r.db.WithContext(ctx).Model(&model.Entity{})
	if filter.Text != "" {
		pattern := "%" + filter.Text + "%"
		q = q.Where("name ILIKE ? OR cellphone ILIKE ? OR document ILIKE ?", pattern, pattern, pattern)
	}

	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at ASC").
		Offset(filter.Offset()).Limit(filter.Take()).
		Find(&entities).Error
	return entities, count, err
}
