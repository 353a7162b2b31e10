package repository

import (
	"context"
	"time"

	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	CreateProcessTx(tx *gorm.DB, p *model.PaymentProcess) error
	CreatePaymentTx(tx *gorm.DB, p *model.Payment) error
	FindProcessByID(ctx context.Context, id uuid.UUID) (*model.PaymentProcess, error)
	FindProcessByIDTx(tx *gorm.DB, id uuid.UUID) (*model.PaymentProcess, error)
	MarkProcessDeletedTx(tx *gorm.DB, id uuid.UUID, at time.Time) error
	MarkPaymentDeletedTx(tx *gorm.DB, id uuid.UUID, at time.Time) error
	ListProcesses(ctx context.Context, filter dto.PaymentProcessFilter) ([]model.PaymentProcess, int64, error)
	ListProcessesByDay(ctx context.Context, day string) ([]model.PaymentProcess, error)
	DB() *gorm.DB
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) DB() *gorm.DB { return r.db }

func (r *paymentRepo) CreateProcessTx(tx *gorm.DB, p *model.PaymentProcess) error {
	return tx.Create(p).Error
}

func (r *paymentRepo) CreatePaymentTx(tx *gorm.DB, p *model.Payment) error {
	return tx.Create(p).Error
}

func (r *paymentRepo) FindProcessByID(ctx context.Context, id uuid.UUID) (*model.PaymentProcess, error) {
	var p model.PaymentProcess
	err := r.db.WithContext(ctx).
		Preload("Payments").Preload("Entity").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *paymentRepo) FindProcessByIDTx(tx *gorm.DB, id uuid.UUID) (*model.PaymentProcess, error) {
	var p model.PaymentProcess
	err := tx.Preload("Payments").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *paymentRepo) MarkProcessDeletedTx(tx *gorm.DB, id uuid.UUID, at time.Time) error {
	return tx.Model(&model.PaymentProcess{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": model.StatusDeleted, "deleted_at": at}).Error
}

func (r *paymentRepo) MarkPaymentDeletedTx(tx *gorm.DB, id uuid.UUID, at time.Time) error {
	return tx.Model(&model.Payment{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": model.StatusDeleted, "deleted_at": at}).Error
}

func (r *paymentRepo) ListProcesses(ctx context.Context, filter dto.PaymentProcessFilter) ([]model.PaymentProcess, int64, error) {
	var processes []model.PaymentProcess
	var count int64

	q := r.db.WithContext(ctx).Model(&model.PaymentProcess{})
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Payments").Preload("Entity").
		Order("created_at DESC").
		Offset(filter.Offset()).Limit(filter.Take()).
		Find(&processes).Error
	return processes, count, err
}

func (r *paymentRepo) ListProcessesByDay(ctx context.Context, day string) ([]model.PaymentProcess, error) {
	var processes []model.PaymentProcess
	err := r.db.WithContext(ctx).
		Where("DATE(created_at) = ?", day).
		Preload("Payments").Preload("Entity").
		Order("created_at ASC").
		Find(&processes).Error
	return processes, err
}
