package repository

import (
	"context"

	"github.com/doughoff/ksys/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreditRepository interface {
	CreateTx(tx *gorm.DB, c *model.Credit) error
	// FindOpenByEntityTx returns the entity's ACTIVE credits with
	// payment_left > 0. Ordering is explicit — oldest first, id as the
	// tie-break — because the payment allocator depends on it.
	FindOpenByEntityTx(tx *gorm.DB, entityID uuid.UUID) ([]model.Credit, error)
	// SumOutstandingTx aggregates payment_left over the entity's ACTIVE
	// credits (the credit-limit check).
	SumOutstandingTx(tx *gorm.DB, entityID uuid.UUID) (decimal.Decimal, error)
	// AddPaymentLeftTx applies a delta to one credit's payment_left.
	// Negative deltas allocate a payment; positive deltas reverse one.
	AddPaymentLeftTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
	// AccrueMonthlyInterest compounds 5% monthly interest over every open
	// credit whose last accrual (or creation) is more than one calendar
	// month old. One set-based statement: concurrent invocations cannot
	// lose updates, and a credit is touched at most once per month.
	AccrueMonthlyInterest(ctx context.Context) error
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]model.Credit, error)
	DB() *gorm.DB
}

type creditRepo struct{ db *gorm.DB }

func NewCreditRepository(db *gorm.DB) CreditRepository { return &creditRepo{db: db} }

func (r *creditRepo) DB() *gorm.DB { return r.db }

func (r *creditRepo) CreateTx(tx *gorm.DB, c *model.Credit) error {
	return tx.Create(c).Error
}

func (r *creditRepo) FindOpenByEntityTx(tx *gorm.DB, entityID uuid.UUID) ([]model.Credit, error) {
	var credits []model.Credit
	err := tx.
		Where("entity_id = ? AND status = ? AND payment_left > 0", entityID, model.StatusActive).
		Order("created_at ASC, id ASC").
		Find(&credits).Error
	return credits, err
}

func (r *creditRepo) SumOutstandingTx(tx *gorm.DB, entityID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := tx.Model(&model.Credit{}).
		Where("entity_id = ? AND status = ?", entityID, model.StatusActive).
		Select("SUM(payment_left)").
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *creditRepo) AddPaymentLeftTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	res := tx.Model(&model.Credit{}).Where("id = ?", id).
		Update("payment_left", gorm.Expr("payment_left + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *creditRepo) AccrueMonthlyInterest(ctx context.Context) error {
	// LEAST(months, 1) caps the exponent defensively; the WHERE predicate
	// already restricts the set to credits at least one month stale.
	return r.db.WithContext(ctx).Exec(`
		UPDATE credits
		SET
			last_interest_update = NOW(),
			payment_left = payment_left * POWER(1.05, LEAST(EXTRACT(MONTH FROM AGE(NOW(), COALESCE(last_interest_update, created_at)))::int, 1)),
			interest_added = interest_added + payment_left * (POWER(1.05, LEAST(EXTRACT(MONTH FROM AGE(NOW(), COALESCE(last_interest_update, created_at)))::int, 1)) - 1)
		WHERE
			id IN (
				SELECT id
				FROM credits
				WHERE COALESCE(last_interest_update, created_at) < NOW() - INTERVAL '1 month'
					AND payment_left > 0
					AND status = 'ACTIVE'
			)
	`).Error
}

func (r *creditRepo) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]model.Credit, error) {
	var credits []model.Credit
	err := r.db.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("created_at ASC").
		Find(&credits).Error
	return credits, err
}
