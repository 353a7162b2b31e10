package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Credit is an open credit line created by a CREDIT sale. PaymentLeft only
// decreases through payment allocation and only increases through monthly
// interest accrual or a payment reversal. A credit is "open" while
// status=ACTIVE and payment_left > 0.
type Credit struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntityID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	SaleID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	OriginalAmount decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PaymentLeft    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	// LastInterestUpdate is nil until the first accrual; the accrual
	// predicate falls back to CreatedAt (COALESCE) in that case.
	LastInterestUpdate *time.Time
	InterestAdded      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Status             string          `gorm:"type:varchar(10);not null;default:'ACTIVE'"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time

	Entity *Entity `gorm:"foreignKey:EntityID"`
}
