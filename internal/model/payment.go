package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentProcess is one customer payment, split across open credits
// oldest-first. The sum of its Payment rows equals Amount at creation.
// Cancelling a process (within 7 days) reverses every allocation.
type PaymentProcess struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntityID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status    string          `gorm:"type:varchar(10);not null;default:'ACTIVE'"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time

	Payments []Payment `gorm:"foreignKey:PaymentProcessID"`
	Entity   *Entity   `gorm:"foreignKey:EntityID"`
}

func (PaymentProcess) TableName() string { return "payment_processes" }

// Payment is the portion of a PaymentProcess allocated to one credit.
type Payment struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PaymentProcessID uuid.UUID       `gorm:"type:uuid;index;not null"`
	CreditID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status           string          `gorm:"type:varchar(10);not null;default:'ACTIVE'"`
	CreatedAt        time.Time
	DeletedAt        *time.Time

	Credit *Credit `gorm:"foreignKey:CreditID"`
}
