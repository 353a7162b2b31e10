package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entity is a customer account. CreditLimit caps the total outstanding
// payment_left across the entity's ACTIVE credits — a new credit sale that
// would push the sum above the limit is rejected.
type Entity struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"index;not null"`
	DocumentType *string   `gorm:"type:varchar(10)"` // "RUC" | "CI"
	Document     *string   `gorm:"type:varchar(20)"`
	Cellphone    *string   `gorm:"type:varchar(30)"`
	Address      *string
	Email        *string
	CreditLimit  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Status       string          `gorm:"type:varchar(10);not null;default:'ACTIVE'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time

	Credits []Credit `gorm:"foreignKey:EntityID"`
	Sales   []Sale   `gorm:"foreignKey:EntityID"`
}

// TableName overrides GORM's pluralization ("entities" is fine, but kept
// explicit so renames never silently re-point the table).
func (Entity) TableName() string { return "entities" }
