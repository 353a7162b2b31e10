package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item. Stock is allowed to go negative on oversell —
// the sale flags the conflict instead of rejecting it (see SaleService).
// LastCost tracks the cost of the most recent ACTIVE stock entry item.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Barcode     string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Stock       int             `gorm:"not null;default:0"`
	Price       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	LastCost    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Iva         string          `gorm:"type:varchar(10);not null;default:'IVA_10'"`
	Status      string          `gorm:"type:varchar(10);not null;default:'ACTIVE'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
