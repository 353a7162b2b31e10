package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a committed sale. EntityID is nil for walk-in customers
// ("Cliente Ocasional"). A CREDIT sale owns exactly one Credit row.
type Sale struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntityID *uuid.UUID `gorm:"type:uuid;index"`
	Address  *string
	Document *string
	Type     string          `gorm:"type:varchar(10);not null"` // CASH | CREDIT
	Total    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status   string          `gorm:"type:varchar(10);not null;default:'ACTIVE'"`
	// StockConflict marks sales where some item quantity exceeded the stock
	// on hand at settlement time. The sale still commits; stock goes negative.
	StockConflict bool `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time

	Items  []SaleItem `gorm:"foreignKey:SaleID"`
	Entity *Entity    `gorm:"foreignKey:EntityID"`
	Credit *Credit    `gorm:"foreignKey:SaleID"`
}

// SaleItem snapshots description and unit price at sale time so later
// catalog edits never alter historical sales. Immutable once created.
type SaleItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID      uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Description string    `gorm:"not null"`
	Quantity    int       `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Iva         string          `gorm:"type:varchar(10);not null"`
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
