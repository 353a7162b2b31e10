package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockEntry is an inventory receipt. Creating one increments stock and sets
// each product's LastCost; soft-deleting it reverses both (LastCost falls
// back to the most recent other ACTIVE entry's cost, or 0).
type StockEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Status    string    `gorm:"type:varchar(10);not null;default:'ACTIVE'"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time

	Items []StockEntryItem `gorm:"foreignKey:StockEntryID"`
}

func (StockEntry) TableName() string { return "stock_entries" }

type StockEntryItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StockEntryID uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity     int             `gorm:"not null"`
	Cost         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt    time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
