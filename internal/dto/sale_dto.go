package dto

import "github.com/shopspring/decimal"

type SaleItemRequest struct {
	ProductID   string          `json:"product_id"  validate:"required,uuid"`
	Description string          `json:"description" validate:"required"`
	Quantity    int             `json:"quantity"    validate:"required,min=1"`
	Price       decimal.Decimal `json:"price"       validate:"min=0"`
	Iva         string          `json:"iva"         validate:"required,oneof=IVA_0 IVA_5 IVA_10"`
}

type CreateSaleRequest struct {
	Items    []SaleItemRequest `json:"items"     validate:"required,min=1,dive"`
	EntityID *string           `json:"entity_id" validate:"omitempty,uuid"`
	Address  *string           `json:"address"   validate:"omitempty,max=100"`
	Document *string           `json:"document"  validate:"omitempty,max=20"`
	Type     string            `json:"type"      validate:"required,oneof=CASH CREDIT"`
}

type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Iva         string          `json:"iva"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID         string             `json:"id"`
	EntityID   *string            `json:"entity_id"`
	EntityName string             `json:"entity_name"` // "Cliente Ocasional" for walk-ins
	Type       string             `json:"type"`
	Total      decimal.Decimal    `json:"total"`
	// IvaTotals is the per-tax-class subtotal breakdown, kept for receipts.
	IvaTotals     map[string]decimal.Decimal `json:"iva_totals"`
	Status        string                     `json:"status"`
	StockConflict bool                       `json:"stock_conflict"`
	Items         []SaleItemResponse         `json:"items"`
	CreatedAt     string                     `json:"created_at"`
}

type SaleFilter struct {
	Pagination
}

type SaleListResponse struct {
	Items   []SaleResponse `json:"items"`
	Count   int64          `json:"count"`
	HasMore bool           `json:"has_more"`
}
