package dto

import "github.com/shopspring/decimal"

type StockEntryItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	Cost      decimal.Decimal `json:"cost"       validate:"required,min=1"`
}

type CreateStockEntryRequest struct {
	Items []StockEntryItemRequest `json:"items" validate:"required,min=1,dive"`
}

type StockEntryItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Cost        decimal.Decimal `json:"cost"`
}

type StockEntryResponse struct {
	ID        string                   `json:"id"`
	Status    string                   `json:"status"`
	Items     []StockEntryItemResponse `json:"items"`
	CreatedAt string                   `json:"created_at"`
}

type StockEntryFilter struct {
	Pagination
}

type StockEntryListResponse struct {
	Items   []StockEntryResponse `json:"items"`
	Count   int64                `json:"count"`
	HasMore bool                 `json:"has_more"`
}
