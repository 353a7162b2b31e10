package dto

import "github.com/shopspring/decimal"

type ProductFilter struct {
	// Text matches against name, description and barcode.
	Text string `form:"text"`
	Pagination
}

type CreateProductRequest struct {
	Barcode     string          `json:"barcode"     validate:"required,min=2,max=30"`
	Name        string          `json:"name"        validate:"required,min=3,max=100"`
	Description *string         `json:"description" validate:"omitempty,max=100"`
	Stock       int             `json:"stock"       validate:"min=0"`
	Price       decimal.Decimal `json:"price"       validate:"required,min=1"`
	Iva         string          `json:"iva"         validate:"omitempty,oneof=IVA_0 IVA_5 IVA_10"`
}

type UpdateProductRequest struct {
	Barcode     *string          `json:"barcode"     validate:"omitempty,min=2,max=30"`
	Name        *string          `json:"name"        validate:"omitempty,min=3,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=100"`
	Stock       *int             `json:"stock"`
	Price       *decimal.Decimal `json:"price"`
	Iva         *string          `json:"iva"         validate:"omitempty,oneof=IVA_0 IVA_5 IVA_10"`
	Active      *bool            `json:"active"`
}

type ProductResponse struct {
	ID          string          `json:"id"`
	Barcode     string          `json:"barcode"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	LastCost    decimal.Decimal `json:"last_cost"`
	Iva         string          `json:"iva"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"created_at"`
}

type ProductListResponse struct {
	Items   []ProductResponse `json:"items"`
	Count   int64             `json:"count"`
	HasMore bool              `json:"has_more"`
}
