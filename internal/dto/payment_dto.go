package dto

import "github.com/shopspring/decimal"

type CreatePaymentRequest struct {
	EntityID string          `json:"entity_id" validate:"required,uuid"`
	// Amount is in whole currency units; no fraction smaller than 1 exists.
	Amount decimal.Decimal `json:"amount" validate:"required,min=1"`
}

type PaymentResponse struct {
	ID       string          `json:"id"`
	CreditID string          `json:"credit_id"`
	Amount   decimal.Decimal `json:"amount"`
	Status   string          `json:"status"`
}

type PaymentProcessResponse struct {
	ID         string            `json:"id"`
	EntityID   string            `json:"entity_id"`
	EntityName string            `json:"entity_name"`
	Amount     decimal.Decimal   `json:"amount"`
	Status     string            `json:"status"`
	Payments   []PaymentResponse `json:"payments"`
	CreatedAt  string            `json:"created_at"`
}

type PaymentProcessFilter struct {
	Pagination
}

type PaymentProcessListResponse struct {
	Items   []PaymentProcessResponse `json:"items"`
	Count   int64                    `json:"count"`
	HasMore bool                     `json:"has_more"`
}
