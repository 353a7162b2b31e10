package dto

import "github.com/shopspring/decimal"

type EntityFilter struct {
	// Text matches against name, cellphone and document.
	Text string `form:"text"`
	Pagination
}

type CreateEntityRequest struct {
	Name         string          `json:"name"          validate:"required,min=3,max=100"`
	DocumentType *string         `json:"document_type" validate:"omitempty,oneof=RUC CI"`
	Document     *string         `json:"document"      validate:"omitempty,max=20"`
	Cellphone    *string         `json:"cellphone"     validate:"omitempty,max=30"`
	Address      *string         `json:"address"       validate:"omitempty,max=100"`
	Email        *string         `json:"email"         validate:"omitempty,email"`
	CreditLimit  decimal.Decimal `json:"credit_limit"  validate:"min=0"`
}

type UpdateEntityRequest struct {
	Name         *string          `json:"name"          validate:"omitempty,min=3,max=100"`
	DocumentType *string          `json:"document_type" validate:"omitempty,oneof=RUC CI"`
	Document     *string          `json:"document"      validate:"omitempty,max=20"`
	Cellphone    *string          `json:"cellphone"     validate:"omitempty,max=30"`
	Address      *string          `json:"address"       validate:"omitempty,max=100"`
	Email        *string          `json:"email"         validate:"omitempty,email"`
	CreditLimit  *decimal.Decimal `json:"credit_limit"`
	// Active=false soft-deletes the entity (status DELETED, deleted_at set).
	Active *bool `json:"active"`
}

type EntityResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	DocumentType *string         `json:"document_type"`
	Document     *string         `json:"document"`
	Cellphone    *string         `json:"cellphone"`
	Address      *string         `json:"address"`
	Email        *string         `json:"email"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	// OutstandingCredit is the sum of payment_left over the entity's ACTIVE credits.
	OutstandingCredit decimal.Decimal `json:"outstanding_credit"`
	Status            string          `json:"status"`
	CreatedAt         string          `json:"created_at"`
}

type EntityListResponse struct {
	Items   []EntityResponse `json:"items"`
	Count   int64            `json:"count"`
	HasMore bool             `json:"has_more"`
}
