package dto

import "github.com/shopspring/decimal"

type CreditResponse struct {
	ID             string          `json:"id"`
	SaleID         string          `json:"sale_id"`
	Amount         decimal.Decimal `json:"amount"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	PaymentLeft    decimal.Decimal `json:"payment_left"`
	InterestAdded  decimal.Decimal `json:"interest_added"`
	Status         string          `json:"status"`
	CreatedAt      string          `json:"created_at"`
}
