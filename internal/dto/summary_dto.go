package dto

// SummaryFilter selects the calendar day to summarize (YYYY-MM-DD).
type SummaryFilter struct {
	Date string `form:"date" validate:"required,datetime=2006-01-02"`
}

type DailySummaryResponse struct {
	Sales    []SaleResponse           `json:"sales"`
	Payments []PaymentProcessResponse `json:"payments"`
}
