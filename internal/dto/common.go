package dto

// Pagination is bound from the query string of every list endpoint.
type Pagination struct {
	Page     int `form:"page,default=1"      validate:"min=1"`
	PageSize int `form:"page_size,default=10" validate:"min=1,max=100"`
}

func (p Pagination) Offset() int { return (p.Page - 1) * p.PageSize }

// Take over-fetches one row beyond the page so consumers get a cheap
// "has more" signal without a second round trip.
func (p Pagination) Take() int { return p.PageSize + 1 }
