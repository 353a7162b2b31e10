package dto

import "encoding/json"

type LogFilter struct {
	Table string `form:"table"`
	RowID string `form:"row_id" validate:"omitempty,uuid"`
	Pagination
}

type LogResponse struct {
	ID        string          `json:"id"`
	Table     string          `json:"table"`
	RowID     string          `json:"row_id"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	CreatedAt string          `json:"created_at"`
}

type LogListResponse struct {
	Items   []LogResponse `json:"items"`
	Count   int64         `json:"count"`
	HasMore bool          `json:"has_more"`
}
