package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Log is the append-only audit trail. One row per mutation, written inside
// the same transaction as the mutation it documents. Never updated, never
// deleted, never read by engine logic.
type Log struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Table     string          `gorm:"column:table_name;index:idx_logs_row;not null"`
	RowID     uuid.UUID       `gorm:"type:uuid;index:idx_logs_row;not null"`
	Type      string          `gorm:"type:varchar(10);not null"` // CREATE | UPDATE
	Data      json.RawMessage `gorm:"type:jsonb"`
	CreatedAt time.Time
}

func (Log) TableName() string { return "logs" }
