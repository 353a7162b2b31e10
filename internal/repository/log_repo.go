package repository

import (
	"context"
	"encoding/json"

	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogRepository is the audit trail writer. CreateTx runs inside the caller's
// transaction so the log row commits or rolls back with the mutation it
// documents. Rows are never updated or deleted.
type LogRepository interface {
	CreateTx(tx *gorm.DB, table string, rowID uuid.UUID, logType string, data interface{}) error
	List(ctx context.Context, filter dto.LogFilter) ([]model.Log, int64, error)
}

type logRepo struct{ db *gorm.DB }

func NewLogRepository(db *gorm.DB) LogRepository { return &logRepo{db: db} }

func (r *logRepo) CreateTx(tx *gorm.DB, table string, rowID uuid.UUID, logType string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return tx.Create(&model.Log{
		Table: table,
		RowID: rowID,
		Type:  logType,
		Data:  payload,
	}).Error
}

func (r *logRepo) List(ctx context.Context, filter dto.LogFilter) ([]model.Log, int64, error) {
	var logs []model.Log
	var count int64

	q := r.db.WithContext(ctx).Model(&model.Log{})
	if filter.Table != "" {
		q = q.Where("table_name = ?", filter.Table)
	}
	if filter.RowID != "" {
		q = q.Where("row_id = ?", filter.RowID)
	}

	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Offset(filter.Offset()).Limit(filter.Take()).
		Find(&logs).Error
	return logs, count, err
}
