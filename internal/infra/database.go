package infra

import (
	"fmt"

	"github.com/doughoff/ksys/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies any idempotent SQL patches that GORM
// cannot express (partial indexes mainly).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus schema patches. Also used by
// integration tests against throwaway databases.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Entity{},
		&model.Product{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Credit{},
		&model.PaymentProcess{},
		&model.Payment{},
		&model.StockEntry{},
		&model.StockEntryItem{},
		&model.Log{},
		&model.User{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index for the open-credit scan: allocation and the monthly
		// interest pass both filter on ACTIVE credits with payment_left > 0.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_credits_open') THEN
		    CREATE INDEX idx_credits_open
		        ON credits (entity_id, created_at)
		        WHERE status = 'ACTIVE' AND payment_left > 0;
		  END IF;
		END $$`,
		// Audit log lookups are always (table_name, row_id).
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_logs_table_row') THEN
		    CREATE INDEX idx_logs_table_row ON logs (table_name, row_id);
		  END IF;
		END $$`,
		// Daily summary filters sales and payment processes by calendar day.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_sales_created_at') THEN
		    CREATE INDEX idx_sales_created_at ON sales (created_at);
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_payment_processes_created_at') THEN
		    CREATE INDEX idx_payment_processes_created_at ON payment_processes (created_at);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
