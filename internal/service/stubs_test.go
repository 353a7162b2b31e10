package service_test

// In-memory repository stubs. Services run their transactions through a nil
// *gorm.DB in unit tests, so every Tx method here simply ignores the tx.

import (
	"context"
	"errors"
	"time"

	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/model"
	"github.com/doughoff/ksys/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotFound = errors.New("not found")

// ── Entities ──────────────────────────────────────────────────────────────────

type stubEntityRepo struct {
	entities map[uuid.UUID]*model.Entity
}

func newStubEntityRepo() *stubEntityRepo {
	return &stubEntityRepo{entities: make(map[uuid.UUID]*model.Entity)}
}

func (r *stubEntityRepo) Create(_ context.Context, e *model.Entity) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	r.entities[e.ID] = e
	return nil
}

func (r *stubEntityRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Entity, error) {
	e, ok := r.entities[id]
	if !ok {
		return nil, errNotFound
	}
	return e, nil
}

func (r *stubEntityRepo) Update(_ context.Context, e *model.Entity) error {
	r.entities[e.ID] = e
	return nil
}

func (r *stubEntityRepo) List(_ context.Context, _ dto.EntityFilter) ([]model.Entity, int64, error) {
	out := make([]model.Entity, 0, len(r.entities))
	for _, e := range r.entities {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *stubEntityRepo) DB() *gorm.DB { return nil }

var _ repository.EntityRepository = (*stubEntityRepo)(nil)

// ── Products ──────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	barcodes map[string]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products: make(map[uuid.UUID]*model.Product),
		barcodes: make(map[string]*model.Product),
	}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.products[p.ID] = p
	r.barcodes[p.Barcode] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	p, ok := r.barcodes[barcode]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	r.barcodes[p.Barcode] = p
	return nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

func (r *stubProductRepo) ReceiveStockTx(_ *gorm.DB, id uuid.UUID, quantity int, cost decimal.Decimal) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += quantity
	p.LastCost = cost
	return nil
}

func (r *stubProductRepo) SetLastCostTx(_ *gorm.DB, id uuid.UUID, cost decimal.Decimal) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.LastCost = cost
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Sales ─────────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	for i := range s.Items {
		if s.Items[i].ID == uuid.Nil {
			s.Items[i].ID = uuid.New()
		}
		s.Items[i].SaleID = s.ID
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) ListByDay(_ context.Context, _ string) ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Credits ───────────────────────────────────────────────────────────────────

// stubCreditRepo keeps credits in insertion order, which doubles as the
// created_at ASC ordering the allocator expects.
type stubCreditRepo struct {
	credits        []*model.Credit
	accrualInvoked bool
}

func newStubCreditRepo() *stubCreditRepo { return &stubCreditRepo{} }

func (r *stubCreditRepo) CreateTx(_ *gorm.DB, c *model.Credit) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.credits = append(r.credits, c)
	return nil
}

func (r *stubCreditRepo) FindOpenByEntityTx(_ *gorm.DB, entityID uuid.UUID) ([]model.Credit, error) {
	var out []model.Credit
	for _, c := range r.credits {
		if c.EntityID == entityID && c.Status == model.StatusActive && c.PaymentLeft.GreaterThan(decimal.Zero) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCreditRepo) SumOutstandingTx(_ *gorm.DB, entityID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range r.credits {
		if c.EntityID == entityID && c.Status == model.StatusActive {
			sum = sum.Add(c.PaymentLeft)
		}
	}
	return sum, nil
}

func (r *stubCreditRepo) AddPaymentLeftTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	for _, c := range r.credits {
		if c.ID == id {
			c.PaymentLeft = c.PaymentLeft.Add(delta)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubCreditRepo) AccrueMonthlyInterest(_ context.Context) error {
	r.accrualInvoked = true
	return nil
}

func (r *stubCreditRepo) ListByEntity(_ context.Context, entityID uuid.UUID) ([]model.Credit, error) {
	var out []model.Credit
	for _, c := range r.credits {
		if c.EntityID == entityID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCreditRepo) DB() *gorm.DB { return nil }

var _ repository.CreditRepository = (*stubCreditRepo)(nil)

// ── Payments ──────────────────────────────────────────────────────────────────

type stubPaymentRepo struct {
	processes map[uuid.UUID]*model.PaymentProcess
	payments  []*model.Payment
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{processes: make(map[uuid.UUID]*model.PaymentProcess)}
}

func (r *stubPaymentRepo) CreateProcessTx(_ *gorm.DB, p *model.PaymentProcess) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.processes[p.ID] = p
	return nil
}

func (r *stubPaymentRepo) CreatePaymentTx(_ *gorm.DB, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.payments = append(r.payments, p)
	return nil
}

func (r *stubPaymentRepo) withPayments(p *model.PaymentProcess) *model.PaymentProcess {
	cp := *p
	cp.Payments = nil
	for _, pay := range r.payments {
		if pay.PaymentProcessID == p.ID {
			cp.Payments = append(cp.Payments, *pay)
		}
	}
	return &cp
}

func (r *stubPaymentRepo) FindProcessByID(_ context.Context, id uuid.UUID) (*model.PaymentProcess, error) {
	p, ok := r.processes[id]
	if !ok {
		return nil, errNotFound
	}
	return r.withPayments(p), nil
}

func (r *stubPaymentRepo) FindProcessByIDTx(_ *gorm.DB, id uuid.UUID) (*model.PaymentProcess, error) {
	p, ok := r.processes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.withPayments(p), nil
}

func (r *stubPaymentRepo) MarkProcessDeletedTx(_ *gorm.DB, id uuid.UUID, at time.Time) error {
	p, ok := r.processes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = model.StatusDeleted
	p.DeletedAt = &at
	return nil
}

func (r *stubPaymentRepo) MarkPaymentDeletedTx(_ *gorm.DB, id uuid.UUID, at time.Time) error {
	for _, pay := range r.payments {
		if pay.ID == id {
			pay.Status = model.StatusDeleted
			pay.DeletedAt = &at
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPaymentRepo) ListProcesses(_ context.Context, _ dto.PaymentProcessFilter) ([]model.PaymentProcess, int64, error) {
	out := make([]model.PaymentProcess, 0, len(r.processes))
	for _, p := range r.processes {
		out = append(out, *r.withPayments(p))
	}
	return out, int64(len(out)), nil
}

func (r *stubPaymentRepo) ListProcessesByDay(_ context.Context, _ string) ([]model.PaymentProcess, error) {
	out := make([]model.PaymentProcess, 0, len(r.processes))
	for _, p := range r.processes {
		out = append(out, *r.withPayments(p))
	}
	return out, nil
}

func (r *stubPaymentRepo) DB() *gorm.DB { return nil }

var _ repository.PaymentRepository = (*stubPaymentRepo)(nil)

// ── Stock entries ─────────────────────────────────────────────────────────────

type stubStockEntryRepo struct {
	entries []*model.StockEntry
}

func newStubStockEntryRepo() *stubStockEntryRepo { return &stubStockEntryRepo{} }

func (r *stubStockEntryRepo) CreateTx(_ *gorm.DB, e *model.StockEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	for i := range e.Items {
		if e.Items[i].ID == uuid.Nil {
			e.Items[i].ID = uuid.New()
		}
		e.Items[i].StockEntryID = e.ID
		e.Items[i].CreatedAt = time.Now()
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *stubStockEntryRepo) find(id uuid.UUID) *model.StockEntry {
	for _, e := range r.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (r *stubStockEntryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.StockEntry, error) {
	e := r.find(id)
	if e == nil {
		return nil, errNotFound
	}
	return e, nil
}

func (r *stubStockEntryRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.StockEntry, error) {
	e := r.find(id)
	if e == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubStockEntryRepo) MarkDeletedTx(_ *gorm.DB, id uuid.UUID, at time.Time) error {
	e := r.find(id)
	if e == nil {
		return gorm.ErrRecordNotFound
	}
	e.Status = model.StatusDeleted
	e.DeletedAt = &at
	return nil
}

// PriorCostTx mirrors the SQL: newest item of the product whose parent entry
// is ACTIVE, excluding the reversed entry itself.
func (r *stubStockEntryRepo) PriorCostTx(_ *gorm.DB, productID, excludeEntryID uuid.UUID) (decimal.Decimal, error) {
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.ID == excludeEntryID || e.Status != model.StatusActive {
			continue
		}
		for j := len(e.Items) - 1; j >= 0; j-- {
			if e.Items[j].ProductID == productID {
				return e.Items[j].Cost, nil
			}
		}
	}
	return decimal.Zero, nil
}

func (r *stubStockEntryRepo) List(_ context.Context, _ dto.StockEntryFilter) ([]model.StockEntry, int64, error) {
	out := make([]model.StockEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *stubStockEntryRepo) DB() *gorm.DB { return nil }

var _ repository.StockEntryRepository = (*stubStockEntryRepo)(nil)

// ── Logs ──────────────────────────────────────────────────────────────────────

type logEntry struct {
	Table string
	RowID uuid.UUID
	Type  string
}

type stubLogRepo struct {
	entries []logEntry
}

func newStubLogRepo() *stubLogRepo { return &stubLogRepo{} }

func (r *stubLogRepo) CreateTx(_ *gorm.DB, table string, rowID uuid.UUID, logType string, _ interface{}) error {
	r.entries = append(r.entries, logEntry{Table: table, RowID: rowID, Type: logType})
	return nil
}

func (r *stubLogRepo) List(_ context.Context, _ dto.LogFilter) ([]model.Log, int64, error) {
	return nil, 0, nil
}

func (r *stubLogRepo) countByTable(table string) int {
	n := 0
	for _, e := range r.entries {
		if e.Table == table {
			n++
		}
	}
	return n
}

var _ repository.LogRepository = (*stubLogRepo)(nil)
