package service_test

import (
	"context"
	"testing"

	"github.com/doughoff/ksys/internal/apierror"
	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/model"
	"github.com/doughoff/ksys/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleFixture struct {
	svc         service.SaleService
	saleRepo    *stubSaleRepo
	entityRepo  *stubEntityRepo
	productRepo *stubProductRepo
	creditRepo  *stubCreditRepo
	logRepo     *stubLogRepo
}

func buildSaleSvc() *saleFixture {
	f := &saleFixture{
		saleRepo:    newStubSaleRepo(),
		entityRepo:  newStubEntityRepo(),
		productRepo: newStubProductRepo(),
		creditRepo:  newStubCreditRepo(),
		logRepo:     newStubLogRepo(),
	}
	f.svc = service.NewSaleService(f.saleRepo, f.entityRepo, f.productRepo, f.creditRepo, f.logRepo, nil)
	return f
}

func (f *saleFixture) addProduct(name string, stock int, price int64) *model.Product {
	p := &model.Product{
		Barcode: uuid.NewString()[:13],
		Name:    name,
		Stock:   stock,
		Price:   decimal.NewFromInt(price),
		Iva:     model.Iva10,
		Status:  model.StatusActive,
	}
	_ = f.productRepo.Create(context.Background(), p)
	return p
}

func (f *saleFixture) addEntity(name string, creditLimit int64) *model.Entity {
	e := &model.Entity{
		Name:        name,
		CreditLimit: decimal.NewFromInt(creditLimit),
		Status:      model.StatusActive,
	}
	_ = f.entityRepo.Create(context.Background(), e)
	return e
}

func itemReq(p *model.Product, qty int) dto.SaleItemRequest {
	return dto.SaleItemRequest{
		ProductID:   p.ID.String(),
		Description: p.Name,
		Quantity:    qty,
		Price:       p.Price,
		Iva:         p.Iva,
	}
}

func TestSaleCreateCash(t *testing.T) {
	f := buildSaleSvc()
	p := f.addProduct("COCA COLA 2L", 10, 12000)

	resp, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
		Type:  model.SaleCash,
		Items: []dto.SaleItemRequest{itemReq(p, 3)},
	})
	require.NoError(t, err)

	assert.Equal(t, model.SaleCash, resp.Type)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(36000)))
	assert.True(t, resp.IvaTotals[model.Iva10].Equal(decimal.NewFromInt(36000)))
	assert.Equal(t, "Cliente Ocasional", resp.EntityName)
	assert.False(t, resp.StockConflict)

	// Stock decremented, no credit opened, sale logged.
	assert.Equal(t, 7, p.Stock)
	assert.Empty(t, f.creditRepo.credits)
	assert.Equal(t, 1, f.logRepo.countByTable("sale"))
}

func TestSaleCreateCreditOpensCredit(t *testing.T) {
	f := buildSaleSvc()
	p := f.addProduct("ARROZ 1KG", 20, 8000)
	e := f.addEntity("JUAN PEREZ", 100000)
	eid := e.ID.String()

	resp, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
		Type:     model.SaleCredit,
		EntityID: &eid,
		Items:    []dto.SaleItemRequest{itemReq(p, 5)},
	})
	require.NoError(t, err)
	assert.Equal(t, "JUAN PEREZ", resp.EntityName)

	require.Len(t, f.creditRepo.credits, 1)
	credit := f.creditRepo.credits[0]
	assert.Equal(t, e.ID, credit.EntityID)
	assert.True(t, credit.PaymentLeft.Equal(decimal.NewFromInt(40000)))
	assert.True(t, credit.OriginalAmount.Equal(decimal.NewFromInt(40000)))
	assert.True(t, credit.InterestAdded.IsZero())
	assert.Equal(t, model.StatusActive, credit.Status)

	assert.Equal(t, 1, f.logRepo.countByTable("credit"))
	assert.Equal(t, 1, f.logRepo.countByTable("sale"))
}

func TestSaleCreateCreditWithoutEntity(t *testing.T) {
	f := buildSaleSvc()
	p := f.addProduct("FIDEO 500G", 10, 5000)

	_, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
		Type:  model.SaleCredit,
		Items: []dto.SaleItemRequest{itemReq(p, 1)},
	})
	require.Error(t, err)
	assert.EqualError(t, err, "No se puede crear una venta a credito sin cliente")

	// Nothing written.
	assert.Empty(t, f.saleRepo.sales)
	assert.Empty(t, f.logRepo.entries)
}

func TestSaleCreateCreditLimitExceeded(t *testing.T) {
	f := buildSaleSvc()
	p := f.addProduct("ACEITE 1L", 10, 50000)
	e := f.addEntity("MARIA GONZALEZ", 100000)
	eid := e.ID.String()

	// Outstanding 60000 + new sale 50000 > limit 100000.
	_ = f.creditRepo.CreateTx(nil, &model.Credit{
		EntityID:       e.ID,
		SaleID:         uuid.New(),
		Amount:         decimal.NewFromInt(60000),
		OriginalAmount: decimal.NewFromInt(60000),
		PaymentLeft:    decimal.NewFromInt(60000),
		Status:         model.StatusActive,
	})

	_, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
		Type:     model.SaleCredit,
		EntityID: &eid,
		Items:    []dto.SaleItemRequest{itemReq(p, 1)},
	})
	require.Error(t, err)
	assert.EqualError(t, err, "El cliente no tiene suficiente credito")

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindCreditLimit, apiErr.Kind)

	// Rejected sale leaves no trace.
	assert.Empty(t, f.saleRepo.sales)
	assert.Equal(t, 10, p.Stock)
	assert.Len(t, f.creditRepo.credits, 1)
}

func TestSaleCreateExactlyAtCreditLimit(t *testing.T) {
	f := buildSaleSvc()
	p := f.addProduct("YERBA 1KG", 10, 40000)
	e := f.addEntity("PEDRO RAMIREZ", 100000)
	eid := e.ID.String()

	_ = f.creditRepo.CreateTx(nil, &model.Credit{
		EntityID:    e.ID,
		SaleID:      uuid.New(),
		PaymentLeft: decimal.NewFromInt(60000),
		Status:      model.StatusActive,
	})

	// 60000 + 40000 == limit — allowed, only strictly over is rejected.
	_, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
		Type:     model.SaleCredit,
		EntityID: &eid,
		Items:    []dto.SaleItemRequest{itemReq(p, 1)},
	})
	require.NoError(t, err)
	assert.Len(t, f.creditRepo.credits, 2)
}

func TestSaleCreateStockConflict(t *testing.T) {
	f := buildSaleSvc()
	p := f.addProduct("AZUCAR 1KG", 1, 7000)

	resp, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
		Type:  model.SaleCash,
		Items: []dto.SaleItemRequest{itemReq(p, 3)},
	})
	require.NoError(t, err)

	// Oversell commits flagged, stock goes negative.
	assert.True(t, resp.StockConflict)
	assert.Equal(t, -2, p.Stock)
}

func TestSaleCreateUnknownProduct(t *testing.T) {
	f := buildSaleSvc()

	_, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
		Type: model.SaleCash,
		Items: []dto.SaleItemRequest{{
			ProductID:   uuid.NewString(),
			Description: "NO EXISTE",
			Quantity:    1,
			Price:       decimal.NewFromInt(1000),
			Iva:         model.Iva10,
		}},
	})
	require.Error(t, err)
	assert.Equal(t, 404, apierror.Status(err))
}

func TestSaleCreateMixedIvaTotals(t *testing.T) {
	f := buildSaleSvc()
	p10 := f.addProduct("GASEOSA", 10, 10000)
	p5 := f.addProduct("PAN", 10, 3000)
	p5.Iva = model.Iva5

	resp, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
		Type:  model.SaleCash,
		Items: []dto.SaleItemRequest{itemReq(p10, 2), itemReq(p5, 4)},
	})
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(decimal.NewFromInt(32000)))
	assert.True(t, resp.IvaTotals[model.Iva10].Equal(decimal.NewFromInt(20000)))
	assert.True(t, resp.IvaTotals[model.Iva5].Equal(decimal.NewFromInt(12000)))
	assert.True(t, resp.IvaTotals[model.Iva0].IsZero())
}

func TestSaleAccrueInterest(t *testing.T) {
	f := buildSaleSvc()
	require.NoError(t, f.svc.AccrueInterest(context.Background()))
	assert.True(t, f.creditRepo.accrualInvoked)
}

func TestSaleGetByIDNotFound(t *testing.T) {
	f := buildSaleSvc()
	_, err := f.svc.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apierror.Status(err))
}
