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

func buildEntitySvc() (service.EntityService, *stubEntityRepo, *stubCreditRepo) {
	entityRepo := newStubEntityRepo()
	creditRepo := newStubCreditRepo()
	return service.NewEntityService(entityRepo, creditRepo), entityRepo, creditRepo
}

func TestEntityCreate(t *testing.T) {
	svc, _, _ := buildEntitySvc()

	resp, err := svc.Create(context.Background(), dto.CreateEntityRequest{
		Name:        "JUAN PEREZ",
		CreditLimit: decimal.NewFromInt(500000),
	})
	require.NoError(t, err)

	assert.Equal(t, "JUAN PEREZ", resp.Name)
	assert.Equal(t, model.StatusActive, resp.Status)
	assert.True(t, resp.OutstandingCredit.IsZero())
}

func TestEntityGetByIDIncludesOutstanding(t *testing.T) {
	svc, entityRepo, creditRepo := buildEntitySvc()

	e := &model.Entity{Name: "MARIA GONZALEZ", CreditLimit: decimal.NewFromInt(200000), Status: model.StatusActive}
	require.NoError(t, entityRepo.Create(context.Background(), e))

	_ = creditRepo.CreateTx(nil, &model.Credit{
		EntityID:    e.ID,
		SaleID:      uuid.New(),
		PaymentLeft: decimal.NewFromInt(30000),
		Status:      model.StatusActive,
	})
	_ = creditRepo.CreateTx(nil, &model.Credit{
		EntityID:    e.ID,
		SaleID:      uuid.New(),
		PaymentLeft: decimal.NewFromInt(20000),
		Status:      model.StatusActive,
	})
	// Deleted credits do not count against the limit.
	_ = creditRepo.CreateTx(nil, &model.Credit{
		EntityID:    e.ID,
		SaleID:      uuid.New(),
		PaymentLeft: decimal.NewFromInt(99999),
		Status:      model.StatusDeleted,
	})

	resp, err := svc.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.True(t, resp.OutstandingCredit.Equal(decimal.NewFromInt(50000)))
}

func TestEntityUpdateSoftDelete(t *testing.T) {
	svc, entityRepo, _ := buildEntitySvc()

	e := &model.Entity{Name: "PEDRO RAMIREZ", Status: model.StatusActive}
	require.NoError(t, entityRepo.Create(context.Background(), e))

	inactive := false
	resp, err := svc.Update(context.Background(), e.ID, dto.UpdateEntityRequest{Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeleted, resp.Status)
	require.NotNil(t, e.DeletedAt)

	active := true
	resp, err = svc.Update(context.Background(), e.ID, dto.UpdateEntityRequest{Active: &active})
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, resp.Status)
	assert.Nil(t, e.DeletedAt)
}

func TestEntityListCredits(t *testing.T) {
	svc, entityRepo, creditRepo := buildEntitySvc()

	e := &model.Entity{Name: "ANA LOPEZ", Status: model.StatusActive}
	require.NoError(t, entityRepo.Create(context.Background(), e))

	_ = creditRepo.CreateTx(nil, &model.Credit{
		EntityID:       e.ID,
		SaleID:         uuid.New(),
		Amount:         decimal.NewFromInt(10000),
		OriginalAmount: decimal.NewFromInt(10000),
		PaymentLeft:    decimal.Zero,
		Status:         model.StatusActive,
	})
	_ = creditRepo.CreateTx(nil, &model.Credit{
		EntityID:       e.ID,
		SaleID:         uuid.New(),
		Amount:         decimal.NewFromInt(21000),
		OriginalAmount: decimal.NewFromInt(20000),
		PaymentLeft:    decimal.NewFromInt(21000),
		InterestAdded:  decimal.NewFromInt(1000),
		Status:         model.StatusActive,
	})

	credits, err := svc.ListCredits(context.Background(), e.ID)
	require.NoError(t, err)
	require.Len(t, credits, 2)
	// History includes settled credits, oldest first.
	assert.True(t, credits[0].PaymentLeft.IsZero())
	assert.True(t, credits[1].InterestAdded.Equal(decimal.NewFromInt(1000)))
}

func TestEntityNotFound(t *testing.T) {
	svc, _, _ := buildEntitySvc()

	_, err := svc.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apierror.Status(err))

	_, err = svc.ListCredits(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apierror.Status(err))
}
