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

func buildProductSvc() (service.ProductService, *stubProductRepo) {
	repo := newStubProductRepo()
	return service.NewProductService(repo), repo
}

func TestProductCreateNormalizesName(t *testing.T) {
	svc, _ := buildProductSvc()

	desc := "  paquete de 12 unidades "
	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Barcode:     "7840001234567",
		Name:        "  coca cola 2l ",
		Description: &desc,
		Price:       decimal.NewFromInt(12000),
	})
	require.NoError(t, err)

	assert.Equal(t, "COCA COLA 2L", resp.Name)
	require.NotNil(t, resp.Description)
	assert.Equal(t, "PAQUETE DE 12 UNIDADES", *resp.Description)
	// IVA defaults to 10% when omitted; cost starts at zero until the first
	// stock entry.
	assert.Equal(t, model.Iva10, resp.Iva)
	assert.True(t, resp.LastCost.IsZero())
	assert.Equal(t, model.StatusActive, resp.Status)
}

func TestProductCreateDuplicateBarcode(t *testing.T) {
	svc, _ := buildProductSvc()

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Barcode: "7840001234567",
		Name:    "COCA COLA 2L",
		Price:   decimal.NewFromInt(12000),
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.CreateProductRequest{
		Barcode: "7840001234567",
		Name:    "OTRA COSA",
		Price:   decimal.NewFromInt(5000),
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Ya existe un producto con ese codigo de barras")
	assert.Equal(t, 409, apierror.Status(err))
}

func TestProductUpdateBarcodeConflict(t *testing.T) {
	svc, _ := buildProductSvc()

	first, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Barcode: "1111111111111",
		Name:    "PRODUCTO UNO",
		Price:   decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Barcode: "2222222222222",
		Name:    "PRODUCTO DOS",
		Price:   decimal.NewFromInt(2000),
	})
	require.NoError(t, err)

	secondID, _ := uuid.Parse(second.ID)
	taken := first.Barcode
	_, err = svc.Update(context.Background(), secondID, dto.UpdateProductRequest{Barcode: &taken})
	require.Error(t, err)
	assert.Equal(t, 409, apierror.Status(err))

	// Re-submitting its own barcode is not a conflict.
	own := second.Barcode
	_, err = svc.Update(context.Background(), secondID, dto.UpdateProductRequest{Barcode: &own})
	require.NoError(t, err)
}

func TestProductUpdateSoftDelete(t *testing.T) {
	svc, repo := buildProductSvc()

	created, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Barcode: "3333333333333",
		Name:    "DESCONTINUADO",
		Price:   decimal.NewFromInt(4000),
	})
	require.NoError(t, err)
	id, _ := uuid.Parse(created.ID)

	inactive := false
	resp, err := svc.Update(context.Background(), id, dto.UpdateProductRequest{Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeleted, resp.Status)
	require.NotNil(t, repo.products[id].DeletedAt)

	active := true
	resp, err = svc.Update(context.Background(), id, dto.UpdateProductRequest{Active: &active})
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, resp.Status)
	assert.Nil(t, repo.products[id].DeletedAt)
}

func TestProductGetByBarcodeNotFound(t *testing.T) {
	svc, _ := buildProductSvc()
	_, err := svc.GetByBarcode(context.Background(), "0000000000000")
	require.Error(t, err)
	assert.Equal(t, 404, apierror.Status(err))
}
