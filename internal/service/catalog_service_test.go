package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/repository/memory"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
)

func newCatalog() service.CatalogService {
	repos := memory.NewStore().Repos()
	return service.NewCatalogService(repos.Products, repos.Suppliers)
}

func TestCatalogService_Products(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, service.CreateProductInput{Code: " sku-77 ", Name: "Rice 5kg"})
	require.NoError(t, err)
	assert.Equal(t, "SKU-77", p.Code)
	assert.Equal(t, "unit", p.Unit)
	assert.True(t, p.IsActive)

	_, err = svc.CreateProduct(ctx, service.CreateProductInput{Code: "SKU-77", Name: "Duplicate"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	_, err = svc.CreateProduct(ctx, service.CreateProductInput{Code: "  ", Name: "Nameless code"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	byCode, err := svc.GetProductByCode(ctx, "sku-77")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byCode.ID)

	items, total, err := svc.ListProducts(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items, 1)
}

func TestCatalogService_Suppliers(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	s, err := svc.CreateSupplier(ctx, service.CreateSupplierInput{Code: "acme", Name: " Acme Foods ", TaxID: " B-123 "})
	require.NoError(t, err)
	assert.Equal(t, "ACME", s.Code)
	assert.Equal(t, "Acme Foods", s.Name)
	assert.Equal(t, "B-123", s.TaxID)

	got, err := svc.GetSupplier(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	_, err = svc.CreateSupplier(ctx, service.CreateSupplierInput{Code: "ACME", Name: "Again"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	_, err = svc.CreateSupplier(ctx, service.CreateSupplierInput{Code: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
