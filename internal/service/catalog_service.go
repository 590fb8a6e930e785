package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

// CreateProductInput is the DTO for adding a product to the catalog.
type CreateProductInput struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
}

// CreateSupplierInput is the DTO for registering a supplier.
type CreateSupplierInput struct {
	Code         string `json:"code" binding:"required"`
	Name         string `json:"name" binding:"required"`
	TaxID        string `json:"tax_id"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
}

// CatalogService manages products and suppliers.
type CatalogService interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetProductByCode(ctx context.Context, code string) (*domain.Product, error)
	ListProducts(ctx context.Context, offset, limit int) ([]domain.Product, int, error)
	CreateSupplier(ctx context.Context, input CreateSupplierInput) (*domain.Supplier, error)
	GetSupplier(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, offset, limit int) ([]domain.Supplier, int, error)
}

type catalogService struct {
	products  port.ProductRepository
	suppliers port.SupplierRepository
}

// NewCatalogService creates a new CatalogService implementation.
func NewCatalogService(products port.ProductRepository, suppliers port.SupplierRepository) CatalogService {
	return &catalogService{products: products, suppliers: suppliers}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *catalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	code := normalizeCode(input.Code)
	name := strings.TrimSpace(input.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: code and name are required", domain.ErrInvalidInput)
	}
	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = "unit"
	}
	p := &domain.Product{
		ID:          uuid.New(),
		Code:        code,
		Name:        name,
		Description: input.Description,
		Unit:        unit,
		IsActive:    true,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *catalogService) GetProductByCode(ctx context.Context, code string) (*domain.Product, error) {
	return s.products.GetByCode(ctx, normalizeCode(code))
}

func (s *catalogService) ListProducts(ctx context.Context, offset, limit int) ([]domain.Product, int, error) {
	return s.products.List(ctx, offset, limit)
}

func (s *catalogService) CreateSupplier(ctx context.Context, input CreateSupplierInput) (*domain.Supplier, error) {
	code := normalizeCode(input.Code)
	name := strings.TrimSpace(input.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: code and name are required", domain.ErrInvalidInput)
	}
	sup := &domain.Supplier{
		ID:           uuid.New(),
		Code:         code,
		Name:         name,
		TaxID:        strings.TrimSpace(input.TaxID),
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		IsActive:     true,
	}
	if err := s.suppliers.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *catalogService) GetSupplier(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	return s.suppliers.GetByID(ctx, id)
}

func (s *catalogService) ListSuppliers(ctx context.Context, offset, limit int) ([]domain.Supplier, int, error) {
	return s.suppliers.List(ctx, offset, limit)
}
