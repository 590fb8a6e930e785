package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
)

// CatalogHandler handles product and supplier endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateProduct handles POST /api/v1/products
// @Summary Add a product
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body service.CreateProductInput true "Product"
// @Success 201 {object} Response{data=domain.Product} "Product created"
// @Failure 409 {object} ErrorResponseBody "Code already exists"
// @Security BearerAuth
// @Router /products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var input service.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	p, err := h.catalogService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, p)
}

// ListProducts handles GET /api/v1/products
// @Summary List products
// @Tags catalog
// @Produce json
// @Param code query string false "Exact product code lookup"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Product,meta=PagMeta} "Products"
// @Security BearerAuth
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	if code := c.Query("code"); code != "" {
		p, err := h.catalogService.GetProductByCode(c.Request.Context(), code)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, p)
		return
	}

	offset, limit := pagination(c)
	products, total, err := h.catalogService.ListProducts(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, products, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetProduct handles GET /api/v1/products/:id
// @Summary Get product
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} Response{data=domain.Product} "Product"
// @Failure 404 {object} ErrorResponseBody "Product not found"
// @Security BearerAuth
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}
	p, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}

// CreateSupplier handles POST /api/v1/suppliers
// @Summary Register a supplier
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body service.CreateSupplierInput true "Supplier"
// @Success 201 {object} Response{data=domain.Supplier} "Supplier created"
// @Failure 409 {object} ErrorResponseBody "Code already exists"
// @Security BearerAuth
// @Router /suppliers [post]
func (h *CatalogHandler) CreateSupplier(c *gin.Context) {
	var input service.CreateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	s, err := h.catalogService.CreateSupplier(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, s)
}

// ListSuppliers handles GET /api/v1/suppliers
// @Summary List suppliers
// @Tags catalog
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Supplier,meta=PagMeta} "Suppliers"
// @Security BearerAuth
// @Router /suppliers [get]
func (h *CatalogHandler) ListSuppliers(c *gin.Context) {
	offset, limit := pagination(c)
	suppliers, total, err := h.catalogService.ListSuppliers(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, suppliers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetSupplier handles GET /api/v1/suppliers/:id
// @Summary Get supplier
// @Tags catalog
// @Produce json
// @Param id path string true "Supplier ID (UUID)"
// @Success 200 {object} Response{data=domain.Supplier} "Supplier"
// @Failure 404 {object} ErrorResponseBody "Supplier not found"
// @Security BearerAuth
// @Router /suppliers/{id} [get]
func (h *CatalogHandler) GetSupplier(c *gin.Context) {
	id, ok := parseID(c, "id", "supplier")
	if !ok {
		return
	}
	s, err := h.catalogService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, s)
}
