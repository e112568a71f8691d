package handler

import (
	"github.com/gin-gonic/gin"

	appcat "github.com/mysticum/wms/internal/application/catalog"
	"github.com/mysticum/wms/internal/interfaces/http/middleware"
)

// CatalogHandler handles document type and product catalog HTTP requests.
type CatalogHandler struct {
	BaseHandler
	catalogService *appcat.Service
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService *appcat.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes registers catalog routes.
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	types := rg.Group("/document-types")
	{
		types.GET("", h.ListDocumentTypes)
		types.GET("/:symbol", h.GetDocumentType)
		types.GET("/:symbol/statuses", h.ListStatuses)
	}

	products := rg.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", middleware.RequireManagerial(), h.CreateProduct)
		products.GET("/:id", h.GetProduct)
	}
}

// ListDocumentTypes returns the full document type catalog.
func (h *CatalogHandler) ListDocumentTypes(c *gin.Context) {
	types, err := h.catalogService.ListDocumentTypes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, types)
}

// GetDocumentType returns a document type by its symbol.
func (h *CatalogHandler) GetDocumentType(c *gin.Context) {
	symbol := c.Param("symbol")
	docType, err := h.catalogService.GetDocumentType(c.Request.Context(), symbol)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, docType)
}

// ListStatuses returns the status catalog of a document type.
func (h *CatalogHandler) ListStatuses(c *gin.Context) {
	symbol := c.Param("symbol")
	docType, err := h.catalogService.GetDocumentType(c.Request.Context(), symbol)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	statuses, err := h.catalogService.ListStatuses(c.Request.Context(), docType.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statuses)
}

// ListProducts returns products matching the query filters.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter appcat.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	products, total, err := h.catalogService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// CreateProduct creates a product catalog entry.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req appcat.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetProduct returns a product by ID.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}
