package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mysticum/wms/internal/application/stock"
)

// StockHandler handles stock query HTTP requests.
type StockHandler struct {
	BaseHandler
	stockService *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(stockService *stock.Service) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// RegisterRoutes registers stock routes.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	st := rg.Group("/stock")
	{
		st.GET("/cells/:id", h.ByCell)
		st.GET("/products/:id", h.ByProduct)
		st.GET("/departments/:id", h.ByDepartment)
	}
}

// ByCell returns the lots stored in a cell.
func (h *StockHandler) ByCell(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid cell ID")
		return
	}

	lots, err := h.stockService.ByCell(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lots)
}

// ByProduct returns a product's stock aggregated across lots.
func (h *StockHandler) ByProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var filter stock.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.stockService.ByProduct(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ByDepartment returns all lots held in a department's cells.
func (h *StockHandler) ByDepartment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid department ID")
		return
	}

	lots, err := h.stockService.ByDepartment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lots)
}
