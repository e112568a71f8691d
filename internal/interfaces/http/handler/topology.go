package handler

import (
	"github.com/gin-gonic/gin"

	apptopo "github.com/mysticum/wms/internal/application/topology"
	"github.com/mysticum/wms/internal/interfaces/http/middleware"
)

// TopologyHandler handles warehouse topology HTTP requests.
type TopologyHandler struct {
	BaseHandler
	topoService *apptopo.Service
}

// NewTopologyHandler creates a new topology handler.
func NewTopologyHandler(topoService *apptopo.Service) *TopologyHandler {
	return &TopologyHandler{topoService: topoService}
}

// RegisterRoutes registers topology routes. Mutations are managerial-only.
func (h *TopologyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	warehouses := rg.Group("/warehouses")
	{
		warehouses.GET("", h.ListWarehouses)
		warehouses.POST("", middleware.RequireManagerial(), h.CreateWarehouse)
		warehouses.GET("/:id/departments", h.ListDepartments)
	}

	departments := rg.Group("/departments")
	{
		departments.POST("", middleware.RequireManagerial(), h.CreateDepartment)
		departments.GET("/:id/cells", h.ListCells)
		departments.PUT("/:id/default-cell", middleware.RequireManagerial(), h.SetDefaultCell)
	}

	rg.GET("/cells/barcode/:barcode", h.LocateCell)
}

// ListWarehouses returns all warehouses.
func (h *TopologyHandler) ListWarehouses(c *gin.Context) {
	warehouses, err := h.topoService.ListWarehouses(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouses)
}

// CreateWarehouse creates a warehouse.
func (h *TopologyHandler) CreateWarehouse(c *gin.Context) {
	var req apptopo.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	warehouse, err := h.topoService.CreateWarehouse(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, warehouse)
}

// ListDepartments returns the departments of a warehouse.
func (h *TopologyHandler) ListDepartments(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	departments, err := h.topoService.ListDepartments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, departments)
}

// CreateDepartment creates a department in a warehouse.
func (h *TopologyHandler) CreateDepartment(c *gin.Context) {
	var req apptopo.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	department, err := h.topoService.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, department)
}

// ListCells returns every cell reachable from a department's rows.
func (h *TopologyHandler) ListCells(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid department ID")
		return
	}

	cells, err := h.topoService.CellsOfDepartment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cells)
}

// SetDefaultCell assigns a department's default receiving cell.
func (h *TopologyHandler) SetDefaultCell(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid department ID")
		return
	}

	var req apptopo.SetDefaultCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	department, err := h.topoService.SetDefaultCell(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, department)
}

// LocateCell resolves a cell barcode to its full topology path.
func (h *TopologyHandler) LocateCell(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		h.BadRequest(c, "Barcode is required")
		return
	}

	location, err := h.topoService.LocateCell(c.Request.Context(), barcode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, location)
}
