package handler

import (
	"github.com/gin-gonic/gin"

	appdoc "github.com/mysticum/wms/internal/application/document"
)

// DocumentHandler handles document lifecycle HTTP requests.
type DocumentHandler struct {
	BaseHandler
	docService *appdoc.Service
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(docService *appdoc.Service) *DocumentHandler {
	return &DocumentHandler{docService: docService}
}

// RegisterRoutes registers document routes.
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	docs := rg.Group("/documents")
	{
		docs.GET("", h.List)
		docs.POST("", h.Create)
		docs.GET("/barcode/:barcode", h.GetByBarcode)
		docs.GET("/:id", h.Get)
		docs.POST("/:id/transition", h.Transition)
		docs.GET("/:id/outstanding", h.Outstanding)
	}
}

// List returns documents matching the query filters.
func (h *DocumentHandler) List(c *gin.Context) {
	var filter appdoc.ListFilter
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

	docs, total, err := h.docService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, docs, total, filter.Page, filter.PageSize)
}

// Create creates a document of any registered type.
func (h *DocumentHandler) Create(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appdoc.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	doc, err := h.docService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, doc)
}

// Get returns a single document with lines and audit trail.
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.docService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// GetByBarcode resolves a document by its printed barcode.
func (h *DocumentHandler) GetByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		h.BadRequest(c, "Barcode is required")
		return
	}

	doc, err := h.docService.GetByBarcode(c.Request.Context(), barcode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Transition moves a document to a new lifecycle status.
func (h *DocumentHandler) Transition(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	var req appdoc.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	doc, err := h.docService.Transition(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Outstanding reports the unfulfilled remainder of an order's lines.
func (h *DocumentHandler) Outstanding(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	remaining, err := h.docService.GetOutstanding(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, remaining)
}
