package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/utilityboard/backend/internal/application/billing"
	"github.com/utilityboard/backend/internal/interfaces/http/dto"
)

// ReadingHandler handles meter reading API endpoints. Readings are created
// through bill generation only; this handler exposes queries and the
// reading-side deletion entry point.
type ReadingHandler struct {
	BaseHandler
	ledgerService *billingapp.LedgerService
}

// NewReadingHandler creates a new ReadingHandler
func NewReadingHandler(ledgerService *billingapp.LedgerService) *ReadingHandler {
	return &ReadingHandler{ledgerService: ledgerService}
}

// RegisterRoutes registers reading routes on the given group
func (h *ReadingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	readings := rg.Group("/readings")
	{
		readings.GET("", h.List)
		readings.GET("/:id", h.Get)
		readings.DELETE("/:id", h.Delete)
	}
	rg.GET("/meters/:meterNumber", h.ConsumerByMeter)
}

// List returns readings newest first
func (h *ReadingHandler) List(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BindError(c, err)
		return
	}

	readings, total, err := h.ledgerService.ListReadings(c.Request.Context(), listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, readings, total, listReq.Page, listReq.PageSize)
}

// Get returns one reading by ID
func (h *ReadingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid reading ID")
		return
	}

	reading, err := h.ledgerService.GetReading(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reading)
}

// Delete removes a reading together with its pending bill
func (h *ReadingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid reading ID")
		return
	}

	if err := h.ledgerService.DeleteReading(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ConsumerByMeter resolves a meter number to the consumer and their most
// recent reading, for pre-filling the next reading entry.
func (h *ReadingHandler) ConsumerByMeter(c *gin.Context) {
	meterNumber := c.Param("meterNumber")
	if meterNumber == "" {
		h.BadRequest(c, "Meter number is required")
		return
	}

	result, err := h.ledgerService.ConsumerByMeter(c.Request.Context(), meterNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
