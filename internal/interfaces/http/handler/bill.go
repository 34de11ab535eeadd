package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/utilityboard/backend/internal/application/billing"
	"github.com/utilityboard/backend/internal/interfaces/http/dto"
)

// BillHandler handles bill generation and lifecycle API endpoints
type BillHandler struct {
	BaseHandler
	ledgerService *billingapp.LedgerService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(ledgerService *billingapp.LedgerService) *BillHandler {
	return &BillHandler{ledgerService: ledgerService}
}

// RegisterRoutes registers bill routes on the given group
func (h *BillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bills := rg.Group("/bills")
	{
		bills.POST("", h.Generate)
		bills.GET("", h.List)
		bills.GET("/mine", h.ListMine)
		bills.GET("/:id", h.Get)
		bills.PATCH("/:id/status", h.UpdateStatus)
		bills.DELETE("/:id", h.Delete)
	}
	rg.GET("/consumers/:id/bills", h.ConsumerHistory)
}

// Generate records a meter reading and derives its bill atomically
func (h *BillHandler) Generate(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Operator identity required")
		return
	}

	var req billingapp.GenerateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.ledgerService.Generate(c.Request.Context(), req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List returns bills matching the query filters, newest first
func (h *BillHandler) List(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	bills, total, err := h.ledgerService.ListBills(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, bills, total, filter.Page, filter.PageSize)
}

// ListMine returns bills generated by the requesting operator
func (h *BillHandler) ListMine(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Operator identity required")
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}
	filter.GeneratedBy = &actorID

	bills, total, err := h.ledgerService.ListBills(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, bills, total, filter.Page, filter.PageSize)
}

// Get returns one bill with its reading and consumer context
func (h *BillHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	detail, err := h.ledgerService.GetBill(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}

// UpdateStatus moves a bill through its status machine
func (h *BillHandler) UpdateStatus(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Operator identity required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	var req billingapp.UpdateBillStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	bill, err := h.ledgerService.UpdateStatus(c.Request.Context(), id, req.Status, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// Delete removes a pending bill together with its reading
func (h *BillHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	if err := h.ledgerService.DeleteBill(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ConsumerHistory returns a consumer's bills, latest period first
func (h *BillHandler) ConsumerHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid consumer ID")
		return
	}

	bills, err := h.ledgerService.ConsumerBillHistory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bills)
}

// bindListFilter parses the bill list query parameters
func (h *BillHandler) bindListFilter(c *gin.Context) (billingapp.BillListFilter, bool) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BindError(c, err)
		return billingapp.BillListFilter{}, false
	}

	filter := billingapp.BillListFilter{
		Month:    c.Query("month"),
		Status:   c.Query("status"),
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	}

	if rawYear := c.Query("year"); rawYear != "" {
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			h.BadRequest(c, "Invalid year")
			return billingapp.BillListFilter{}, false
		}
		filter.Year = &year
	}

	return filter, true
}
