package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	consumerapp "github.com/utilityboard/backend/internal/application/consumer"
	"github.com/utilityboard/backend/internal/interfaces/http/dto"
)

// ConsumerHandler handles consumer record API endpoints
type ConsumerHandler struct {
	BaseHandler
	consumerService *consumerapp.Service
}

// NewConsumerHandler creates a new ConsumerHandler
func NewConsumerHandler(consumerService *consumerapp.Service) *ConsumerHandler {
	return &ConsumerHandler{consumerService: consumerService}
}

// RegisterRoutes registers consumer routes on the given group
func (h *ConsumerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	consumers := rg.Group("/consumers")
	{
		consumers.POST("", h.Create)
		consumers.GET("", h.List)
		consumers.GET("/:id", h.Get)
		consumers.PUT("/:id", h.Update)
		consumers.DELETE("/:id", h.Delete)
	}
}

// Create registers a new consumer with a unique meter number
func (h *ConsumerHandler) Create(c *gin.Context) {
	var req consumerapp.CreateConsumerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cons, err := h.consumerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, cons)
}

// List returns consumers with pagination
func (h *ConsumerHandler) List(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BindError(c, err)
		return
	}

	consumers, total, err := h.consumerService.List(c.Request.Context(), listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, consumers, total, listReq.Page, listReq.PageSize)
}

// Get returns one consumer by ID
func (h *ConsumerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid consumer ID")
		return
	}

	cons, err := h.consumerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cons)
}

// Update applies a partial update to a consumer
func (h *ConsumerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid consumer ID")
		return
	}

	var req consumerapp.UpdateConsumerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cons, err := h.consumerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cons)
}

// Delete removes a consumer record
func (h *ConsumerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid consumer ID")
		return
	}

	if err := h.consumerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
