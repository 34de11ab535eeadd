package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tariffapp "github.com/utilityboard/backend/internal/application/tariff"
	"github.com/utilityboard/backend/internal/interfaces/http/dto"
)

// TariffHandler handles tariff plan API endpoints
type TariffHandler struct {
	BaseHandler
	tariffService *tariffapp.Service
}

// NewTariffHandler creates a new TariffHandler
func NewTariffHandler(tariffService *tariffapp.Service) *TariffHandler {
	return &TariffHandler{tariffService: tariffService}
}

// RegisterRoutes registers tariff routes on the given group
func (h *TariffHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tariffs := rg.Group("/tariffs")
	{
		tariffs.POST("", h.Create)
		tariffs.GET("", h.List)
		tariffs.GET("/active", h.GetActive)
		tariffs.PUT("/:id", h.Update)
		tariffs.POST("/:id/activate", h.Activate)
	}
}

// Create creates a new, inactive tariff plan
func (h *TariffHandler) Create(c *gin.Context) {
	var req tariffapp.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	plan, err := h.tariffService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, plan)
}

// List returns plans active-first, then newest first
func (h *TariffHandler) List(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BindError(c, err)
		return
	}

	plans, total, err := h.tariffService.History(c.Request.Context(), listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, plans, total, listReq.Page, listReq.PageSize)
}

// GetActive returns the currently active plan
func (h *TariffHandler) GetActive(c *gin.Context) {
	plan, err := h.tariffService.GetActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// Update applies a partial update to a plan's charges
func (h *TariffHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tariff plan ID")
		return
	}

	var req tariffapp.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	plan, err := h.tariffService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// Activate makes the target plan the single active plan
func (h *TariffHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tariff plan ID")
		return
	}

	plan, err := h.tariffService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}
