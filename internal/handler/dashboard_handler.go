package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusys-app/edusys-api/internal/service"
	appErrors "github.com/edusys-app/edusys-api/pkg/errors"
	"github.com/edusys-app/edusys-api/pkg/response"
)

// DashboardHandler exposes the aggregated counters view.
type DashboardHandler struct {
	dashboard *service.DashboardService
	whatsapp  *service.WhatsAppService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService, whatsapp *service.WhatsAppService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, whatsapp: whatsapp}
}

// Stats godoc
// @Summary Dashboard counters
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.dashboard.Stats(c.Request.Context()), nil)
}

// WhatsAppLinkRequest is the free-form deep link payload.
type WhatsAppLinkRequest struct {
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message"`
}

// WhatsAppLink godoc
// @Summary Build a WhatsApp deep link for an arbitrary number
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body WhatsAppLinkRequest true "Link payload"
// @Success 200 {object} response.Envelope
// @Router /whatsapp/link [post]
func (h *DashboardHandler) WhatsAppLink(c *gin.Context) {
	var req WhatsAppLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	link, err := h.whatsapp.ChatLink(req.Phone, req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, link, nil)
}
