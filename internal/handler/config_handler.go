package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusys-app/edusys-api/internal/service"
	appErrors "github.com/edusys-app/edusys-api/pkg/errors"
	"github.com/edusys-app/edusys-api/pkg/response"
)

// ConfigHandler exposes the preference singleton.
type ConfigHandler struct {
	config *service.ConfigService
}

// NewConfigHandler constructs ConfigHandler.
func NewConfigHandler(config *service.ConfigService) *ConfigHandler {
	return &ConfigHandler{config: config}
}

// Get godoc
// @Summary Get application preferences
// @Tags Config
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /config [get]
func (h *ConfigHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.config.Get(c.Request.Context()), nil)
}

// Update godoc
// @Summary Replace application preferences
// @Tags Config
// @Accept json
// @Produce json
// @Param payload body service.UpdateConfigRequest true "Preferences payload"
// @Success 200 {object} response.Envelope
// @Router /config [put]
func (h *ConfigHandler) Update(c *gin.Context) {
	var req service.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	response.JSON(c, http.StatusOK, h.config.Update(c.Request.Context(), req), nil)
}
