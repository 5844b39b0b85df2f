package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusys-app/edusys-api/internal/models"
	"github.com/edusys-app/edusys-api/internal/service"
	appErrors "github.com/edusys-app/edusys-api/pkg/errors"
	"github.com/edusys-app/edusys-api/pkg/response"
)

// EventHandler exposes calendar event endpoints.
type EventHandler struct {
	events    *service.EventService
	scheduler *service.NotificationService
	whatsapp  *service.WhatsAppService
}

// NewEventHandler constructs EventHandler.
func NewEventHandler(events *service.EventService, scheduler *service.NotificationService, whatsapp *service.WhatsAppService) *EventHandler {
	return &EventHandler{events: events, scheduler: scheduler, whatsapp: whatsapp}
}

// List godoc
// @Summary List events
// @Tags Events
// @Produce json
// @Param filter query string false "Filter: hoje, amanha, semana, futuros, passados, alta, media, baixa"
// @Param sort query string false "Sort key: data, prioridade, titulo"
// @Success 200 {object} response.Envelope
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	filter := models.EventFilter(c.Query("filter"))
	sortBy := models.EventSort(c.DefaultQuery("sort", string(models.SortByDate)))
	events := h.events.List(c.Request.Context(), filter, sortBy)
	response.JSON(c, http.StatusOK, events, nil)
}

// Get godoc
// @Summary Get event detail
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Create godoc
// @Summary Create event
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body service.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	event, err := h.events.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// Update godoc
// @Summary Update event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body service.UpdateEventRequest true "Event payload"
// @Success 200 {object} response.Envelope
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	var req service.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	event, err := h.events.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Delete godoc
// @Summary Delete event
// @Tags Events
// @Param id path string true "Event ID"
// @Success 204
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Scan godoc
// @Summary Run one notification scan immediately
// @Tags Events
// @Success 204
// @Router /events/scan [post]
func (h *EventHandler) Scan(c *gin.Context) {
	h.scheduler.Scan(c.Request.Context())
	response.NoContent(c)
}

// WhatsAppLink godoc
// @Summary WhatsApp deep link with the event reminder
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/whatsapp [get]
func (h *EventHandler) WhatsAppLink(c *gin.Context) {
	event, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	link, err := h.whatsapp.EventReminder(c.Request.Context(), *event)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, link, nil)
}
