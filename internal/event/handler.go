package event

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codaisseur/eventup-backend/internal/auth"
	"github.com/codaisseur/eventup-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📌 Extract acting user (set by the auth middleware)
func currentUser(c *gin.Context) (*auth.User, bool) {
	raw, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil, false
	}
	user, ok := raw.(*auth.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth context"})
		return nil, false
	}
	return user, true
}

func eventIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return 0, false
	}
	return uint(id), true
}

// ListEvents godoc
// @Summary List events
// @Description Full collection, inactive included; optional composable filters
// @Tags events
// @Produce json
// @Param published query bool false "Only active events"
// @Param on_date query string false "Events whose interval contains this date"
// @Param starts_on query string false "Events starting on this calendar day"
// @Param sort query string false "price or name"
// @Success 200 {array} Event
// @Router /events [get]
func (h *Handler) ListEvents(c *gin.Context) {
	var filter ListFilter

	filter.Published = c.Query("published") == "true"
	if v := c.Query("on_date"); v != "" {
		t, err := ParseTimestamp(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid on_date: " + err.Error()})
			return
		}
		filter.OnDate = &t
	}
	if v := c.Query("starts_on"); v != "" {
		t, err := ParseTimestamp(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid starts_on: " + err.Error()})
			return
		}
		filter.StartsOn = &t
	}
	filter.Sort = c.Query("sort")

	events, err := h.Service.ListEvents(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get one event
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} Event
// @Failure 404 {object} map[string]string
// @Router /events/{id} [get]
func (h *Handler) GetEvent(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}

	e, err := h.Service.GetEventByID(id)
	if errors.Is(err, ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch event"})
		return
	}

	c.JSON(http.StatusOK, e)
}

// GetGuests godoc
// @Summary List an event's guests
// @Description Users reachable through the event's registrations
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {array} auth.User
// @Failure 404 {object} map[string]string
// @Router /events/{id}/guests [get]
func (h *Handler) GetGuests(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}

	guests, err := h.Service.GetGuests(id)
	if errors.Is(err, ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch guests"})
		return
	}

	c.JSON(http.StatusOK, guests)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Owner is the acting user; fields outside the allow-list are dropped
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event fields"
// @Success 201 {object} Event
// @Failure 422 {object} map[string]interface{}
// @Router /events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	e, err := h.Service.CreateEvent(&req, user.ID, ip)
	if err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, e)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Only the owner's own events are reachable; others 404
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param event body UpdateEventRequest true "Partial event fields"
// @Success 200 {object} Event
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /events/{id} [put]
func (h *Handler) UpdateEvent(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	e, err := h.Service.UpdateEvent(id, &req, user.ID, ip)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message": "The event could not be updated",
				"errors":  verrs,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update event"})
		return
	}

	c.JSON(http.StatusOK, e)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Cascades the event's photos and registrations
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /events/{id} [delete]
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}

	// Destroy is public; record the actor when one is authenticated.
	var userID *uint
	if raw, exists := c.Get("user"); exists {
		if user, ok := raw.(*auth.User); ok {
			userID = &user.ID
		}
	}

	ip := middleware.GetIPFromContext(c)

	err := h.Service.DeleteEvent(id, userID, ip)
	if errors.Is(err, ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event successfully deleted"})
}

// ExportEvents godoc
// @Summary Export the event collection
// @Tags events
// @Produce octet-stream
// @Param format query string false "xlsx, csv or pdf (default xlsx)"
// @Router /events/export [get]
func (h *Handler) ExportEvents(c *gin.Context) {
	format := c.DefaultQuery("format", FormatExcel)

	events, err := h.Service.ListEvents(ListFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}

	data, filename, contentType, err := ExportEvents(format, events)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}
