// internal/handlers/events.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aniefioke/intellectual-property/internal/events"
	"github.com/aniefioke/intellectual-property/internal/utils"
)

type EventsHandler struct {
	feed *events.Feed
	hub  *events.Hub
}

func NewEventsHandler(feed *events.Feed, hub *events.Hub) *EventsHandler {
	return &EventsHandler{feed: feed, hub: hub}
}

// GET /events?limit=n
func (h *EventsHandler) Recent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.BadRequestResponse(c, "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	utils.SuccessResponse(c, gin.H{
		"events":      h.feed.Recent(limit),
		"subscribers": h.hub.Subscribers(),
	})
}

// GET /events/ws
func (h *EventsHandler) Stream(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request)
}
