package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"equipment-booking-backend/internal/mw"
	"equipment-booking-backend/internal/schedule"
)

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// GetEquipment lists all active equipment items.
func (h *Handler) GetEquipment(c *gin.Context) {
	items, err := h.store.ListActiveEquipment(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetWeek returns the Monday-to-Sunday schedule of one equipment item. The
// optional date parameter selects any day of the wanted week; it defaults to
// today.
func (h *Handler) GetWeek(c *gin.Context) {
	id, ok := pathID(c, "equipment_id")
	if !ok {
		return
	}

	refDate := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(schedule.DateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		refDate = parsed
	}

	claims, _ := mw.ClaimsFrom(c)
	view, err := h.booking.Week(c.Request.Context(), id, refDate, claims.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
