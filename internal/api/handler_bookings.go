package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equipment-booking-backend/internal/booking"
	"equipment-booking-backend/internal/mw"
)

func actorFrom(c *gin.Context) booking.Actor {
	claims, _ := mw.ClaimsFrom(c)
	return booking.Actor{ID: claims.UserID, Role: claims.Role}
}

type createBookingRequest struct {
	EquipmentID int64  `json:"equipmentId" binding:"required"`
	BookingDate string `json:"bookingDate" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
}

// PostBooking creates a booking for the authenticated user.
func (h *Handler) PostBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.booking.Create(c.Request.Context(), actorFrom(c), booking.CreateParams{
		EquipmentID: req.EquipmentID,
		BookingDate: req.BookingDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetMyBookings lists the authenticated user's bookings, newest first.
func (h *Handler) GetMyBookings(c *gin.Context) {
	rows, err := h.booking.ListUserBookings(c.Request.Context(), actorFrom(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// DeleteBooking cancels a booking. Owners cancel their own, admins anyone's.
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := pathID(c, "booking_id")
	if !ok {
		return
	}
	if err := h.booking.Cancel(c.Request.Context(), id, actorFrom(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
