package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"equipment-booking-backend/internal/admin"
	"equipment-booking-backend/internal/mw"
	"equipment-booking-backend/internal/store"
)

type equipmentRequest struct {
	Name               string `json:"name" binding:"required"`
	Location           string `json:"location"`
	IconName           string `json:"iconName"`
	AccentColor        string `json:"accentColor"`
	DailyStartHour     int    `json:"dailyStartHour"`
	DailyEndHour       int    `json:"dailyEndHour"`
	MinDurationMinutes int    `json:"minDurationMinutes"`
	MaxDurationMinutes int    `json:"maxDurationMinutes"`
}

// PostEquipment creates an equipment item.
func (h *Handler) PostEquipment(c *gin.Context) {
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.admin.AddEquipment(c.Request.Context(), admin.EquipmentParams{
		Name:               req.Name,
		Location:           req.Location,
		IconName:           req.IconName,
		AccentColor:        req.AccentColor,
		DailyStartHour:     req.DailyStartHour,
		DailyEndHour:       req.DailyEndHour,
		MinDurationMinutes: req.MinDurationMinutes,
		MaxDurationMinutes: req.MaxDurationMinutes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type equipmentUpdateRequest struct {
	Name               *string `json:"name"`
	Location           *string `json:"location"`
	IconName           *string `json:"iconName"`
	AccentColor        *string `json:"accentColor"`
	DailyStartHour     *int    `json:"dailyStartHour"`
	DailyEndHour       *int    `json:"dailyEndHour"`
	MinDurationMinutes *int    `json:"minDurationMinutes"`
	MaxDurationMinutes *int    `json:"maxDurationMinutes"`
	IsActive           *bool   `json:"isActive"`
}

// PatchEquipment applies a partial equipment update.
func (h *Handler) PatchEquipment(c *gin.Context) {
	id, ok := pathID(c, "equipment_id")
	if !ok {
		return
	}

	var req equipmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eq, err := h.admin.UpdateEquipment(c.Request.Context(), id, admin.EquipmentUpdate{
		Name:               req.Name,
		Location:           req.Location,
		IconName:           req.IconName,
		AccentColor:        req.AccentColor,
		DailyStartHour:     req.DailyStartHour,
		DailyEndHour:       req.DailyEndHour,
		MinDurationMinutes: req.MinDurationMinutes,
		MaxDurationMinutes: req.MaxDurationMinutes,
		IsActive:           req.IsActive,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, eq)
}

type toggleEquipmentRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// PatchEquipmentActive flips an equipment item's availability without
// touching the rest of its configuration.
func (h *Handler) PatchEquipmentActive(c *gin.Context) {
	id, ok := pathID(c, "equipment_id")
	if !ok {
		return
	}

	var req toggleEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.admin.ToggleEquipment(c.Request.Context(), id, *req.IsActive); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type blockRequest struct {
	EquipmentID int64  `json:"equipmentId" binding:"required"`
	BlockDate   string `json:"blockDate" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	Reason      string `json:"reason"`
}

// PostBlockedSlot blocks a time range on one equipment item.
func (h *Handler) PostBlockedSlot(c *gin.Context) {
	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, _ := mw.ClaimsFrom(c)
	id, err := h.admin.CreateBlock(c.Request.Context(), admin.BlockParams{
		EquipmentID: req.EquipmentID,
		BlockDate:   req.BlockDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Reason:      req.Reason,
		CreatedBy:   claims.UserID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// DeleteBlockedSlot removes a block.
func (h *Handler) DeleteBlockedSlot(c *gin.Context) {
	id, ok := pathID(c, "block_id")
	if !ok {
		return
	}
	if err := h.admin.RemoveBlock(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bookingFilterFromQuery(c *gin.Context) store.BookingFilter {
	var f store.BookingFilter
	if raw := c.Query("equipment_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.EquipmentID = id
		}
	}
	f.DateFrom = c.Query("date_from")
	f.DateTo = c.Query("date_to")
	f.Student = c.Query("student")
	f.Sort = c.Query("sort")
	f.Order = c.Query("order")
	f.Page, _ = strconv.Atoi(c.Query("page"))
	f.PageSize, _ = strconv.Atoi(c.Query("page_size"))
	return f
}

// GetAdminBookings returns the filtered, paginated booking listing.
func (h *Handler) GetAdminBookings(c *gin.Context) {
	res, err := h.admin.ListBookings(c.Request.Context(), bookingFilterFromQuery(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetAdminExport streams the filtered booking listing as an xlsx workbook.
func (h *Handler) GetAdminExport(c *gin.Context) {
	filename := fmt.Sprintf("bookings-%s.xlsx", uuid.NewString())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := h.admin.ExportBookings(c.Request.Context(), bookingFilterFromQuery(c), c.Writer); err != nil {
		h.log.Error().Err(err).Msg("booking export failed")
		// Headers are already out; all we can do is drop the connection.
		c.Abort()
	}
}

// GetAdminActivity returns the most recent bookings for the dashboard feed.
func (h *Handler) GetAdminActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	rows, err := h.admin.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetAdminStats returns the dashboard counters.
func (h *Handler) GetAdminStats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetAllEquipment lists every equipment item, inactive ones included.
func (h *Handler) GetAllEquipment(c *gin.Context) {
	items, err := h.store.ListAllEquipment(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
