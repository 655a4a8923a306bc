package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"equipment-booking-backend/config"
	"equipment-booking-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	authed := mw.RequireAuth(h.auth)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/auth/register", h.PostRegister)
		api.POST("/auth/login", h.PostLogin)
		api.GET("/me", authed, h.GetMe)

		// The equipment catalogue is the same for everyone; the week view
		// carries per-user ownership flags and stays uncached.
		api.GET("/equipment", caching, h.GetEquipment)
		api.GET("/equipment/:equipment_id/week", authed, h.GetWeek)

		api.POST("/bookings", authed, h.PostBooking)
		api.GET("/bookings", authed, h.GetMyBookings)
		api.DELETE("/bookings/:booking_id", authed, h.DeleteBooking)

		api.PUT("/subscriptions", authed, h.PutSubscription)
		api.DELETE("/subscriptions", authed, h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)

		adm := api.Group("/admin")
		adm.Use(authed, mw.RequireAdmin())
		{
			adm.GET("/equipment", h.GetAllEquipment)
			adm.POST("/equipment", h.PostEquipment)
			adm.PATCH("/equipment/:equipment_id", h.PatchEquipment)
			adm.PATCH("/equipment/:equipment_id/active", h.PatchEquipmentActive)

			adm.POST("/blocked-slots", h.PostBlockedSlot)
			adm.DELETE("/blocked-slots/:block_id", h.DeleteBlockedSlot)

			adm.GET("/bookings", h.GetAdminBookings)
			adm.GET("/bookings/export", h.GetAdminExport)
			adm.GET("/activity", h.GetAdminActivity)
			adm.GET("/stats", h.GetAdminStats)
		}
	}

	return r
}
