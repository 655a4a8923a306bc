package api

import (
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"equipment-booking-backend/internal/admin"
	"equipment-booking-backend/internal/apperr"
	"equipment-booking-backend/internal/auth"
	"equipment-booking-backend/internal/booking"
	"equipment-booking-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	auth    *auth.Service
	booking *booking.Service
	admin   *admin.Service
	webpush *webpush.Options
	log     zerolog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, authSvc *auth.Service, bookingSvc *booking.Service, adminSvc *admin.Service, webpushOptions *webpush.Options, logger zerolog.Logger) *Handler {
	return &Handler{
		store:   s,
		auth:    authSvc,
		booking: bookingSvc,
		admin:   adminSvc,
		webpush: webpushOptions,
		log:     logger,
	}
}

// respondError translates a service error into an HTTP response. Internal
// errors are logged and hidden behind a generic message.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperr.KindUnauthenticated:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
