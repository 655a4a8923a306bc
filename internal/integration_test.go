package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"equipment-booking-backend/config"
	"equipment-booking-backend/internal/admin"
	"equipment-booking-backend/internal/api"
	"equipment-booking-backend/internal/auth"
	"equipment-booking-backend/internal/booking"
	"equipment-booking-backend/internal/db"
	"equipment-booking-backend/internal/model"
	"equipment-booking-backend/internal/store"
)

// TestBookingLifecycle walks the whole flow over the HTTP surface: accounts
// are registered, an admin sets up equipment, a student books a slot, a
// second student collides with it, the week view reflects ownership and the
// booking is finally cancelled.
func TestBookingLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	cfg := &config.Config{Timezone: "UTC"}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Server.CacheTTLSeconds = 1

	appStore := store.NewGormStore(gdb)
	authSvc := auth.NewService(appStore, "integration-secret", time.Hour)
	bookingSvc := booking.NewService(appStore, time.UTC)
	adminSvc := admin.NewService(appStore)

	handler := api.NewHandler(appStore, authSvc, bookingSvc, adminSvc, &webpush.Options{VAPIDPublicKey: "pub"}, zerolog.Nop())
	router := api.NewRouter(handler, cfg)

	doJSON := func(method, path, token string, body any) *httptest.ResponseRecorder {
		t.Helper()
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	register := func(email string) {
		t.Helper()
		w := doJSON(http.MethodPost, "/api/auth/register", "", gin.H{
			"email": email, "password": "Password1", "firstName": "Test", "lastName": "User",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	login := func(email string) string {
		t.Helper()
		w := doJSON(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "Password1"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Token
	}

	register("admin@school.edu")
	register("ada@school.edu")
	register("bob@school.edu")

	// Promote the first account; registration only ever creates students.
	require.NoError(t, gdb.Model(&model.User{}).
		Where("email = ?", "admin@school.edu").
		Update("role", model.RoleAdmin).Error)

	adminToken := login("admin@school.edu")
	adaToken := login("ada@school.edu")
	bobToken := login("bob@school.edu")

	t.Run("profile reflects the session", func(t *testing.T) {
		w := doJSON(http.MethodGet, "/api/me", adaToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ada@school.edu")
	})

	// Admin routes reject student sessions.
	w := doJSON(http.MethodGet, "/api/admin/stats", adaToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(http.MethodPost, "/api/admin/equipment", adminToken, gin.H{
		"name": "3D printer", "location": "Lab 2",
		"dailyStartHour": 8, "dailyEndHour": 20,
		"minDurationMinutes": 30, "maxDurationMinutes": 120,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	eqID := created.ID

	bookingBody := gin.H{
		"equipmentId": eqID, "bookingDate": "2025-03-12",
		"startTime": "10:00", "endTime": "11:00",
	}

	t.Run("unauthenticated booking is rejected", func(t *testing.T) {
		w := doJSON(http.MethodPost, "/api/bookings", "", bookingBody)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	var bookingID int64
	t.Run("student books a slot", func(t *testing.T) {
		w := doJSON(http.MethodPost, "/api/bookings", adaToken, bookingBody)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var resp struct {
			ID int64 `json:"id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		bookingID = resp.ID
	})

	t.Run("overlapping booking collides", func(t *testing.T) {
		w := doJSON(http.MethodPost, "/api/bookings", bobToken, gin.H{
			"equipmentId": eqID, "bookingDate": "2025-03-12",
			"startTime": "10:30", "endTime": "11:30",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "already taken")
	})

	t.Run("week view marks ownership", func(t *testing.T) {
		path := fmt.Sprintf("/api/equipment/%d/week?date=2025-03-12", eqID)
		w := doJSON(http.MethodGet, path, adaToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var view struct {
			WeekStart string `json:"weekStart"`
			Days      []struct {
				Date   string `json:"date"`
				Events []struct {
					ID    int64  `json:"id"`
					Type  string `json:"type"`
					IsOwn bool   `json:"isOwn"`
				} `json:"events"`
			} `json:"days"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, "2025-03-10", view.WeekStart)
		require.Len(t, view.Days, 7)
		require.Len(t, view.Days[2].Events, 1)
		assert.True(t, view.Days[2].Events[0].IsOwn)

		// The same view through another student's session is not theirs.
		w = doJSON(http.MethodGet, path, bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.False(t, view.Days[2].Events[0].IsOwn)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		w := doJSON(http.MethodDelete, fmt.Sprintf("/api/bookings/%d", bookingID), bobToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner cancels, second cancel fails", func(t *testing.T) {
		w := doJSON(http.MethodDelete, fmt.Sprintf("/api/bookings/%d", bookingID), adaToken, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(http.MethodDelete, fmt.Sprintf("/api/bookings/%d", bookingID), adaToken, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "already cancelled")
	})

	t.Run("cancelled slot can be rebooked", func(t *testing.T) {
		w := doJSON(http.MethodPost, "/api/bookings", bobToken, bookingBody)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("admin listing sees the history", func(t *testing.T) {
		w := doJSON(http.MethodGet, "/api/admin/bookings?student=test", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Total int64 `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(2), resp.Total)
	})
}
