package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salonbook/internal/database"
	"salonbook/internal/domain"
	"salonbook/internal/middleware"
	"salonbook/internal/modules/booking"
	"salonbook/internal/modules/catalog"
	jwtsvc "salonbook/internal/pkg/jwt"
	"salonbook/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router        *gin.Engine
	db            *gorm.DB
	jwtService    *jwtsvc.Service
	salon         *domain.Salon
	stylist       *domain.Stylist
	haircut       *domain.SalonService
	manicure      *domain.SalonService
	customerToken string
	salonToken    string
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	// in-memory sqlite lives per connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	catalogRepo := repository.NewCatalogRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	txm := repository.NewTxManager(db, 5*time.Second)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	bookingService := booking.NewService(txm, bookingRepo)
	bookingHandler := booking.NewHandler(bookingService)

	catalogService := catalog.NewService(catalogRepo, bookingRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	catalogHandler.RegisterRoutes(v1)

	protected := v1.Group("/")
	protected.Use(middleware.Auth(jwtService))
	{
		bookingHandler.RegisterRoutes(protected)

		salonSide := protected.Group("/salon")
		salonSide.Use(middleware.RequireRole("salon"))
		bookingHandler.RegisterSalonRoutes(salonSide)
	}

	suite := &E2ETestSuite{router: r, db: db, jwtService: jwtService}
	suite.seed(t)

	t.Cleanup(func() { _ = sqlDB.Close() })
	return suite
}

func (s *E2ETestSuite) seed(t *testing.T) {
	s.salon = &domain.Salon{
		Name:      "Glow Studio",
		Published: true,
		OpenTime:  "09:00",
		CloseTime: "18:00",
	}
	require.NoError(t, s.db.Create(s.salon).Error)

	s.stylist = &domain.Stylist{SalonID: s.salon.ID, Name: "Aliya", Active: true}
	require.NoError(t, s.db.Create(s.stylist).Error)

	s.haircut = &domain.SalonService{SalonID: s.salon.ID, Name: "Haircut", Active: true, DurationMin: 60, Price: 100000}
	require.NoError(t, s.db.Create(s.haircut).Error)

	s.manicure = &domain.SalonService{SalonID: s.salon.ID, Name: "Manicure", Active: true, DurationMin: 30, Price: 50000}
	require.NoError(t, s.db.Create(s.manicure).Error)

	pct := 10
	now := time.Now().UTC()
	require.NoError(t, s.db.Create(&domain.Voucher{
		SalonID:     s.salon.ID,
		Code:        "WELCOME10",
		Active:      true,
		StartAt:     now.Add(-time.Hour),
		EndAt:       now.Add(30 * 24 * time.Hour),
		DiscountPct: &pct,
	}).Error)

	var err error
	s.customerToken, err = s.jwtService.GenerateToken(1, "customer")
	require.NoError(t, err)
	s.salonToken, err = s.jwtService.GenerateToken(100, "salon")
	require.NoError(t, err)
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		log.Printf("Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
		t.Fatalf("unparseable response: %v", err)
	}
	return &resp
}

// slotAt returns a slot two weeks out so the lead-time rule never
// interferes; the salon fallback window applies on any weekday.
func slotAt(hour, min int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, 14)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, time.UTC)
}

func (s *E2ETestSuite) createBookingBody(appointment time.Time, voucherCode string) map[string]interface{} {
	body := map[string]interface{}{
		"salon_id":       s.salon.ID,
		"stylist_id":     s.stylist.ID,
		"appointment_at": appointment.Format(time.RFC3339),
		"items": []map[string]interface{}{
			{"service_id": s.haircut.ID, "quantity": 1},
		},
	}
	if voucherCode != "" {
		body["voucher_code"] = voucherCode
	}
	return body
}

func bookingIDFrom(t *testing.T, resp *TestResponse) int64 {
	b, ok := resp.Data["booking"].(map[string]interface{})
	require.True(t, ok, "response has no booking object")
	id, ok := b["id"].(float64)
	require.True(t, ok, "booking has no numeric id")
	return int64(id)
}

// =============================================================================
// Flow 1: customer books, conflicts are rejected, cancel frees the slot
// =============================================================================

func TestFlow1_BookingLifecycle(t *testing.T) {
	suite := setupTestSuite(t)
	slot := slotAt(16, 30)

	var firstID int64

	t.Run("POST /bookings creates a pending booking with totals", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings",
			suite.createBookingBody(slot, "WELCOME10"), suite.customerToken)

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := parseResponse(t, w)
		require.True(t, resp.Success)

		b := resp.Data["booking"].(map[string]interface{})
		assert.Equal(t, "pending", b["status"])
		assert.Equal(t, float64(60), b["total_minutes"])
		assert.Equal(t, float64(90000), b["total_amount"]) // 100000 - 10%
		assert.NotEmpty(t, b["code"])

		firstID = bookingIDFrom(t, resp)
		log.Printf("✅ POST /bookings - created booking %d", firstID)
	})

	t.Run("slot past closing time is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings",
			suite.createBookingBody(slotAt(17, 30), ""), suite.customerToken)

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "SCHEDULE_CONFLICT", resp.Error.Code)
	})

	t.Run("overlapping slot for the same stylist is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings",
			suite.createBookingBody(slot, ""), suite.customerToken)

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "SLOT_TAKEN", resp.Error.Code)
	})

	t.Run("availability shows the hole around the booking", func(t *testing.T) {
		day := slot.Format("2006-01-02")
		w := suite.makeRequest("GET",
			fmt.Sprintf("/api/v1/salons/%d/availability?date=%s&stylist_id=%d", suite.salon.ID, day, suite.stylist.ID),
			nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		slots := resp.Data["free_slots"].([]interface{})
		assert.Len(t, slots, 2)
	})

	t.Run("cancelling frees the slot for rebooking", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", firstID),
			map[string]interface{}{"reason": "changed my mind"}, suite.customerToken)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("POST", "/api/v1/bookings",
			suite.createBookingBody(slot, ""), suite.customerToken)
		assert.Equal(t, http.StatusCreated, w.Code)
		log.Printf("✅ cancel + rebook - slot reclaimed")
	})

	t.Run("GET /bookings/my lists both bookings", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/bookings/my", nil, suite.customerToken)
		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Len(t, resp.Data["bookings"].([]interface{}), 2)
	})
}

// =============================================================================
// Flow 2: vouchers fail closed, and keep failing the same way
// =============================================================================

func TestFlow2_VoucherRejection(t *testing.T) {
	suite := setupTestSuite(t)

	for i := 0; i < 2; i++ {
		w := suite.makeRequest("POST", "/api/v1/bookings",
			suite.createBookingBody(slotAt(10, 0), "NO_SUCH_CODE"), suite.customerToken)

		assert.Equal(t, http.StatusBadRequest, w.Code, "attempt %d", i+1)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VOUCHER_NOT_FOUND", resp.Error.Code)
	}

	// the rejected attempts must not have admitted anything
	var cnt int64
	require.NoError(t, suite.db.Model(&domain.Booking{}).Count(&cnt).Error)
	assert.Zero(t, cnt)
}

// =============================================================================
// Flow 3: salon-side transitions and role enforcement
// =============================================================================

func TestFlow3_SalonTransitions(t *testing.T) {
	suite := setupTestSuite(t)

	w := suite.makeRequest("POST", "/api/v1/bookings",
		suite.createBookingBody(slotAt(11, 0), ""), suite.customerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	id := bookingIDFrom(t, parseResponse(t, w))

	t.Run("customer cannot confirm", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/salon/bookings/%d/confirm", id),
			nil, suite.customerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("salon confirms a pending booking", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/salon/bookings/%d/confirm", id),
			nil, suite.salonToken)
		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "confirmed", resp.Data["status"])
	})

	t.Run("second confirm hits the status guard", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/salon/bookings/%d/confirm", id),
			nil, suite.salonToken)
		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "INVALID_TRANSITION", resp.Error.Code)
	})

	t.Run("completed only from confirmed", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/salon/bookings/%d/complete", id),
			nil, suite.salonToken)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/salon/bookings/%d/no-show", id),
			nil, suite.salonToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

// =============================================================================
// Flow 4: "salon decides" bookings consume real capacity
// =============================================================================

func TestFlow4_UnassignedBookingsConsumeCapacity(t *testing.T) {
	suite := setupTestSuite(t)

	body := func() map[string]interface{} {
		return map[string]interface{}{
			"salon_id":       suite.salon.ID,
			"appointment_at": slotAt(13, 0).Format(time.RFC3339),
			"items": []map[string]interface{}{
				{"service_id": suite.haircut.ID, "quantity": 1},
			},
		}
	}

	// the salon has exactly one active stylist, so the first
	// unassigned booking uses up the slot entirely
	w := suite.makeRequest("POST", "/api/v1/bookings", body(), suite.customerToken)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = suite.makeRequest("POST", "/api/v1/bookings", body(), suite.customerToken)
	assert.Equal(t, http.StatusConflict, w.Code)
	resp := parseResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SLOT_TAKEN", resp.Error.Code)
}

// =============================================================================
// Flow 5: authentication boundary
// =============================================================================

func TestFlow5_AuthBoundary(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("no token", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings",
			suite.createBookingBody(slotAt(10, 0), ""), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/bookings/my", nil, "not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("public catalog needs no token", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/salons", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("customer cannot cancel a stranger's booking", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings",
			suite.createBookingBody(slotAt(12, 0), ""), suite.customerToken)
		require.Equal(t, http.StatusCreated, w.Code)
		id := bookingIDFrom(t, parseResponse(t, w))

		otherToken, err := suite.jwtService.GenerateToken(2, "customer")
		require.NoError(t, err)

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", id),
			map[string]interface{}{"reason": "not mine"}, otherToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
