package booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salonbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings/my", h.My)
	rg.POST("/bookings/:id/cancel", h.Cancel)
}

// RegisterSalonRoutes holds the salon-side transitions; the caller
// wraps the group in a role guard.
func (h *Handler) RegisterSalonRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.SalonList)
	rg.POST("/bookings/:id/confirm", h.Confirm)
	rg.POST("/bookings/:id/complete", h.Complete)
	rg.POST("/bookings/:id/no-show", h.NoShow)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), c.GetInt64("customer_id"), req)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"booking": gin.H{
			"id":            b.ID,
			"code":          b.Code,
			"status":        b.Status,
			"total_minutes": b.DurationMin,
			"total_amount":  b.TotalAmt,
		},
	})
}

func (h *Handler) My(c *gin.Context) {
	limit, offset := pagination(c)
	items, err := h.service.GetMyBookings(c.Request.Context(), c.GetInt64("customer_id"), limit, offset)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		return
	}

	// salon staff may cancel any booking of theirs; customers only
	// their own
	var customerID *int64
	if c.GetString("role") != "salon" {
		v := c.GetInt64("customer_id")
		customerID = &v
	}

	if err := h.service.Cancel(c.Request.Context(), id, customerID, req.Reason); err != nil {
		writeBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "status": "cancelled"})
}

func (h *Handler) SalonList(c *gin.Context) {
	salonID, err := strconv.ParseInt(c.Query("salon_id"), 10, 64)
	if err != nil || salonID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid salon_id")
		return
	}
	items, err := h.service.GetSalonBookings(c.Request.Context(), salonID)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

func (h *Handler) Confirm(c *gin.Context) {
	h.runTransition(c, h.service.Confirm, "confirmed")
}

func (h *Handler) Complete(c *gin.Context) {
	h.runTransition(c, h.service.MarkCompleted, "completed")
}

func (h *Handler) NoShow(c *gin.Context) {
	h.runTransition(c, h.service.MarkNoShow, "no_show")
}

func (h *Handler) runTransition(c *gin.Context, fn func(ctx context.Context, id int64) error, result string) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	if err := fn(c.Request.Context(), id); err != nil {
		writeBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "status": result})
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
	case errors.Is(err, ErrSalonNotFound):
		response.Error(c, http.StatusNotFound, "SALON_NOT_FOUND", "Salon does not exist or is not published")
	case errors.Is(err, ErrStylistNotFound):
		response.Error(c, http.StatusBadRequest, "STYLIST_NOT_FOUND", "Stylist does not exist or is not active")
	case errors.Is(err, ErrHoliday):
		response.Error(c, http.StatusConflict, "HOLIDAY", "Salon is closed on the requested date")
	case errors.Is(err, ErrNotConfigured):
		response.Error(c, http.StatusBadRequest, "NOT_CONFIGURED", "No working hours configured for the requested slot")
	case errors.Is(err, ErrScheduleConflict):
		response.Error(c, http.StatusConflict, "SCHEDULE_CONFLICT", "Requested time is outside working hours")
	case errors.Is(err, ErrSlotTaken):
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", "Requested time slot is already booked")
	case errors.Is(err, ErrVoucherNotFound):
		response.Error(c, http.StatusBadRequest, "VOUCHER_NOT_FOUND", "Voucher does not exist")
	case errors.Is(err, ErrVoucherExpired):
		response.Error(c, http.StatusBadRequest, "VOUCHER_EXPIRED", "Voucher is not active")
	case errors.Is(err, ErrMinOrderNotMet):
		response.Error(c, http.StatusBadRequest, "MIN_ORDER_NOT_MET", "Order total is below the voucher minimum")
	case errors.Is(err, ErrNoValidItems):
		response.Error(c, http.StatusBadRequest, "NO_VALID_ITEMS", "No valid services in the request")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking is not in the required status")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your booking")
	case errors.Is(err, ErrBusy):
		response.Error(c, http.StatusServiceUnavailable, "BUSY", "Temporarily busy, please retry")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking")
	}
}
