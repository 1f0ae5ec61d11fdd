package booking

import "time"

type ItemRequest struct {
	ServiceID int64 `json:"service_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

type CreateBookingRequest struct {
	SalonID       int64         `json:"salon_id" binding:"required"`
	StylistID     *int64        `json:"stylist_id"`
	AppointmentAt time.Time     `json:"appointment_at" binding:"required"`
	Items         []ItemRequest `json:"items" binding:"required,min=1,dive"`
	Note          string        `json:"note"`
	VoucherCode   *string       `json:"voucher_code"`
	VoucherID     *int64        `json:"voucher_id"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}
