package booking

import "errors"

// One sentinel per rejection kind. The handler maps these to HTTP
// codes; nothing below the handler knows about HTTP.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrSalonNotFound     = errors.New("salon not found")
	ErrStylistNotFound   = errors.New("stylist not found")
	ErrHoliday           = errors.New("salon closed for holiday")
	ErrNotConfigured     = errors.New("no working hours configured")
	ErrScheduleConflict  = errors.New("outside working hours")
	ErrSlotTaken         = errors.New("slot already taken")
	ErrVoucherNotFound   = errors.New("voucher not found")
	ErrVoucherExpired    = errors.New("voucher expired")
	ErrMinOrderNotMet    = errors.New("voucher minimum order not met")
	ErrNoValidItems      = errors.New("no valid items")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrBusy              = errors.New("resource busy, retry later")
)
