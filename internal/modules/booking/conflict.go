package booking

import (
	"time"

	"salonbook/internal/domain"
)

// overlaps is the half-open interval test: touching endpoints do not
// conflict.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// hasConflict checks the candidate interval against existing bookings.
// Only pending/confirmed rows reach this point; cancelled, completed
// and no-show bookings never block a slot.
func hasConflict(existing []domain.Booking, start, end time.Time) bool {
	for _, b := range existing {
		if overlaps(start, end, b.AppointmentAt, b.EndAt()) {
			return true
		}
	}
	return false
}
