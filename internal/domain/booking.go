package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingNoShow    BookingStatus = "no_show"
)

type Booking struct {
	ID            int64         `json:"id"`
	Code          string        `json:"code" gorm:"size:36;uniqueIndex"`
	CustomerID    int64         `json:"customer_id" validate:"required"`
	SalonID       int64         `json:"salon_id" validate:"required"`
	StylistID     *int64        `json:"stylist_id,omitempty"`
	AppointmentAt time.Time     `json:"appointment_at" validate:"required"`
	DurationMin   int           `json:"duration_min"`
	SubtotalAmt   int64         `json:"subtotal_amt"`
	DiscountAmt   int64         `json:"discount_amt"`
	TotalAmt      int64         `json:"total_amt"`
	Status        BookingStatus `json:"status"`
	Note          string        `json:"note,omitempty" gorm:"type:text"`
	VoucherID     *int64        `json:"voucher_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`

	// заполняется при cancel
	CancellationReason string `json:"cancellation_reason,omitempty" gorm:"type:text"`

	Items []BookingItem `json:"items,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
}

// EndAt is the exclusive end of the occupied interval.
func (b *Booking) EndAt() time.Time {
	return b.AppointmentAt.Add(time.Duration(b.DurationMin) * time.Minute)
}

// BookingItem is a snapshot of one requested service at booking time.
// Catalog changes after creation never affect it.
type BookingItem struct {
	ID          int64  `json:"id"`
	BookingID   int64  `json:"booking_id"`
	ServiceID   int64  `json:"service_id"`
	ServiceName string `json:"service_name"`
	UnitPrice   int64  `json:"unit_price"`
	DurationMin int    `json:"duration_min"`
	Quantity    int    `json:"quantity"`
}
