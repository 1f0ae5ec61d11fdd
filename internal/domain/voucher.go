package domain

import "time"

// Voucher is scoped to one salon. Exactly one of DiscountAmt and
// DiscountPct may be set; a row carrying both is misconfigured and
// must never grant a discount.
type Voucher struct {
	ID          int64     `json:"id"`
	SalonID     int64     `json:"salon_id"`
	Code        string    `json:"code" gorm:"size:64;index"`
	Active      bool      `json:"active"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	MinOrderAmt *int64    `json:"min_order_amt,omitempty"`
	DiscountAmt *int64    `json:"discount_amt,omitempty"`
	DiscountPct *int      `json:"discount_pct,omitempty"`
	MaxDiscount *int64    `json:"max_discount,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
