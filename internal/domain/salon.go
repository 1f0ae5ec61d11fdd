package domain

import "time"

type Salon struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Published bool      `json:"published"`
	OpenTime  string    `json:"open_time"`  // "09:00", salon-wide fallback
	CloseTime string    `json:"close_time"` // "18:00"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SalonService is a bookable service offered by one salon.
type SalonService struct {
	ID          int64     `json:"id"`
	SalonID     int64     `json:"salon_id"`
	Name        string    `json:"name"`
	Active      bool      `json:"active"`
	DurationMin int       `json:"duration_min"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (SalonService) TableName() string { return "salon_services" }

type Stylist struct {
	ID        int64     `json:"id"`
	SalonID   int64     `json:"salon_id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkingHours is one weekday window. StylistID nil means the row
// applies to the whole salon; stylist rows override the salon fallback.
// Weekday is ISO: 1=Monday .. 7=Sunday.
type WorkingHours struct {
	ID        int64  `json:"id"`
	SalonID   int64  `json:"salon_id"`
	StylistID *int64 `json:"stylist_id,omitempty"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"` // "15:04"
	EndTime   string `json:"end_time"`
}

func (WorkingHours) TableName() string { return "working_hours" }

// Holiday blocks a date. StylistID nil means salon-wide: every stylist
// is blocked that day.
type Holiday struct {
	ID        int64     `json:"id"`
	SalonID   int64     `json:"salon_id"`
	StylistID *int64    `json:"stylist_id,omitempty"`
	Date      time.Time `json:"date"` // midnight UTC
}
