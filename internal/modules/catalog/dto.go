package catalog

import (
	"time"

	"salonbook/internal/domain"
)

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type WorkingWindow struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type AvailabilityResponse struct {
	SalonID      int64         `json:"salon_id"`
	StylistID    *int64        `json:"stylist_id,omitempty"`
	Date         string        `json:"date"`
	WorkingHours WorkingWindow `json:"working_hours"`
	FreeSlots    []TimeSlot    `json:"free_slots"`
}

type SalonDetail struct {
	Salon    domain.Salon         `json:"salon"`
	Services []domain.SalonService `json:"services"`
	Stylists []domain.Stylist     `json:"stylists"`
}
