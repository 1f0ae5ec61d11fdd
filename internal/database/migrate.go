package database

import (
	"salonbook/internal/domain"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Salon{},
		&domain.SalonService{},
		&domain.Stylist{},
		&domain.WorkingHours{},
		&domain.Holiday{},
		&domain.Voucher{},
		&domain.Booking{},
		&domain.BookingItem{},
	); err != nil {
		return err
	}
	return ensureBookingGuard(db)
}

// ensureBookingGuard installs the database-side uniqueness guard: two
// pending/confirmed bookings of the same stylist may never hold
// overlapping intervals, even if two transactions raced past the
// in-transaction re-check. Violations surface as pg error 23P01 and
// are mapped to a slot-taken rejection.
func ensureBookingGuard(db *gorm.DB) error {
	if !IsPostgres(db) {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	return db.Exec(`
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'idx_no_double_booking'
	) THEN
		ALTER TABLE bookings ADD CONSTRAINT idx_no_double_booking
		EXCLUDE USING gist (
			stylist_id WITH =,
			tstzrange(
				appointment_at,
				appointment_at + make_interval(mins => duration_min),
				'[)'
			) WITH &&
		)
		WHERE (status IN ('pending', 'confirmed') AND stylist_id IS NOT NULL);
	END IF;
END$$;
`).Error
}
