package repository

import (
	"context"
	"time"

	"salonbook/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Bookings is the write side of the core plus the guarded status
// transitions exposed to the rest of the system.
type Bookings interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ActiveOnDate(ctx context.Context, stylistID int64, day time.Time) ([]domain.Booking, error)
	UnassignedOnDate(ctx context.Context, salonID int64, day time.Time) ([]domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error)
	ListBySalon(ctx context.Context, salonID int64) ([]domain.Booking, error)
	UpdateStatusIf(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) (int64, error)
	CancelIf(ctx context.Context, id int64, from []domain.BookingStatus, reason string) (int64, error)
	ExpireStalePending(ctx context.Context, cutoff time.Time) (int64, error)
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts the booking and its item snapshots in one go. Inside
// a transaction this is all-or-nothing together with the caller's
// other writes.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).Preload("Items").First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ActiveOnDate returns pending/confirmed bookings of the stylist whose
// appointment falls on the given day. On postgres the rows are locked
// FOR UPDATE so a concurrent admission for the same stylist serializes
// behind this read.
func (r *BookingRepository) ActiveOnDate(ctx context.Context, stylistID int64, day time.Time) ([]domain.Booking, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	q := r.db.WithContext(ctx).
		Where("stylist_id = ?", stylistID).
		Where("status IN ?", []string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Where("appointment_at >= ? AND appointment_at < ?", dayStart, dayEnd)

	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var out []domain.Booking
	err := q.Find(&out).Error
	return out, err
}

// UnassignedOnDate returns pending/confirmed bookings of the salon
// that carry no stylist yet. These consume capacity like any other
// booking; the database constraint cannot see them, so the admission
// path has to.
func (r *BookingRepository) UnassignedOnDate(ctx context.Context, salonID int64, day time.Time) ([]domain.Booking, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	q := r.db.WithContext(ctx).
		Where("salon_id = ? AND stylist_id IS NULL", salonID).
		Where("status IN ?", []string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Where("appointment_at >= ? AND appointment_at < ?", dayStart, dayEnd)

	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var out []domain.Booking
	err := q.Find(&out).Error
	return out, err
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("appointment_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) ListBySalon(ctx context.Context, salonID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("salon_id = ?", salonID).
		Order("appointment_at").
		Find(&out).Error
	return out, err
}

// UpdateStatusIf performs the guarded transition: the status column
// changes only when the row still holds one of the expected current
// statuses. Zero affected rows means a concurrent transition won.
func (r *BookingRepository) UpdateStatusIf(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status IN ?", id, statusStrings(from)).
		Update("status", string(to))
	return tx.RowsAffected, tx.Error
}

func (r *BookingRepository) CancelIf(ctx context.Context, id int64, from []domain.BookingStatus, reason string) (int64, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status IN ?", id, statusStrings(from)).
		Updates(map[string]any{
			"status":              string(domain.BookingCancelled),
			"cancelled_at":        &now,
			"cancellation_reason": reason,
		})
	return tx.RowsAffected, tx.Error
}

// ExpireStalePending cancels pending bookings whose appointment time
// already passed without confirmation. Used by the sweeper.
func (r *BookingRepository) ExpireStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("status = ? AND appointment_at < ?", string(domain.BookingPending), cutoff).
		Updates(map[string]any{
			"status":              string(domain.BookingCancelled),
			"cancelled_at":        &now,
			"cancellation_reason": "not confirmed in time",
		})
	return tx.RowsAffected, tx.Error
}

func statusStrings(in []domain.BookingStatus) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}
