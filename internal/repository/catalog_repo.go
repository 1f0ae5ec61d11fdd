package repository

import (
	"context"
	"errors"
	"time"

	"salonbook/internal/domain"

	"gorm.io/gorm"
)

// Catalog is the read-only view of salon configuration the booking
// core consumes. Lookups return (nil, nil) when the row is absent so
// callers can map absence to their own error kinds.
type Catalog interface {
	GetSalon(ctx context.Context, id int64) (*domain.Salon, error)
	GetStylist(ctx context.Context, salonID, stylistID int64) (*domain.Stylist, error)
	GetActiveStylists(ctx context.Context, salonID int64) ([]domain.Stylist, error)
	GetActiveServices(ctx context.Context, salonID int64, ids []int64) ([]domain.SalonService, error)
	GetStylistWorkingHours(ctx context.Context, stylistID int64, weekday int) ([]domain.WorkingHours, error)
	HasHoliday(ctx context.Context, salonID int64, stylistID *int64, day time.Time) (bool, error)
	GetVoucher(ctx context.Context, salonID int64, id *int64, code *string) (*domain.Voucher, error)
}

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetSalon(ctx context.Context, id int64) (*domain.Salon, error) {
	var s domain.Salon
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogRepository) GetStylist(ctx context.Context, salonID, stylistID int64) (*domain.Stylist, error) {
	var st domain.Stylist
	err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", stylistID, salonID).
		First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *CatalogRepository) GetActiveStylists(ctx context.Context, salonID int64) ([]domain.Stylist, error) {
	var out []domain.Stylist
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = ?", salonID, true).
		Order("id").
		Find(&out).Error
	return out, err
}

// GetActiveServices returns only active services of the salon matching
// the requested ids. Invalid, inactive and foreign ids are silently
// dropped; the caller decides what an empty result means.
func (r *CatalogRepository) GetActiveServices(ctx context.Context, salonID int64, ids []int64) ([]domain.SalonService, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []domain.SalonService
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = ? AND id IN ?", salonID, true, ids).
		Find(&out).Error
	return out, err
}

func (r *CatalogRepository) GetStylistWorkingHours(ctx context.Context, stylistID int64, weekday int) ([]domain.WorkingHours, error) {
	var out []domain.WorkingHours
	err := r.db.WithContext(ctx).
		Where("stylist_id = ? AND weekday = ?", stylistID, weekday).
		Find(&out).Error
	return out, err
}

// HasHoliday reports whether the date is blocked. A salon-wide holiday
// (stylist_id IS NULL) blocks everyone; a stylist holiday only counts
// when that stylist was chosen.
func (r *CatalogRepository) HasHoliday(ctx context.Context, salonID int64, stylistID *int64, day time.Time) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Holiday{}).
		Where("salon_id = ? AND date = ?", salonID, day)

	if stylistID != nil {
		q = q.Where("stylist_id IS NULL OR stylist_id = ?", *stylistID)
	} else {
		q = q.Where("stylist_id IS NULL")
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// Browse reads used by the catalog module; not part of the core's
// Catalog contract.

func (r *CatalogRepository) ListPublishedSalons(ctx context.Context, limit, offset int) ([]domain.Salon, error) {
	var out []domain.Salon
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("id").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *CatalogRepository) ActiveServicesBySalon(ctx context.Context, salonID int64) ([]domain.SalonService, error) {
	var out []domain.SalonService
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = ?", salonID, true).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *CatalogRepository) GetVoucher(ctx context.Context, salonID int64, id *int64, code *string) (*domain.Voucher, error) {
	q := r.db.WithContext(ctx).Where("salon_id = ?", salonID)
	switch {
	case id != nil:
		q = q.Where("id = ?", *id)
	case code != nil:
		q = q.Where("code = ?", *code)
	default:
		return nil, nil
	}

	var v domain.Voucher
	err := q.First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
