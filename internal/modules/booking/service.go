package booking

import (
	"context"
	"errors"
	"time"

	"salonbook/internal/domain"
	"salonbook/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	tx       repository.Tx
	bookings repository.Bookings
	now      func() time.Time
}

func NewService(tx repository.Tx, bookings repository.Bookings) *Service {
	return &Service{
		tx:       tx,
		bookings: bookings,
		now:      time.Now,
	}
}

// CreateBooking runs the whole admission sequence inside one
// transaction: salon and stylist resolution, holiday check, pricing,
// working-hours containment, conflict detection, insert. Any rejection
// rolls everything back; nothing partial ever persists.
func (s *Service) CreateBooking(ctx context.Context, customerID int64, req CreateBookingRequest) (*domain.Booking, error) {
	now := s.now()

	if customerID <= 0 || req.SalonID <= 0 || len(req.Items) == 0 {
		return nil, ErrInvalidInput
	}
	for _, it := range req.Items {
		if it.ServiceID <= 0 || it.Quantity < 1 {
			return nil, ErrInvalidInput
		}
	}
	// strictly more than one hour ahead
	if !req.AppointmentAt.After(now.Add(time.Hour)) {
		return nil, ErrInvalidInput
	}

	start := req.AppointmentAt.UTC()
	day := midnightUTC(start)

	var created *domain.Booking
	err := s.tx.InTransaction(ctx, func(ctx context.Context, cat repository.Catalog, bookings repository.Bookings) error {
		salon, err := cat.GetSalon(ctx, req.SalonID)
		if err != nil {
			return err
		}
		if salon == nil || !salon.Published {
			return ErrSalonNotFound
		}

		if req.StylistID != nil {
			stylist, err := cat.GetStylist(ctx, req.SalonID, *req.StylistID)
			if err != nil {
				return err
			}
			if stylist == nil || !stylist.Active {
				return ErrStylistNotFound
			}
		}

		blocked, err := cat.HasHoliday(ctx, req.SalonID, req.StylistID, day)
		if err != nil {
			return err
		}
		if blocked {
			return ErrHoliday
		}

		services, err := cat.GetActiveServices(ctx, req.SalonID, serviceIDs(req.Items))
		if err != nil {
			return err
		}
		durationMin, subtotal, items, err := priceItems(req.Items, services)
		if err != nil {
			return err
		}

		var discount int64
		var voucherID *int64
		if req.VoucherID != nil || req.VoucherCode != nil {
			voucher, err := cat.GetVoucher(ctx, req.SalonID, req.VoucherID, req.VoucherCode)
			if err != nil {
				return err
			}
			if voucher == nil {
				return ErrVoucherNotFound
			}
			discount, err = voucherDiscount(voucher, subtotal, now)
			if err != nil {
				return err
			}
			voucherID = &voucher.ID
		}

		total := subtotal - discount
		if total < 0 {
			total = 0
		}

		// interval is only known once the total duration is
		end := start.Add(time.Duration(durationMin) * time.Minute)

		var stylistHours []domain.WorkingHours
		if req.StylistID != nil {
			stylistHours, err = cat.GetStylistWorkingHours(ctx, *req.StylistID, isoWeekday(day))
			if err != nil {
				return err
			}
		}
		if err := checkWorkingHours(salon, stylistHours, start, end); err != nil {
			return err
		}

		if req.StylistID != nil {
			existing, err := bookings.ActiveOnDate(ctx, *req.StylistID, day)
			if err != nil {
				return err
			}
			if hasConflict(existing, start, end) {
				return ErrSlotTaken
			}
		} else {
			// salon decides: admit only if at least one active
			// stylist could still take the slot
			if err := s.checkUnassignedCapacity(ctx, cat, bookings, req.SalonID, day, start, end); err != nil {
				return err
			}
		}

		b := &domain.Booking{
			Code:          uuid.NewString(),
			CustomerID:    customerID,
			SalonID:       req.SalonID,
			StylistID:     req.StylistID,
			AppointmentAt: start,
			DurationMin:   durationMin,
			SubtotalAmt:   subtotal,
			DiscountAmt:   discount,
			TotalAmt:      total,
			Status:        domain.BookingPending,
			Note:          req.Note,
			VoucherID:     voucherID,
			Items:         items,
		}
		if err := bookings.Create(ctx, b); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, translateDBError(err)
	}
	return created, nil
}

// checkUnassignedCapacity is the policy for bookings without a chosen
// stylist. Capacity for the interval is the number of active stylists
// who are neither on holiday nor booked there; earlier unassigned
// bookings overlapping the interval each consume one unit of it. A
// salon with no active stylists has no bookable capacity at all.
func (s *Service) checkUnassignedCapacity(ctx context.Context, cat repository.Catalog, bookings repository.Bookings, salonID int64, day, start, end time.Time) error {
	stylists, err := cat.GetActiveStylists(ctx, salonID)
	if err != nil {
		return err
	}
	if len(stylists) == 0 {
		return ErrNotConfigured
	}

	free := 0
	for _, st := range stylists {
		blocked, err := cat.HasHoliday(ctx, salonID, &st.ID, day)
		if err != nil {
			return err
		}
		if blocked {
			continue
		}
		existing, err := bookings.ActiveOnDate(ctx, st.ID, day)
		if err != nil {
			return err
		}
		if !hasConflict(existing, start, end) {
			free++
		}
	}
	if free == 0 {
		return ErrSlotTaken
	}

	unassigned, err := bookings.UnassignedOnDate(ctx, salonID, day)
	if err != nil {
		return err
	}
	taken := 0
	for _, b := range unassigned {
		if overlaps(start, end, b.AppointmentAt, b.EndAt()) {
			taken++
		}
	}
	if taken >= free {
		return ErrSlotTaken
	}
	return nil
}

// Confirm moves pending → confirmed.
func (s *Service) Confirm(ctx context.Context, id int64) error {
	return s.transition(ctx, id, []domain.BookingStatus{domain.BookingPending}, domain.BookingConfirmed)
}

// MarkCompleted moves confirmed → completed.
func (s *Service) MarkCompleted(ctx context.Context, id int64) error {
	return s.transition(ctx, id, []domain.BookingStatus{domain.BookingConfirmed}, domain.BookingCompleted)
}

// MarkNoShow moves confirmed → no_show.
func (s *Service) MarkNoShow(ctx context.Context, id int64) error {
	return s.transition(ctx, id, []domain.BookingStatus{domain.BookingConfirmed}, domain.BookingNoShow)
}

// Cancel moves pending|confirmed → cancelled and records the reason.
// When customerID is non-nil the booking must belong to that customer.
func (s *Service) Cancel(ctx context.Context, id int64, customerID *int64, reason string) error {
	if customerID != nil {
		b, err := s.bookings.GetByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same outcome the guarded update gives for a missing row
			return ErrInvalidTransition
		}
		if err != nil {
			return translateDBError(err)
		}
		if b.CustomerID != *customerID {
			return ErrForbidden
		}
	}

	rows, err := s.bookings.CancelIf(ctx, id, []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed}, reason)
	if err != nil {
		return translateDBError(err)
	}
	if rows == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (s *Service) transition(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error {
	rows, err := s.bookings.UpdateStatusIf(ctx, id, from, to)
	if err != nil {
		return translateDBError(err)
	}
	// zero rows means a concurrent transition won, or the booking
	// never existed; either way the requested transition is invalid
	if rows == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (s *Service) GetMyBookings(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByCustomer(ctx, customerID, limit, offset)
}

// GetSalonBookings is the salon-side view over all bookings of one
// salon, ordered by appointment time.
func (s *Service) GetSalonBookings(ctx context.Context, salonID int64) ([]domain.Booking, error) {
	if salonID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.bookings.ListBySalon(ctx, salonID)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func serviceIDs(items []ItemRequest) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ServiceID)
	}
	return out
}

// translateDBError maps driver-level failures onto the module's error
// kinds. A unique/exclusion violation on the no-double-booking index is
// a lost race, not an internal error; lock and serialization failures
// are retryable.
func translateDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrBusy
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23P01":
			return ErrSlotTaken
		case "40001", "40P01", "55P03":
			return ErrBusy
		}
	}
	return err
}
