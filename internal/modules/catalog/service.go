package catalog

import (
	"context"
	"sort"
	"time"

	"salonbook/internal/domain"
	"salonbook/internal/repository"
)

type Service struct {
	catalog  *repository.CatalogRepository
	bookings repository.Bookings
}

func NewService(catalog *repository.CatalogRepository, bookings repository.Bookings) *Service {
	return &Service{catalog: catalog, bookings: bookings}
}

func (s *Service) ListSalons(ctx context.Context, limit, offset int) ([]domain.Salon, error) {
	return s.catalog.ListPublishedSalons(ctx, limit, offset)
}

func (s *Service) GetSalonDetail(ctx context.Context, salonID int64) (*SalonDetail, error) {
	salon, err := s.catalog.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	if salon == nil || !salon.Published {
		return nil, ErrNotFound
	}

	services, err := s.catalog.ActiveServicesBySalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	stylists, err := s.catalog.GetActiveStylists(ctx, salonID)
	if err != nil {
		return nil, err
	}

	return &SalonDetail{Salon: *salon, Services: services, Stylists: stylists}, nil
}

// GetAvailability lists the free slots of one day. With a stylist it is
// that stylist's windows minus their bookings; without one it is the
// salon window minus the intervals where every active stylist is busy.
func (s *Service) GetAvailability(ctx context.Context, salonID int64, stylistID *int64, dateStr string) (*AvailabilityResponse, error) {
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrValidation
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	salon, err := s.catalog.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	if salon == nil || !salon.Published {
		return nil, ErrNotFound
	}

	resp := &AvailabilityResponse{
		SalonID:   salonID,
		StylistID: stylistID,
		Date:      dateStr,
		FreeSlots: []TimeSlot{},
	}

	blocked, err := s.catalog.HasHoliday(ctx, salonID, stylistID, day)
	if err != nil {
		return nil, err
	}
	if blocked {
		return resp, nil
	}

	windows, open, close, err := s.resolveWindows(ctx, salon, stylistID, day)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return resp, nil
	}
	resp.WorkingHours = WorkingWindow{Open: open, Close: close}

	if stylistID != nil {
		busy, err := s.busySlots(ctx, *stylistID, day)
		if err != nil {
			return nil, err
		}
		for _, w := range windows {
			resp.FreeSlots = append(resp.FreeSlots, subtractBusy(w.Start, w.End, busy)...)
		}
		return resp, nil
	}

	// no stylist chosen: a slot is free while at least one active
	// stylist is free
	stylists, err := s.catalog.GetActiveStylists(ctx, salonID)
	if err != nil {
		return nil, err
	}
	var union []TimeSlot
	for _, st := range stylists {
		busy, err := s.busySlots(ctx, st.ID, day)
		if err != nil {
			return nil, err
		}
		for _, w := range windows {
			union = append(union, subtractBusy(w.Start, w.End, busy)...)
		}
	}
	resp.FreeSlots = mergeSlots(union)
	return resp, nil
}

func (s *Service) resolveWindows(ctx context.Context, salon *domain.Salon, stylistID *int64, day time.Time) ([]TimeSlot, string, string, error) {
	if stylistID != nil {
		rows, err := s.catalog.GetStylistWorkingHours(ctx, *stylistID, isoWeekday(day))
		if err != nil {
			return nil, "", "", err
		}
		if len(rows) > 0 {
			var out []TimeSlot
			for _, r := range rows {
				start, ok1 := clockOnDay(r.StartTime, day)
				end, ok2 := clockOnDay(r.EndTime, day)
				if !ok1 || !ok2 || !end.After(start) {
					continue
				}
				out = append(out, TimeSlot{Start: start, End: end})
			}
			if len(out) == 0 {
				return nil, "", "", nil
			}
			sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
			return out, out[0].Start.Format("15:04"), out[len(out)-1].End.Format("15:04"), nil
		}
	}

	start, ok1 := clockOnDay(salon.OpenTime, day)
	end, ok2 := clockOnDay(salon.CloseTime, day)
	if !ok1 || !ok2 || !end.After(start) {
		return nil, "", "", nil
	}
	return []TimeSlot{{Start: start, End: end}}, salon.OpenTime, salon.CloseTime, nil
}

func (s *Service) busySlots(ctx context.Context, stylistID int64, day time.Time) ([]TimeSlot, error) {
	rows, err := s.bookings.ActiveOnDate(ctx, stylistID, day)
	if err != nil {
		return nil, err
	}
	out := make([]TimeSlot, 0, len(rows))
	for _, b := range rows {
		out = append(out, TimeSlot{Start: b.AppointmentAt, End: b.EndAt()})
	}
	return out, nil
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func clockOnDay(clock string, day time.Time) (time.Time, bool) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), true
}

// subtractBusy returns the gaps of [open,close) not covered by busy.
func subtractBusy(open, close time.Time, busy []TimeSlot) []TimeSlot {
	if len(busy) == 0 {
		return []TimeSlot{{Start: open, End: close}}
	}

	sorted := make([]TimeSlot, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	merged := make([]TimeSlot, 0, len(sorted))
	for _, s := range sorted {
		if s.End.Before(open) || !s.Start.Before(close) {
			continue
		}
		if s.Start.Before(open) {
			s.Start = open
		}
		if s.End.After(close) {
			s.End = close
		}
		if !s.End.After(s.Start) {
			continue
		}

		if len(merged) == 0 {
			merged = append(merged, s)
			continue
		}
		last := merged[len(merged)-1]
		if !s.Start.After(last.End) {
			if s.End.After(last.End) {
				last.End = s.End
				merged[len(merged)-1] = last
			}
		} else {
			merged = append(merged, s)
		}
	}

	cur := open
	out := make([]TimeSlot, 0)
	for _, b := range merged {
		if b.Start.After(cur) {
			out = append(out, TimeSlot{Start: cur, End: b.Start})
		}
		if b.End.After(cur) {
			cur = b.End
		}
		if !cur.Before(close) {
			break
		}
	}
	if cur.Before(close) {
		out = append(out, TimeSlot{Start: cur, End: close})
	}
	return out
}

// mergeSlots unions possibly overlapping slots from several stylists.
func mergeSlots(in []TimeSlot) []TimeSlot {
	if len(in) == 0 {
		return []TimeSlot{}
	}
	sort.Slice(in, func(i, j int) bool { return in[i].Start.Before(in[j].Start) })

	out := []TimeSlot{in[0]}
	for _, s := range in[1:] {
		last := &out[len(out)-1]
		if !s.Start.After(last.End) {
			if s.End.After(last.End) {
				last.End = s.End
			}
			continue
		}
		out = append(out, s)
	}
	return out
}
