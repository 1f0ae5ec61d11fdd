package booking

import (
	"time"

	"salonbook/internal/domain"
)

// isoWeekday maps time.Weekday to ISO numbering: 1=Monday .. 7=Sunday.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type window struct {
	start time.Time
	end   time.Time
}

// clockOnDay places a "15:04" clock string on the given day in UTC.
func clockOnDay(clock string, day time.Time) (time.Time, bool) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), true
}

// dayWindows resolves the working-hours windows for the candidate day.
// Stylist rows win; without any the salon's single open/close window is
// the fallback. Windows whose end is not after their start are dropped:
// overnight schedules are not supported and must not admit anything.
func dayWindows(salon *domain.Salon, stylistHours []domain.WorkingHours, day time.Time) []window {
	var out []window

	if len(stylistHours) > 0 {
		for _, h := range stylistHours {
			start, ok1 := clockOnDay(h.StartTime, day)
			end, ok2 := clockOnDay(h.EndTime, day)
			if !ok1 || !ok2 || !end.After(start) {
				continue
			}
			out = append(out, window{start: start, end: end})
		}
		return out
	}

	if salon.OpenTime == "" || salon.CloseTime == "" {
		return nil
	}
	start, ok1 := clockOnDay(salon.OpenTime, day)
	end, ok2 := clockOnDay(salon.CloseTime, day)
	if !ok1 || !ok2 || !end.After(start) {
		return nil
	}
	return append(out, window{start: start, end: end})
}

// checkWorkingHours admits [start,end) only when it is fully contained
// in at least one window. No usable window at all fails closed.
func checkWorkingHours(salon *domain.Salon, stylistHours []domain.WorkingHours, start, end time.Time) error {
	windows := dayWindows(salon, stylistHours, midnightUTC(start))
	if len(windows) == 0 {
		return ErrNotConfigured
	}

	for _, w := range windows {
		if !start.Before(w.start) && !end.After(w.end) {
			return nil
		}
	}
	return ErrScheduleConflict
}
