package booking

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"salonbook/internal/repository"
)

// Sweeper auto-cancels pending bookings whose appointment time passed
// without a salon confirmation. It goes through the same guarded
// update path as every other status change.
type Sweeper struct {
	bookings repository.Bookings
	cron     *cron.Cron
	interval time.Duration
}

func NewSweeper(bookings repository.Bookings, interval time.Duration) *Sweeper {
	return &Sweeper{
		bookings: bookings,
		cron:     cron.New(),
		interval: interval,
	}
}

func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc("@every "+s.interval.String(), s.sweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Sweeper) Stop() {
	s.cron.Stop()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.bookings.ExpireStalePending(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("sweeper: expire stale pending failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("sweeper: auto-cancelled %d stale pending bookings", n)
	}
}
