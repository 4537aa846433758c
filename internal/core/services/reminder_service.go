package services

import (
	"context"
	"log"
	"time"

	"projectgate/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// staleAfter is how long a request may sit pending before the daily reminder
// counts it
const staleAfter = 24 * time.Hour

// ReminderService logs a daily summary of stale pending requests so reviews
// don't silently pile up. It never mutates state.
type ReminderService struct {
	requestRepo repositories.AccessRequestRepository
	cron        *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(requestRepo repositories.AccessRequestRepository) *ReminderService {
	return &ReminderService{
		requestRepo: requestRepo,
		cron:        cron.New(),
	}
}

// Start schedules the daily reminder (08:30 server time)
func (s *ReminderService) Start() {
	s.cron.AddFunc("30 8 * * *", s.remindPendingReviews)
	s.cron.Start()
	log.Println("✅ ReminderService started (daily 08:30)")
}

// Stop stops the scheduler
func (s *ReminderService) Stop() {
	s.cron.Stop()
	log.Println("🛑 ReminderService stopped")
}

func (s *ReminderService) remindPendingReviews() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-staleAfter)
	count, err := s.requestRepo.CountPendingOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("❌ Pending reminder query error: %v", err)
		return
	}

	if count > 0 {
		log.Printf("⏰ %d access request(s) pending review for more than 24h", count)
	}
}
