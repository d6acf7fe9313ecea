package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"autocare/internal/repository"
)

// JobService runs the scheduled sweeps behind the booking desk.
type JobService struct {
	store  repository.Store
	sender *SenderService
}

func NewJobService(store repository.Store, sender *SenderService) *JobService {
	return &JobService{store: store, sender: sender}
}

// SendAppointmentReminders emails every owner with a confirmed booking
// scheduled for tomorrow. Run daily from cron.
func (s *JobService) SendAppointmentReminders(ctx context.Context) error {
	log.Println("Cron Job: Checking for confirmed bookings needing a reminder...")

	// Stored appointment dates are UTC midnight, so the lookup key must be
	// too; the raw clock reading would never match the date equality.
	now := time.Now().UTC()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	bookings, err := s.store.ConfirmedBookingsOn(ctx, tomorrow)
	if err != nil {
		return fmt.Errorf("cron job: failed to list confirmed bookings for %s: %w",
			tomorrow.Format("2006-01-02"), err)
	}

	if len(bookings) == 0 {
		log.Println("Cron Job: No confirmed bookings scheduled for tomorrow.")
		return nil
	}
	log.Printf("Cron Job: Sending %d appointment reminders.", len(bookings))

	for i := range bookings {
		b := &bookings[i]
		owner, err := s.store.GetUserByID(ctx, b.OwnerID)
		if err != nil {
			log.Printf("Cron Job: could not load owner for booking %s: %v", b.Code, err)
			continue
		}
		s.sender.SendBookingEmail(owner, b, "coming up tomorrow")
	}
	return nil
}
