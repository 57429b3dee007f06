package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/cageside-dev/cageside/db"
	"github.com/cageside-dev/cageside/internal/models"
	"github.com/cageside-dev/cageside/internal/services"
)

const reminderInterval = time.Hour

// Scheduler periodically reminds leagues with a configured webhook about
// events starting within the next 24 hours.
type Scheduler struct {
	reminded map[string]time.Time // event ID -> event date, pruned once past
	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		reminded: make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Scheduler) Start() {
	log.Println("Starting event reminder scheduler...")

	go func() {
		ticker := time.NewTicker(reminderInterval)
		defer ticker.Stop()

		s.sendDueReminders()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.sendDueReminders()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	log.Println("Stopping event reminder scheduler...")
	s.cancel()
}

func (s *Scheduler) sendDueReminders() {
	now := time.Now()

	s.mu.Lock()
	for id, date := range s.reminded {
		if date.Before(now) {
			delete(s.reminded, id)
		}
	}
	s.mu.Unlock()

	var events []models.Event
	if err := db.DB.Where("date > ? AND date < ?", now, now.Add(24*time.Hour)).Find(&events).Error; err != nil {
		log.Printf("Failed to load upcoming events: %v", err)
		return
	}

	if len(events) == 0 {
		return
	}

	var leagues []models.League
	if err := db.DB.Where("discord_webhook <> '' OR slack_webhook <> ''").Find(&leagues).Error; err != nil {
		log.Printf("Failed to load leagues for reminders: %v", err)
		return
	}

	for _, event := range events {
		s.mu.Lock()
		_, sent := s.reminded[event.ID]
		s.mu.Unlock()

		if sent {
			continue
		}

		delivered := 0
		for _, league := range leagues {
			if err := services.SendEventReminder(league, event); err != nil {
				log.Printf("Failed to send reminder for event %s to league %s: %v", event.ID, league.ID, err)
				continue
			}
			delivered++
		}

		// A fully failed pass leaves the event unmarked so the next tick
		// retries it.
		if delivered == 0 {
			continue
		}

		s.mu.Lock()
		s.reminded[event.ID] = event.Date
		s.mu.Unlock()

		log.Printf("Sent reminders for event %s (%s) to %d of %d leagues", event.ID, event.Name, delivered, len(leagues))
	}
}
