package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"loopfreight/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs the periodic arrival sweep in the background. The read
// path promotes arrivals on demand; this keeps statuses current for cities
// nobody is polling.
type CronService struct {
	cron           *cron.Cron
	assignmentRepo repositories.AssignmentRepository
	intervalMins   int
}

// NewCronService creates a new cron service
func NewCronService(assignmentRepo repositories.AssignmentRepository, intervalMins int) *CronService {
	return &CronService{
		cron:           cron.New(),
		assignmentRepo: assignmentRepo,
		intervalMins:   intervalMins,
	}
}

// Start schedules the sweep and starts the scheduler
func (s *CronService) Start() error {
	schedule := fmt.Sprintf("@every %dm", s.intervalMins)
	if _, err := s.cron.AddFunc(schedule, s.sweepArrived); err != nil {
		return fmt.Errorf("failed to schedule arrival sweep: %w", err)
	}

	s.cron.Start()
	log.Printf("⏰ Arrival sweep scheduled every %d minutes", s.intervalMins)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("⏰ Arrival sweep stopped")
}

// sweepArrived promotes every ASSIGNED assignment whose expected arrival has
// passed to INCOMING, across all cities
func (s *CronService) sweepArrived() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	promoted, err := s.assignmentRepo.PromoteArrivedAll(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Arrival sweep failed: %v", err)
		return
	}

	if promoted > 0 {
		log.Printf("🚚 Arrival sweep promoted %d assignment(s) to INCOMING", promoted)
	}
}
