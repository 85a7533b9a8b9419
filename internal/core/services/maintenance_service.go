package services

import (
	"context"
	"log"

	"technotes-api/internal/adapters/persistence/repositories"
	"technotes-api/internal/config"

	"github.com/robfig/cron/v3"
)

// MaintenanceService runs scheduled housekeeping: soft-deleted rows older
// than the retention window are purged for good once a day.
type MaintenanceService struct {
	userRepo repositories.UserRepository
	noteRepo repositories.NoteRepository
	cfg      *config.Config
	cron     *cron.Cron
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	userRepo repositories.UserRepository,
	noteRepo repositories.NoteRepository,
	cfg *config.Config,
) *MaintenanceService {
	return &MaintenanceService{
		userRepo: userRepo,
		noteRepo: noteRepo,
		cfg:      cfg,
		cron:     cron.New(),
	}
}

// Start schedules the purge job (03:00 daily) and launches the scheduler
func (s *MaintenanceService) Start() {
	if _, err := s.cron.AddFunc("0 3 * * *", s.PurgeExpired); err != nil {
		log.Printf("❌ Failed to schedule purge job: %v", err)
		return
	}

	s.cron.Start()
	log.Printf("🚀 MaintenanceService started (retention: %d days)", s.cfg.Cleanup.RetentionDays)
}

// Stop stops the scheduler, waiting for a running job to finish
func (s *MaintenanceService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 MaintenanceService stopped")
}

// PurgeExpired hard-deletes rows soft-deleted before the retention cutoff.
// Notes go first so their owners become purgeable; users still referenced
// by live notes are left alone.
func (s *MaintenanceService) PurgeExpired() {
	ctx := context.Background()
	days := s.cfg.Cleanup.RetentionDays

	notes, err := s.noteRepo.PurgeDeletedBefore(ctx, days)
	if err != nil {
		log.Printf("❌ Note purge failed: %v", err)
		return
	}

	users, err := s.userRepo.PurgeDeletedBefore(ctx, days)
	if err != nil {
		log.Printf("❌ User purge failed: %v", err)
		return
	}

	if notes > 0 || users > 0 {
		log.Printf("🧹 Purged %d notes, %d users (older than %d days)", notes, users, days)
	}
}
