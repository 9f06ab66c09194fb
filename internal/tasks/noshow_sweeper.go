package tasks

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/bookflow-labs/bookflow-server/internal/domain/schedule"
	"github.com/bookflow-labs/bookflow-server/internal/logger"
	"github.com/bookflow-labs/bookflow-server/internal/models"
)

// NoShowSweeper marks confirmed appointments whose end time passed more
// than the grace period ago as no_show, so stale rows stop blocking
// availability.
type NoShowSweeper struct {
	db    *gorm.DB
	grace time.Duration
	cron  *cron.Cron
}

func NewNoShowSweeper(db *gorm.DB, graceHours int) *NoShowSweeper {
	return &NoShowSweeper{
		db:    db,
		grace: time.Duration(graceHours) * time.Hour,
	}
}

func (s *NoShowSweeper) Start(spec string) error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(spec, s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	logger.Get().Info("no-show sweeper started", zap.String("spec", spec))
	return nil
}

func (s *NoShowSweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *NoShowSweeper) Sweep() {
	cutoff := time.Now().Add(-s.grace)

	res := s.db.
		Model(&models.Appointment{}).
		Where("status = ? AND end_time < ?", string(domain.StatusConfirmed), cutoff).
		Update("status", string(domain.StatusNoShow))

	if res.Error != nil {
		logger.Get().Error("no-show sweep failed", zap.Error(res.Error))
		return
	}
	if res.RowsAffected > 0 {
		logger.Get().Info("no-show sweep",
			zap.Int64("appointments_marked", res.RowsAffected))
	}
}
