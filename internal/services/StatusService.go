package services

import (
	"fmt"
	"shiftplan/internal/storage"
	"sync"
	"time"
)

// ModeSource reports the current storage backend selection.
type ModeSource interface {
	Mode() storage.Mode
}

type StatusServiceInterface interface {
	SetMigrationReport(report storage.Report)
	MigrationReport() (storage.Report, bool)
	Mode() storage.Mode
	Notice() string
	Uptime() time.Duration
}

// StatusService tracks the process-level conditions shown to users as
// non-blocking notices.
type StatusService struct {
	modes     ModeSource
	startTime time.Time

	mu        sync.RWMutex
	report    storage.Report
	hasReport bool
}

func NewStatusService(modes ModeSource) StatusServiceInterface {
	return &StatusService{modes: modes, startTime: time.Now()}
}

func (s *StatusService) SetMigrationReport(report storage.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = report
	s.hasReport = true
}

func (s *StatusService) MigrationReport() (storage.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report, s.hasReport
}

func (s *StatusService) Mode() storage.Mode {
	return s.modes.Mode()
}

func (s *StatusService) Uptime() time.Duration {
	return time.Since(s.startTime)
}

// Notice is empty while everything works as intended.
func (s *StatusService) Notice() string {
	if s.Mode() == storage.ModeFallbackActive {
		return "Structured storage is unavailable, data is kept in the legacy store only"
	}
	report, ok := s.MigrationReport()
	if ok && report.Verified && !report.Success {
		return fmt.Sprintf("Data migration finished with %d errors, %d of %d keys migrated",
			len(report.Errors), len(report.MigratedKeys), report.TotalKeys)
	}
	return ""
}
