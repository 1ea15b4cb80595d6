package services

import (
	"context"
	"errors"
	"fmt"
	"shiftplan/internal/models"
	"shiftplan/internal/providers"
	"shiftplan/internal/share"
	"shiftplan/internal/storage"
	"shiftplan/internal/structures"
	"time"
)

const defaultViewPath = "/view"

var ErrInvalidPeriod = errors.New("invalid month or year")

// SnapshotStore is the part of the storage wrapper the service relies on.
type SnapshotStore interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Info(ctx context.Context) (storage.Info, error)
	Export(ctx context.Context) (storage.Export, error)
}

type SaveResult struct {
	Key       string `json:"key"`
	Hash      string `json:"hash"`
	LastSaved int64  `json:"lastSaved"`
	ShareURL  string `json:"shareUrl"`
}

type ScheduleServiceInterface interface {
	Save(ctx context.Context, monthIndex, year int, s *models.Snapshot) (SaveResult, error)
	Load(ctx context.Context, monthIndex, year int) (*models.Snapshot, bool, error)
	Delete(ctx context.Context, monthIndex, year int) error
	Hours(ctx context.Context, monthIndex, year int) ([]models.EmployeeHours, error)
	Coverage(ctx context.Context, monthIndex, year int) (models.Coverage, error)
	Info(ctx context.Context) (storage.Info, error)
	Export(ctx context.Context) (storage.Export, error)
	Clear(ctx context.Context) error
}

type ScheduleService struct {
	store    SnapshotStore
	logger   providers.Logger
	viewPath string
	now      func() time.Time
}

func NewScheduleService(conf *structures.Config, store SnapshotStore, logger providers.Logger) ScheduleServiceInterface {
	viewPath := conf.Share.BaseURL
	if viewPath == "" {
		viewPath = defaultViewPath
	}
	return &ScheduleService{store: store, logger: logger, viewPath: viewPath, now: time.Now}
}

func checkPeriod(monthIndex, year int) error {
	if monthIndex < 0 || monthIndex > 11 || year <= 0 {
		return fmt.Errorf("%w: month=%d year=%d", ErrInvalidPeriod, monthIndex, year)
	}
	return nil
}

// Save seals the snapshot and persists it. The returned share URL points at
// exactly this version.
func (ss *ScheduleService) Save(ctx context.Context, monthIndex, year int, s *models.Snapshot) (SaveResult, error) {
	if err := checkPeriod(monthIndex, year); err != nil {
		return SaveResult{}, err
	}
	if err := s.Validate(); err != nil {
		return SaveResult{}, err
	}

	key := models.SnapshotKey(monthIndex, year)
	hash := s.Seal(ss.now())
	data, err := s.Marshal()
	if err != nil {
		return SaveResult{}, err
	}
	if err := ss.store.SetItem(ctx, key, string(data)); err != nil {
		return SaveResult{}, err
	}

	shareURL, err := share.BuildURL(ss.viewPath, monthIndex, year, hash)
	if err != nil {
		ss.logger.Warnf(providers.TypeApp, "Cannot build share URL for %s: %s", key, err)
	}
	return SaveResult{Key: key, Hash: hash, LastSaved: s.LastSaved, ShareURL: shareURL}, nil
}

// Load returns the stored snapshot. A missing or unreadable value yields an
// empty snapshot and found == false.
func (ss *ScheduleService) Load(ctx context.Context, monthIndex, year int) (*models.Snapshot, bool, error) {
	if err := checkPeriod(monthIndex, year); err != nil {
		return nil, false, err
	}
	key := models.SnapshotKey(monthIndex, year)
	raw, found, err := ss.store.GetItem(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return models.NewSnapshot(), false, nil
	}

	s, err := models.ParseSnapshot([]byte(raw))
	if err != nil {
		ss.logger.Warnf(providers.TypeStorage, "Ignoring unreadable snapshot %s: %s", key, err)
		return models.NewSnapshot(), false, nil
	}
	return s, true, nil
}

func (ss *ScheduleService) Delete(ctx context.Context, monthIndex, year int) error {
	if err := checkPeriod(monthIndex, year); err != nil {
		return err
	}
	return ss.store.RemoveItem(ctx, models.SnapshotKey(monthIndex, year))
}

func (ss *ScheduleService) Hours(ctx context.Context, monthIndex, year int) ([]models.EmployeeHours, error) {
	s, _, err := ss.Load(ctx, monthIndex, year)
	if err != nil {
		return nil, err
	}
	return models.CalculateHours(s, monthIndex, year), nil
}

func (ss *ScheduleService) Coverage(ctx context.Context, monthIndex, year int) (models.Coverage, error) {
	s, _, err := ss.Load(ctx, monthIndex, year)
	if err != nil {
		return models.Coverage{}, err
	}
	return models.CalculateCoverage(s, monthIndex, year), nil
}

func (ss *ScheduleService) Info(ctx context.Context) (storage.Info, error) {
	return ss.store.Info(ctx)
}

func (ss *ScheduleService) Export(ctx context.Context) (storage.Export, error) {
	return ss.store.Export(ctx)
}

func (ss *ScheduleService) Clear(ctx context.Context) error {
	return ss.store.Clear(ctx)
}
