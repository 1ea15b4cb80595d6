package share

import (
	"context"
	"shiftplan/internal/models"
	"shiftplan/internal/providers"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

const DefaultPollInterval = 30 * time.Second

// Loader reads the stored snapshot of a month.
type Loader interface {
	Load(ctx context.Context, monthIndex, year int) (*models.Snapshot, bool, error)
}

// Viewer keeps the snapshot a read-only link currently displays.
type Viewer struct {
	link     Link
	loader   Loader
	interval time.Duration
	logger   providers.Logger

	mu        sync.Mutex
	displayed *models.Snapshot
}

func NewViewer(link Link, loader Loader, interval time.Duration, logger providers.Logger) *Viewer {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Viewer{link: link, loader: loader, interval: interval, logger: logger}
}

func (v *Viewer) Link() Link {
	return v.link
}

// Displayed returns the snapshot on screen, or nil before the first refresh.
func (v *Viewer) Displayed() *models.Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.displayed
}

// Refresh polls the loader once and updates the displayed snapshot.
func (v *Viewer) Refresh(ctx context.Context) Result {
	stored, found, err := v.loader.Load(ctx, v.link.MonthIndex, v.link.Year)
	if err != nil {
		v.logger.Warnf(providers.TypeApp, "View refresh of %s failed: %s", models.SnapshotKey(v.link.MonthIndex, v.link.Year), err)
		return Result{Outcome: OutcomeFailed}
	}

	res := Reconcile(v.link, stored, found)

	v.mu.Lock()
	defer v.mu.Unlock()
	switch res.Outcome {
	case OutcomeRender:
		v.displayed = res.Snapshot
	case OutcomeEmpty:
		if v.displayed == nil {
			v.displayed = res.Snapshot
		}
	case OutcomeStale:
		v.logger.Debugf(providers.TypeApp, "Link hash %s no longer matches stored %s", v.link.Hash, stored.DataHash)
	}
	return res
}

// Watch refreshes immediately and then every poll interval until ctx is
// done. onUpdate receives every result, never concurrently.
func (v *Viewer) Watch(ctx context.Context, onUpdate func(Result)) {
	var cbMu sync.Mutex
	tick := func() {
		res := v.Refresh(ctx)
		cbMu.Lock()
		defer cbMu.Unlock()
		if onUpdate != nil {
			onUpdate(res)
		}
	}

	tick()

	cron := gron.New()
	cron.AddFunc(gron.Every(v.interval), func() {
		if ctx.Err() != nil {
			return
		}
		tick()
	})
	cron.Start()
	defer cron.Stop()

	<-ctx.Done()
}
