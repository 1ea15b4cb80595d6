package storage

import (
	"context"
	"fmt"
	"shiftplan/internal/providers"
	"shiftplan/internal/structures"
)

const probeValue = "test-value"

// Report is the outcome of one migration run.
type Report struct {
	Success      bool     `json:"success"`
	Verified     bool     `json:"verified"`
	MigratedKeys []string `json:"migratedKeys"`
	TotalKeys    int      `json:"totalKeys"`
	Errors       []string `json:"errors"`
}

// Migrator copies matching legacy keys into the primary store through the
// wrapper, after checking that the primary store round-trips a probe value.
type Migrator struct {
	wrapper  *Wrapper
	legacy   LegacyBackend
	match    func(key string) bool
	probeKey string
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger
}

func NewMigrator(
	conf *structures.Config,
	wrapper *Wrapper,
	legacy LegacyBackend,
	match func(key string) bool,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) *Migrator {
	return &Migrator{
		wrapper:  wrapper,
		legacy:   legacy,
		match:    match,
		probeKey: conf.Migration.ProbeKey,
		metrics:  metrics,
		logger:   logger,
	}
}

// Verify writes the probe through the wrapper, reads it back from the
// primary store and removes it. Any failure demotes the wrapper.
func (m *Migrator) Verify(ctx context.Context) error {
	err := m.verify(ctx)
	if err != nil {
		m.wrapper.Demote(err)
	}
	return err
}

func (m *Migrator) verify(ctx context.Context) (err error) {
	if m.wrapper.Init(ctx) != ModePrimaryActive {
		return fmt.Errorf("%w: primary store is not active", ErrVerificationFailed)
	}
	defer func() {
		if rmErr := m.wrapper.RemoveItem(ctx, m.probeKey); rmErr != nil && err == nil {
			err = fmt.Errorf("%w: remove probe: %w", ErrVerificationFailed, rmErr)
		}
	}()

	if err := m.wrapper.SetItem(ctx, m.probeKey, probeValue); err != nil {
		return fmt.Errorf("%w: write probe: %w", ErrVerificationFailed, err)
	}
	if m.wrapper.Mode() != ModePrimaryActive {
		return fmt.Errorf("%w: primary store rejected the probe", ErrVerificationFailed)
	}

	got, found, err := m.wrapper.primary.Get(ctx, m.probeKey)
	if err != nil {
		return fmt.Errorf("%w: read probe: %w", ErrVerificationFailed, err)
	}
	if !found || got != probeValue {
		return fmt.Errorf("%w: probe read back %q", ErrVerificationFailed, got)
	}
	return nil
}

// Migrate rewrites every matching legacy key through the wrapper. A failing
// key is recorded and the batch continues. Running it again converges to the
// same primary contents.
func (m *Migrator) Migrate(ctx context.Context) Report {
	report := Report{Verified: m.wrapper.Mode() == ModePrimaryActive, MigratedKeys: []string{}, Errors: []string{}}

	keys, err := m.legacy.ListKeys(ctx)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("list legacy keys: %s", err))
		return report
	}

	for _, key := range keys {
		if !m.match(key) {
			continue
		}
		report.TotalKeys++

		value, found, err := m.legacy.Get(ctx, key)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", key, err))
			continue
		}
		if !found {
			continue
		}
		if err := m.wrapper.SetItem(ctx, key, value); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", key, err))
			continue
		}
		report.MigratedKeys = append(report.MigratedKeys, key)
	}

	report.Success = len(report.Errors) == 0
	m.metrics.AddMigratedKeys(len(report.MigratedKeys))
	return report
}

// Run verifies the primary store and, when it passes, migrates legacy data.
func (m *Migrator) Run(ctx context.Context) Report {
	if err := m.Verify(ctx); err != nil {
		m.logger.Warnf(providers.TypeStorage, "Migration skipped: %s", err)
		return Report{MigratedKeys: []string{}, Errors: []string{err.Error()}}
	}

	report := m.Migrate(ctx)
	if report.Success {
		m.logger.Infof(providers.TypeStorage, "Migration done: %d of %d keys", len(report.MigratedKeys), report.TotalKeys)
	} else {
		m.logger.Warnf(providers.TypeStorage, "Migration finished with %d errors: %d of %d keys migrated",
			len(report.Errors), len(report.MigratedKeys), report.TotalKeys)
	}
	return report
}
