package share

import "shiftplan/internal/models"

type Outcome int

const (
	// OutcomeRender: the stored snapshot matches the link.
	OutcomeRender Outcome = iota
	// OutcomeEmpty: nothing is stored for the month yet.
	OutcomeEmpty
	// OutcomeStale: the stored snapshot changed since the link was made.
	OutcomeStale
	// OutcomeFailed: the snapshot could not be loaded.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRender:
		return "render"
	case OutcomeEmpty:
		return "empty"
	case OutcomeStale:
		return "stale"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

type Result struct {
	Outcome  Outcome
	Snapshot *models.Snapshot
}

// Reconcile decides what a read-only viewer shows for link given the
// currently stored snapshot. A mismatching hash is not an error: the
// viewer keeps what it displays.
func Reconcile(link Link, stored *models.Snapshot, found bool) Result {
	if !found || stored == nil {
		return Result{Outcome: OutcomeEmpty, Snapshot: models.NewSnapshot()}
	}
	if stored.DataHash != link.Hash {
		return Result{Outcome: OutcomeStale}
	}
	return Result{Outcome: OutcomeRender, Snapshot: stored}
}
