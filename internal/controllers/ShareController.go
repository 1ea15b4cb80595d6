package controllers

import (
	"net/http"
	"shiftplan/internal/models"
	"shiftplan/internal/providers"
	"shiftplan/internal/share"
	"shiftplan/internal/structures"
	"time"
)

// ShareController answers read-only share links.
type ShareController struct {
	logger   providers.Logger
	loader   share.Loader
	interval time.Duration
}

func NewShareController(conf *structures.Config, logger providers.Logger, loader share.Loader) *ShareController {
	interval := conf.Share.PollInterval
	if interval <= 0 {
		interval = share.DefaultPollInterval
	}
	return &ShareController{logger: logger, loader: loader, interval: interval}
}

type viewResponse struct {
	Success        bool             `json:"success"`
	Outcome        string           `json:"outcome"`
	Rendered       bool             `json:"rendered"`
	Snapshot       *models.Snapshot `json:"snapshot,omitempty"`
	RefreshSeconds int              `json:"refreshSeconds"`
}

// View returns the snapshot only while it still matches the link hash. A
// stale link is answered with rendered=false, not with an error.
func (sc *ShareController) View(w http.ResponseWriter, r *http.Request) {
	link, err := share.LinkFromQuery(r.URL.Query(), nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, found, err := sc.loader.Load(r.Context(), link.MonthIndex, link.Year)
	if err != nil {
		sc.logger.Errorf(providers.TypeGet, "View of %s failed: %s", models.SnapshotKey(link.MonthIndex, link.Year), err)
		writeError(w, http.StatusInternalServerError, "Failed to load schedule")
		return
	}

	res := share.Reconcile(link, stored, found)
	writeJSON(w, http.StatusOK, viewResponse{
		Success:        true,
		Outcome:        res.Outcome.String(),
		Rendered:       res.Outcome == share.OutcomeRender,
		Snapshot:       res.Snapshot,
		RefreshSeconds: int(sc.interval.Seconds()),
	})
}
