package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"shiftplan/internal/models"
	"shiftplan/internal/providers"
	"shiftplan/internal/share"
	"shiftplan/internal/structures"
	"syscall"
	"time"
)

const viewerRequestTimeout = 10 * time.Second

// ViewerApp follows a share link from the command line and prints the month
// every time the poll brings a matching version.
type ViewerApp struct {
	viewer *share.Viewer
	logger providers.Logger
	out    io.Writer
}

func NewViewerApp(flags *structures.CliFlags, logger providers.Logger) (*ViewerApp, error) {
	link, err := share.ParseLink(flags.ViewURL)
	if err != nil {
		return nil, err
	}
	if link.Origin == "" {
		return nil, fmt.Errorf("%w: share URL needs a scheme and host", share.ErrInvalidLink)
	}
	loader := share.NewHTTPLoader(link.Origin, viewerRequestTimeout)
	return &ViewerApp{
		viewer: share.NewViewer(link, loader, share.DefaultPollInterval, logger),
		logger: logger,
		out:    os.Stdout,
	}, nil
}

func (va *ViewerApp) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	link := va.viewer.Link()
	va.logger.Infof(providers.TypeApp, "Watching %s every %s", models.SnapshotKey(link.MonthIndex, link.Year), share.DefaultPollInterval)
	va.viewer.Watch(ctx, va.print)
	return nil
}

func (va *ViewerApp) print(res share.Result) {
	link := va.viewer.Link()
	switch res.Outcome {
	case share.OutcomeFailed:
		va.logger.Warnf(providers.TypeApp, "Refresh failed, keeping the last shown version")
	case share.OutcomeStale:
		fmt.Fprintln(va.out, "The schedule was edited after this link was shared. Ask for a new link.")
	case share.OutcomeEmpty:
		fmt.Fprintf(va.out, "No schedule saved for %02d/%d\n", link.MonthIndex+1, link.Year)
	case share.OutcomeRender:
		renderMonth(va.out, res.Snapshot, link.MonthIndex, link.Year)
	}
}

func renderMonth(w io.Writer, s *models.Snapshot, monthIndex, year int) {
	fmt.Fprintf(w, "Schedule %02d/%d (version %s)\n", monthIndex+1, year, s.DataHash)
	for day := 1; day <= models.DaysInMonth(monthIndex, year); day++ {
		date := models.DateLabel(day, monthIndex)
		line := fmt.Sprintf("%s  early: %-12s night: %-12s", date,
			employeeName(s.AssignedEmployee(date, models.ShiftEarly)),
			employeeName(s.AssignedEmployee(date, models.ShiftNight)))
		if s.IsHoliday(date) {
			line += "  holiday"
		}
		fmt.Fprintln(w, line)
	}
	for _, h := range models.CalculateHours(s, monthIndex, year) {
		fmt.Fprintf(w, "%-12s %2d shifts %5.1f h\n", h.Name, h.Shifts, h.Hours)
	}
}

func employeeName(e *models.Employee) string {
	if e == nil {
		return "-"
	}
	return e.Name
}
