package internal

import (
	"bytes"
	"shiftplan/internal/models"
	"shiftplan/internal/share"
	"shiftplan/internal/structures"
	"shiftplan/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewViewerApp_RejectsBadLinks(t *testing.T) {
	logger := &testutil.MockLogger{}

	_, err := NewViewerApp(&structures.CliFlags{ViewURL: "http://h/view?month=1&year=2025"}, logger)
	assert.ErrorIs(t, err, share.ErrInvalidLink)

	_, err = NewViewerApp(&structures.CliFlags{ViewURL: "/view?view=readonly&month=1&year=2025&hash=x"}, logger)
	assert.ErrorIs(t, err, share.ErrInvalidLink)

	va, err := NewViewerApp(&structures.CliFlags{ViewURL: "http://h/view?view=readonly&month=1&year=2025&hash=x"}, logger)
	require.NoError(t, err)
	assert.Equal(t, "http://h", va.viewer.Link().Origin)
}

func TestViewerApp_Print(t *testing.T) {
	va, err := NewViewerApp(&structures.CliFlags{ViewURL: "http://h/view?view=readonly&month=7&year=2025&hash=x"}, &testutil.MockLogger{})
	require.NoError(t, err)
	var out bytes.Buffer
	va.out = &out

	id := "1"
	s := models.NewSnapshot()
	s.Employees = []models.Employee{{ID: id, Name: "Adrian"}}
	s.Assignments = []models.Assignment{{Date: "02.08", Shift: models.ShiftEarly, EmployeeID: &id}}
	s.Holidays = []models.Holiday{{Date: "15.08"}}
	s.Seal(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))

	va.print(share.Result{Outcome: share.OutcomeRender, Snapshot: s})
	text := out.String()
	assert.Contains(t, text, "Schedule 08/2025")
	assert.Contains(t, text, "02.08  early: Adrian")
	assert.Contains(t, text, "15.08")
	assert.Contains(t, text, "holiday")
	assert.Contains(t, text, "31.08")
	assert.Regexp(t, `Adrian\s+1 shifts\s+9\.0 h`, text)

	out.Reset()
	va.print(share.Result{Outcome: share.OutcomeStale})
	assert.Contains(t, out.String(), "edited after this link was shared")

	out.Reset()
	va.print(share.Result{Outcome: share.OutcomeEmpty})
	assert.Contains(t, out.String(), "No schedule saved for 08/2025")
}
