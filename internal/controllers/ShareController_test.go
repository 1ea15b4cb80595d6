package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"shiftplan/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewRequest(sc *ShareController, shareURL string) *httptest.ResponseRecorder {
	u, _ := url.Parse(shareURL)
	rr := httptest.NewRecorder()
	sc.View(rr, httptest.NewRequest(http.MethodGet, "/view?"+u.RawQuery, nil))
	return rr
}

func TestShareView_StaleLinkAfterEdit(t *testing.T) {
	f := newAPIFixture(t)
	sc := NewShareController(testConfig(), &testutil.MockLogger{}, f.service)

	first := decodeBody(t, save(t, f.controller, "month=7&year=2025", adrianJSON))
	oldURL := first["shareUrl"].(string)

	rr := viewRequest(sc, oldURL)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody(t, rr)
	assert.Equal(t, true, resp["rendered"])
	assert.Equal(t, "render", resp["outcome"])
	assert.Equal(t, 30.0, resp["refreshSeconds"])

	edited := `{"employees":[{"id":"1","name":"Adrian","color":"bg-green-200"}],` +
		`"assignments":[{"date":"03.08","shift":"night","employeeId":"1"}]}`
	second := decodeBody(t, save(t, f.controller, "month=7&year=2025", edited))

	resp = decodeBody(t, viewRequest(sc, oldURL))
	assert.Equal(t, false, resp["rendered"])
	assert.Equal(t, "stale", resp["outcome"])
	assert.NotContains(t, resp, "snapshot")

	resp = decodeBody(t, viewRequest(sc, second["shareUrl"].(string)))
	assert.Equal(t, true, resp["rendered"])
}

func TestShareView_NothingStored(t *testing.T) {
	f := newAPIFixture(t)
	sc := NewShareController(testConfig(), &testutil.MockLogger{}, f.service)

	resp := decodeBody(t, viewRequest(sc, "http://h/view?view=readonly&month=1&year=2025&hash=abc"))
	assert.Equal(t, "empty", resp["outcome"])
	assert.Equal(t, false, resp["rendered"])
	assert.Contains(t, resp, "snapshot")
}

func TestShareView_BadLink(t *testing.T) {
	f := newAPIFixture(t)
	sc := NewShareController(testConfig(), &testutil.MockLogger{}, f.service)

	rr := viewRequest(sc, "http://h/view?month=1&year=2025&hash=abc")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
