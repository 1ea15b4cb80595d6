package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"shiftplan/internal/models"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

const snapshotsPath = "/api/snapshots"

var ErrRemoteLoad = errors.New("snapshot fetch failed")

type snapshotResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Found    bool             `json:"found"`
	Snapshot *models.Snapshot `json:"snapshot"`
}

// HTTPLoader reads snapshots from a running shiftplan server.
type HTTPLoader struct {
	origin string
	client *http.Client
}

func NewHTTPLoader(origin string, timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{origin: origin, client: &http.Client{Timeout: timeout}}
}

func (l *HTTPLoader) Load(ctx context.Context, monthIndex, year int) (*models.Snapshot, bool, error) {
	q := url.Values{}
	q.Set("month", strconv.Itoa(monthIndex))
	q.Set("year", strconv.Itoa(year))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.origin+snapshotsPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrRemoteLoad, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrRemoteLoad, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrRemoteLoad, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("%w: status %d", ErrRemoteLoad, resp.StatusCode)
	}

	var out snapshotResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrRemoteLoad, err)
	}
	if !out.Success {
		return nil, false, fmt.Errorf("%w: %s", ErrRemoteLoad, out.Message)
	}
	if !out.Found || out.Snapshot == nil {
		return nil, false, nil
	}
	return out.Snapshot, true, nil
}
