package share

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

const (
	viewParam    = "view"
	viewReadOnly = "readonly"
)

var ErrInvalidLink = errors.New("invalid share link")

// Link is a parsed read-only share URL. MonthIndex is zero-based.
type Link struct {
	Origin     string
	Path       string
	MonthIndex int
	Year       int
	Hash       string
}

// BuildURL appends the read-only view parameters to pagePath, replacing any
// query it already has.
func BuildURL(pagePath string, monthIndex, year int, hash string) (string, error) {
	u, err := url.Parse(pagePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	u.Fragment = ""
	u.RawQuery = fmt.Sprintf("%s=%s&month=%d&year=%d&hash=%s",
		viewParam, viewReadOnly, monthIndex, year, url.QueryEscape(hash))
	return u.String(), nil
}

// ParseLink is the inverse of BuildURL.
func ParseLink(raw string) (Link, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Link{}, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	return LinkFromQuery(u.Query(), u)
}

// LinkFromQuery reads the view parameters from q. u may be nil when only the
// query is known.
func LinkFromQuery(q url.Values, u *url.URL) (Link, error) {
	if q.Get(viewParam) != viewReadOnly {
		return Link{}, fmt.Errorf("%w: not a read-only view", ErrInvalidLink)
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil || month < 0 || month > 11 {
		return Link{}, fmt.Errorf("%w: bad month %q", ErrInvalidLink, q.Get("month"))
	}
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil || year <= 0 {
		return Link{}, fmt.Errorf("%w: bad year %q", ErrInvalidLink, q.Get("year"))
	}
	hash := q.Get("hash")
	if hash == "" {
		return Link{}, fmt.Errorf("%w: missing hash", ErrInvalidLink)
	}

	link := Link{MonthIndex: month, Year: year, Hash: hash}
	if u != nil {
		if u.Scheme != "" && u.Host != "" {
			link.Origin = u.Scheme + "://" + u.Host
		}
		link.Path = u.Path
	}
	return link, nil
}
