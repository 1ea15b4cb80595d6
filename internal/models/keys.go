package models

import (
	"fmt"
	"strconv"
	"strings"
)

const snapshotKeyPrefix = "schedule-"

var domainKeyMarkers = []string{"employee", "vacation", "holiday", "note"}

// SnapshotKey is the storage key of a month snapshot; monthIndex is zero-based.
func SnapshotKey(monthIndex, year int) string {
	return fmt.Sprintf("%s%d-%d", snapshotKeyPrefix, monthIndex, year)
}

// RemoteKey is the key the remote schedule endpoint stores a month under.
func RemoteKey(month, year int) string {
	return fmt.Sprintf("schedule:%d:%d", month, year)
}

// ParseSnapshotKey is the inverse of SnapshotKey.
func ParseSnapshotKey(key string) (monthIndex, year int, ok bool) {
	rest, found := strings.CutPrefix(key, snapshotKeyPrefix)
	if !found {
		return 0, 0, false
	}
	m, y, found := strings.Cut(rest, "-")
	if !found {
		return 0, 0, false
	}
	monthIndex, err := strconv.Atoi(m)
	if err != nil || monthIndex < 0 || monthIndex > 11 {
		return 0, 0, false
	}
	year, err = strconv.Atoi(y)
	if err != nil || year <= 0 {
		return 0, 0, false
	}
	return monthIndex, year, true
}

// IsScheduleDomainKey reports whether a legacy key belongs to the scheduler
// and should be carried over by migration.
func IsScheduleDomainKey(key string) bool {
	if strings.Contains(key, snapshotKeyPrefix) {
		return true
	}
	for _, m := range domainKeyMarkers {
		if strings.Contains(key, m) {
			return true
		}
	}
	return false
}

// DateLabel renders the dd.mm label used for assignment and holiday dates.
func DateLabel(day, monthIndex int) string {
	return fmt.Sprintf("%02d.%02d", day, monthIndex+1)
}
