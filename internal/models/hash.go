package models

import (
	"sort"
	"strconv"
	"unicode/utf16"

	json "github.com/goccy/go-json"
)

const maxHashLength = 16

// hashEmployee and hashView fix the field order of the hashed form. Custom
// hours are flattened into a sorted slice so no map ordering leaks in.
type hashEmployee struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Color       string       `json:"color"`
	CustomHours []hoursEntry `json:"customHours"`
}

type hoursEntry struct {
	Key   string  `json:"key"`
	Hours float64 `json:"hours"`
}

type hashView struct {
	Employees   []hashEmployee `json:"employees"`
	Assignments []Assignment   `json:"assignments"`
	Holidays    []Holiday      `json:"holidays"`
	Vacations   []Vacation     `json:"vacations"`
	MonthInfos  []MonthInfo    `json:"monthInfos"`
	DayNotes    []DayNote      `json:"dayNotes"`
}

// ContentHash fingerprints every field of s except LastSaved and DataHash.
// It detects change between saves of one month; it is not collision
// resistant and must not be used where an adversary controls the input.
func ContentHash(s *Snapshot) string {
	return RollingHash(CanonicalString(s))
}

// CanonicalString renders the hashed fields of s deterministically.
func CanonicalString(s *Snapshot) string {
	view := hashView{
		Employees:   make([]hashEmployee, 0, len(s.Employees)),
		Assignments: canonicalAssignments(s.Assignments),
		Holidays:    nonNil(s.Holidays),
		Vacations:   nonNil(s.Vacations),
		MonthInfos:  make([]MonthInfo, 0, len(s.MonthInfos)),
		DayNotes:    nonNil(s.DayNotes),
	}
	for _, e := range s.Employees {
		he := hashEmployee{ID: e.ID, Name: e.Name, Color: e.Color, CustomHours: make([]hoursEntry, 0, len(e.CustomHours))}
		for k, h := range e.CustomHours {
			he.CustomHours = append(he.CustomHours, hoursEntry{Key: k, Hours: h})
		}
		sort.Slice(he.CustomHours, func(i, j int) bool { return he.CustomHours[i].Key < he.CustomHours[j].Key })
		view.Employees = append(view.Employees, he)
	}
	for _, m := range s.MonthInfos {
		m.Audience = canonicalAudience(m.Audience)
		view.MonthInfos = append(view.MonthInfos, m)
	}

	data, err := json.Marshal(view)
	if err != nil {
		// every field is a plain string, number or slice of those
		panic(err)
	}
	return string(data)
}

// RollingHash folds str into a wrapping 32-bit accumulator (h = h*31 + c over
// UTF-16 code units), takes the absolute value and renders it in base 36,
// truncated to 16 characters.
func RollingHash(str string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(str)) {
		h = h*31 + int32(c)
	}
	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	out := strconv.FormatInt(abs, 36)
	if len(out) > maxHashLength {
		out = out[:maxHashLength]
	}
	return out
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
