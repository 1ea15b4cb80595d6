package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gookit/validate"
)

type ShiftKind string

const (
	ShiftEarly ShiftKind = "early"
	ShiftNight ShiftKind = "night"
)

func (k ShiftKind) Valid() bool {
	return k == ShiftEarly || k == ShiftNight
}

const (
	AudienceStaff      = "staff"
	AudienceManagement = "management"
)

var (
	ErrParseFailed     = errors.New("stored value is not a valid snapshot")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

type Employee struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
	// CustomHours overrides the default shift length, keyed "<date>-<shift>".
	CustomHours map[string]float64 `json:"customHours,omitempty"`
}

type Assignment struct {
	Date       string    `json:"date" validate:"required"`
	Shift      ShiftKind `json:"shift"`
	EmployeeID *string   `json:"employeeId"`
}

type Holiday struct {
	Date string `json:"date" validate:"required"`
	Name string `json:"name,omitempty"`
}

type Vacation struct {
	EmployeeID  string `json:"employeeId" validate:"required"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate" validate:"required"`
	Description string `json:"description,omitempty"`
}

type MonthInfo struct {
	Month    string `json:"month"`
	Year     int    `json:"year"`
	Info     string `json:"info"`
	Audience string `json:"type" validate:"required|in:staff,management"`
}

type DayNote struct {
	Date string `json:"date" validate:"required"`
	Note string `json:"note"`
}

// Snapshot is the persisted state of one calendar month.
type Snapshot struct {
	Employees   []Employee   `json:"employees"`
	Assignments []Assignment `json:"assignments"`
	Holidays    []Holiday    `json:"holidays"`
	Vacations   []Vacation   `json:"vacations"`
	MonthInfos  []MonthInfo  `json:"monthInfos"`
	DayNotes    []DayNote    `json:"dayNotes"`
	LastSaved   int64        `json:"lastSaved"`
	DataHash    string       `json:"dataHash"`
}

func NewSnapshot() *Snapshot {
	s := &Snapshot{}
	s.fillEmpty()
	return s
}

func (s *Snapshot) fillEmpty() {
	if s.Employees == nil {
		s.Employees = []Employee{}
	}
	if s.Assignments == nil {
		s.Assignments = []Assignment{}
	}
	if s.Holidays == nil {
		s.Holidays = []Holiday{}
	}
	if s.Vacations == nil {
		s.Vacations = []Vacation{}
	}
	if s.MonthInfos == nil {
		s.MonthInfos = []MonthInfo{}
	}
	if s.DayNotes == nil {
		s.DayNotes = []DayNote{}
	}
}

// Assign sets or clears (employeeID == "") the assignment for a slot.
func (s *Snapshot) Assign(date string, shift ShiftKind, employeeID string) {
	kept := s.Assignments[:0]
	for _, a := range s.Assignments {
		if a.Date == date && a.Shift == shift {
			continue
		}
		kept = append(kept, a)
	}
	s.Assignments = kept
	if employeeID != "" {
		id := employeeID
		s.Assignments = append(s.Assignments, Assignment{Date: date, Shift: shift, EmployeeID: &id})
	}
	s.Assignments = canonicalAssignments(s.Assignments)
}

// AssignedEmployee resolves the employee on a slot, or nil when unassigned.
func (s *Snapshot) AssignedEmployee(date string, shift ShiftKind) *Employee {
	for _, a := range s.Assignments {
		if a.Date != date || a.Shift != shift || a.EmployeeID == nil {
			continue
		}
		return s.Employee(*a.EmployeeID)
	}
	return nil
}

func (s *Snapshot) Employee(id string) *Employee {
	for i := range s.Employees {
		if s.Employees[i].ID == id {
			return &s.Employees[i]
		}
	}
	return nil
}

// Normalize brings the snapshot into its canonical persisted form.
func (s *Snapshot) Normalize() {
	s.fillEmpty()
	for i := range s.Employees {
		if strings.TrimSpace(s.Employees[i].ID) == "" {
			s.Employees[i].ID = uuid.NewString()
		}
	}
	for i := range s.MonthInfos {
		s.MonthInfos[i].Audience = canonicalAudience(s.MonthInfos[i].Audience)
	}
	s.Assignments = canonicalAssignments(s.Assignments)
}

// Seal normalizes the snapshot and stamps it with its save time and hash.
func (s *Snapshot) Seal(now time.Time) string {
	s.Normalize()
	s.LastSaved = now.UnixMilli()
	s.DataHash = ContentHash(s)
	return s.DataHash
}

func (s *Snapshot) Validate() error {
	s.fillEmpty()
	for _, e := range s.Employees {
		if err := validateItem(&e); err != nil {
			return fmt.Errorf("%w: employee %q: %v", ErrInvalidSnapshot, e.ID, err)
		}
		for slot, h := range e.CustomHours {
			if h < 0 {
				return fmt.Errorf("%w: employee %q: negative hours for %s", ErrInvalidSnapshot, e.ID, slot)
			}
		}
	}
	for _, a := range s.Assignments {
		if !a.Shift.Valid() {
			return fmt.Errorf("%w: assignment %s: unknown shift %q", ErrInvalidSnapshot, a.Date, a.Shift)
		}
		if err := validateItem(&a); err != nil {
			return fmt.Errorf("%w: assignment %s/%s: %v", ErrInvalidSnapshot, a.Date, a.Shift, err)
		}
	}
	for _, h := range s.Holidays {
		if err := validateItem(&h); err != nil {
			return fmt.Errorf("%w: holiday: %v", ErrInvalidSnapshot, err)
		}
	}
	for _, v := range s.Vacations {
		if err := validateItem(&v); err != nil {
			return fmt.Errorf("%w: vacation: %v", ErrInvalidSnapshot, err)
		}
	}
	for _, m := range s.MonthInfos {
		m.Audience = canonicalAudience(m.Audience)
		if err := validateItem(&m); err != nil {
			return fmt.Errorf("%w: month info: %v", ErrInvalidSnapshot, err)
		}
	}
	for _, d := range s.DayNotes {
		if err := validateItem(&d); err != nil {
			return fmt.Errorf("%w: day note: %v", ErrInvalidSnapshot, err)
		}
	}
	return nil
}

func validateItem(item interface{}) error {
	v := validate.Struct(item)
	if !v.Validate() {
		return v.Errors
	}
	return nil
}

// ParseSnapshot decodes a stored value. Missing collections decode as empty.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	s.fillEmpty()
	return &s, nil
}

func (s *Snapshot) Marshal() ([]byte, error) {
	s.fillEmpty()
	return json.Marshal(s)
}

// canonicalAudience maps the older frontend/backend labels onto staff/management.
func canonicalAudience(a string) string {
	switch a {
	case "frontend":
		return AudienceStaff
	case "backend":
		return AudienceManagement
	}
	return a
}

// canonicalAssignments drops unassigned slots, keeps the last record per
// (date, shift) and orders the result by date then shift.
func canonicalAssignments(in []Assignment) []Assignment {
	type slot struct {
		date  string
		shift ShiftKind
	}
	last := make(map[slot]Assignment, len(in))
	for _, a := range in {
		k := slot{a.Date, a.Shift}
		if a.EmployeeID == nil || *a.EmployeeID == "" {
			delete(last, k)
			continue
		}
		last[k] = a
	}
	out := make([]Assignment, 0, len(last))
	for _, a := range last {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Shift < out[j].Shift
	})
	return out
}
