package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollingHash_KnownValues(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"a", "2p"},
		{"ab", "2e9"},
		{"hello world", "to5x38"},
		{"schedule-7-2025", "o3hmib"},
		{"Straße 🎉", "rz663b"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RollingHash(tt.in))
		})
	}
}

func TestRollingHash_MaxLength(t *testing.T) {
	for _, s := range []string{"x", "a much longer string that wraps the accumulator many times over"} {
		assert.LessOrEqual(t, len(RollingHash(s)), 16)
	}
}

func TestContentHash_Deterministic(t *testing.T) {
	a := fixtureSnapshot()
	b := fixtureSnapshot()
	assert.Equal(t, ContentHash(a), ContentHash(a))
	assert.Equal(t, ContentHash(a), ContentHash(b))
}

func TestContentHash_IgnoresTimestampAndStoredHash(t *testing.T) {
	a := fixtureSnapshot()
	b := fixtureSnapshot()
	b.LastSaved = 123456
	b.DataHash = "stale"
	assert.Equal(t, ContentHash(a), ContentHash(b))
}

func TestContentHash_IgnoresCustomHoursMapOrder(t *testing.T) {
	a := fixtureSnapshot()
	b := fixtureSnapshot()
	a.Employees[0].CustomHours = map[string]float64{"02.08-early": 6, "03.08-night": 7, "04.08-early": 5}
	b.Employees[0].CustomHours = map[string]float64{"04.08-early": 5, "02.08-early": 6, "03.08-night": 7}
	assert.Equal(t, ContentHash(a), ContentHash(b))
}

func TestContentHash_ChangeSensitivity(t *testing.T) {
	base := ContentHash(fixtureSnapshot())

	mutations := map[string]func(s *Snapshot){
		"assignment": func(s *Snapshot) { s.Assign("02.08", ShiftEarly, "2") },
		"unassign":   func(s *Snapshot) { s.Assign("02.08", ShiftNight, "") },
		"holiday":    func(s *Snapshot) { s.Holidays = append(s.Holidays, Holiday{Date: "16.08"}) },
		"vacation":   func(s *Snapshot) { s.Vacations[0].EndDate = "15.08" },
		"month info": func(s *Snapshot) { s.MonthInfos[0].Info = "Inventur verschoben" },
		"day note":   func(s *Snapshot) { s.DayNotes[0].Note = "Lieferung 10 Uhr" },
		"name":       func(s *Snapshot) { s.Employees[0].Name = "Adrian K." },
		"color":      func(s *Snapshot) { s.Employees[0].Color = "bg-red-200" },
		"hours":      func(s *Snapshot) { s.Employees[0].CustomHours = map[string]float64{"02.08-early": 6} },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			s := fixtureSnapshot()
			mutate(s)
			assert.NotEqual(t, base, ContentHash(s))
		})
	}
}
