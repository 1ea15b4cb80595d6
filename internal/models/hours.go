package models

import "time"

const (
	weekdayShiftHours = 9
	reducedShiftHours = 8
)

type EmployeeHours struct {
	EmployeeID string  `json:"employeeId"`
	Name       string  `json:"name"`
	Shifts     int     `json:"shifts"`
	Hours      float64 `json:"hours"`
}

// DaysInMonth returns the number of days of a zero-based month.
func DaysInMonth(monthIndex, year int) int {
	return time.Date(year, time.Month(monthIndex+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

func (s *Snapshot) IsHoliday(date string) bool {
	for _, h := range s.Holidays {
		if h.Date == date {
			return true
		}
	}
	return false
}

// ShiftHours is the length of a shift: a custom override wins, otherwise 8
// hours on Sundays and holidays and 9 on other days. A zero override counts
// as unset; Validate rejects negative ones.
func (s *Snapshot) ShiftHours(employeeID string, day, monthIndex, year int, shift ShiftKind) float64 {
	date := DateLabel(day, monthIndex)
	if e := s.Employee(employeeID); e != nil {
		if h := e.CustomHours[date+"-"+string(shift)]; h > 0 {
			return h
		}
	}
	weekday := time.Date(year, time.Month(monthIndex+1), day, 0, 0, 0, 0, time.UTC).Weekday()
	if weekday == time.Sunday || s.IsHoliday(date) {
		return reducedShiftHours
	}
	return weekdayShiftHours
}

// CalculateHours totals assigned hours per employee for one month, in the
// order employees appear in the snapshot.
func CalculateHours(s *Snapshot, monthIndex, year int) []EmployeeHours {
	totals := make([]EmployeeHours, len(s.Employees))
	index := make(map[string]int, len(s.Employees))
	for i, e := range s.Employees {
		totals[i] = EmployeeHours{EmployeeID: e.ID, Name: e.Name}
		index[e.ID] = i
	}

	days := DaysInMonth(monthIndex, year)
	for day := 1; day <= days; day++ {
		date := DateLabel(day, monthIndex)
		for _, shift := range []ShiftKind{ShiftEarly, ShiftNight} {
			e := s.AssignedEmployee(date, shift)
			if e == nil {
				continue
			}
			i := index[e.ID]
			totals[i].Shifts++
			totals[i].Hours += s.ShiftHours(e.ID, day, monthIndex, year, shift)
		}
	}
	return totals
}
