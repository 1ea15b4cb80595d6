package models

import "github.com/RoaringBitmap/roaring/v2"

type Coverage struct {
	DaysInMonth  int      `json:"daysInMonth"`
	MissingEarly []uint32 `json:"missingEarly"`
	MissingNight []uint32 `json:"missingNight"`
	FullyCovered uint64   `json:"fullyCovered"`
}

// CalculateCoverage lists the days of a month with no early or no night
// assignment. Days are 1-based.
func CalculateCoverage(s *Snapshot, monthIndex, year int) Coverage {
	days := DaysInMonth(monthIndex, year)
	early := roaring.New()
	night := roaring.New()

	for day := 1; day <= days; day++ {
		date := DateLabel(day, monthIndex)
		if s.AssignedEmployee(date, ShiftEarly) != nil {
			early.Add(uint32(day))
		}
		if s.AssignedEmployee(date, ShiftNight) != nil {
			night.Add(uint32(day))
		}
	}

	month := roaring.New()
	month.AddRange(1, uint64(days)+1)

	return Coverage{
		DaysInMonth:  days,
		MissingEarly: roaring.AndNot(month, early).ToArray(),
		MissingNight: roaring.AndNot(month, night).ToArray(),
		FullyCovered: roaring.And(early, night).GetCardinality(),
	}
}
