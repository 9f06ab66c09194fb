package schedule

import "time"

// SlotStepMinutes is the fixed grid the availability engine generates
// candidate start times on.
const SlotStepMinutes = 30

// SlotLabelLayout renders slot start times the way they are quoted to
// callers, e.g. "9:00 AM", "4:30 PM".
const SlotLabelLayout = "3:04 PM"

// Slot is a candidate appointment start time together with every staff
// member able to take it, in stable schedule order.
type Slot struct {
	Label    string    `json:"label"`
	Start    time.Time `json:"start"`
	StaffIDs []uint    `json:"staff_ids"`
}

// Interval is a half-open busy range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OverlapsAny reports whether [start, end) intersects any busy interval.
func OverlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

// ParseHM anchors an "HH:MM" wall-clock string onto the given day.
func ParseHM(day time.Time, hm string) time.Time {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return day
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	)
}

// Label renders a slot start time for callers.
func Label(t time.Time) string {
	return t.Format(SlotLabelLayout)
}
