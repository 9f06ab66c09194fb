package schedule

import (
	"testing"
	"time"
)

func TestLabel_Format(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 1, 26, 0, 0, 0, 0, loc)

	cases := []struct {
		at   time.Time
		want string
	}{
		{day.Add(9 * time.Hour), "9:00 AM"},
		{day.Add(10*time.Hour + 30*time.Minute), "10:30 AM"},
		{day.Add(12 * time.Hour), "12:00 PM"},
		{day.Add(16*time.Hour + 30*time.Minute), "4:30 PM"},
	}

	for _, c := range cases {
		if got := Label(c.at); got != c.want {
			t.Fatalf("Label(%s) = %q, want %q", c.at, got, c.want)
		}
	}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 1, 26, 0, 0, 0, 0, loc)

	nine := day.Add(9 * time.Hour)
	nineThirty := nine.Add(30 * time.Minute)
	ten := nine.Add(time.Hour)

	if !Overlaps(nine, ten, nineThirty, ten) {
		t.Fatalf("expected overlap for nested intervals")
	}

	// back-to-back appointments do not conflict
	if Overlaps(nine, nineThirty, nineThirty, ten) {
		t.Fatalf("adjacent intervals must not overlap")
	}
	if Overlaps(nineThirty, ten, nine, nineThirty) {
		t.Fatalf("adjacent intervals must not overlap (reversed)")
	}
}

func TestOverlapsAny(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 1, 26, 0, 0, 0, 0, loc)

	busy := []Interval{
		{Start: day.Add(10 * time.Hour), End: day.Add(10*time.Hour + 30*time.Minute)},
	}

	if !OverlapsAny(day.Add(10*time.Hour), day.Add(10*time.Hour+30*time.Minute), busy) {
		t.Fatalf("expected exact interval to overlap")
	}
	if OverlapsAny(day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour), busy) {
		t.Fatalf("slot starting at busy end must be free")
	}
	if OverlapsAny(day.Add(9*time.Hour), day.Add(9*time.Hour+30*time.Minute), nil) {
		t.Fatalf("no busy intervals means no overlap")
	}
}

func TestParseHM(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	day := time.Date(2026, 1, 26, 0, 0, 0, 0, loc)

	got := ParseHM(day, "09:30")
	want := time.Date(2026, 1, 26, 9, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("ParseHM = %s, want %s", got, want)
	}
	if got.Location() != loc {
		t.Fatalf("ParseHM must preserve the day's location")
	}
}

func TestSlotByLabel(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 1, 26, 0, 0, 0, 0, loc)

	result := AvailabilityResult{
		Slots: []Slot{
			{Label: "9:00 AM", Start: day.Add(9 * time.Hour), StaffIDs: []uint{1}},
			{Label: "9:30 AM", Start: day.Add(9*time.Hour + 30*time.Minute), StaffIDs: []uint{1, 2}},
		},
	}

	slot := result.SlotByLabel("9:30 AM")
	if slot == nil {
		t.Fatalf("expected slot for 9:30 AM")
	}
	if len(slot.StaffIDs) != 2 {
		t.Fatalf("expected 2 candidate staff, got %d", len(slot.StaffIDs))
	}
	if result.SlotByLabel("5:00 PM") != nil {
		t.Fatalf("expected nil for unknown label")
	}
}
