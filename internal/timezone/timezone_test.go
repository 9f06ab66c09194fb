package timezone

import (
	"testing"
	"time"
)

func TestLocation_FallsBackToUTC(t *testing.T) {
	if Location("") != time.UTC {
		t.Fatalf("empty timezone must fall back to UTC")
	}
	if Location("Not/AZone") != time.UTC {
		t.Fatalf("invalid timezone must fall back to UTC")
	}
	if Location("America/New_York").String() != "America/New_York" {
		t.Fatalf("valid timezone should load")
	}
}

func TestIsValid(t *testing.T) {
	if IsValid("") {
		t.Fatalf("empty string is not a timezone")
	}
	if !IsValid("UTC") || !IsValid("Europe/Lisbon") {
		t.Fatalf("known timezones should validate")
	}
}
