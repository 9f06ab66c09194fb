package authz

import (
	"regexp"
	"strings"
	"testing"

	"github.com/bookflow-labs/bookflow-server/internal/models"
)

func TestGenerateCode_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^JOHN-DOE-\d{4}$`)

	for i := 0; i < 50; i++ {
		code := GenerateCode("John Doe")
		if !pattern.MatchString(code) {
			t.Fatalf("code %q does not match NAME-#### format", code)
		}
	}
}

func TestGenerateCode_CollapsesWhitespace(t *testing.T) {
	code := GenerateCode("  Mary   Jane  Watson ")
	if !strings.HasPrefix(code, "MARY-JANE-WATSON-") {
		t.Fatalf("code %q should collapse whitespace runs to single dashes", code)
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  john-doe-1234 "); got != "JOHN-DOE-1234" {
		t.Fatalf("NormalizeCode = %q", got)
	}
}

func TestFindCodeIn_CaseInsensitive(t *testing.T) {
	profiles := []models.BossProfile{
		{ID: 1, BossName: "John Doe", BossCode: "JOHN-DOE-1234", Active: true},
		{ID: 2, BossName: "Mary Watson", BossCode: "MARY-WATSON-9876", Active: true},
	}

	match := FindCodeIn("hi, my code is john-doe-1234, please add a staff member", profiles)
	if match == nil || match.ID != 1 {
		t.Fatalf("expected to match profile 1, got %v", match)
	}

	match = FindCodeIn("Mary-Watson-9876 here", profiles)
	if match == nil || match.BossName != "Mary Watson" {
		t.Fatalf("expected to match Mary, got %v", match)
	}
}

func TestFindCodeIn_IgnoresInactiveAndMisses(t *testing.T) {
	profiles := []models.BossProfile{
		{ID: 1, BossCode: "JOHN-DOE-1234", Active: false},
	}

	if FindCodeIn("john-doe-1234", profiles) != nil {
		t.Fatalf("inactive codes must not authorize")
	}
	if FindCodeIn("I would like a haircut tomorrow", profiles) != nil {
		t.Fatalf("plain text must not authorize")
	}
	if FindCodeIn("john-doe-1234", nil) != nil {
		t.Fatalf("no profiles means no match")
	}
}
