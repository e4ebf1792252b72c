package timeutil

import "testing"

func TestCompactDate(t *testing.T) {
	if got := CompactDate("2024-06-01"); got != "20240601" {
		t.Errorf("CompactDate = %q", got)
	}
}

func TestValidDate(t *testing.T) {
	cases := map[string]bool{
		"2024-06-01": true,
		"2024-6-1":   false,
		"06/01/2024": false,
		"":           false,
		"2024-13-01": false,
	}
	for in, want := range cases {
		if got := ValidDate(in); got != want {
			t.Errorf("ValidDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidMonth(t *testing.T) {
	if !ValidMonth("2024-06") {
		t.Error("2024-06 should be valid")
	}
	if ValidMonth("2024-6") || ValidMonth("202406") {
		t.Error("loose month formats should be invalid")
	}
}

func TestInMonth(t *testing.T) {
	if !InMonth("2024-06-15", "2024-06") {
		t.Error("date in month not detected")
	}
	if InMonth("2024-07-01", "2024-06") {
		t.Error("date outside month matched")
	}
}
