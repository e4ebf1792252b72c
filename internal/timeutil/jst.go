package timeutil

import (
	"strings"
	"time"
)

// JST is the Japan Standard Time location (UTC+9). All plant dates are JST.
var JST *time.Location

func init() {
	var err error
	JST, err = time.LoadLocation("Asia/Tokyo")
	if err != nil {
		// Fallback: create fixed zone if Asia/Tokyo not available
		JST = time.FixedZone("JST", 9*60*60)
	}
}

// Now returns the current time in JST
func Now() time.Time {
	return time.Now().In(JST)
}

// Common layouts
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Today returns today's date as yyyy-mm-dd in JST.
func Today() string {
	return Now().Format(DateLayout)
}

// ThisMonth returns the current month as yyyy-mm in JST.
func ThisMonth() string {
	return Now().Format(MonthLayout)
}

// CompactDate turns a yyyy-mm-dd date into yyyymmdd, the form used in photo
// file names. Non-date input is returned with the dashes stripped.
func CompactDate(dateISO string) string {
	return strings.ReplaceAll(dateISO, "-", "")
}

// InMonth reports whether a yyyy-mm-dd date falls in the yyyy-mm month.
func InMonth(dateISO, month string) bool {
	return strings.HasPrefix(dateISO, month)
}

// ValidDate reports whether value is a well-formed yyyy-mm-dd date.
func ValidDate(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// ValidMonth reports whether value is a well-formed yyyy-mm month.
func ValidMonth(value string) bool {
	_, err := time.Parse(MonthLayout, value)
	return err == nil
}
