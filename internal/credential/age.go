package credential

import (
	"fmt"
	"time"
)

// ParseDateOfBirth accepts a calendar date (2006-01-02) or a full RFC 3339 timestamp.
func ParseDateOfBirth(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date of birth %q", value)
}

// CalculateAge returns whole years between dob and now.
func CalculateAge(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
