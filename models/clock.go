package models

import "fmt"

// MinutesPerDay bounds every clock value; slots never cross midnight.
const MinutesPerDay = 24 * 60

// ParseClock converts a strict "HH:MM" string into minutes from midnight.
// Only the fixed five-character, zero-padded form is accepted, so stored
// values compare lexicographically the same as numerically.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 {
		return 0, fmt.Errorf("invalid time %q: hour out of range", s)
	}
	if minute > 59 {
		return 0, fmt.Errorf("invalid time %q: minute out of range", s)
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes from midnight as zero-padded "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
