package model

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is an hour/minute pair submitted from a pair of form fields.
// Both fields are pointers because "field missing" and "field zero" are
// different answers: midnight is a valid selection, an empty field is not.
type TimeOfDay struct {
	Hour   *int `json:"hour"`
	Minute *int `json:"minute"`
}

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Hour: &hour, Minute: &minute}
}

// Validate reports each missing or out-of-range field separately so the
// caller can attach the message to the right form input.
func (t TimeOfDay) Validate() []string {
	var problems []string
	if t.Hour == nil {
		problems = append(problems, "Select an hour")
	} else if *t.Hour < 0 || *t.Hour > 23 {
		problems = append(problems, "Select an hour between 0 and 23")
	}
	if t.Minute == nil {
		problems = append(problems, "Select a minute")
	} else if *t.Minute < 0 || *t.Minute > 59 {
		problems = append(problems, "Select a minute between 0 and 59")
	}
	return problems
}

// IsoString renders the zero-padded "HH:MM" form used on the wire and in
// every comparison. Callers must not format times any other way.
func (t TimeOfDay) IsoString() string {
	hour, minute := 0, 0
	if t.Hour != nil {
		hour = *t.Hour
	}
	if t.Minute != nil {
		minute = *t.Minute
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseIsoTime parses a zero-padded "HH:MM" string back into its hour
// and minute fields. The unset marker and malformed input report false.
func ParseIsoTime(value string) (TimeOfDay, bool) {
	if len(value) != 5 || value[2] != ':' {
		return TimeOfDay{}, false
	}
	hour, err := strconv.Atoi(value[:2])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, false
	}
	minute, err := strconv.Atoi(value[3:])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, false
	}
	return NewTimeOfDay(hour, minute), true
}

// CompareTimes orders two zero-padded "HH:MM" strings. Lexicographic
// comparison of the padded form is equivalent to numeric comparison and is
// the single ordering used throughout the scheduling code.
func CompareTimes(a, b string) int {
	return strings.Compare(a, b)
}

// TimeAfter reports whether a is strictly later than b.
func TimeAfter(a, b string) bool {
	return CompareTimes(a, b) > 0
}
