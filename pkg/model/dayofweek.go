package model

import "strings"

// DayOfWeek is the canonical upper-case day name used in backend-facing
// structures. Lower-case and three-letter forms appear only at the edges
// (form field names, upstream schedule records) and are converted here.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// DaysOfWeek is the canonical Monday-first ordering.
var DaysOfWeek = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayAbbreviations = map[string]DayOfWeek{
	"Mon": Monday, "Tue": Tuesday, "Wed": Wednesday, "Thu": Thursday,
	"Fri": Friday, "Sat": Saturday, "Sun": Sunday,
}

// ParseDayOfWeek accepts the canonical form, the lower-case form field
// name and the three-letter abbreviation used by upstream schedule slots.
func ParseDayOfWeek(s string) (DayOfWeek, bool) {
	if day, ok := dayAbbreviations[s]; ok {
		return day, true
	}
	upper := DayOfWeek(strings.ToUpper(strings.TrimSpace(s)))
	for _, day := range DaysOfWeek {
		if day == upper {
			return day, true
		}
	}
	return "", false
}

// FormName is the lower-case spelling used in UI form field names.
func (d DayOfWeek) FormName() string {
	return strings.ToLower(string(d))
}

// Title renders "Monday" style casing for display rows.
func (d DayOfWeek) Title() string {
	if len(d) < 2 {
		return string(d)
	}
	return string(d[0]) + strings.ToLower(string(d[1:]))
}

// IsoIndex returns the Monday-first weekday index, Monday=0 .. Sunday=6.
func (d DayOfWeek) IsoIndex() int {
	for i, day := range DaysOfWeek {
		if day == d {
			return i
		}
	}
	return -1
}

// TimeSlot is one of the three daily session bands. The ordering
// AM < PM < ED matters: an earlier band must start before a later one.
type TimeSlot string

const (
	TimeSlotAm TimeSlot = "AM"
	TimeSlotPm TimeSlot = "PM"
	TimeSlotEd TimeSlot = "ED"
)

// TimeSlots lists the bands in session order.
var TimeSlots = []TimeSlot{TimeSlotAm, TimeSlotPm, TimeSlotEd}

func ParseTimeSlot(s string) (TimeSlot, bool) {
	switch TimeSlot(strings.ToUpper(strings.TrimSpace(s))) {
	case TimeSlotAm:
		return TimeSlotAm, true
	case TimeSlotPm:
		return TimeSlotPm, true
	case TimeSlotEd:
		return TimeSlotEd, true
	}
	return "", false
}

// Order returns the band's position in the daily session order, AM=0.
func (t TimeSlot) Order() int {
	for i, slot := range TimeSlots {
		if slot == t {
			return i
		}
	}
	return -1
}
