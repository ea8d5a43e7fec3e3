package model

// DaySet is the canonical internal representation of "which days of the
// week". The wire format carries the same information twice (seven boolean
// flags plus an explicit day list); keeping a single set internally and
// deriving both forms in one place is what keeps them in sync.
type DaySet map[DayOfWeek]bool

func NewDaySet(days ...DayOfWeek) DaySet {
	set := make(DaySet, len(days))
	for _, day := range days {
		set[day] = true
	}
	return set
}

func (s DaySet) Contains(day DayOfWeek) bool {
	return s[day]
}

// Minus returns the set difference s \ other.
func (s DaySet) Minus(other DaySet) DaySet {
	result := make(DaySet)
	for day := range s {
		if s[day] && !other[day] {
			result[day] = true
		}
	}
	return result
}

// Days lists the members in canonical Monday-first order.
func (s DaySet) Days() []DayOfWeek {
	var days []DayOfWeek
	for _, day := range DaysOfWeek {
		if s[day] {
			days = append(days, day)
		}
	}
	return days
}

func (s DaySet) Empty() bool {
	for _, member := range s {
		if member {
			return false
		}
	}
	return true
}

// Slot is the backend wire record for one band of a schedule week. The
// seven flags and DaysOfWeek always describe the same set; both are
// derived from a DaySet by NewSlot and never edited independently.
type Slot struct {
	WeekNumber      int         `json:"weekNumber" validate:"required,min=1,max=2"`
	TimeSlot        TimeSlot    `json:"timeSlot" validate:"required,oneof=AM PM ED"`
	Monday          bool        `json:"monday"`
	Tuesday         bool        `json:"tuesday"`
	Wednesday       bool        `json:"wednesday"`
	Thursday        bool        `json:"thursday"`
	Friday          bool        `json:"friday"`
	Saturday        bool        `json:"saturday"`
	Sunday          bool        `json:"sunday"`
	DaysOfWeek      []DayOfWeek `json:"daysOfWeek"`
	CustomStartTime string      `json:"customStartTime,omitempty"`
	CustomEndTime   string      `json:"customEndTime,omitempty"`
}

// NewSlot derives both wire forms of the day selection from the one
// canonical set. All slot construction funnels through here.
func NewSlot(weekNumber int, slot TimeSlot, days DaySet) Slot {
	return Slot{
		WeekNumber: weekNumber,
		TimeSlot:   slot,
		Monday:     days[Monday],
		Tuesday:    days[Tuesday],
		Wednesday:  days[Wednesday],
		Thursday:   days[Thursday],
		Friday:     days[Friday],
		Saturday:   days[Saturday],
		Sunday:     days[Sunday],
		DaysOfWeek: days.Days(),
	}
}

// DaySet rebuilds the canonical set from the flag fields. The flags are
// authoritative when reading a slot off the wire.
func (s Slot) DaySet() DaySet {
	set := make(DaySet)
	if s.Monday {
		set[Monday] = true
	}
	if s.Tuesday {
		set[Tuesday] = true
	}
	if s.Wednesday {
		set[Wednesday] = true
	}
	if s.Thursday {
		set[Thursday] = true
	}
	if s.Friday {
		set[Friday] = true
	}
	if s.Saturday {
		set[Saturday] = true
	}
	if s.Sunday {
		set[Sunday] = true
	}
	return set
}

// ActivityScheduleSlot is the upstream schedule record: seven flags, a
// three-letter day list and concrete start/end times instead of a band.
type ActivityScheduleSlot struct {
	ID         int      `json:"id"`
	WeekNumber int      `json:"weekNumber"`
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
	Monday     bool     `json:"mondayFlag"`
	Tuesday    bool     `json:"tuesdayFlag"`
	Wednesday  bool     `json:"wednesdayFlag"`
	Thursday   bool     `json:"thursdayFlag"`
	Friday     bool     `json:"fridayFlag"`
	Saturday   bool     `json:"saturdayFlag"`
	Sunday     bool     `json:"sundayFlag"`
	DaysOfWeek []string `json:"daysOfWeek"`
}

// DaySet resolves the abbreviated day list to the canonical set. Unknown
// abbreviations are skipped rather than failing the whole record.
func (s ActivityScheduleSlot) DaySet() DaySet {
	set := make(DaySet)
	for _, abbrev := range s.DaysOfWeek {
		if day, ok := ParseDayOfWeek(abbrev); ok {
			set[day] = true
		}
	}
	return set
}

// ActivitySchedule is the slice of an upstream schedule this service
// reads: its slots plus the rotation they repeat on.
type ActivitySchedule struct {
	ID            int                    `json:"id"`
	Description   string                 `json:"description"`
	Slots         []ActivityScheduleSlot `json:"slots"`
	StartDate     string                 `json:"startDate"`
	ScheduleWeeks int                    `json:"scheduleWeeks"`
}
