package model

// UnsetTime is the sentinel stored in a regime day before the prison has
// configured that band. It is never compared as a time; selection filters
// it out before any chronology check runs.
const UnsetTime = "-"

// RegimeDay holds a prison's default session windows for one day of the
// week. A full regime table is exactly seven records, one per day, and is
// replaced wholesale on every regime change.
type RegimeDay struct {
	ID         int       `json:"id,omitempty" validate:"omitempty,min=0"`
	PrisonCode string    `json:"prisonCode" validate:"required,min=2,max=6"`
	DayOfWeek  DayOfWeek `json:"dayOfWeek" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	AmStart    string    `json:"amStart" validate:"required,regime_time"`
	AmFinish   string    `json:"amFinish" validate:"required,regime_time"`
	PmStart    string    `json:"pmStart" validate:"required,regime_time"`
	PmFinish   string    `json:"pmFinish" validate:"required,regime_time"`
	EdStart    string    `json:"edStart" validate:"required,regime_time"`
	EdFinish   string    `json:"edFinish" validate:"required,regime_time"`
}

// BandTimes returns the start/finish pair for one band of the day.
func (r RegimeDay) BandTimes(slot TimeSlot) (start, finish string) {
	switch slot {
	case TimeSlotAm:
		return r.AmStart, r.AmFinish
	case TimeSlotPm:
		return r.PmStart, r.PmFinish
	case TimeSlotEd:
		return r.EdStart, r.EdFinish
	}
	return "", ""
}

// EmptyRegime is the create-mode table substituted when the upstream API
// has no regime for the prison yet: all seven days with every band unset.
func EmptyRegime(prisonCode string) []RegimeDay {
	table := make([]RegimeDay, 0, len(DaysOfWeek))
	for _, day := range DaysOfWeek {
		table = append(table, RegimeDay{
			PrisonCode: prisonCode,
			DayOfWeek:  day,
			AmStart:    UnsetTime, AmFinish: UnsetTime,
			PmStart: UnsetTime, PmFinish: UnsetTime,
			EdStart: UnsetTime, EdFinish: UnsetTime,
		})
	}
	return table
}

// SlotSelection is the raw day/band selection a wizard step submits: the
// chosen day names plus one optional band list per day. A day listed in
// Days with no bands is a validation failure unless the day is being
// cleared from the schedule.
type SlotSelection struct {
	Days      []string              `json:"days" validate:"omitempty,max=7,dive,required"`
	TimeSlots map[string][]TimeSlot `json:"timeSlots" validate:"omitempty,dive,max=3,dive,oneof=AM PM ED"`
}

// Empty reports whether nothing at all was selected.
func (s SlotSelection) Empty() bool {
	return len(s.Days) == 0 && len(s.TimeSlots) == 0
}

// BandsFor returns the bands chosen for a day, looking the day up by its
// lower-case form name as submitted.
func (s SlotSelection) BandsFor(day DayOfWeek) []TimeSlot {
	bands, _ := s.BandsEntry(day)
	return bands
}

// BandsEntry returns the submitted band list for a day and whether any
// entry was submitted at all. An entry that is present but empty is an
// explicit clear of the day's sessions.
func (s SlotSelection) BandsEntry(day DayOfWeek) ([]TimeSlot, bool) {
	if bands, ok := s.TimeSlots[day.FormName()]; ok {
		return bands, true
	}
	bands, ok := s.TimeSlots[string(day)]
	return bands, ok
}

// DaysAndSlotsInRegime is one selected day annotated with the regime
// defaults for only the bands that were asked for. Pointer fields so an
// unselected band is omitted from JSON rather than rendered empty.
type DaysAndSlotsInRegime struct {
	DayOfWeek DayOfWeek `json:"dayOfWeek"`
	AmStart   *string   `json:"amStart,omitempty"`
	AmFinish  *string   `json:"amFinish,omitempty"`
	PmStart   *string   `json:"pmStart,omitempty"`
	PmFinish  *string   `json:"pmFinish,omitempty"`
	EdStart   *string   `json:"edStart,omitempty"`
	EdFinish  *string   `json:"edFinish,omitempty"`
}

// Bands lists the bands present on the record, in AM, PM, ED order.
func (d DaysAndSlotsInRegime) Bands() []TimeSlot {
	var bands []TimeSlot
	if d.AmStart != nil || d.AmFinish != nil {
		bands = append(bands, TimeSlotAm)
	}
	if d.PmStart != nil || d.PmFinish != nil {
		bands = append(bands, TimeSlotPm)
	}
	if d.EdStart != nil || d.EdFinish != nil {
		bands = append(bands, TimeSlotEd)
	}
	return bands
}

// SessionSlot is the flat per-day-per-band record rendered by the session
// times pages. Start and Finish stay empty for a freshly added day whose
// custom times have not been chosen yet.
type SessionSlot struct {
	DayOfWeek DayOfWeek `json:"dayOfWeek"`
	TimeSlot  TimeSlot  `json:"timeSlot"`
	Start     string    `json:"start,omitempty"`
	Finish    string    `json:"finish,omitempty"`
}

// Key is the composite "DAY-BAND" string addressing this session's pair
// of time form fields.
func (s SessionSlot) Key() string {
	return SessionKey(s.DayOfWeek, s.TimeSlot)
}

// SessionKey builds the composite key for one day and band.
func SessionKey(day DayOfWeek, slot TimeSlot) string {
	return string(day) + "-" + string(slot)
}
