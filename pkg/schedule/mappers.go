package schedule

import (
	"sort"

	"actman/pkg/model"
)

// DaySlots is one rendered row: a day and the bands scheduled on it.
type DaySlots struct {
	Day   model.DayOfWeek  `json:"day"`
	Slots []model.TimeSlot `json:"slots"`
}

// DailyView renders the dense per-week table: every week from 1 to
// scheduleWeeks and all seven days in each, a day with nothing selected
// getting an empty band list. Bands within a day sort AM, PM, ED.
func DailyView(slots map[int][]model.Slot, scheduleWeeks int) map[int][]DaySlots {
	view := make(map[int][]DaySlots, scheduleWeeks)
	for week := 1; week <= scheduleWeeks; week++ {
		bandsByDay := make(map[model.DayOfWeek][]model.TimeSlot)
		for _, slot := range slots[week] {
			for day := range slot.DaySet() {
				bandsByDay[day] = append(bandsByDay[day], slot.TimeSlot)
			}
		}

		rows := make([]DaySlots, 0, len(model.DaysOfWeek))
		for _, day := range model.DaysOfWeek {
			bands := bandsByDay[day]
			sort.Slice(bands, func(i, j int) bool { return bands[i].Order() < bands[j].Order() })
			rows = append(rows, DaySlots{Day: day, Slots: bands})
		}
		view[week] = rows
	}
	return view
}

// WeeklyView groups backend slots by week and lists only the days that
// have at least one band. Bands stay in the order the slots were given,
// deliberately not re-sorted: this sparse view and the dense DailyView
// serve different pages and their contracts differ.
func WeeklyView(slots []model.Slot) map[int][]DaySlots {
	view := make(map[int][]DaySlots)
	for week, bandsByDay := range bandsByWeekAndDay(slots) {
		var rows []DaySlots
		for _, day := range model.DaysOfWeek {
			if bands := bandsByDay[day]; len(bands) > 0 {
				rows = append(rows, DaySlots{Day: day, Slots: bands})
			}
		}
		view[week] = rows
	}
	return view
}

// CompleteWeeklyView is the weekly grouping with one addition: a day that
// appears in any week of the rotation renders in every week, as an empty
// row where that week has no sessions. A day dropped from week 2 but kept
// in week 1 therefore stays visible across the whole rotation.
func CompleteWeeklyView(slots []model.Slot, scheduleWeeks int) map[int][]DaySlots {
	everywhere := make(model.DaySet)
	for _, slot := range slots {
		for day := range slot.DaySet() {
			everywhere[day] = true
		}
	}

	byWeek := bandsByWeekAndDay(slots)
	view := make(map[int][]DaySlots, scheduleWeeks)
	for week := 1; week <= scheduleWeeks; week++ {
		var rows []DaySlots
		for _, day := range model.DaysOfWeek {
			if !everywhere.Contains(day) {
				continue
			}
			rows = append(rows, DaySlots{Day: day, Slots: byWeek[week][day]})
		}
		view[week] = rows
	}
	return view
}

func bandsByWeekAndDay(slots []model.Slot) map[int]map[model.DayOfWeek][]model.TimeSlot {
	byWeek := make(map[int]map[model.DayOfWeek][]model.TimeSlot)
	for _, slot := range slots {
		if byWeek[slot.WeekNumber] == nil {
			byWeek[slot.WeekNumber] = make(map[model.DayOfWeek][]model.TimeSlot)
		}
		for day := range slot.DaySet() {
			byWeek[slot.WeekNumber][day] = append(byWeek[slot.WeekNumber][day], slot.TimeSlot)
		}
	}
	return byWeek
}

// JourneySlotsToCustomSlots converts one week's journey selection into
// the backend custom slot records: one slot per selected day and band,
// with only that day's flag set and placeholder custom times for the
// session-times step to fill in. Days emit Monday through Sunday, bands
// AM, PM, ED within each day.
func JourneySlotsToCustomSlots(sel model.SlotSelection, weekNumber int) []model.Slot {
	selected := make(model.DaySet)
	for _, name := range sel.Days {
		if day, ok := model.ParseDayOfWeek(name); ok {
			selected[day] = true
		}
	}

	var slots []model.Slot
	for _, day := range model.DaysOfWeek {
		if !selected.Contains(day) {
			continue
		}
		bands := append([]model.TimeSlot(nil), sel.BandsFor(day)...)
		sort.Slice(bands, func(i, j int) bool { return bands[i].Order() < bands[j].Order() })
		for _, band := range bands {
			slots = append(slots, model.NewSlot(weekNumber, band, model.NewDaySet(day)))
		}
	}
	return slots
}

// FromActivityScheduleSlot converts an upstream schedule record into the
// internal slot shape, deriving the band from the record's start time.
// The upstream flags are authoritative for the day set; the abbreviated
// day list is only consulted when every flag is clear.
func FromActivityScheduleSlot(upstream model.ActivityScheduleSlot, classifier Classifier) model.Slot {
	days := model.Slot{
		Monday:    upstream.Monday,
		Tuesday:   upstream.Tuesday,
		Wednesday: upstream.Wednesday,
		Thursday:  upstream.Thursday,
		Friday:    upstream.Friday,
		Saturday:  upstream.Saturday,
		Sunday:    upstream.Sunday,
	}.DaySet()
	if days.Empty() {
		days = upstream.DaySet()
	}

	slot := model.NewSlot(upstream.WeekNumber, classifier.Classify(upstream.StartTime), days)
	slot.CustomStartTime = upstream.StartTime
	slot.CustomEndTime = upstream.EndTime
	return slot
}

// FromActivityScheduleSlots converts a whole upstream slot list.
func FromActivityScheduleSlots(upstream []model.ActivityScheduleSlot, classifier Classifier) []model.Slot {
	slots := make([]model.Slot, 0, len(upstream))
	for _, record := range upstream {
		slots = append(slots, FromActivityScheduleSlot(record, classifier))
	}
	return slots
}
