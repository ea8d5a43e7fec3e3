package schedule

import (
	"sort"

	"actman/pkg/model"
)

// SessionSlotsFromRegime flattens resolved regime records into one
// SessionSlot per populated band, bands in AM, PM, ED order within each
// day, days in the order the records were given.
func SessionSlotsFromRegime(records []model.DaysAndSlotsInRegime) []model.SessionSlot {
	var slots []model.SessionSlot
	for _, record := range records {
		for _, band := range record.Bands() {
			slot := model.SessionSlot{DayOfWeek: record.DayOfWeek, TimeSlot: band}
			switch band {
			case model.TimeSlotAm:
				slot.Start, slot.Finish = deref(record.AmStart), deref(record.AmFinish)
			case model.TimeSlotPm:
				slot.Start, slot.Finish = deref(record.PmStart), deref(record.PmFinish)
			case model.TimeSlotEd:
				slot.Start, slot.Finish = deref(record.EdStart), deref(record.EdFinish)
			}
			slots = append(slots, slot)
		}
	}
	return slots
}

// MergeSessionSlots supports the "add a day to an existing schedule" edit
// flow: any day+band in the new selection that has no existing custom slot
// gets a placeholder with empty times, while already-configured sessions
// keep theirs. The combined list is sorted by day name, then band order.
func MergeSessionSlots(existing []model.SessionSlot, sel model.SlotSelection) []model.SessionSlot {
	merged := make([]model.SessionSlot, len(existing))
	copy(merged, existing)

	have := make(map[string]bool, len(existing))
	for _, slot := range existing {
		have[slot.Key()] = true
	}

	for _, name := range sel.Days {
		day, ok := model.ParseDayOfWeek(name)
		if !ok {
			continue
		}
		for _, band := range sel.BandsFor(day) {
			if have[model.SessionKey(day, band)] {
				continue
			}
			merged = append(merged, model.SessionSlot{DayOfWeek: day, TimeSlot: band})
			have[model.SessionKey(day, band)] = true
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].DayOfWeek != merged[j].DayOfWeek {
			return merged[i].DayOfWeek < merged[j].DayOfWeek
		}
		return merged[i].TimeSlot.Order() < merged[j].TimeSlot.Order()
	})
	return merged
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
