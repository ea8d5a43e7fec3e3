package schedule

import "actman/pkg/model"

// SubtractSlots removes the day/band combinations in exclusions from the
// base slot set. An exclusion matches a base slot on week number and
// band; matched slots keep only the days the exclusion does not name, and
// a slot left with no days disappears from the result entirely. Slots
// with no matching exclusion pass through unchanged.
//
// The same subtraction serves both "what does this prisoner actually
// attend" and "which exclusions remain after the user removed some":
// either way it is the slots in the base set that the other set does not
// cover. It is idempotent, so re-applying the same exclusions is safe.
func SubtractSlots(base, exclusions []model.Slot) []model.Slot {
	var remaining []model.Slot
	for _, slot := range base {
		days := slot.DaySet()
		for _, exclusion := range exclusions {
			if exclusion.WeekNumber != slot.WeekNumber || exclusion.TimeSlot != slot.TimeSlot {
				continue
			}
			days = days.Minus(exclusion.DaySet())
		}
		if days.Empty() {
			continue
		}
		next := model.NewSlot(slot.WeekNumber, slot.TimeSlot, days)
		next.CustomStartTime = slot.CustomStartTime
		next.CustomEndTime = slot.CustomEndTime
		remaining = append(remaining, next)
	}
	return remaining
}
