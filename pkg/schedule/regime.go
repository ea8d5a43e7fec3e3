// Package schedule holds the pure scheduling arithmetic shared by the
// regimes, activities and allocations services: resolving day/band
// selections against prison regime times, assembling and validating
// session slots, mapping between journey and wire representations, and
// positioning a schedule in its weekly rotation. Everything here is a
// side-effect-free function over in-memory values.
package schedule

import (
	"actman/pkg/model"
)

// ApplicableRegimeSlots returns one record per selected day that has a
// matching regime day, in the order the days were given, carrying the
// regime's default start/finish for only the bands asked for. Days with
// no matching regime record are skipped; an empty selection resolves to
// nothing.
func ApplicableRegimeSlots(regime []model.RegimeDay, sel model.SlotSelection) []model.DaysAndSlotsInRegime {
	if sel.Empty() {
		return nil
	}

	byDay := make(map[model.DayOfWeek]model.RegimeDay, len(regime))
	for _, day := range regime {
		byDay[day.DayOfWeek] = day
	}

	var resolved []model.DaysAndSlotsInRegime
	for _, name := range sel.Days {
		day, ok := model.ParseDayOfWeek(name)
		if !ok {
			continue
		}
		regimeDay, ok := byDay[day]
		if !ok {
			continue
		}

		record := model.DaysAndSlotsInRegime{DayOfWeek: day}
		for _, band := range sel.BandsFor(day) {
			start, finish := regimeDay.BandTimes(band)
			switch band {
			case model.TimeSlotAm:
				record.AmStart, record.AmFinish = &start, &finish
			case model.TimeSlotPm:
				record.PmStart, record.PmFinish = &start, &finish
			case model.TimeSlotEd:
				record.EdStart, record.EdFinish = &start, &finish
			}
		}
		resolved = append(resolved, record)
	}
	return resolved
}

// BuildRegimeUpdate produces the full seven-day table to submit upstream:
// the current table with each day's band times replaced by the submitted
// custom times, keyed by "DAY-BAND". ID and prison code carry forward
// unchanged. Days or bands with no submission keep their current times.
func BuildRegimeUpdate(current []model.RegimeDay, times map[string]model.SessionTimes) []model.RegimeDay {
	updated := make([]model.RegimeDay, 0, len(current))
	for _, day := range current {
		next := day
		for _, band := range model.TimeSlots {
			submitted, ok := times[model.SessionKey(day.DayOfWeek, band)]
			if !ok {
				continue
			}
			start := submitted.Start.IsoString()
			finish := submitted.End.IsoString()
			switch band {
			case model.TimeSlotAm:
				next.AmStart, next.AmFinish = start, finish
			case model.TimeSlotPm:
				next.PmStart, next.PmFinish = start, finish
			case model.TimeSlotEd:
				next.EdStart, next.EdFinish = start, finish
			}
		}
		updated = append(updated, next)
	}
	return updated
}
