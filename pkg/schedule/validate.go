package schedule

import (
	"fmt"

	"actman/pkg/model"
)

// FieldError attaches one validation message to the form field it
// belongs to, so a failed submission re-renders with errors in place.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SessionTimeEntry is one day+band's submitted times, flattened out of
// the composite-keyed form map. Empty Start or End means the field was
// not submitted; checks needing that side are skipped for the entry.
type SessionTimeEntry struct {
	Day   model.DayOfWeek
	Slot  model.TimeSlot
	Start string
	End   string
}

const (
	msgEndAfterStart     = "Select an end time after the start time"
	msgStartAfterEarlier = "Select a start time after the earlier session start time"
	msgStartBeforeLater  = "Check start times for this day. Start time must be before any later session start times"
)

// ValidateSessionTimes checks a batch of per-activity custom session
// times: every end strictly after its start, and within each day the band
// start times strictly increasing AM < PM < ED. All violations are
// collected; nothing fails fast. Ordering violations are reported on the
// later band's start field. The prefix scopes field names to the calling
// form, giving keys like "endTimes-<prefix>-MONDAY-AM".
func ValidateSessionTimes(prefix string, entries []SessionTimeEntry) []FieldError {
	return validateTimes(prefix, entries, false)
}

// ValidateRegimeTimes applies the same two rules to a whole-week prison
// regime submission. The only difference is how an ordering violation is
// addressed: the regime form highlights the earlier band, telling the
// user its start must precede every later session that day.
func ValidateRegimeTimes(prefix string, entries []SessionTimeEntry) []FieldError {
	return validateTimes(prefix, entries, true)
}

func validateTimes(prefix string, entries []SessionTimeEntry, flagEarlier bool) []FieldError {
	var failures []FieldError

	for _, entry := range entries {
		if entry.Start == "" || entry.End == "" {
			continue
		}
		if !model.TimeAfter(entry.End, entry.Start) {
			failures = append(failures, FieldError{
				Field:   endField(prefix, entry),
				Message: msgEndAfterStart,
			})
		}
	}

	// Ordering checks never cross days: entries for different days are
	// independent even when they share a band.
	byDay := make(map[model.DayOfWeek]map[model.TimeSlot]SessionTimeEntry)
	for _, entry := range entries {
		if entry.Start == "" {
			continue
		}
		if byDay[entry.Day] == nil {
			byDay[entry.Day] = make(map[model.TimeSlot]SessionTimeEntry)
		}
		byDay[entry.Day][entry.Slot] = entry
	}

	for _, day := range model.DaysOfWeek {
		bands := byDay[day]
		if bands == nil {
			continue
		}
		for i, earlierBand := range model.TimeSlots {
			earlier, ok := bands[earlierBand]
			if !ok {
				continue
			}
			for _, laterBand := range model.TimeSlots[i+1:] {
				later, ok := bands[laterBand]
				if !ok {
					continue
				}
				if model.TimeAfter(later.Start, earlier.Start) {
					continue
				}
				flagged := later
				message := msgStartAfterEarlier
				if flagEarlier {
					flagged = earlier
					message = msgStartBeforeLater
				}
				failures = append(failures, FieldError{
					Field:   startField(prefix, flagged),
					Message: message,
				})
			}
		}
	}

	return dedupe(failures)
}

func startField(prefix string, entry SessionTimeEntry) string {
	return fmt.Sprintf("startTimes-%s-%s", prefix, model.SessionKey(entry.Day, entry.Slot))
}

func endField(prefix string, entry SessionTimeEntry) string {
	return fmt.Sprintf("endTimes-%s-%s", prefix, model.SessionKey(entry.Day, entry.Slot))
}

// dedupe keeps the first occurrence of each field+message pair. A day
// with several ordering problems can otherwise flag the same field twice.
func dedupe(failures []FieldError) []FieldError {
	if len(failures) < 2 {
		return failures
	}
	seen := make(map[FieldError]bool, len(failures))
	var unique []FieldError
	for _, failure := range failures {
		if seen[failure] {
			continue
		}
		seen[failure] = true
		unique = append(unique, failure)
	}
	return unique
}

// EntriesFromTimes flattens a composite-keyed times map (the journey's
// form shape) into validation entries, skipping keys that do not parse.
func EntriesFromTimes(times map[string]model.SessionTimes) []SessionTimeEntry {
	var entries []SessionTimeEntry
	for _, day := range model.DaysOfWeek {
		for _, band := range model.TimeSlots {
			submitted, ok := times[model.SessionKey(day, band)]
			if !ok {
				continue
			}
			entries = append(entries, SessionTimeEntry{
				Day:   day,
				Slot:  band,
				Start: submitted.Start.IsoString(),
				End:   submitted.End.IsoString(),
			})
		}
	}
	return entries
}
