package schedule

import "actman/pkg/model"

// Classifier buckets an "HH:MM" start time into the band it falls in.
// The boundaries are prison policy, not arithmetic, so they arrive from
// configuration rather than being hard-coded at call sites.
type Classifier struct {
	// AmEnd is the first time that is no longer morning.
	AmEnd string
	// PmEnd is the first time that is no longer afternoon.
	PmEnd string
}

const (
	DefaultAmEnd = "12:00"
	DefaultPmEnd = "16:00"
)

func DefaultClassifier() Classifier {
	return Classifier{AmEnd: DefaultAmEnd, PmEnd: DefaultPmEnd}
}

// Classify maps a start time to AM, PM or ED.
func (c Classifier) Classify(startTime string) model.TimeSlot {
	if model.CompareTimes(startTime, c.AmEnd) < 0 {
		return model.TimeSlotAm
	}
	if model.CompareTimes(startTime, c.PmEnd) < 0 {
		return model.TimeSlotPm
	}
	return model.TimeSlotEd
}
