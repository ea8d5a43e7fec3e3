package model

import "time"

// Journey is the wizard state accumulated across the multi-step create or
// edit flow for one user. It lives in the journey store until the final
// step submits the assembled slots upstream, then is deleted.
type Journey struct {
	ID            string                  `json:"id" bson:"_id,omitempty"`
	PrisonCode    string                  `json:"prisonCode" bson:"prison_code" validate:"required,min=2,max=6"`
	ActivityID    int                     `json:"activityId,omitempty" bson:"activity_id,omitempty"`
	ScheduleWeeks int                     `json:"scheduleWeeks" bson:"schedule_weeks" validate:"omitempty,min=1,max=2"`
	Selections    map[int]SlotSelection   `json:"selections,omitempty" bson:"selections,omitempty"`
	SessionSlots  map[int][]SessionSlot   `json:"sessionSlots,omitempty" bson:"session_slots,omitempty"`
	CustomTimes   map[string]SessionTimes `json:"customTimes,omitempty" bson:"custom_times,omitempty"`
	CreatedAt     time.Time               `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time               `json:"updatedAt" bson:"updated_at"`
}

// SessionTimes is one day+band's submitted start and end, keyed in the
// journey by the composite "DAY-BAND" session key.
type SessionTimes struct {
	Start TimeOfDay `json:"start" bson:"start"`
	End   TimeOfDay `json:"end" bson:"end"`
}

// SelectionFor returns the selection captured for a rotation week, or an
// empty selection if that step has not been visited yet.
func (j *Journey) SelectionFor(weekNumber int) SlotSelection {
	if j.Selections == nil {
		return SlotSelection{}
	}
	return j.Selections[weekNumber]
}
