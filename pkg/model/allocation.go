package model

// Allocation ties a prisoner to an activity schedule, with the day/band
// combinations excluded from the schedule for that prisoner. Exclusions
// are Slot-shaped: the same flags-plus-day-list record the schedule uses.
type Allocation struct {
	ID             int    `json:"id"`
	PrisonCode     string `json:"prisonCode"`
	PrisonerNumber string `json:"prisonerNumber"`
	ScheduleID     int    `json:"scheduleId"`
	Exclusions     []Slot `json:"exclusions,omitempty"`
}
