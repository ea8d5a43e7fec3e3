package schedule

import (
	"reflect"
	"testing"

	"actman/pkg/model"
)

func TestSessionSlotsFromRegime(t *testing.T) {
	regime := fixtureRegime("RSI")
	sel := model.SlotSelection{
		Days: []string{"wednesday", "monday"},
		TimeSlots: map[string][]model.TimeSlot{
			"wednesday": {model.TimeSlotEd, model.TimeSlotAm},
			"monday":    {model.TimeSlotPm},
		},
	}

	slots := SessionSlotsFromRegime(ApplicableRegimeSlots(regime, sel))

	want := []model.SessionSlot{
		{DayOfWeek: model.Wednesday, TimeSlot: model.TimeSlotAm, Start: "08:30", Finish: "11:45"},
		{DayOfWeek: model.Wednesday, TimeSlot: model.TimeSlotEd, Start: "17:30", Finish: "19:15"},
		{DayOfWeek: model.Monday, TimeSlot: model.TimeSlotPm, Start: "13:45", Finish: "16:45"},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("SessionSlotsFromRegime() = %+v, want %+v", slots, want)
	}
}

func TestMergeSessionSlotsAddsPlaceholders(t *testing.T) {
	existing := []model.SessionSlot{
		{DayOfWeek: model.Monday, TimeSlot: model.TimeSlotAm, Start: "09:21", Finish: "11:37"},
		{DayOfWeek: model.Monday, TimeSlot: model.TimeSlotPm, Start: "13:30", Finish: "14:45"},
	}
	sel := model.SlotSelection{
		Days: []string{"monday", "friday"},
		TimeSlots: map[string][]model.TimeSlot{
			"monday": {model.TimeSlotAm, model.TimeSlotPm},
			"friday": {model.TimeSlotAm},
		},
	}

	merged := MergeSessionSlots(existing, sel)

	// Sorted by day name (alphabetical), then band order: FRIDAY < MONDAY.
	want := []model.SessionSlot{
		{DayOfWeek: model.Friday, TimeSlot: model.TimeSlotAm},
		{DayOfWeek: model.Monday, TimeSlot: model.TimeSlotAm, Start: "09:21", Finish: "11:37"},
		{DayOfWeek: model.Monday, TimeSlot: model.TimeSlotPm, Start: "13:30", Finish: "14:45"},
	}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("MergeSessionSlots() = %+v, want %+v", merged, want)
	}
}

func TestMergeSessionSlotsKeepsConfiguredTimes(t *testing.T) {
	existing := []model.SessionSlot{
		{DayOfWeek: model.Tuesday, TimeSlot: model.TimeSlotEd, Start: "18:08", Finish: "20:09"},
	}
	sel := model.SlotSelection{
		Days: []string{"tuesday"},
		TimeSlots: map[string][]model.TimeSlot{
			"tuesday": {model.TimeSlotEd},
		},
	}

	merged := MergeSessionSlots(existing, sel)
	if len(merged) != 1 {
		t.Fatalf("expected no new placeholder for an already-configured session, got %+v", merged)
	}
	if merged[0].Start != "18:08" {
		t.Errorf("existing custom time was lost: %+v", merged[0])
	}
}

func TestMergeSessionSlotsBandOrderWithinDay(t *testing.T) {
	sel := model.SlotSelection{
		Days: []string{"saturday"},
		TimeSlots: map[string][]model.TimeSlot{
			"saturday": {model.TimeSlotEd, model.TimeSlotAm, model.TimeSlotPm},
		},
	}

	merged := MergeSessionSlots(nil, sel)
	got := make([]model.TimeSlot, 0, len(merged))
	for _, slot := range merged {
		got = append(got, slot.TimeSlot)
	}
	want := []model.TimeSlot{model.TimeSlotAm, model.TimeSlotPm, model.TimeSlotEd}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("bands within a day = %v, want %v", got, want)
	}
}
