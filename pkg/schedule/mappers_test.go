package schedule

import (
	"testing"

	"actman/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyViewCoversEveryDayAndWeek(t *testing.T) {
	slots := map[int][]model.Slot{
		1: {
			model.NewSlot(1, model.TimeSlotPm, model.NewDaySet(model.Monday)),
			model.NewSlot(1, model.TimeSlotAm, model.NewDaySet(model.Monday, model.Thursday)),
		},
		// week 2 has no data at all
	}

	view := DailyView(slots, 2)
	require.Len(t, view, 2, "every week up to scheduleWeeks must be present")
	require.Len(t, view[1], 7)
	require.Len(t, view[2], 7)

	monday := view[1][0]
	assert.Equal(t, model.Monday, monday.Day)
	assert.Equal(t, []model.TimeSlot{model.TimeSlotAm, model.TimeSlotPm}, monday.Slots,
		"bands must sort AM before PM regardless of slot order")

	thursday := view[1][3]
	assert.Equal(t, []model.TimeSlot{model.TimeSlotAm}, thursday.Slots)

	for _, row := range view[2] {
		assert.Empty(t, row.Slots, "empty week still renders all days with no bands")
	}
	for i, row := range view[1] {
		assert.Equal(t, model.DaysOfWeek[i], row.Day, "days in canonical order")
	}
}

func TestWeeklyViewIsSparse(t *testing.T) {
	slots := []model.Slot{
		model.NewSlot(1, model.TimeSlotEd, model.NewDaySet(model.Friday)),
		model.NewSlot(1, model.TimeSlotAm, model.NewDaySet(model.Friday)),
		model.NewSlot(2, model.TimeSlotAm, model.NewDaySet(model.Monday)),
	}

	view := WeeklyView(slots)
	require.Len(t, view[1], 1, "days with no bands are absent from the weekly view")
	assert.Equal(t, model.Friday, view[1][0].Day)
	assert.Equal(t, []model.TimeSlot{model.TimeSlotEd, model.TimeSlotAm}, view[1][0].Slots,
		"weekly view keeps bands in request order, not re-sorted")

	require.Len(t, view[2], 1)
	assert.Equal(t, model.Monday, view[2][0].Day)
}

func TestCompleteWeeklyViewShowsDaysFromOtherWeeks(t *testing.T) {
	slots := []model.Slot{
		model.NewSlot(1, model.TimeSlotAm, model.NewDaySet(model.Monday, model.Tuesday)),
		model.NewSlot(2, model.TimeSlotAm, model.NewDaySet(model.Monday)),
	}

	view := CompleteWeeklyView(slots, 2)

	require.Len(t, view[1], 2)
	require.Len(t, view[2], 2, "Tuesday appears in week 2 because week 1 uses it")

	week2 := map[model.DayOfWeek][]model.TimeSlot{}
	for _, row := range view[2] {
		week2[row.Day] = row.Slots
	}
	assert.Equal(t, []model.TimeSlot{model.TimeSlotAm}, week2[model.Monday])
	assert.Empty(t, week2[model.Tuesday], "excluded day renders as a visible-but-empty row")
}

func TestJourneySlotsToCustomSlots(t *testing.T) {
	sel := model.SlotSelection{
		Days: []string{"friday", "monday"},
		TimeSlots: map[string][]model.TimeSlot{
			"friday": {model.TimeSlotPm, model.TimeSlotAm},
			"monday": {model.TimeSlotEd},
		},
	}

	slots := JourneySlotsToCustomSlots(sel, 1)
	require.Len(t, slots, 3)

	// Days emit Monday through Sunday, bands AM, PM, ED within each day.
	assert.Equal(t, model.TimeSlotEd, slots[0].TimeSlot)
	assert.Equal(t, []model.DayOfWeek{model.Monday}, slots[0].DaysOfWeek)
	assert.True(t, slots[0].Monday)
	assert.False(t, slots[0].Friday)

	assert.Equal(t, model.TimeSlotAm, slots[1].TimeSlot)
	assert.Equal(t, []model.DayOfWeek{model.Friday}, slots[1].DaysOfWeek)
	assert.Equal(t, model.TimeSlotPm, slots[2].TimeSlot)

	for _, slot := range slots {
		assert.Equal(t, 1, slot.WeekNumber)
		assert.Empty(t, slot.CustomStartTime)
		assert.Empty(t, slot.CustomEndTime)
	}
}

func TestJourneySlotsToCustomSlotsWeekNumber(t *testing.T) {
	sel := model.SlotSelection{
		Days:      []string{"monday"},
		TimeSlots: map[string][]model.TimeSlot{"monday": {model.TimeSlotAm}},
	}

	slots := JourneySlotsToCustomSlots(sel, 2)
	require.Len(t, slots, 1)
	assert.Equal(t, 2, slots[0].WeekNumber)
}

func TestJourneySlotsToCustomSlotsSkipsDaysWithoutBands(t *testing.T) {
	sel := model.SlotSelection{
		Days:      []string{"monday", "tuesday"},
		TimeSlots: map[string][]model.TimeSlot{"monday": {model.TimeSlotAm}},
	}

	slots := JourneySlotsToCustomSlots(sel, 1)
	require.Len(t, slots, 1, "a day with no bands selected emits no slot")
}

func TestFromActivityScheduleSlot(t *testing.T) {
	classifier := DefaultClassifier()

	tests := []struct {
		name      string
		startTime string
		want      model.TimeSlot
	}{
		{name: "before noon is morning", startTime: "08:30", want: model.TimeSlotAm},
		{name: "noon is afternoon", startTime: "12:00", want: model.TimeSlotPm},
		{name: "before four is afternoon", startTime: "15:59", want: model.TimeSlotPm},
		{name: "four onwards is evening", startTime: "16:00", want: model.TimeSlotEd},
		{name: "evening", startTime: "17:30", want: model.TimeSlotEd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := model.ActivityScheduleSlot{
				WeekNumber: 1,
				StartTime:  tt.startTime,
				EndTime:    "21:00",
				Monday:     true,
				Wednesday:  true,
				DaysOfWeek: []string{"Mon", "Wed"},
			}

			slot := FromActivityScheduleSlot(upstream, classifier)
			assert.Equal(t, tt.want, slot.TimeSlot)
			assert.Equal(t, []model.DayOfWeek{model.Monday, model.Wednesday}, slot.DaysOfWeek)
			assert.True(t, slot.Monday)
			assert.True(t, slot.Wednesday)
			assert.Equal(t, tt.startTime, slot.CustomStartTime)
			assert.Equal(t, "21:00", slot.CustomEndTime)
		})
	}
}

func TestFromActivityScheduleSlotFallsBackToAbbreviations(t *testing.T) {
	upstream := model.ActivityScheduleSlot{
		WeekNumber: 1,
		StartTime:  "09:00",
		DaysOfWeek: []string{"Tue", "Sat"},
	}

	slot := FromActivityScheduleSlot(upstream, DefaultClassifier())
	assert.Equal(t, []model.DayOfWeek{model.Tuesday, model.Saturday}, slot.DaysOfWeek)
	assert.True(t, slot.Tuesday)
	assert.True(t, slot.Saturday)
}
