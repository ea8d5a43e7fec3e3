package service

import (
	"context"
	"testing"

	"actman/internal/activities/validator"
	journeyserrors "actman/internal/journeys/errors"
	"actman/pkg/client"
	"actman/pkg/config"
	apperrors "actman/pkg/errors"
	"actman/pkg/logger"
	"actman/pkg/model"
)

type mockActivitiesAPI struct {
	getRegimeFunc      func(ctx context.Context, prisonCode string) ([]model.RegimeDay, error)
	getScheduleFunc    func(ctx context.Context, scheduleID int) (*model.ActivitySchedule, error)
	updateActivityFunc func(ctx context.Context, prisonCode string, activityID int, update client.ActivityUpdateRequest) error
}

func (m *mockActivitiesAPI) GetPrisonRegime(ctx context.Context, prisonCode string) ([]model.RegimeDay, error) {
	if m.getRegimeFunc != nil {
		return m.getRegimeFunc(ctx, prisonCode)
	}
	return model.EmptyRegime(prisonCode), nil
}

func (m *mockActivitiesAPI) GetActivitySchedule(ctx context.Context, scheduleID int) (*model.ActivitySchedule, error) {
	if m.getScheduleFunc != nil {
		return m.getScheduleFunc(ctx, scheduleID)
	}
	return nil, nil
}

func (m *mockActivitiesAPI) UpdateActivity(ctx context.Context, prisonCode string, activityID int, update client.ActivityUpdateRequest) error {
	if m.updateActivityFunc != nil {
		return m.updateActivityFunc(ctx, prisonCode, activityID, update)
	}
	return nil
}

// memoryJourneyRepository keeps journeys in a map, enough to exercise the
// service without a database.
type memoryJourneyRepository struct {
	journeys map[string]*model.Journey
}

func newMemoryJourneyRepository() *memoryJourneyRepository {
	return &memoryJourneyRepository{journeys: make(map[string]*model.Journey)}
}

func (r *memoryJourneyRepository) Create(ctx context.Context, journey *model.Journey) error {
	if journey.ID == "" {
		journey.ID = "7f9cb1de-3a91-4f06-9be4-0f4d2f3a1c55"
	}
	copied := *journey
	r.journeys[journey.ID] = &copied
	return nil
}

func (r *memoryJourneyRepository) FindByID(ctx context.Context, id string) (*model.Journey, error) {
	journey, ok := r.journeys[id]
	if !ok {
		return nil, journeyserrors.ErrNotFound
	}
	copied := *journey
	return &copied, nil
}

func (r *memoryJourneyRepository) Upsert(ctx context.Context, journey *model.Journey) error {
	copied := *journey
	r.journeys[journey.ID] = &copied
	return nil
}

func (r *memoryJourneyRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.journeys[id]; !ok {
		return journeyserrors.ErrNotFound
	}
	delete(r.journeys, id)
	return nil
}

func (r *memoryJourneyRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AmBandEnd: "12:00",
		PmBandEnd: "16:00",
		Log:       logger.New(logger.Config{Level: logger.ERROR, Format: logger.JSON, Service: "test"}),
	}
}

func fullRegime(prisonCode string) []model.RegimeDay {
	regime := make([]model.RegimeDay, 0, len(model.DaysOfWeek))
	for i, day := range model.DaysOfWeek {
		regime = append(regime, model.RegimeDay{
			ID:         i + 1,
			PrisonCode: prisonCode,
			DayOfWeek:  day,
			AmStart:    "08:30", AmFinish: "11:45",
			PmStart: "13:45", PmFinish: "16:45",
			EdStart: "17:30", EdFinish: "19:15",
		})
	}
	return regime
}

func newTestService(api ActivitiesAPI, repo *memoryJourneyRepository, cfg *config.Config) ActivityService {
	return NewActivityService(api, repo, validator.NewJourneyValidator(cfg.Log), cfg)
}

func seedJourney(t *testing.T, repo *memoryJourneyRepository, journey *model.Journey) string {
	t.Helper()
	if err := repo.Create(context.Background(), journey); err != nil {
		t.Fatalf("failed to seed journey: %v", err)
	}
	return journey.ID
}

func TestCreateJourney_RejectsBadPrisonCode(t *testing.T) {
	svc := newTestService(&mockActivitiesAPI{}, newMemoryJourneyRepository(), testConfig(t))

	err := svc.CreateJourney(context.Background(), &model.Journey{PrisonCode: "X"})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestCreateJourney_DefaultsToOneWeek(t *testing.T) {
	repo := newMemoryJourneyRepository()
	svc := newTestService(&mockActivitiesAPI{}, repo, testConfig(t))

	journey := &model.Journey{PrisonCode: "RSI"}
	if err := svc.CreateJourney(context.Background(), journey); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if journey.ScheduleWeeks != 1 {
		t.Errorf("expected schedule weeks default 1, got %d", journey.ScheduleWeeks)
	}
	if journey.ID == "" {
		t.Error("expected an ID to be issued")
	}
}

func TestUpdateSelection_DiscardsStaleSessionSlots(t *testing.T) {
	repo := newMemoryJourneyRepository()
	svc := newTestService(&mockActivitiesAPI{}, repo, testConfig(t))

	id := seedJourney(t, repo, &model.Journey{
		PrisonCode:    "RSI",
		ScheduleWeeks: 1,
		SessionSlots: map[int][]model.SessionSlot{
			1: {{DayOfWeek: model.Monday, TimeSlot: model.TimeSlotAm}},
		},
	})

	sel := model.SlotSelection{
		Days:      []string{"tuesday"},
		TimeSlots: map[string][]model.TimeSlot{"tuesday": {model.TimeSlotPm}},
	}
	journey, err := svc.UpdateSelection(context.Background(), id, 1, sel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(journey.SessionSlots[1]) != 0 {
		t.Error("expected week 1 session slots to be discarded")
	}
	if len(journey.Selections[1].Days) != 1 || journey.Selections[1].Days[0] != "tuesday" {
		t.Errorf("selection not stored: %+v", journey.Selections[1])
	}
}

func TestUpdateSelection_RejectsBandWithoutDay(t *testing.T) {
	repo := newMemoryJourneyRepository()
	svc := newTestService(&mockActivitiesAPI{}, repo, testConfig(t))

	id := seedJourney(t, repo, &model.Journey{PrisonCode: "RSI", ScheduleWeeks: 1})

	sel := model.SlotSelection{
		Days:      []string{"monday"},
		TimeSlots: map[string][]model.TimeSlot{"friday": {model.TimeSlotAm}},
	}
	_, err := svc.UpdateSelection(context.Background(), id, 1, sel)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestSessionSlots_AssemblesFromRegime(t *testing.T) {
	api := &mockActivitiesAPI{
		getRegimeFunc: func(ctx context.Context, prisonCode string) ([]model.RegimeDay, error) {
			return fullRegime(prisonCode), nil
		},
	}
	repo := newMemoryJourneyRepository()
	svc := newTestService(api, repo, testConfig(t))

	id := seedJourney(t, repo, &model.Journey{
		PrisonCode:    "RSI",
		ScheduleWeeks: 1,
		Selections: map[int]model.SlotSelection{
			1: {
				Days: []string{"wednesday", "monday"},
				TimeSlots: map[string][]model.TimeSlot{
					"monday":    {model.TimeSlotAm, model.TimeSlotEd},
					"wednesday": {model.TimeSlotPm},
				},
			},
		},
	})

	slots, err := svc.SessionSlots(context.Background(), id, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 session slots, got %d", len(slots))
	}
	// Sorted by day name, then band order: MONDAY-AM, MONDAY-ED, WEDNESDAY-PM.
	if slots[0].Key() != "MONDAY-AM" || slots[1].Key() != "MONDAY-ED" || slots[2].Key() != "WEDNESDAY-PM" {
		t.Errorf("unexpected order: %s, %s, %s", slots[0].Key(), slots[1].Key(), slots[2].Key())
	}
	if slots[0].Start != "08:30" || slots[0].Finish != "11:45" {
		t.Errorf("regime times not carried: %s-%s", slots[0].Start, slots[0].Finish)
	}

	stored, _ := repo.FindByID(context.Background(), id)
	if len(stored.SessionSlots[1]) != 3 {
		t.Error("assembled slots should be stored on the journey")
	}
}

func TestSessionSlots_KeepsExistingSessions(t *testing.T) {
	api := &mockActivitiesAPI{
		getRegimeFunc: func(ctx context.Context, prisonCode string) ([]model.RegimeDay, error) {
			return fullRegime(prisonCode), nil
		},
	}
	repo := newMemoryJourneyRepository()
	svc := newTestService(api, repo, testConfig(t))

	id := seedJourney(t, repo, &model.Journey{
		PrisonCode:    "RSI",
		ScheduleWeeks: 1,
		Selections: map[int]model.SlotSelection{
			1: {
				Days:      []string{"monday", "friday"},
				TimeSlots: map[string][]model.TimeSlot{"monday": {model.TimeSlotAm}, "friday": {model.TimeSlotPm}},
			},
		},
		SessionSlots: map[int][]model.SessionSlot{
			1: {{DayOfWeek: model.Monday, TimeSlot: model.TimeSlotAm, Start: "09:00", Finish: "10:30"}},
		},
	})

	slots, err := svc.SessionSlots(context.Background(), id, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 session slots, got %d", len(slots))
	}
	if slots[1].Key() != "MONDAY-AM" || slots[1].Start != "09:00" {
		t.Errorf("edited session should keep its times, got %s %s", slots[1].Key(), slots[1].Start)
	}
	if slots[0].Key() != "FRIDAY-PM" || slots[0].Start != "13:45" {
		t.Errorf("new day should pick up regime defaults, got %s %s", slots[0].Key(), slots[0].Start)
	}
}

func TestUpdateCustomTimes_BatchValidation(t *testing.T) {
	repo := newMemoryJourneyRepository()
	svc := newTestService(&mockActivitiesAPI{}, repo, testConfig(t))

	id := seedJourney(t, repo, &model.Journey{PrisonCode: "RSI", ScheduleWeeks: 1})

	bad := map[string]model.SessionTimes{
		"MONDAY-AM": {Start: model.NewTimeOfDay(11, 0), End: model.NewTimeOfDay(9, 0)},
		"MONDAY-PM": {Start: model.TimeOfDay{}, End: model.NewTimeOfDay(15, 0)},
	}
	_, err := svc.UpdateCustomTimes(context.Background(), id, bad)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestSubmitSlots_BuildsCustomSlotsAndDeletesJourney(t *testing.T) {
	var received client.ActivityUpdateRequest
	var receivedPrison string
	api := &mockActivitiesAPI{
		updateActivityFunc: func(ctx context.Context, prisonCode string, activityID int, update client.ActivityUpdateRequest) error {
			receivedPrison = prisonCode
			received = update
			return nil
		},
	}
	repo := newMemoryJourneyRepository()
	svc := newTestService(api, repo, testConfig(t))

	id := seedJourney(t, repo, &model.Journey{
		PrisonCode:    "RSI",
		ActivityID:    42,
		ScheduleWeeks: 2,
		Selections: map[int]model.SlotSelection{
			1: {
				Days:      []string{"monday"},
				TimeSlots: map[string][]model.TimeSlot{"monday": {model.TimeSlotAm}},
			},
			2: {
				Days:      []string{"sunday", "tuesday"},
				TimeSlots: map[string][]model.TimeSlot{"tuesday": {model.TimeSlotPm}, "sunday": {model.TimeSlotEd}},
			},
		},
		CustomTimes: map[string]model.SessionTimes{
			"MONDAY-AM": {Start: model.NewTimeOfDay(9, 21), End: model.NewTimeOfDay(11, 37)},
		},
	})

	slots, err := svc.SubmitSlots(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receivedPrison != "RSI" || received.ScheduleWeeks != 2 {
		t.Errorf("upstream update wrong: prison=%s weeks=%d", receivedPrison, received.ScheduleWeeks)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}

	// Week 1 Monday AM carries the chosen times; week 2 emits Tuesday
	// before Sunday in Monday-first order.
	if slots[0].WeekNumber != 1 || !slots[0].Monday || slots[0].CustomStartTime != "09:21" {
		t.Errorf("week 1 slot wrong: %+v", slots[0])
	}
	if slots[1].WeekNumber != 2 || !slots[1].Tuesday || slots[1].TimeSlot != model.TimeSlotPm {
		t.Errorf("week 2 first slot wrong: %+v", slots[1])
	}
	if slots[2].WeekNumber != 2 || !slots[2].Sunday || slots[2].TimeSlot != model.TimeSlotEd {
		t.Errorf("week 2 second slot wrong: %+v", slots[2])
	}

	if _, err := repo.FindByID(context.Background(), id); err == nil {
		t.Error("journey should be deleted after submission")
	}
}

func TestSubmitSlots_NoActivity(t *testing.T) {
	repo := newMemoryJourneyRepository()
	svc := newTestService(&mockActivitiesAPI{}, repo, testConfig(t))

	id := seedJourney(t, repo, &model.Journey{PrisonCode: "RSI", ScheduleWeeks: 1})

	_, err := svc.SubmitSlots(context.Background(), id)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestApplyRegimeTimes_FillsTimesFromRegime(t *testing.T) {
	var received client.ActivityUpdateRequest
	api := &mockActivitiesAPI{
		getRegimeFunc: func(ctx context.Context, prisonCode string) ([]model.RegimeDay, error) {
			return fullRegime(prisonCode), nil
		},
		updateActivityFunc: func(ctx context.Context, prisonCode string, activityID int, update client.ActivityUpdateRequest) error {
			received = update
			return nil
		},
	}
	repo := newMemoryJourneyRepository()
	svc := newTestService(api, repo, testConfig(t))

	id := seedJourney(t, repo, &model.Journey{
		PrisonCode:    "RSI",
		ActivityID:    7,
		ScheduleWeeks: 1,
		Selections: map[int]model.SlotSelection{
			1: {
				Days:      []string{"monday"},
				TimeSlots: map[string][]model.TimeSlot{"monday": {model.TimeSlotAm, model.TimeSlotPm}},
			},
		},
	})

	slots, err := svc.ApplyRegimeTimes(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[0].CustomStartTime != "08:30" || slots[0].CustomEndTime != "11:45" {
		t.Errorf("AM slot should carry regime times, got %s-%s", slots[0].CustomStartTime, slots[0].CustomEndTime)
	}
	if slots[1].CustomStartTime != "13:45" || slots[1].CustomEndTime != "16:45" {
		t.Errorf("PM slot should carry regime times, got %s-%s", slots[1].CustomStartTime, slots[1].CustomEndTime)
	}
	if len(received.Slots) != 2 {
		t.Errorf("upstream update should carry both slots, got %d", len(received.Slots))
	}
}

func TestGetScheduleSlots_Views(t *testing.T) {
	sched := &model.ActivitySchedule{
		ID:            3,
		ScheduleWeeks: 2,
		StartDate:     "2024-03-04",
		Slots: []model.ActivityScheduleSlot{
			{WeekNumber: 1, StartTime: "09:00", EndTime: "11:00", Monday: true, Wednesday: true},
			{WeekNumber: 1, StartTime: "17:30", EndTime: "19:00", Monday: true},
			{WeekNumber: 2, StartTime: "13:00", EndTime: "15:00", Friday: true},
		},
	}
	api := &mockActivitiesAPI{
		getScheduleFunc: func(ctx context.Context, scheduleID int) (*model.ActivitySchedule, error) {
			return sched, nil
		},
	}
	svc := newTestService(api, newMemoryJourneyRepository(), testConfig(t))

	daily, err := svc.GetScheduleSlots(context.Background(), 3, ViewDaily)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(daily.Days[1]) != 7 || len(daily.Days[2]) != 7 {
		t.Fatalf("daily view must list all 7 days per week")
	}
	monday := daily.Days[1][0]
	if monday.Day != model.Monday || len(monday.Slots) != 2 {
		t.Errorf("expected Monday with AM and ED, got %+v", monday)
	}
	if monday.Slots[0] != model.TimeSlotAm || monday.Slots[1] != model.TimeSlotEd {
		t.Errorf("bands should sort AM, ED: %v", monday.Slots)
	}

	weekly, err := svc.GetScheduleSlots(context.Background(), 3, ViewWeekly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(weekly.Days[1]) != 2 {
		t.Errorf("weekly view lists only populated days, got %d", len(weekly.Days[1]))
	}

	complete, err := svc.GetScheduleSlots(context.Background(), 3, ViewComplete)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Friday appears in week 2 only, but renders in week 1 as an empty row.
	var sawFriday bool
	for _, row := range complete.Days[1] {
		if row.Day == model.Friday {
			sawFriday = true
			if len(row.Slots) != 0 {
				t.Errorf("Friday week 1 should be empty, got %v", row.Slots)
			}
		}
	}
	if !sawFriday {
		t.Error("complete view should include Friday in week 1")
	}

	if _, err := svc.GetScheduleSlots(context.Background(), 3, "monthly"); err == nil {
		t.Error("unknown view should be rejected")
	}
}

func TestGetScheduleSlots_NotFound(t *testing.T) {
	svc := newTestService(&mockActivitiesAPI{}, newMemoryJourneyRepository(), testConfig(t))

	_, err := svc.GetScheduleSlots(context.Background(), 99, ViewDaily)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
