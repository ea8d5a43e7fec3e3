package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"actman/internal/activities/validator"
	journeyserrors "actman/internal/journeys/errors"
	"actman/internal/journeys/repository"
	"actman/pkg/client"
	"actman/pkg/config"
	apperrors "actman/pkg/errors"
	"actman/pkg/model"
	"actman/pkg/schedule"
)

// ActivitiesAPI is the slice of the upstream client the activity service
// touches.
type ActivitiesAPI interface {
	GetPrisonRegime(ctx context.Context, prisonCode string) ([]model.RegimeDay, error)
	GetActivitySchedule(ctx context.Context, scheduleID int) (*model.ActivitySchedule, error)
	UpdateActivity(ctx context.Context, prisonCode string, activityID int, update client.ActivityUpdateRequest) error
}

// ScheduleSlotsView is the rendered response for a schedule's slots in
// one of the three groupings, positioned in its rotation.
type ScheduleSlotsView struct {
	ScheduleID    int                         `json:"scheduleId"`
	ScheduleWeeks int                         `json:"scheduleWeeks"`
	CurrentWeek   *int                        `json:"currentWeek"`
	Days          map[int][]schedule.DaySlots `json:"days"`
}

// View names accepted by GetScheduleSlots.
const (
	ViewDaily    = "daily"
	ViewWeekly   = "weekly"
	ViewComplete = "complete"
)

type ActivityService interface {
	CreateJourney(ctx context.Context, journey *model.Journey) error
	GetJourney(ctx context.Context, id string) (*model.Journey, error)
	UpdateSelection(ctx context.Context, id string, weekNumber int, sel model.SlotSelection) (*model.Journey, error)
	UpdateCustomTimes(ctx context.Context, id string, times map[string]model.SessionTimes) (*model.Journey, error)
	DeleteJourney(ctx context.Context, id string) error
	SessionSlots(ctx context.Context, id string, weekNumber int) ([]model.SessionSlot, error)
	SubmitSlots(ctx context.Context, id string) ([]model.Slot, error)
	ApplyRegimeTimes(ctx context.Context, id string) ([]model.Slot, error)
	GetScheduleSlots(ctx context.Context, scheduleID int, view string) (*ScheduleSlotsView, error)
}

type activityService struct {
	api       ActivitiesAPI
	journeys  repository.JourneyRepository
	validator *validator.JourneyValidator
	cfg       *config.Config
}

func NewActivityService(
	api ActivitiesAPI,
	journeys repository.JourneyRepository,
	journeyValidator *validator.JourneyValidator,
	cfg *config.Config,
) ActivityService {
	return &activityService{
		api:       api,
		journeys:  journeys,
		validator: journeyValidator,
		cfg:       cfg,
	}
}

func (s *activityService) CreateJourney(ctx context.Context, journey *model.Journey) error {
	if failures := s.validator.ValidateJourney(journey); len(failures) > 0 {
		return apperrors.FieldValidation("Journey failed validation", failures)
	}

	if journey.ScheduleWeeks == 0 {
		journey.ScheduleWeeks = 1
	}

	if err := s.journeys.Create(ctx, journey); err != nil {
		s.cfg.Log.Error("Failed to create journey", "error", err)
		return apperrors.Internal("Failed to create journey", err)
	}

	s.cfg.Log.Info("Journey created",
		"journey_id", journey.ID,
		"prison_code", journey.PrisonCode,
		"activity_id", journey.ActivityID,
	)
	return nil
}

func (s *activityService) GetJourney(ctx context.Context, id string) (*model.Journey, error) {
	return s.loadJourney(ctx, id)
}

// UpdateSelection replaces the day/band selection for one rotation week
// and discards that week's assembled session slots, which no longer match.
func (s *activityService) UpdateSelection(ctx context.Context, id string, weekNumber int, sel model.SlotSelection) (*model.Journey, error) {
	if weekNumber < 1 || weekNumber > 2 {
		return nil, apperrors.InvalidInput("Week number must be 1 or 2")
	}
	if failures := s.validator.ValidateSelection(sel); len(failures) > 0 {
		return nil, apperrors.FieldValidation("Slot selection failed validation", failures)
	}

	journey, err := s.loadJourney(ctx, id)
	if err != nil {
		return nil, err
	}

	if journey.Selections == nil {
		journey.Selections = make(map[int]model.SlotSelection)
	}
	journey.Selections[weekNumber] = sel
	delete(journey.SessionSlots, weekNumber)

	if err := s.journeys.Upsert(ctx, journey); err != nil {
		s.cfg.Log.Error("Failed to save journey", "journey_id", id, "error", err)
		return nil, apperrors.Internal("Failed to save journey", err)
	}
	return journey, nil
}

// UpdateCustomTimes validates and stores a batch of submitted session
// times on the journey.
func (s *activityService) UpdateCustomTimes(ctx context.Context, id string, times map[string]model.SessionTimes) (*model.Journey, error) {
	if len(times) == 0 {
		return nil, apperrors.InvalidInput("No session times submitted")
	}
	if failures := s.validator.ValidateCustomTimes(times); len(failures) > 0 {
		return nil, apperrors.FieldValidation("Session times failed validation", failures)
	}

	journey, err := s.loadJourney(ctx, id)
	if err != nil {
		return nil, err
	}

	if journey.CustomTimes == nil {
		journey.CustomTimes = make(map[string]model.SessionTimes, len(times))
	}
	for key, submitted := range times {
		journey.CustomTimes[key] = submitted
	}

	if err := s.journeys.Upsert(ctx, journey); err != nil {
		s.cfg.Log.Error("Failed to save journey", "journey_id", id, "error", err)
		return nil, apperrors.Internal("Failed to save journey", err)
	}
	return journey, nil
}

func (s *activityService) DeleteJourney(ctx context.Context, id string) error {
	err := s.journeys.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, journeyserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Journey", id)
		}
		if errors.Is(err, journeyserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid journey ID format")
		}
		return apperrors.Internal("Failed to delete journey", err)
	}
	return nil
}

// SessionSlots assembles the session-times page rows for one rotation
// week: the week's selection resolved against the prison regime, merged
// with any sessions already carrying custom times, and stored back on the
// journey for the next step.
func (s *activityService) SessionSlots(ctx context.Context, id string, weekNumber int) ([]model.SessionSlot, error) {
	journey, err := s.loadJourney(ctx, id)
	if err != nil {
		return nil, err
	}

	sel := journey.SelectionFor(weekNumber)
	if sel.Empty() {
		return nil, apperrors.InvalidInput("No slot selection captured for this week")
	}

	regime, err := s.api.GetPrisonRegime(ctx, journey.PrisonCode)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch prison regime", "prison_code", journey.PrisonCode, "error", err)
		return nil, apperrors.Internal("Failed to fetch prison regime", err)
	}

	resolved := schedule.ApplicableRegimeSlots(regime, sel)
	fromRegime := schedule.SessionSlotsFromRegime(resolved)
	merged := schedule.MergeSessionSlots(s.existingSessions(journey, weekNumber, fromRegime), sel)

	if journey.SessionSlots == nil {
		journey.SessionSlots = make(map[int][]model.SessionSlot)
	}
	journey.SessionSlots[weekNumber] = merged

	if err := s.journeys.Upsert(ctx, journey); err != nil {
		s.cfg.Log.Error("Failed to save journey", "journey_id", id, "error", err)
		return nil, apperrors.Internal("Failed to save journey", err)
	}
	return merged, nil
}

// existingSessions seeds the merge: sessions assembled on an earlier
// visit win over freshly resolved regime defaults, so edits survive a
// trip back through the selection step.
func (s *activityService) existingSessions(journey *model.Journey, weekNumber int, fromRegime []model.SessionSlot) []model.SessionSlot {
	existing := journey.SessionSlots[weekNumber]
	if len(existing) == 0 {
		return fromRegime
	}

	have := make(map[string]bool, len(existing))
	for _, slot := range existing {
		have[slot.Key()] = true
	}
	for _, slot := range fromRegime {
		if !have[slot.Key()] {
			existing = append(existing, slot)
		}
	}
	return existing
}

// SubmitSlots is the final wizard step: the journey's selections become
// custom slot records carrying the chosen times, the upstream activity is
// updated, and the journey is deleted.
func (s *activityService) SubmitSlots(ctx context.Context, id string) ([]model.Slot, error) {
	journey, err := s.loadJourney(ctx, id)
	if err != nil {
		return nil, err
	}
	if journey.ActivityID == 0 {
		return nil, apperrors.InvalidInput("Journey has no activity to update")
	}

	if len(journey.CustomTimes) > 0 {
		if failures := s.validator.ValidateCustomTimes(journey.CustomTimes); len(failures) > 0 {
			return nil, apperrors.FieldValidation("Session times failed validation", failures)
		}
	}

	slots := s.customSlots(journey)
	if len(slots) == 0 {
		return nil, apperrors.InvalidInput("No slots selected")
	}

	update := client.ActivityUpdateRequest{
		Slots:         slots,
		ScheduleWeeks: journey.ScheduleWeeks,
	}
	if err := s.api.UpdateActivity(ctx, journey.PrisonCode, journey.ActivityID, update); err != nil {
		s.cfg.Log.Error("Failed to update activity",
			"activity_id", journey.ActivityID,
			"prison_code", journey.PrisonCode,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to update activity", err)
	}

	if err := s.journeys.Delete(ctx, id); err != nil {
		s.cfg.Log.Warn("Failed to delete completed journey", "journey_id", id, "error", err)
	}

	s.cfg.Log.Info("Activity slots updated",
		"activity_id", journey.ActivityID,
		"prison_code", journey.PrisonCode,
		"slots", len(slots),
	)
	return slots, nil
}

// ApplyRegimeTimes fills the journey's custom times from the prison
// regime defaults for every selected day and band, then submits. This is
// the "use the prison's standard times" shortcut on an existing activity.
func (s *activityService) ApplyRegimeTimes(ctx context.Context, id string) ([]model.Slot, error) {
	journey, err := s.loadJourney(ctx, id)
	if err != nil {
		return nil, err
	}

	regime, err := s.api.GetPrisonRegime(ctx, journey.PrisonCode)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch prison regime", "prison_code", journey.PrisonCode, "error", err)
		return nil, apperrors.Internal("Failed to fetch prison regime", err)
	}

	if journey.CustomTimes == nil {
		journey.CustomTimes = make(map[string]model.SessionTimes)
	}
	weeks := journey.ScheduleWeeks
	if weeks == 0 {
		weeks = 1
	}
	for week := 1; week <= weeks; week++ {
		resolved := schedule.ApplicableRegimeSlots(regime, journey.SelectionFor(week))
		for _, session := range schedule.SessionSlotsFromRegime(resolved) {
			start, startOK := model.ParseIsoTime(session.Start)
			end, endOK := model.ParseIsoTime(session.Finish)
			if !startOK || !endOK {
				continue
			}
			journey.CustomTimes[session.Key()] = model.SessionTimes{Start: start, End: end}
		}
	}

	if err := s.journeys.Upsert(ctx, journey); err != nil {
		s.cfg.Log.Error("Failed to save journey", "journey_id", id, "error", err)
		return nil, apperrors.Internal("Failed to save journey", err)
	}

	return s.SubmitSlots(ctx, id)
}

// GetScheduleSlots fetches an upstream schedule and renders its slots in
// the requested grouping, with the rotation's current week alongside.
func (s *activityService) GetScheduleSlots(ctx context.Context, scheduleID int, view string) (*ScheduleSlotsView, error) {
	sched, err := s.api.GetActivitySchedule(ctx, scheduleID)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch activity schedule", "schedule_id", scheduleID, "error", err)
		return nil, apperrors.Internal("Failed to fetch activity schedule", err)
	}
	if sched == nil {
		return nil, apperrors.NotFoundWithID("Activity schedule", strconv.Itoa(scheduleID))
	}

	scheduleWeeks := sched.ScheduleWeeks
	if scheduleWeeks == 0 {
		scheduleWeeks = 1
	}

	slots := schedule.FromActivityScheduleSlots(sched.Slots, s.cfg.Classifier())

	var days map[int][]schedule.DaySlots
	switch view {
	case ViewWeekly:
		days = schedule.WeeklyView(slots)
	case ViewComplete:
		days = schedule.CompleteWeeklyView(slots, scheduleWeeks)
	case ViewDaily, "":
		byWeek := make(map[int][]model.Slot)
		for _, slot := range slots {
			byWeek[slot.WeekNumber] = append(byWeek[slot.WeekNumber], slot)
		}
		days = schedule.DailyView(byWeek, scheduleWeeks)
	default:
		return nil, apperrors.InvalidInput("View must be one of: daily, weekly, complete")
	}

	result := &ScheduleSlotsView{
		ScheduleID:    sched.ID,
		ScheduleWeeks: scheduleWeeks,
		Days:          days,
	}

	if startDate, err := time.Parse("2006-01-02", sched.StartDate); err == nil {
		result.CurrentWeek = schedule.CurrentWeek(startDate, scheduleWeeks, time.Now())
	}

	return result, nil
}

func (s *activityService) loadJourney(ctx context.Context, id string) (*model.Journey, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Journey ID cannot be empty")
	}

	journey, err := s.journeys.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, journeyserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Journey", id)
		}
		if errors.Is(err, journeyserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid journey ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve journey", err)
	}
	return journey, nil
}

// customSlots expands every week's selection into single-day custom slot
// records and attaches the chosen times by session key.
func (s *activityService) customSlots(journey *model.Journey) []model.Slot {
	weeks := journey.ScheduleWeeks
	if weeks == 0 {
		weeks = 1
	}

	var slots []model.Slot
	for week := 1; week <= weeks; week++ {
		weekSlots := schedule.JourneySlotsToCustomSlots(journey.SelectionFor(week), week)
		for i := range weekSlots {
			days := weekSlots[i].DaySet().Days()
			if len(days) != 1 {
				continue
			}
			key := model.SessionKey(days[0], weekSlots[i].TimeSlot)
			if times, ok := journey.CustomTimes[key]; ok {
				weekSlots[i].CustomStartTime = times.Start.IsoString()
				weekSlots[i].CustomEndTime = times.End.IsoString()
			}
		}
		slots = append(slots, weekSlots...)
	}
	return slots
}
