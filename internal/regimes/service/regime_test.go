package service

import (
	"context"
	"errors"
	"testing"

	"actman/internal/regimes/validator"
	"actman/pkg/config"
	apperrors "actman/pkg/errors"
	"actman/pkg/kafka"
	"actman/pkg/logger"
	"actman/pkg/model"
)

type mockActivitiesAPI struct {
	getRegimeFunc    func(ctx context.Context, prisonCode string) ([]model.RegimeDay, error)
	updateRegimeFunc func(ctx context.Context, prisonCode string, regime []model.RegimeDay) ([]model.RegimeDay, error)
}

func (m *mockActivitiesAPI) GetPrisonRegime(ctx context.Context, prisonCode string) ([]model.RegimeDay, error) {
	if m.getRegimeFunc != nil {
		return m.getRegimeFunc(ctx, prisonCode)
	}
	return model.EmptyRegime(prisonCode), nil
}

func (m *mockActivitiesAPI) UpdatePrisonRegime(ctx context.Context, prisonCode string, regime []model.RegimeDay) ([]model.RegimeDay, error) {
	if m.updateRegimeFunc != nil {
		return m.updateRegimeFunc(ctx, prisonCode, regime)
	}
	return regime, nil
}

type mockPublisher struct {
	published []kafka.Message
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, msg)
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log: logger.New(logger.Config{Level: logger.ERROR, Format: logger.JSON, Service: "test"}),
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

func times(startHour, startMinute, endHour, endMinute int) model.SessionTimes {
	return model.SessionTimes{
		Start: model.NewTimeOfDay(startHour, startMinute),
		End:   model.NewTimeOfDay(endHour, endMinute),
	}
}

func newTestService(api ActivitiesAPI, producer EventPublisher, cfg *config.Config) RegimeService {
	return NewRegimeService(api, validator.NewRegimeValidator(cfg.Log), producer, cfg)
}

func TestGetRegime_EmptyPrisonCode(t *testing.T) {
	svc := newTestService(&mockActivitiesAPI{}, nil, testConfig(t))

	_, err := svc.GetRegime(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for empty prison code")
	}
	if appErr := apperrors.AsAppError(err); appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestGetRegime_SentinelForUnconfiguredPrison(t *testing.T) {
	svc := newTestService(&mockActivitiesAPI{}, nil, testConfig(t))

	regime, err := svc.GetRegime(context.Background(), "RSI")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(regime) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(regime))
	}
	if regime[0].AmStart != model.UnsetTime {
		t.Errorf("expected unset AM start, got %q", regime[0].AmStart)
	}
}

func TestGetRegime_UpstreamFailure(t *testing.T) {
	api := &mockActivitiesAPI{
		getRegimeFunc: func(ctx context.Context, prisonCode string) ([]model.RegimeDay, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := newTestService(api, nil, testConfig(t))

	_, err := svc.GetRegime(context.Background(), "RSI")
	if appErr := apperrors.AsAppError(err); appErr == nil || appErr.Code != apperrors.CodeInternal {
		t.Fatalf("expected INTERNAL_ERROR, got %v", err)
	}
}

func TestApplicableSlots_ResolvesAgainstRegime(t *testing.T) {
	api := &mockActivitiesAPI{
		getRegimeFunc: func(ctx context.Context, prisonCode string) ([]model.RegimeDay, error) {
			return fullRegime(prisonCode), nil
		},
	}
	svc := newTestService(api, nil, testConfig(t))

	sel := model.SlotSelection{
		Days:      []string{"tuesday", "monday"},
		TimeSlots: map[string][]model.TimeSlot{"monday": {model.TimeSlotAm}, "tuesday": {model.TimeSlotEd}},
	}

	resolved, err := svc.ApplicableSlots(context.Background(), "RSI", sel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 records, got %d", len(resolved))
	}
	if resolved[0].DayOfWeek != model.Tuesday || resolved[1].DayOfWeek != model.Monday {
		t.Errorf("caller order not preserved: %v, %v", resolved[0].DayOfWeek, resolved[1].DayOfWeek)
	}
	if resolved[1].AmStart == nil || *resolved[1].AmStart != "08:30" {
		t.Errorf("expected Monday AM start 08:30, got %v", resolved[1].AmStart)
	}
	if resolved[0].AmStart != nil {
		t.Errorf("Tuesday AM was not requested, got %v", *resolved[0].AmStart)
	}
}

func TestUpdateRegimeTimes_ValidationFailureIsBatched(t *testing.T) {
	svc := newTestService(&mockActivitiesAPI{}, nil, testConfig(t))

	submission := map[string]model.SessionTimes{
		"MONDAY-AM":  times(11, 0, 9, 0),  // end before start
		"TUESDAY-PM": times(14, 0, 14, 0), // end equals start
	}

	_, err := svc.UpdateRegimeTimes(context.Background(), "RSI", submission)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if appErr.Details["fields"] == nil {
		t.Fatal("expected field-keyed failures in details")
	}
}

func TestUpdateRegimeTimes_PersistsAndPublishes(t *testing.T) {
	var persisted []model.RegimeDay
	api := &mockActivitiesAPI{
		getRegimeFunc: func(ctx context.Context, prisonCode string) ([]model.RegimeDay, error) {
			return fullRegime(prisonCode), nil
		},
		updateRegimeFunc: func(ctx context.Context, prisonCode string, regime []model.RegimeDay) ([]model.RegimeDay, error) {
			persisted = regime
			return regime, nil
		},
	}
	producer := &mockPublisher{}
	svc := newTestService(api, producer, testConfig(t))

	submission := map[string]model.SessionTimes{
		"MONDAY-AM": times(9, 21, 11, 37),
	}

	updated, err := svc.UpdateRegimeTimes(context.Background(), "RSI", submission)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(persisted) != 7 {
		t.Fatalf("expected the full 7-day table upstream, got %d rows", len(persisted))
	}
	if persisted[0].AmStart != "09:21" || persisted[0].AmFinish != "11:37" {
		t.Errorf("Monday AM not replaced: %s-%s", persisted[0].AmStart, persisted[0].AmFinish)
	}
	if persisted[0].PmStart != "13:45" {
		t.Errorf("unsubmitted band should keep its time, got %s", persisted[0].PmStart)
	}
	if persisted[1].AmStart != "08:30" {
		t.Errorf("other days should be untouched, got %s", persisted[1].AmStart)
	}
	if len(updated) != 7 {
		t.Fatalf("expected updated table back, got %d rows", len(updated))
	}

	if len(producer.published) != 1 {
		t.Fatalf("expected one event, got %d", len(producer.published))
	}
	event := producer.published[0]
	if event.Key != "RSI" {
		t.Errorf("expected prison code key, got %q", event.Key)
	}
	if event.GetEventType() != EventRegimeUpdated {
		t.Errorf("expected %s, got %s", EventRegimeUpdated, event.GetEventType())
	}
}

func TestUpdateRegimeTimes_PublishFailureDoesNotFailRequest(t *testing.T) {
	api := &mockActivitiesAPI{
		getRegimeFunc: func(ctx context.Context, prisonCode string) ([]model.RegimeDay, error) {
			return fullRegime(prisonCode), nil
		},
	}
	producer := &mockPublisher{err: errors.New("broker unreachable")}
	svc := newTestService(api, producer, testConfig(t))

	_, err := svc.UpdateRegimeTimes(context.Background(), "RSI", map[string]model.SessionTimes{
		"FRIDAY-ED": times(18, 0, 20, 0),
	})
	if err != nil {
		t.Fatalf("publish failure must not surface, got %v", err)
	}
}

func TestUpdateRegimeTimes_OrderingViolationFlagsEarlierBand(t *testing.T) {
	svc := newTestService(&mockActivitiesAPI{}, nil, testConfig(t))

	// PM starts before AM on the same day.
	submission := map[string]model.SessionTimes{
		"FRIDAY-AM": times(14, 0, 15, 0),
		"FRIDAY-PM": times(13, 0, 16, 0),
	}

	_, err := svc.UpdateRegimeTimes(context.Background(), "RSI", submission)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}
