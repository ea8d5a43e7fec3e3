package service

import (
	"context"

	"actman/internal/regimes/validator"
	"actman/pkg/config"
	apperrors "actman/pkg/errors"
	"actman/pkg/kafka"
	"actman/pkg/middleware"
	"actman/pkg/model"
	"actman/pkg/schedule"
)

const (
	TopicRegimes       = "activities.prison-regime"
	EventRegimeUpdated = "regime.updated"
)

// ActivitiesAPI is the slice of the upstream client the regime service
// touches.
type ActivitiesAPI interface {
	GetPrisonRegime(ctx context.Context, prisonCode string) ([]model.RegimeDay, error)
	UpdatePrisonRegime(ctx context.Context, prisonCode string, regime []model.RegimeDay) ([]model.RegimeDay, error)
}

// EventPublisher publishes domain events after successful updates.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// RegimeUpdatedEvent is the payload published after a regime change.
type RegimeUpdatedEvent struct {
	PrisonCode string            `json:"prisonCode"`
	Regime     []model.RegimeDay `json:"regime"`
}

type RegimeService interface {
	GetRegime(ctx context.Context, prisonCode string) ([]model.RegimeDay, error)
	ApplicableSlots(ctx context.Context, prisonCode string, sel model.SlotSelection) ([]model.DaysAndSlotsInRegime, error)
	UpdateRegimeTimes(ctx context.Context, prisonCode string, times map[string]model.SessionTimes) ([]model.RegimeDay, error)
}

type regimeService struct {
	api       ActivitiesAPI
	validator *validator.RegimeValidator
	producer  EventPublisher
	cfg       *config.Config
}

func NewRegimeService(
	api ActivitiesAPI,
	regimeValidator *validator.RegimeValidator,
	producer EventPublisher,
	cfg *config.Config,
) RegimeService {
	return &regimeService{
		api:       api,
		validator: regimeValidator,
		producer:  producer,
		cfg:       cfg,
	}
}

// GetRegime returns the prison's regime table. A prison with no regime
// configured upstream gets the all-unset table, so the caller always has
// seven rows to render.
func (s *regimeService) GetRegime(ctx context.Context, prisonCode string) ([]model.RegimeDay, error) {
	if prisonCode == "" {
		return nil, apperrors.InvalidInput("Prison code cannot be empty")
	}

	regime, err := s.api.GetPrisonRegime(ctx, prisonCode)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch prison regime", "prison_code", prisonCode, "error", err)
		return nil, apperrors.Internal("Failed to fetch prison regime", err)
	}

	return regime, nil
}

func (s *regimeService) ApplicableSlots(ctx context.Context, prisonCode string, sel model.SlotSelection) ([]model.DaysAndSlotsInRegime, error) {
	regime, err := s.GetRegime(ctx, prisonCode)
	if err != nil {
		return nil, err
	}

	return schedule.ApplicableRegimeSlots(regime, sel), nil
}

// UpdateRegimeTimes validates a whole-week times submission, replaces the
// affected band times in the prison's regime table, persists the table
// upstream and publishes a regime.updated event.
func (s *regimeService) UpdateRegimeTimes(ctx context.Context, prisonCode string, times map[string]model.SessionTimes) ([]model.RegimeDay, error) {
	if prisonCode == "" {
		return nil, apperrors.InvalidInput("Prison code cannot be empty")
	}
	if len(times) == 0 {
		return nil, apperrors.InvalidInput("No session times submitted")
	}

	if failures := s.validator.ValidateTimes(times); len(failures) > 0 {
		return nil, apperrors.FieldValidation("Session times failed validation", failures)
	}

	current, err := s.api.GetPrisonRegime(ctx, prisonCode)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch prison regime", "prison_code", prisonCode, "error", err)
		return nil, apperrors.Internal("Failed to fetch prison regime", err)
	}

	updated := schedule.BuildRegimeUpdate(current, times)
	if failures := s.validator.ValidateTable(updated); len(failures) > 0 {
		return nil, apperrors.FieldValidation("Regime table failed validation", failures)
	}

	persisted, err := s.api.UpdatePrisonRegime(ctx, prisonCode, updated)
	if err != nil {
		s.cfg.Log.Error("Failed to update prison regime", "prison_code", prisonCode, "error", err)
		return nil, apperrors.Internal("Failed to update prison regime", err)
	}

	s.publishRegimeUpdated(ctx, prisonCode, persisted)

	s.cfg.Log.Info("Prison regime updated",
		"prison_code", prisonCode,
		"bands_changed", len(times),
	)
	return persisted, nil
}

// publishRegimeUpdated is best effort: the regime change has already been
// persisted, so a publish failure is logged rather than surfaced.
func (s *regimeService) publishRegimeUpdated(ctx context.Context, prisonCode string, regime []model.RegimeDay) {
	if s.producer == nil {
		return
	}

	msg := kafka.NewMessage().
		WithTopic(TopicRegimes).
		WithKey(prisonCode).
		WithValue(RegimeUpdatedEvent{PrisonCode: prisonCode, Regime: regime}).
		WithEventType(EventRegimeUpdated).
		WithSource("regimes").
		WithSchemaVersion("1").
		WithCorrelationID(middleware.RequestID(ctx)).
		Build()

	if err := s.producer.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish regime.updated event",
			"prison_code", prisonCode,
			"error", err,
		)
	}
}
