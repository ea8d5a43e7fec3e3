package service

import (
	"context"
	"strconv"
	"time"

	"actman/pkg/client"
	"actman/pkg/config"
	apperrors "actman/pkg/errors"
	"actman/pkg/kafka"
	"actman/pkg/middleware"
	"actman/pkg/model"
	"actman/pkg/schedule"
)

const (
	TopicAllocations       = "activities.allocations"
	EventAllocationAmended = "allocation.amended"
)

// ActivitiesAPI is the slice of the upstream client the allocation
// service touches.
type ActivitiesAPI interface {
	GetAllocation(ctx context.Context, allocationID int) (*model.Allocation, error)
	GetActivitySchedule(ctx context.Context, scheduleID int) (*model.ActivitySchedule, error)
	UpdateAllocation(ctx context.Context, prisonCode string, allocationID int, update client.AllocationUpdateRequest) error
}

// EventPublisher publishes domain events after successful updates.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// AllocationAmendedEvent is the payload published after an exclusion
// change.
type AllocationAmendedEvent struct {
	AllocationID   int          `json:"allocationId"`
	PrisonCode     string       `json:"prisonCode"`
	PrisonerNumber string       `json:"prisonerNumber"`
	Exclusions     []model.Slot `json:"exclusions"`
}

// ExclusionsResult reports an exclusion update: the exclusions actually
// recorded (the request clipped to the schedule) and the sessions the
// prisoner still attends.
type ExclusionsResult struct {
	AllocationID int          `json:"allocationId"`
	Exclusions   []model.Slot `json:"exclusions"`
	Attendable   []model.Slot `json:"attendable"`
}

type AllocationService interface {
	UpdateExclusions(ctx context.Context, allocationID int, exclusions []model.Slot) (*ExclusionsResult, error)
	CurrentWeek(startDate string, scheduleWeeks int) (*int, error)
}

type allocationService struct {
	api      ActivitiesAPI
	producer EventPublisher
	cfg      *config.Config
}

func NewAllocationService(api ActivitiesAPI, producer EventPublisher, cfg *config.Config) AllocationService {
	return &allocationService{
		api:      api,
		producer: producer,
		cfg:      cfg,
	}
}

// UpdateExclusions replaces an allocation's exclusion set. The requested
// exclusions are clipped to the sessions the schedule actually runs, so
// excluding a day+band the schedule never uses is a no-op rather than an
// error, and applying the same request twice records the same set.
func (s *allocationService) UpdateExclusions(ctx context.Context, allocationID int, exclusions []model.Slot) (*ExclusionsResult, error) {
	allocation, err := s.api.GetAllocation(ctx, allocationID)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch allocation", "allocation_id", allocationID, "error", err)
		return nil, apperrors.Internal("Failed to fetch allocation", err)
	}
	if allocation == nil {
		return nil, apperrors.NotFoundWithID("Allocation", strconv.Itoa(allocationID))
	}

	sched, err := s.api.GetActivitySchedule(ctx, allocation.ScheduleID)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch activity schedule", "schedule_id", allocation.ScheduleID, "error", err)
		return nil, apperrors.Internal("Failed to fetch activity schedule", err)
	}
	if sched == nil {
		return nil, apperrors.NotFoundWithID("Activity schedule", strconv.Itoa(allocation.ScheduleID))
	}

	base := schedule.FromActivityScheduleSlots(sched.Slots, s.cfg.Classifier())
	attendable := schedule.SubtractSlots(base, exclusions)
	recorded := schedule.SubtractSlots(base, attendable)

	update := client.AllocationUpdateRequest{Exclusions: recorded}
	if err := s.api.UpdateAllocation(ctx, allocation.PrisonCode, allocationID, update); err != nil {
		s.cfg.Log.Error("Failed to update allocation",
			"allocation_id", allocationID,
			"prison_code", allocation.PrisonCode,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to update allocation", err)
	}

	s.publishAllocationAmended(ctx, allocation, recorded)

	s.cfg.Log.Info("Allocation exclusions updated",
		"allocation_id", allocationID,
		"prison_code", allocation.PrisonCode,
		"exclusions", len(recorded),
	)
	return &ExclusionsResult{
		AllocationID: allocationID,
		Exclusions:   recorded,
		Attendable:   attendable,
	}, nil
}

// CurrentWeek positions a schedule rotation in time for a given start
// date, or reports nil for a schedule that has not started yet.
func (s *allocationService) CurrentWeek(startDate string, scheduleWeeks int) (*int, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, apperrors.InvalidInput("Start date must be in YYYY-MM-DD format")
	}
	if scheduleWeeks < 1 || scheduleWeeks > 2 {
		return nil, apperrors.InvalidInput("Schedule weeks must be 1 or 2")
	}

	return schedule.CurrentWeek(start, scheduleWeeks, time.Now()), nil
}

// publishAllocationAmended is best effort: the exclusion change has
// already been persisted, so a publish failure is logged rather than
// surfaced.
func (s *allocationService) publishAllocationAmended(ctx context.Context, allocation *model.Allocation, exclusions []model.Slot) {
	if s.producer == nil {
		return
	}

	msg := kafka.NewMessage().
		WithTopic(TopicAllocations).
		WithKey(strconv.Itoa(allocation.ID)).
		WithValue(AllocationAmendedEvent{
			AllocationID:   allocation.ID,
			PrisonCode:     allocation.PrisonCode,
			PrisonerNumber: allocation.PrisonerNumber,
			Exclusions:     exclusions,
		}).
		WithEventType(EventAllocationAmended).
		WithSource("allocations").
		WithSchemaVersion("1").
		WithCorrelationID(middleware.RequestID(ctx)).
		Build()

	if err := s.producer.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish allocation.amended event",
			"allocation_id", allocation.ID,
			"error", err,
		)
	}
}
