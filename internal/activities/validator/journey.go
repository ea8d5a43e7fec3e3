package validator

import (
	"fmt"

	"actman/pkg/logger"
	"actman/pkg/model"
	"actman/pkg/schedule"

	"github.com/go-playground/validator/v10"
)

// SessionTimesPrefix scopes activity session-time field names, giving
// keys like "startTimes-sessionTimes-MONDAY-AM".
const SessionTimesPrefix = "sessionTimes"

type JourneyValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewJourneyValidator(log *logger.Logger) *JourneyValidator {
	v := validator.New()

	log.Info("Journey validator initialized successfully")

	return &JourneyValidator{
		validate: v,
		logger:   log,
	}
}

// ValidateJourney checks the structural constraints on a journey before
// it is stored: prison code shape and schedule weeks range.
func (jv *JourneyValidator) ValidateJourney(journey *model.Journey) []schedule.FieldError {
	var failures []schedule.FieldError

	if err := jv.validate.Struct(journey); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrs {
				failures = append(failures, schedule.FieldError{
					Field:   fieldErr.Field(),
					Message: jv.messageFor(fieldErr),
				})
			}
		} else {
			failures = append(failures, schedule.FieldError{
				Field:   "journey",
				Message: err.Error(),
			})
		}
	}

	return failures
}

// ValidateSelection checks a slot selection submitted for one wizard
// step: every day name must be recognised, every band list must hang
// off a selected day, and every selected day must carry at least one
// band. A day submitted with an explicit empty band list is clearing
// its sessions and is allowed through.
func (jv *JourneyValidator) ValidateSelection(sel model.SlotSelection) []schedule.FieldError {
	var failures []schedule.FieldError

	if err := jv.validate.Struct(sel); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrs {
				failures = append(failures, schedule.FieldError{
					Field:   fieldErr.Field(),
					Message: jv.messageFor(fieldErr),
				})
			}
		}
	}

	selected := make(map[model.DayOfWeek]bool, len(sel.Days))
	for _, name := range sel.Days {
		day, ok := model.ParseDayOfWeek(name)
		if !ok {
			failures = append(failures, schedule.FieldError{
				Field:   "days",
				Message: fmt.Sprintf("Unknown day: %s", name),
			})
			continue
		}
		if selected[day] {
			continue
		}
		selected[day] = true

		if _, present := sel.BandsEntry(day); !present {
			failures = append(failures, schedule.FieldError{
				Field:   "timeSlots-" + day.FormName(),
				Message: fmt.Sprintf("Select at least one session for %s", day.Title()),
			})
		}
	}

	for name := range sel.TimeSlots {
		day, ok := model.ParseDayOfWeek(name)
		if !ok {
			failures = append(failures, schedule.FieldError{
				Field:   "timeSlots",
				Message: fmt.Sprintf("Unknown day: %s", name),
			})
			continue
		}
		if !selected[day] {
			failures = append(failures, schedule.FieldError{
				Field:   "timeSlots",
				Message: fmt.Sprintf("Sessions chosen for %s but the day is not selected", day.Title()),
			})
		}
	}

	return failures
}

// ValidateCustomTimes checks a batch of submitted session times: each
// hour and minute present and in range, every end after its start, and
// band starts increasing within each day. Violations on an ordering rule
// are reported against the later band's start field.
func (jv *JourneyValidator) ValidateCustomTimes(times map[string]model.SessionTimes) []schedule.FieldError {
	var failures []schedule.FieldError
	var entries []schedule.SessionTimeEntry

	for _, day := range model.DaysOfWeek {
		for _, band := range model.TimeSlots {
			key := model.SessionKey(day, band)
			submitted, ok := times[key]
			if !ok {
				continue
			}

			entry := schedule.SessionTimeEntry{Day: day, Slot: band}

			if problems := submitted.Start.Validate(); len(problems) > 0 {
				for _, problem := range problems {
					failures = append(failures, schedule.FieldError{
						Field:   fmt.Sprintf("startTimes-%s-%s", SessionTimesPrefix, key),
						Message: problem,
					})
				}
			} else {
				entry.Start = submitted.Start.IsoString()
			}

			if problems := submitted.End.Validate(); len(problems) > 0 {
				for _, problem := range problems {
					failures = append(failures, schedule.FieldError{
						Field:   fmt.Sprintf("endTimes-%s-%s", SessionTimesPrefix, key),
						Message: problem,
					})
				}
			} else {
				entry.End = submitted.End.IsoString()
			}

			entries = append(entries, entry)
		}
	}

	failures = append(failures, schedule.ValidateSessionTimes(SessionTimesPrefix, entries)...)
	return failures
}

func (jv *JourneyValidator) messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fieldErr.Param())
	default:
		return fmt.Sprintf("Failed validation: %s", fieldErr.Tag())
	}
}
