package validator

import (
	"fmt"
	"regexp"
	"strings"

	"actman/pkg/logger"
	"actman/pkg/model"
	"actman/pkg/schedule"

	"github.com/go-playground/validator/v10"
)

// RegimeTimesPrefix scopes regime form field names, giving keys like
// "startTimes-prisonRegimeTimes-MONDAY-AM".
const RegimeTimesPrefix = "prisonRegimeTimes"

var regimeTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type RegimeValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewRegimeValidator(log *logger.Logger) *RegimeValidator {
	v := validator.New()

	if err := v.RegisterValidation("regime_time", validateRegimeTime); err != nil {
		log.Fatal("Failed to register 'regime_time' validator",
			"error", err,
		)
	}

	log.Info("Regime validator initialized successfully")

	return &RegimeValidator{
		validate: v,
		logger:   log,
	}
}

// validateRegimeTime accepts a zero-padded "HH:MM" or the unset marker.
func validateRegimeTime(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == model.UnsetTime || regimeTimeRegex.MatchString(value)
}

// ValidateTable checks a full regime table: one record per weekday, all
// seven present, every time field well formed, and each band's start and
// finish either both set or both unset.
func (rv *RegimeValidator) ValidateTable(days []model.RegimeDay) ValidationErrors {
	var failures ValidationErrors

	if len(days) != len(model.DaysOfWeek) {
		failures = append(failures, ValidationError{
			Field:   "regime",
			Message: fmt.Sprintf("A regime must cover all 7 days, got %d", len(days)),
		})
	}

	seen := make(map[model.DayOfWeek]bool, len(days))
	for _, day := range days {
		if seen[day.DayOfWeek] {
			failures = append(failures, ValidationError{
				Field:   string(day.DayOfWeek),
				Message: "Day appears more than once in the regime table",
			})
		}
		seen[day.DayOfWeek] = true

		if err := rv.validate.Struct(day); err != nil {
			if validationErrs, ok := err.(validator.ValidationErrors); ok {
				for _, fieldErr := range validationErrs {
					failures = append(failures, ValidationError{
						Field:   fmt.Sprintf("%s-%s", day.DayOfWeek, fieldErr.Field()),
						Message: rv.messageFor(fieldErr),
					})
				}
			} else {
				failures = append(failures, ValidationError{
					Field:   string(day.DayOfWeek),
					Message: err.Error(),
				})
			}
		}

		for _, band := range model.TimeSlots {
			start, finish := day.BandTimes(band)
			if (start == model.UnsetTime) != (finish == model.UnsetTime) {
				failures = append(failures, ValidationError{
					Field:   fmt.Sprintf("%s-%s", day.DayOfWeek, band),
					Message: "Session start and finish must be set together",
				})
			}
		}
	}

	return failures
}

func (rv *RegimeValidator) messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required"
	case "regime_time":
		return "Enter a time in HH:MM format"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fieldErr.Param())
	default:
		return fmt.Sprintf("Failed validation: %s", fieldErr.Tag())
	}
}

// ValidateTimes checks a submitted whole-week times map: each hour and
// minute field present and in range, every end after its start, and band
// starts increasing within each day. Entries with incomplete times get
// their field errors and sit out the chronology checks.
func (rv *RegimeValidator) ValidateTimes(times map[string]model.SessionTimes) []schedule.FieldError {
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
						Field:   fmt.Sprintf("startTimes-%s-%s", RegimeTimesPrefix, key),
						Message: problem,
					})
				}
			} else {
				entry.Start = submitted.Start.IsoString()
			}

			if problems := submitted.End.Validate(); len(problems) > 0 {
				for _, problem := range problems {
					failures = append(failures, schedule.FieldError{
						Field:   fmt.Sprintf("endTimes-%s-%s", RegimeTimesPrefix, key),
						Message: problem,
					})
				}
			} else {
				entry.End = submitted.End.IsoString()
			}

			entries = append(entries, entry)
		}
	}

	failures = append(failures, schedule.ValidateRegimeTimes(RegimeTimesPrefix, entries)...)
	return failures
}
