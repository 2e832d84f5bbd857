package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"turnero/pkg/clock"
	"turnero/pkg/logger"
	"turnero/pkg/model"
)

// Tenant codes double as document ids and URL segments: lowercase slug,
// digits and hyphens only.
var tenantCodeRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

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

type TenantValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewTenantValidator(log *logger.Logger) *TenantValidator {
	v := validator.New()

	if err := v.RegisterValidation("tenant_code", validateTenantCode); err != nil {
		log.Fatal("Failed to register 'tenant_code' validator",
			"error", err,
		)
	}
	if err := v.RegisterValidation("clock_time", validateClockTime); err != nil {
		log.Fatal("Failed to register 'clock_time' validator",
			"error", err,
		)
	}

	return &TenantValidator{
		validate: v,
		logger:   log,
	}
}

func validateTenantCode(fl validator.FieldLevel) bool {
	return tenantCodeRegex.MatchString(fl.Field().String())
}

func validateClockTime(fl validator.FieldLevel) bool {
	return clock.IsClockTime(fl.Field().String())
}

func (v *TenantValidator) Validate(t *model.Tenant) error {
	if err := v.validate.Struct(t); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translate(validationErrs)
		}
		return err
	}
	return nil
}

// ValidateHours checks an hours update, including open < close.
func (v *TenantValidator) ValidateHours(h *model.HoursConfig) error {
	if err := v.validate.Struct(h); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translate(validationErrs)
		}
		return err
	}

	open, _ := clock.ParseMinutes(h.Open)
	close, _ := clock.ParseMinutes(h.Close)
	if open >= close {
		return ValidationErrors{
			ValidationError{
				Field:   "Close",
				Message: "close must be after open",
			},
		}
	}

	for _, ov := range h.Overrides {
		if ov.Open == "" || ov.Close == "" {
			continue
		}
		ovOpen, _ := clock.ParseMinutes(ov.Open)
		ovClose, _ := clock.ParseMinutes(ov.Close)
		if ovOpen >= ovClose {
			return ValidationErrors{
				ValidationError{
					Field:   "Overrides",
					Message: fmt.Sprintf("weekday %d override close must be after open", ov.Weekday),
				},
			}
		}
	}
	return nil
}

func (v *TenantValidator) translate(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +5491122334455)", err.Field())
		case "tenant_code":
			message = fmt.Sprintf("%s must be a lowercase slug (letters, digits, hyphens)", err.Field())
		case "clock_time":
			message = fmt.Sprintf("%s must be in HH:MM 24-hour format", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
