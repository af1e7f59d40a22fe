package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/errors"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

// Validator checks bound request parameters against struct tags. Besides
// the stock tags it knows:
//
//	period   six-digit academic year code
//	level    Undergraduate or Postgraduate
//	feature  a QTS or employment status
//	metric   a comparable percentage column
//	qts      a QTS status
type Validator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewValidator creates a validator with the dashboard's custom tags
func NewValidator(logger *slog.Logger) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterValidation("period", isPeriod)
	v.RegisterValidation("level", isCourseLevel)
	v.RegisterValidation("feature", isFeature)
	v.RegisterValidation("metric", isMetric)
	v.RegisterValidation("qts", isQTSStatus)

	// Report fields by their query parameter name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"query", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	return &Validator{
		validate: v,
		logger:   logger.With(slog.String("component", "validator")),
	}
}

// ValidateStruct validates v and returns an *apierrors.APIError listing
// every failing field, or nil.
func (m *Validator) ValidateStruct(v interface{}) error {
	err := m.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierrors.InvalidRequestWithError(err)
	}

	validationErrors := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		validationErrors = append(validationErrors, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}
	m.logger.Debug("request validation failed", slog.Int("fields", len(validationErrors)))
	return apierrors.NewValidationErrors(validationErrors)
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "dive":
		return fmt.Sprintf("%s contains an invalid entry", field)
	case "period":
		return fmt.Sprintf("%s must be a six digit academic year code such as 201718", field)
	case "level":
		return fmt.Sprintf("%s must be %s or %s", field, domain.CourseUndergraduate, domain.CoursePostgraduate)
	case "feature":
		return fmt.Sprintf("%s must be a QTS or employment status", field)
	case "metric":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(metricNames(), ", "))
	case "qts":
		return fmt.Sprintf("%s must be a QTS status", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, param)
	case "max":
		return fmt.Sprintf("%s must have at most %s entries", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

func metricNames() []string {
	out := make([]string, len(domain.Metrics))
	for i, m := range domain.Metrics {
		out[i] = string(m.Metric)
	}
	return out
}

// Custom validators

func isPeriod(fl validator.FieldLevel) bool {
	_, err := domain.ParsePeriod(fl.Field().String())
	return err == nil
}

func isCourseLevel(fl validator.FieldLevel) bool {
	l, err := domain.ParseCourseLevel(fl.Field().String())
	return err == nil && !l.IsAggregate()
}

func isFeature(fl validator.FieldLevel) bool {
	_, err := domain.ParseFeature(fl.Field().String())
	return err == nil
}

func isMetric(fl validator.FieldLevel) bool {
	_, err := domain.ParseMetric(fl.Field().String())
	return err == nil
}

func isQTSStatus(fl validator.FieldLevel) bool {
	_, err := domain.ParseQTSStatus(fl.Field().String())
	return err == nil
}
