package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"jobinsight/internal/config"
	apierrors "jobinsight/internal/errors"
	"jobinsight/internal/infrastructure"
)

// DashboardQuery holds the experience filter shared by the page and the API
type DashboardQuery struct {
	Experience string `json:"experience" validate:"max=128,printable"`
}

// ExportQuery selects the aggregate view to export
type ExportQuery struct {
	Experience string `json:"experience" validate:"max=128,printable"`
	View       string `json:"view" validate:"omitempty,oneof=words skills salary sentiment"`
}

// PreviewQuery bounds the number of preview rows
type PreviewQuery struct {
	Limit int `json:"limit" validate:"omitempty,min=1,max=100"`
}

// QueryValidator binds and validates query parameters with struct tags
type QueryValidator struct {
	validator *validator.Validate
	logger    *slog.Logger
}

// NewQueryValidator creates a new query validator
func NewQueryValidator(logger *slog.Logger) *QueryValidator {
	v := validator.New()

	_ = v.RegisterValidation("printable", isPrintable)

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if logger == nil {
		logger = slog.Default()
	}

	return &QueryValidator{
		validator: v,
		logger:    infrastructure.WithComponent(logger, "query_validator"),
	}
}

// Dashboard reads ?experience=
func (v *QueryValidator) Dashboard(r *http.Request) (DashboardQuery, error) {
	q := DashboardQuery{Experience: strings.TrimSpace(r.URL.Query().Get(config.ExperienceParam))}
	return q, v.ValidateStruct(q)
}

// Export reads ?experience= and ?view=
func (v *QueryValidator) Export(r *http.Request) (ExportQuery, error) {
	values := r.URL.Query()
	q := ExportQuery{
		Experience: strings.TrimSpace(values.Get(config.ExperienceParam)),
		View:       strings.ToLower(strings.TrimSpace(values.Get(config.ExportViewParam))),
	}
	return q, v.ValidateStruct(q)
}

// Preview reads ?limit=. A missing limit is zero.
func (v *QueryValidator) Preview(r *http.Request) (PreviewQuery, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(config.PreviewLimitParam))
	if raw == "" {
		return PreviewQuery{}, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return PreviewQuery{}, apierrors.ErrValidation(config.PreviewLimitParam, "limit must be a valid integer")
	}

	q := PreviewQuery{Limit: limit}
	if limit == 0 {
		return q, apierrors.ErrValidation(config.PreviewLimitParam, "limit must be at least 1")
	}
	return q, v.ValidateStruct(q)
}

// ValidateStruct validates a struct and returns validation errors
func (v *QueryValidator) ValidateStruct(s interface{}) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.InvalidRequestWithError(err)
	}

	validationErrors := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		validationErrors = append(validationErrors, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}

	v.logger.Debug("query validation failed", slog.Int("errors", len(validationErrors)))
	return apierrors.NewValidationErrors(validationErrors)
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "printable":
		return fmt.Sprintf("%s must not contain control characters", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// isPrintable rejects control characters
func isPrintable(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
