package entities

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError describes one invalid field of a record.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field of a record.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	b.WriteString("entities validation failed:\n")
	for _, err := range e {
		b.WriteString("  - ")
		b.WriteString(err.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
			return IsKnownGenre(fl.Field().String())
		})
		validate.RegisterStructValidation(yearRangeValidation, Entities{})
	})
	return validate
}

func yearRangeValidation(sl validator.StructLevel) {
	e := sl.Current().Interface().(Entities)
	if e.YearStart != nil && e.YearEnd != nil && *e.YearStart > *e.YearEnd {
		sl.ReportError(e.YearStart, "year_start", "YearStart", "yearorder", "")
	}
}

// Validate checks the record shape an extraction service promises.
//
// The query generator does not call Validate; malformed records flow through it and
// usually produce an empty result set. Callers that want to reject them up front do.
func (e *Entities) Validate() error {
	if e == nil {
		return ValidationErrors{{Field: "entities", Message: "must not be nil"}}
	}

	err := validatorInstance().Struct(e)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate entities; %w", err)
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{
			Field:   fieldName(fe),
			Message: fieldMessage(fe),
		})
	}
	return errs
}

func fieldName(fe validator.FieldError) string {
	switch fe.StructField() {
	case "YearStart":
		return "year_start"
	case "YearEnd":
		return "year_end"
	}
	// Namespace is Entities.Genre[1]; drop the struct prefix.
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx != -1 {
		ns = ns[idx+1:]
	}
	return strings.ToLower(ns)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "genre":
		return fmt.Sprintf("unknown genre %q", fe.Value())
	case "yearorder":
		return "must not be after year_end"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
