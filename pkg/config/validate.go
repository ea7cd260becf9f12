package config

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/ajxudir/pkgsync/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// ValidationError describes one invalid config field.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns "field: message".
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult holds every problem found by Validate.
type ValidationResult struct {
	Errors []ValidationError
}

// HasErrors reports whether validation found any problem.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorMessages formats all errors as an indented list.
//
// Returns:
//   - string: The formatted list, "" when there are no errors
func (r *ValidationResult) ErrorMessages() string {
	if len(r.Errors) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, "  - "+e.Error())
	}
	return "Configuration validation failed:\n" + strings.Join(msgs, "\n")
}

func (r *ValidationResult) add(field, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

var structValidator = newStructValidator()

// newStructValidator reports fields by their config key and adds the
// "nonblank" rule for strings that must contain more than whitespace.
func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Check collects every validation problem in c, in field order.
//
// Returns:
//   - *ValidationResult: Never nil
func (c *Config) Check() *ValidationResult {
	r := &ValidationResult{}

	err := structValidator.Struct(c)
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		if err != nil {
			r.add("", "%v", err)
		}
		return r
	}

	for _, fe := range fieldErrs {
		// Namespace is "Config.install.command"; drop the type name.
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		switch {
		case fe.Tag() == "nonblank":
			r.add(field, "must not be empty")
		case fe.Tag() == "min" && fe.Param() == "0":
			r.add(field, "must not be negative, got %v", fe.Value())
		case fe.Tag() == "min":
			r.add(field, "must be at least %s, got %v", fe.Param(), fe.Value())
		default:
			r.add(field, "failed %q check", fe.Tag())
		}
	}
	return r
}

// Validate checks c and returns a single error suitable for the CLI.
//
// An invalid concurrency alone yields *errors.InvalidConcurrencyError so it
// is reported the same way as a bad --concurrency flag. Other problems are
// returned as an *errors.ExitError with ExitConfigError.
//
// Returns:
//   - error: nil when c is valid
func (c *Config) Validate() error {
	r := c.Check()
	if !r.HasErrors() {
		return nil
	}
	if len(r.Errors) == 1 && r.Errors[0].Field == "concurrency" {
		return errors.NewInvalidConcurrencyError(c.Concurrency)
	}
	return errors.NewExitErrorf(errors.ExitConfigError, "%s", r.ErrorMessages())
}
