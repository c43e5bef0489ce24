// Package errbagplayground adapts github.com/go-playground/validator
// results to errbag failures.
//
// The adapter preserves the validator's reporting order: fields appear in
// the order the validator visited them, so the resulting bag is stable for
// a given struct definition.
package errbagplayground

import (
	"errors"
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"go.inout.gg/errbag"
)

var _ errbag.Validator = (*collector)(nil)

type Config struct {
	// Translator, if set, localizes each message via FieldError.Translate.
	// Without it messages fall back to FieldError.Error.
	Translator ut.Translator

	// FieldNameFunc maps a field error to the reported field name.
	// Defaults to FieldError.Field.
	FieldNameFunc func(fe validator.FieldError) string
}

func (c *Config) defaults() {
	if c.FieldNameFunc == nil {
		c.FieldNameFunc = func(fe validator.FieldError) string { return fe.Field() }
	}
}

// Failures converts an error returned by validator.Validate into a flat
// list of failures, preserving the validator's field order.
//
// A nil error yields nil. An error that is not a validator.ValidationErrors,
// such as validator.InvalidValidationError, is reported as a single failure
// with an empty field name.
func Failures(err error, config *Config) []errbag.Failure {
	if err == nil {
		return nil
	}

	if config == nil {
		//nolint:exhaustruct
		config = &Config{}
	}

	// Defaults are resolved on a copy; the caller's config is never written.
	cfg := *config
	cfg.defaults()

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []errbag.Failure{{Field: "", Message: err.Error()}}
	}

	failures := make([]errbag.Failure, 0, len(verrs))

	for _, fe := range verrs {
		message := fe.Error()
		if cfg.Translator != nil {
			message = fe.Translate(cfg.Translator)
		}

		failures = append(failures, errbag.Failure{
			Field:   cfg.FieldNameFunc(fe),
			Message: message,
		})
	}

	return failures
}

// Bag converts an error returned by validator.Validate into a bag.
// See Failures for the conversion rules.
func Bag(err error, config *Config) *errbag.Bag {
	return errbag.Group(Failures(err, config))
}

// Collector wraps a validator so it can be used with errbag.Collect.
// The collector validates entities via Validate.Struct.
//
// Defaults are resolved once at construction; later changes to config
// are not observed. The returned validator is safe for concurrent use.
func Collector(v *validator.Validate, config *Config) errbag.Validator {
	if config == nil {
		//nolint:exhaustruct
		config = &Config{}
	}

	cfg := *config
	cfg.defaults()

	return &collector{v: v, config: cfg}
}

type collector struct {
	v      *validator.Validate
	config Config
}

func (c *collector) Validate(entity any) *errbag.Result {
	err := c.v.Struct(entity)
	if err == nil {
		return nil
	}

	return &errbag.Result{Failures: Failures(err, &c.config)}
}

// RegisterJSONTagName configures v to report field names from json struct
// tags. Untagged fields, and fields tagged with "-", fall back to the Go
// field name.
func RegisterJSONTagName(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})
}
