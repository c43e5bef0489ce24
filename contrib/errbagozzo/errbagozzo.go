// Package errbagozzo adapts github.com/go-ozzo/ozzo-validation results to
// errbag failures.
//
// Ozzo reports errors as a map, so the adapter sorts field names to keep
// the resulting order deterministic. Nested errors are flattened into
// dotted paths, e.g. "address.city".
package errbagozzo

import (
	"errors"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"go.inout.gg/errbag"
)

// Failures converts an error returned by ozzo validation into a flat list
// of failures, fields sorted by name, nested fields flattened into dotted
// paths.
//
// A nil error yields nil. An error that is not a validation.Errors is
// reported as a single failure with an empty field name.
func Failures(err error) []errbag.Failure {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return []errbag.Failure{{Field: "", Message: err.Error()}}
	}

	return flatten("", verrs, make([]errbag.Failure, 0, len(verrs)))
}

func flatten(prefix string, errs validation.Errors, out []errbag.Failure) []errbag.Failure {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}

	slices.Sort(fields)

	for _, field := range fields {
		err := errs[field]
		if err == nil {
			continue
		}

		name := field
		if prefix != "" {
			name = prefix + "." + field
		}

		var nested validation.Errors
		if errors.As(err, &nested) {
			out = flatten(name, nested, out)

			continue
		}

		out = append(out, errbag.Failure{Field: name, Message: err.Error()})
	}

	return out
}

// Bag converts an error returned by ozzo validation into a bag.
// See Failures for the conversion rules.
func Bag(err error) *errbag.Bag {
	return errbag.Group(Failures(err))
}

// Collector returns a validator for errbag.Collect that validates entities
// via validation.Validate. Entities are expected to implement
// validation.Validatable; anything else passes validation untouched.
func Collector() errbag.Validator {
	return errbag.ValidatorFunc(func(entity any) *errbag.Result {
		err := validation.Validate(entity)
		if err == nil {
			return nil
		}

		return &errbag.Result{Failures: Failures(err)}
	})
}
