package errbag

import (
	"fmt"

	"go.inout.gg/foundations/must"
)

// Group reshapes a flat list of failures into a bag, preserving order: the
// bag's fields appear in the order of each field's first failure, and each
// field's messages keep the order in which its failures occurred.
//
// Group makes a single pass over failures and always returns a fresh bag,
// even for empty input.
func Group(failures []Failure) *Bag {
	bag := newBag(len(failures))

	for _, f := range failures {
		bag.Add(f.Field, f.Message)
	}

	return bag
}

// Collect validates entity with v and reshapes the reported failures into a
// bag via Group.
//
// A validator that reports no failures, including one returning a nil
// result, yields an empty bag. Collect returns an error wrapping
// ErrInvalidArgument if v or entity is nil.
func Collect(v Validator, entity any) (*Bag, error) {
	if v == nil {
		return nil, fmt.Errorf("errbag: validator must not be nil: %w", ErrInvalidArgument)
	}

	if entity == nil {
		return nil, fmt.Errorf("errbag: entity must not be nil: %w", ErrInvalidArgument)
	}

	result := v.Validate(entity)
	if !result.Failed() {
		return New(), nil
	}

	d("validator reported %d failure(s)", len(result.Failures))

	return Group(result.Failures), nil
}

// MustCollect is like Collect, but panics on error.
func MustCollect(v Validator, entity any) *Bag {
	return must.Must(Collect(v, entity))
}
