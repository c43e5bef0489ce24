package errbag

var (
	_ error     = (*Failure)(nil)
	_ Validator = (ValidatorFunc)(nil)
)

// Failure describes a single reported problem with one field of an entity.
//
// Failures are produced by a validation engine (or one of the adapters under
// contrib); this package only ever reads them.
type Failure struct {
	// Field is the name of the field that failed validation.
	Field string `json:"field"`

	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error returns the human-readable message describing the failure.
func (f *Failure) Error() string { return f.Message }

// Result is the report produced by a Validator for a single entity.
//
// A nil Result and a Result with no failures both mean the entity passed.
type Result struct {
	// Failures holds every reported failure in the order the engine
	// encountered them.
	Failures []Failure
}

// Failed reports whether the result carries at least one failure.
func (r *Result) Failed() bool { return r != nil && len(r.Failures) > 0 }

//go:generate mockgen -destination validator_mock.go -package errbag . Validator

// Validator is the capability expected from a validation engine.
//
// Implementations wrap concrete engines; see contrib for ready-made adapters.
// A Validator must not retain the entity after Validate returns.
type Validator interface {
	// Validate inspects entity and returns the report.
	//
	// Returning nil is equivalent to returning a report with no failures.
	Validate(entity any) *Result
}

// ValidatorFunc is a function adapter that implements the Validator interface.
// It allows using ordinary functions as validators.
type ValidatorFunc func(entity any) *Result

// Validate calls fn with entity.
func (fn ValidatorFunc) Validate(entity any) *Result { return fn(entity) }
