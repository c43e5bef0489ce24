package errbag

import "errors"

var (
	// ErrInvalidArgument is reported when a required input, such as a
	// validator or a bag, is nil. It is raised before any processing takes
	// place and is never recovered internally.
	ErrInvalidArgument = errors.New("errbag: invalid argument")

	// ErrEmptyBag is reported when a formatting operation receives a bag
	// with no entries. It signals a usage error by the caller rather than
	// a data error: there is nothing to format.
	ErrEmptyBag = errors.New("errbag: empty bag")
)
