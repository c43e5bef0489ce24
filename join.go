package errbag

import (
	"fmt"
	"strings"
)

// Join flattens the bag into a single string, concatenating every message
// with sep: field insertion order first, then per-field message order. A
// single message is returned unmodified.
//
// Join returns an error wrapping ErrInvalidArgument if the bag is nil, and
// an error wrapping ErrEmptyBag if the bag holds no messages.
func (b *Bag) Join(sep string) (string, error) {
	if b == nil {
		return "", fmt.Errorf("errbag: bag must not be nil: %w", ErrInvalidArgument)
	}

	if b.Count() == 0 {
		return "", fmt.Errorf("errbag: nothing to join: %w", ErrEmptyBag)
	}

	return strings.Join(b.Messages(), sep), nil
}

// MultiLine joins every message in the bag with a newline. The separator is
// fixed so the output is stable across platforms; use Join for a custom one.
func (b *Bag) MultiLine() (string, error) {
	return b.Join("\n")
}
