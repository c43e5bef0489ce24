package errbag

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
)

var (
	_ fmt.Stringer = (*Bag)(nil)
)

// Bag is an ordered mapping from field name to the messages reported for
// that field.
//
// A bag preserves insertion order: fields iterate in the order they were
// first added and every field keeps its messages in the order they were
// appended. Each call to Group or Collect constructs a fresh bag owned
// solely by the caller; bags are never shared or mutated by this package
// after being returned.
//
// The zero value is an empty bag ready for use, though New is the usual
// constructor. A Bag is not safe for concurrent mutation.
type Bag struct {
	messages map[string][]string
	fields   []string
	count    int
}

// New creates an empty bag.
func New() *Bag {
	return &Bag{messages: make(map[string][]string)}
}

func newBag(capacity int) *Bag {
	return &Bag{
		messages: make(map[string][]string, capacity),
		fields:   make([]string, 0, capacity),
	}
}

// Add appends message to the field's message sequence, creating the field on
// first occurrence. Later additions for a known field never change the
// field's position.
func (b *Bag) Add(field, message string) {
	if b.messages == nil {
		b.messages = make(map[string][]string)
	}

	if _, ok := b.messages[field]; !ok {
		b.fields = append(b.fields, field)
	}

	b.messages[field] = append(b.messages[field], message)
	b.count++
}

// Len returns the number of fields in the bag.
func (b *Bag) Len() int {
	if b == nil {
		return 0
	}

	return len(b.fields)
}

// Count returns the total number of messages across all fields.
func (b *Bag) Count() int {
	if b == nil {
		return 0
	}

	return b.count
}

// Has reports whether the bag holds at least one message for field.
func (b *Bag) Has(field string) bool {
	if b == nil {
		return false
	}

	_, ok := b.messages[field]

	return ok
}

// Get returns the messages recorded for field, in insertion order, or nil if
// the field is absent. The returned slice is shared with the bag and must be
// treated as read-only.
func (b *Bag) Get(field string) []string {
	if b == nil {
		return nil
	}

	return b.messages[field]
}

// Fields returns the field names in insertion order, or nil for an empty
// bag. The returned slice is a copy and may be freely modified.
func (b *Bag) Fields() []string {
	if b.Len() == 0 {
		return nil
	}

	return slices.Clone(b.fields)
}

// Messages flattens every message in the bag into a single slice: field
// insertion order first, then per-field message order.
func (b *Bag) Messages() []string {
	if b.Count() == 0 {
		return nil
	}

	out := make([]string, 0, b.count)
	for _, field := range b.fields {
		out = append(out, b.messages[field]...)
	}

	return out
}

// Failures converts the bag back into a flat list of failures, field
// insertion order first, then per-field message order. Group(b.Failures())
// reproduces the bag.
func (b *Bag) Failures() []Failure {
	if b.Count() == 0 {
		return nil
	}

	out := make([]Failure, 0, b.count)
	for _, field := range b.fields {
		for _, message := range b.messages[field] {
			out = append(out, Failure{Field: field, Message: message})
		}
	}

	return out
}

// Equal reports whether two bags hold the same fields in the same order with
// the same ordered messages. A nil bag is equal to an empty bag.
func (b *Bag) Equal(other *Bag) bool {
	if b == nil || other == nil {
		return b.Len() == other.Len()
	}

	if !slices.Equal(b.fields, other.fields) {
		return false
	}

	for _, field := range b.fields {
		if !slices.Equal(b.messages[field], other.messages[field]) {
			return false
		}
	}

	return true
}

// String returns a compact human-readable representation for debugging.
func (b *Bag) String() string {
	if b == nil {
		return "errbag.Bag(nil)"
	}

	var sb strings.Builder

	sb.WriteString("errbag.Bag{")

	for i, field := range b.fields {
		if i > 0 {
			sb.WriteString(", ")
		}

		fmt.Fprintf(&sb, "%s: %q", field, b.messages[field])
	}

	sb.WriteByte('}')

	return sb.String()
}

// MarshalJSONTo encodes the bag as a JSON object whose member order matches
// the bag's field order, each member holding the field's messages as an
// array of strings.
func (b *Bag) MarshalJSONTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}

	for _, field := range b.fields {
		if err := enc.WriteToken(jsontext.String(field)); err != nil {
			return err
		}

		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}

		for _, message := range b.messages[field] {
			if err := enc.WriteToken(jsontext.String(message)); err != nil {
				return err
			}
		}

		if err := enc.WriteToken(jsontext.EndArray); err != nil {
			return err
		}
	}

	return enc.WriteToken(jsontext.EndObject)
}

// UnmarshalJSONFrom decodes a JSON object of string arrays, preserving the
// member order of the document. Decoded entries are added to the bag,
// allowing several documents to accumulate into one bag.
func (b *Bag) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}

	if tok.Kind() != '{' {
		return fmt.Errorf("errbag: expected JSON object, got %s", tok.Kind())
	}

	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return err
		}

		// The token is only valid until the next read.
		field := tok.String()

		tok, err = dec.ReadToken()
		if err != nil {
			return err
		}

		if tok.Kind() != '[' {
			return fmt.Errorf("errbag: expected JSON array for field %q, got %s", field, tok.Kind())
		}

		for dec.PeekKind() != ']' {
			tok, err := dec.ReadToken()
			if err != nil {
				return err
			}

			if tok.Kind() != '"' {
				return fmt.Errorf("errbag: expected JSON string for field %q, got %s", field, tok.Kind())
			}

			b.Add(field, tok.String())
		}

		if _, err := dec.ReadToken(); err != nil {
			return err
		}
	}

	_, err = dec.ReadToken()

	return err
}

// MarshalJSON implements encoding/json.Marshaler with the same ordered
// output as MarshalJSONTo.
func (b *Bag) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	if err := b.MarshalJSONTo(jsontext.NewEncoder(&buf)); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON implements encoding/json.Unmarshaler with the same ordered
// semantics as UnmarshalJSONFrom.
func (b *Bag) UnmarshalJSON(data []byte) error {
	return b.UnmarshalJSONFrom(jsontext.NewDecoder(bytes.NewReader(data)))
}
