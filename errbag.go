// Package errbag reshapes validation results into an ordered, per-field
// error bag convenient for web forms and JSON APIs.
//
// The package never validates anything itself. It consumes the report of a
// validation engine through the one-method Validator capability and
// regroups it. Group folds a flat list of failures into a Bag keyed by
// field name, and Collect runs a validator before grouping its report.
// Bag.MultiLine flattens a bag into a single printable message.
//
// A Bag preserves insertion order: fields appear in the order they were
// first reported and every field keeps its messages in reported order, so
// rendered output is deterministic. Adapters for common validation engines
// live under contrib; helpers for the HTTP layer live in errbaghttp.
package errbag

import "go.inout.gg/foundations/debug"

//nolint:gochecknoglobals
var d = debug.Debuglog("errbag")
