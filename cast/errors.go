// Package cast implements the key-table-walking cast loader: it assembles a
// director.Cast's members, their per-member child chunks, and its script
// context, driving the container and key-table primitives from the director
// package. Grounded on original_source/vm-rust/src/director/cast.rs.
package cast

import "errors"

// ErrMalformedScriptContext marks an Lctx/LctX chunk too short to hold its
// own declared entry count.
var ErrMalformedScriptContext = errors.New("cast: malformed script-context chunk")
