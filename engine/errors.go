// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package engine

import "fmt"

// Kind classifies a fatal invariant violation per spec.md §7's error
// taxonomy. EmptyStream/EmptyBlock are deliberately absent here: they
// are normal outcomes propagated as ordinary values, never panics.
type Kind int

const (
	// FileOpen: path missing or unreadable, surfaced at table
	// construction.
	FileOpen Kind = iota
	// SchemaMismatch: a projected column index out of bounds, or a
	// type mismatch between a predicate/row builder and the layout it
	// runs against.
	SchemaMismatch
	// CapacityOverflow: a block or bitmap operation exceeded its
	// declared limit; invariants forbid this from ever happening.
	CapacityOverflow
)

func (k Kind) String() string {
	switch k {
	case FileOpen:
		return "FileOpen"
	case SchemaMismatch:
		return "SchemaMismatch"
	case CapacityOverflow:
		return "CapacityOverflow"
	default:
		return "Unknown"
	}
}

// Invariant is the panic value engine code raises for a fatal
// condition, per spec.md §7: "invariant violations abort the query (no
// recovery)". It is still a typed value (not a bare string) so a
// recovering caller can distinguish an engine invariant from any other
// panic and report Kind/Err separately.
type Invariant struct {
	Kind Kind
	Err  error
}

func (i Invariant) Error() string {
	return fmt.Sprintf("engine: %s: %v", i.Kind, i.Err)
}

func (i Invariant) Unwrap() error { return i.Err }

// Raise panics with an Invariant built from kind/err. Call sites use
// this instead of a bare panic(err) so every fatal engine panic carries
// a Kind.
func Raise(kind Kind, err error) {
	errorf("invariant violation: %s: %v", kind, err)
	panic(Invariant{Kind: kind, Err: err})
}

// Raisef is Raise with fmt.Errorf-style formatting.
func Raisef(kind Kind, format string, args ...any) {
	Raise(kind, fmt.Errorf(format, args...))
}

// Recover is deferred by a caller that wants to convert an Invariant
// panic into a returned error instead of letting it unwind the whole
// process; *errp is set only if the recovered panic is an Invariant.
// Any other panic value is re-raised, since Recover's contract is
// specifically about engine invariants, not arbitrary crashes.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if inv, ok := r.(Invariant); ok {
		*errp = inv
		return
	}
	panic(r)
}
