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

package hashtable

// Table is the "general container" of spec.md §4.5: a 64-bit key
// mapping to either a single payload (1:1 joins, aggregation groups)
// or a list of payloads (1:N joins). Build is single-threaded; once
// built, concurrent Get/GetAll from multiple probing goroutines is
// safe, since probing never mutates the table.
type Table[V any] struct {
	m map[uint64][]V
}

// NewTable returns an empty Table.
func NewTable[V any]() *Table[V] {
	return &Table[V]{m: make(map[uint64][]V)}
}

// Put appends v to the list of payloads stored under key, supporting
// both the 1:1 case (callers that only ever Put once per key, then use
// Get) and the 1:N case (callers that use GetAll).
func (t *Table[V]) Put(key uint64, v V) {
	t.m[key] = append(t.m[key], v)
}

// Get returns the first payload stored under key, for 1:1 callers.
func (t *Table[V]) Get(key uint64) (V, bool) {
	vs, ok := t.m[key]
	if !ok || len(vs) == 0 {
		var zero V
		return zero, false
	}
	return vs[0], true
}

// GetAll returns every payload stored under key, in Put order.
func (t *Table[V]) GetAll(key uint64) ([]V, bool) {
	vs, ok := t.m[key]
	return vs, ok
}

// Has reports whether key has at least one payload, for the
// keys-only build a semi join or exist join uses.
func (t *Table[V]) Has(key uint64) bool {
	vs, ok := t.m[key]
	return ok && len(vs) > 0
}

// Len returns the number of distinct keys stored.
func (t *Table[V]) Len() int { return len(t.m) }
