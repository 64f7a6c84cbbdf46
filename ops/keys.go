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

package ops

import (
	"fmt"

	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/hashtable"
)

// KeyFunc extracts the 64-bit key a hash join or hash aggregation
// groups/probes by. Every hash operator in this package takes one
// instead of a bare column index, so callers can choose between the
// two key strategies spec.md §4.5 names (plain integer, raw dictionary
// ordinal) or a multi-column composite, without the operator itself
// needing to know which.
type KeyFunc func(row block.DataRow) uint64

// IntKey extracts col's integer value directly: spec.md's "integer
// key" strategy.
func IntKey(col int) KeyFunc {
	return func(row block.DataRow) uint64 { return uint64(row.Field(col).AsInt()) }
}

// RawOrdinalKey extracts col's undecoded dictionary ordinal: spec.md's
// "dictionary key" strategy, which lets two dictionary-encoded columns
// join on ordinal equality without ever decoding a value, provided
// both sides share the same dictionary.
func RawOrdinalKey(col int) KeyFunc {
	return func(row block.DataRow) uint64 {
		f, ok := row.Raw(col)
		if !ok {
			panic(fmt.Errorf("ops: RawOrdinalKey: column %d has no raw accessor", col))
		}
		return uint64(uint32(f.AsRawOrdinal()))
	}
}

// CompositeKey hashes several columns together via hashtable.HashRow,
// for joins and aggregations keyed by more than one column.
func CompositeKey(cols ...int) KeyFunc {
	return func(row block.DataRow) uint64 { return hashtable.HashRow(row, cols) }
}
