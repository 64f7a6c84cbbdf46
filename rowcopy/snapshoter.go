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

package rowcopy

import "github.com/chidata/lqf/block"

// Snapshoter is the RowCopy specialization of spec.md §4.4: the target
// layout is synthesized once, up front, from a fixed list of field
// kinds (String -> 2 words, else 1), so repeated calls to Snapshot
// never re-derive field widths the way block.SnapshotRow must (it
// inspects each field's Size() on every call, since it works from an
// arbitrary, unknown-ahead-of-time DataRow).
//
// Use Snapshoter when the same row shape is snapshotted many times
// (e.g. a hash join's build side, or a hash aggregation's group key);
// use block.SnapshotRow for a one-off snapshot of a row of unknown
// shape.
type Snapshoter struct {
	layout block.Layout
	copy   Func
}

// NewSnapshoter builds a Snapshoter for a row with len(kinds) fields,
// where kinds[i] is the field kind of column i in both the source and
// (synthesized) target layout.
func NewSnapshoter(kinds []FieldKind) *Snapshoter {
	sizes := make([]uint32, len(kinds))
	schedule := make([]Entry, len(kinds))
	for i, k := range kinds {
		if k == String {
			sizes[i] = 2
		} else {
			sizes[i] = 1
		}
		schedule[i] = Entry{Kind: k, FromCol: i, ToCol: i}
	}
	layout := block.FromSizes(sizes)
	// The source row's storage kind is not known ahead of time (it
	// may be any block variant's row), so the source side is compiled
	// as non-RAW: every field is copied individually rather than via
	// the bulk-run optimization, which requires both ends to expose a
	// backing word slice.
	return &Snapshoter{layout: layout, copy: Compile(block.Layout{}, layout, OTHER, RAW, schedule, nil)}
}

// Layout returns the layout Snapshot allocates under, so callers can
// compile a further rowcopy.Func from a snapshotted row (e.g. a hash
// aggregation's group-key row) into some other target layout.
func (s *Snapshoter) Layout() block.Layout { return s.layout }

// Snapshot copies row into a freshly allocated MemDataRow under the
// Snapshoter's layout.
func (s *Snapshoter) Snapshot(row block.DataRow) *block.MemDataRow {
	target := block.NewMemDataRow(s.layout)
	s.copy(target, row)
	return target
}
