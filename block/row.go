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

package block

// DataRow is the polymorphic row access surface: indexed field
// access, plus an optional raw (undecoded) view for rows backed by a
// dictionary-encoded column, plus snapshotting to an owned copy.
type DataRow interface {
	// NumFields returns the number of columns visible through this row.
	NumFields() int

	// Field returns the (decoded) field bound to column i.
	Field(i int) DataField

	// Raw returns the undecoded dictionary-ordinal field for column i
	// and true, if the backing block stores column i dictionary
	// encoded; otherwise it returns the zero DataField and false, and
	// callers should fall back to Field.
	Raw(i int) (DataField, bool)

	// Snapshot returns a deep copy of the row, detached from its
	// source block: an owned, layout-free MemDataRow that survives
	// after the source block is dropped.
	Snapshot() *MemDataRow
}

// SnapshotRow builds a MemDataRow from any DataRow by copying each
// field's value (deep-copying byte-array fields into the snapshot's
// own BytePool). It is the shared implementation behind every
// concrete DataRow's Snapshot method.
func SnapshotRow(row DataRow) *MemDataRow {
	n := row.NumFields()
	sizes := make([]uint32, n)
	for i := 0; i < n; i++ {
		sizes[i] = uint32(row.Field(i).Size())
	}
	m := NewMemDataRow(FromSizes(sizes))
	for i := 0; i < n; i++ {
		src := row.Field(i)
		dst := m.Field(i)
		if src.Size() == 2 {
			dst.SetBytes(src.AsBytes())
		} else {
			dst.SetInt(src.AsInt())
		}
	}
	return m
}

// MemDataRow is an owned, layout-free row: the result of
// DataRow.Snapshot, and the building block MemTable allocates rows
// from. "Layout-free" means its layout is private to the row itself,
// not shared with (or dependent on) any table/block layout.
type MemDataRow struct {
	layout Layout
	words  []uint64
	pool   BytePool
}

// NewMemDataRow allocates a MemDataRow with the given layout, all
// fields zeroed.
func NewMemDataRow(layout Layout) *MemDataRow {
	return &MemDataRow{layout: layout, words: make([]uint64, layout.NumWords())}
}

// Layout returns the row's layout.
func (m *MemDataRow) Layout() Layout { return m.layout }

// NumFields implements DataRow.
func (m *MemDataRow) NumFields() int { return m.layout.NumFields() }

// Field implements DataRow.
func (m *MemDataRow) Field(i int) DataField {
	off := m.layout.Offsets[i]
	w := m.layout.Width(i)
	f := FieldOf(m.words[off:off+w], nil)
	if w == 2 {
		f.pool = &m.pool
	}
	return f
}

// Raw implements DataRow. A MemDataRow never carries raw dictionary
// state of its own; it always returns ok=false.
func (m *MemDataRow) Raw(int) (DataField, bool) { return DataField{}, false }

// Snapshot implements DataRow.
func (m *MemDataRow) Snapshot() *MemDataRow { return SnapshotRow(m) }

// Words exposes the row's backing word buffer for bulk copy paths
// (the rowcopy compiler's RAW field kind and contiguous-run copies).
func (m *MemDataRow) Words() []uint64 { return m.words }

// EMPTY is a reusable zero-field MemDataRow, mirroring
// MemDataRow::EMPTY in the original implementation: used as a
// placeholder "no row" value by operators that need a non-nil
// DataRow before a real one is available.
var EMPTY = NewMemDataRow(Layout{Offsets: []uint32{0}})
