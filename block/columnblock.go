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

import "github.com/chidata/lqf/bitmap"

// ColumnBlock is a vertical (column-major) scratch block: one word
// array per column. It enables zero-copy column moves, which is what
// HashColumnJoin relies on to pass through the probe side's columns
// untouched while only materializing the build-side columns.
type ColumnBlock struct {
	id    uint32
	sizes []uint32 // word width per column
	cols  [][]uint64
	pools []BytePool
	nrows uint32
}

// NewColumnBlock allocates a ColumnBlock with nrows rows (all fields
// zeroed) across len(sizes) columns.
func NewColumnBlock(sizes []uint32, nrows uint32) *ColumnBlock {
	b := &ColumnBlock{
		id:    NextBlockID(),
		sizes: append([]uint32(nil), sizes...),
		cols:  make([][]uint64, len(sizes)),
		pools: make([]BytePool, len(sizes)),
		nrows: nrows,
	}
	for i, w := range sizes {
		b.cols[i] = make([]uint64, uint64(nrows)*uint64(w))
	}
	return b
}

// MoveColumn replaces dst's column dstCol with src's column srcCol by
// reference (no data is copied): the classic vertical-join "left
// column passthrough" optimization. Both columns must have the same
// width and src/dst must have the same row count.
func (b *ColumnBlock) MoveColumn(src *ColumnBlock, srcCol, dstCol int) {
	if b.sizes[dstCol] != src.sizes[srcCol] {
		panic("block: ColumnBlock.MoveColumn: width mismatch")
	}
	if b.nrows != src.nrows {
		panic("block: ColumnBlock.MoveColumn: row count mismatch")
	}
	b.cols[dstCol] = src.cols[srcCol]
	b.pools[dstCol] = src.pools[srcCol]
}

// ColumnField returns a writable DataField for row i of column c.
func (b *ColumnBlock) ColumnField(c int, i uint32) DataField {
	w := b.sizes[c]
	start := uint64(i) * uint64(w)
	f := FieldOf(b.cols[c][start:start+uint64(w)], nil)
	if w == 2 {
		f.pool = &b.pools[c]
	}
	return f
}

func (b *ColumnBlock) SetID(id uint32) { b.id = id }
func (b *ColumnBlock) ID() uint32      { return b.id }
func (b *ColumnBlock) Size() uint64    { return uint64(b.nrows) }
func (b *ColumnBlock) Limit() uint64   { return uint64(b.nrows) }

func (b *ColumnBlock) Col(i int) ColumnIterator {
	return &columnBlockColumnIterator{block: b, col: i}
}

func (b *ColumnBlock) Rows() RowIterator {
	return &columnBlockRowIterator{block: b}
}

// Mask never mutates or returns a bare column view: it always wraps
// in a MaskedBlock, per REDESIGN FLAGS item (b) (the original's
// sometimes-null-returning overload is treated as a bug, not a
// behavior to preserve).
func (b *ColumnBlock) Mask(m *bitmap.Bitmap) Block {
	return NewMaskedBlock(b, m)
}

type columnBlockRow struct {
	block *ColumnBlock
	idx   uint32
}

func (r *columnBlockRow) NumFields() int { return len(r.block.sizes) }
func (r *columnBlockRow) Field(i int) DataField {
	return r.block.ColumnField(i, r.idx)
}
func (r *columnBlockRow) Raw(int) (DataField, bool) { return DataField{}, false }
func (r *columnBlockRow) Snapshot() *MemDataRow      { return SnapshotRow(r) }

type columnBlockColumnIterator struct {
	block *ColumnBlock
	col   int
	pos   uint64
}

func (it *columnBlockColumnIterator) Next() (DataField, bool) {
	if it.pos >= it.block.Size() {
		return DataField{}, false
	}
	f := it.At(it.pos)
	it.pos++
	return f, true
}

func (it *columnBlockColumnIterator) At(idx uint64) DataField {
	return it.block.ColumnField(it.col, uint32(idx))
}

func (it *columnBlockColumnIterator) Pos() uint64 { return it.pos }

type columnBlockRowIterator struct {
	block *ColumnBlock
	pos   uint64
}

func (it *columnBlockRowIterator) Next() (DataRow, bool) {
	if it.pos >= it.block.Size() {
		return nil, false
	}
	r := &columnBlockRow{block: it.block, idx: uint32(it.pos)}
	it.pos++
	return r, true
}

func (it *columnBlockRowIterator) At(idx uint64) DataRow {
	return &columnBlockRow{block: it.block, idx: uint32(idx)}
}

func (it *columnBlockRowIterator) Pos() uint64 { return it.pos }
