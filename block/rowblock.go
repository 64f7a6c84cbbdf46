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

// RowBlock is a dense, row-major scratch block: one flat word array.
// It is mutable (rows may be reserved and truncated) and is the
// output shape of row-materializing operators like HashJoin's
// RowBuilder.
type RowBlock struct {
	id     uint32
	layout Layout
	words  []uint64
	nrows  uint32
	pool   BytePool
}

// NewRowBlock allocates an empty RowBlock with room for capacity rows
// under layout, without marking any of them live.
func NewRowBlock(layout Layout, capacity uint32) *RowBlock {
	return &RowBlock{
		id:     NextBlockID(),
		layout: layout,
		words:  make([]uint64, 0, uint64(capacity)*uint64(layout.NumWords())),
	}
}

// Layout returns the block's column layout.
func (b *RowBlock) Layout() Layout { return b.layout }

// Reserve grows the block by n rows (zero-initialized) and returns
// the starting row index of the newly reserved span.
func (b *RowBlock) Reserve(n uint32) uint32 {
	start := b.nrows
	rw := b.layout.NumWords()
	need := int(start+n) * int(rw)
	for len(b.words) < need {
		b.words = append(b.words, 0)
	}
	b.words = b.words[:need]
	b.nrows += n
	return start
}

// Truncate shrinks the block to exactly n live rows. n must not
// exceed the number of rows previously reserved.
func (b *RowBlock) Truncate(n uint32) {
	if n > b.nrows {
		panic("block: RowBlock.Truncate grows the block")
	}
	b.nrows = n
	b.words = b.words[:int(n)*int(b.layout.NumWords())]
}

// RowAt returns a writable DataRow view bound to row i.
func (b *RowBlock) RowAt(i uint32) DataRow {
	rw := b.layout.NumWords()
	start := uint32(i) * rw
	return &rowBlockRow{layout: &b.layout, words: b.words[start : start+rw], pool: &b.pool}
}

// SetID overrides the block's id; used by producers (e.g. the on-disk
// reader) that must preserve a specific identity such as a row-group
// index.
func (b *RowBlock) SetID(id uint32) { b.id = id }

func (b *RowBlock) ID() uint32    { return b.id }
func (b *RowBlock) Size() uint64  { return uint64(b.nrows) }
func (b *RowBlock) Limit() uint64 { return uint64(b.nrows) }

func (b *RowBlock) Col(i int) ColumnIterator {
	return &rowBlockColumnIterator{block: b, col: i}
}

func (b *RowBlock) Rows() RowIterator {
	return &rowBlockRowIterator{block: b}
}

// Mask returns a new, dense RowBlock containing only the rows set in
// m, per spec.md's table of mask results (RowBlock -> new RowBlock).
func (b *RowBlock) Mask(m *bitmap.Bitmap) Block {
	if m.Limit() != b.Limit() {
		panic("block: RowBlock.Mask: bitmap limit does not match block limit")
	}
	out := NewRowBlock(b.layout, uint32(m.Cardinality()))
	n := uint32(0)
	m.Each(func(pos uint64) bool {
		out.Reserve(1)
		dst := out.RowAt(n)
		src := b.RowAt(uint32(pos))
		for c := 0; c < b.layout.NumFields(); c++ {
			if b.layout.Width(c) == 2 {
				// src and dst have independent byte pools: deep-copy.
				dst.Field(c).SetBytes(src.Field(c).AsBytes())
			} else {
				dst.Field(c).Assign(src.Field(c))
			}
		}
		n++
		return true
	})
	return out
}

type rowBlockRow struct {
	layout *Layout
	words  []uint64
	pool   *BytePool
}

func (r *rowBlockRow) NumFields() int { return r.layout.NumFields() }

func (r *rowBlockRow) Field(i int) DataField {
	off := r.layout.Offsets[i]
	w := r.layout.Width(i)
	f := FieldOf(r.words[off:off+w], nil)
	if w == 2 {
		f.pool = r.pool
	}
	return f
}

func (r *rowBlockRow) Raw(int) (DataField, bool) { return DataField{}, false }
func (r *rowBlockRow) Snapshot() *MemDataRow      { return SnapshotRow(r) }

// Words exposes the row's backing word slice, for the rowcopy
// compiler's contiguous-run bulk copy between two dense row-major
// rows (mirrors MemDataRow.Words).
func (r *rowBlockRow) Words() []uint64 { return r.words }

type rowBlockColumnIterator struct {
	block *RowBlock
	col   int
	pos   uint64
}

func (it *rowBlockColumnIterator) Next() (DataField, bool) {
	if it.pos >= it.block.Size() {
		return DataField{}, false
	}
	f := it.At(it.pos)
	it.pos++
	return f, true
}

func (it *rowBlockColumnIterator) At(idx uint64) DataField {
	return it.block.RowAt(uint32(idx)).Field(it.col)
}

func (it *rowBlockColumnIterator) Pos() uint64 { return it.pos }

type rowBlockRowIterator struct {
	block *RowBlock
	pos   uint64
}

func (it *rowBlockRowIterator) Next() (DataRow, bool) {
	if it.pos >= it.block.Size() {
		return nil, false
	}
	r := it.block.RowAt(uint32(it.pos))
	it.pos++
	return r, true
}

func (it *rowBlockRowIterator) At(idx uint64) DataRow { return it.block.RowAt(uint32(idx)) }
func (it *rowBlockRowIterator) Pos() uint64            { return it.pos }
