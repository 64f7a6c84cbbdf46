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

import (
	"encoding/binary"
	"fmt"

	"github.com/chidata/lqf/bitmap"
	"github.com/klauspost/compress/zstd"
)

// EncodedColumnBlock is a dictionary/RLE-encoded scratch block: one
// write-once encoded byte buffer per column. It is the output shape
// operators use when they want to hold onto many 32-bit dictionary
// ordinals cheaply instead of decoding them back to full values.
//
// Each column is written with WriteColumn any number of times while
// the block is open, then Seal compresses every column's accumulated
// ordinals with zstd (the codec, unlike the in-memory builder state,
// is not reusable once sealed: this matches the "write-once then
// read-only" row in spec.md's block variant table). Seal must be
// called before Col/Rows/Mask are used.
type EncodedColumnBlock struct {
	id      uint32
	nrows   uint32
	numCols int

	building  bool
	builder   [][]int32 // per-column ordinals, pre-seal
	sealed    bool
	packed    [][]byte // per-column zstd-compressed ordinal stream
	decoded   [][]int32 // per-column decode cache, filled lazily post-seal
	hasDecode []bool
}

// NewEncodedColumnBlock creates an empty, open EncodedColumnBlock for
// numCols columns.
func NewEncodedColumnBlock(numCols int) *EncodedColumnBlock {
	return &EncodedColumnBlock{
		id:       NextBlockID(),
		numCols:  numCols,
		building: true,
		builder:  make([][]int32, numCols),
	}
}

// WriteColumn appends ordinals to column c. Valid only before Seal.
func (b *EncodedColumnBlock) WriteColumn(c int, ordinals []int32) {
	if !b.building {
		panic("block: EncodedColumnBlock.WriteColumn after Seal")
	}
	b.builder[c] = append(b.builder[c], ordinals...)
	if len(b.builder[c]) > int(b.nrows) {
		b.nrows = uint32(len(b.builder[c]))
	}
}

// Seal compresses every column's accumulated ordinals and makes the
// block read-only. Seal is idempotent.
func (b *EncodedColumnBlock) Seal() error {
	if b.sealed {
		return nil
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("block: EncodedColumnBlock.Seal: %w", err)
	}
	defer enc.Close()

	b.packed = make([][]byte, b.numCols)
	b.decoded = make([][]int32, b.numCols)
	b.hasDecode = make([]bool, b.numCols)
	for c := 0; c < b.numCols; c++ {
		raw := make([]byte, len(b.builder[c])*4)
		for i, v := range b.builder[c] {
			binary.LittleEndian.PutUint32(raw[i*4:], uint32(v))
		}
		b.packed[c] = enc.EncodeAll(raw, nil)
	}
	b.building = false
	b.builder = nil
	b.sealed = true
	return nil
}

func (b *EncodedColumnBlock) column(c int) []int32 {
	if !b.sealed {
		panic("block: EncodedColumnBlock read before Seal")
	}
	if b.hasDecode[c] {
		return b.decoded[c]
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		panic(fmt.Errorf("block: EncodedColumnBlock decode: %w", err))
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(b.packed[c], nil)
	if err != nil {
		panic(fmt.Errorf("block: EncodedColumnBlock decode: %w", err))
	}
	vals := make([]int32, len(raw)/4)
	for i := range vals {
		vals[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	b.decoded[c] = vals
	b.hasDecode[c] = true
	return vals
}

func (b *EncodedColumnBlock) SetID(id uint32) { b.id = id }
func (b *EncodedColumnBlock) ID() uint32      { return b.id }
func (b *EncodedColumnBlock) Size() uint64    { return uint64(b.nrows) }
func (b *EncodedColumnBlock) Limit() uint64   { return uint64(b.nrows) }

func (b *EncodedColumnBlock) Col(i int) ColumnIterator {
	return &encodedColumnIterator{vals: b.column(i)}
}

func (b *EncodedColumnBlock) Rows() RowIterator {
	return &encodedRowIterator{block: b}
}

// Mask always wraps in a MaskedBlock (same reasoning as ColumnBlock).
func (b *EncodedColumnBlock) Mask(m *bitmap.Bitmap) Block {
	return NewMaskedBlock(b, m)
}

type encodedColumnIterator struct {
	vals []int32
	pos  uint64
}

func (it *encodedColumnIterator) Next() (DataField, bool) {
	if it.pos >= uint64(len(it.vals)) {
		return DataField{}, false
	}
	f := it.At(it.pos)
	it.pos++
	return f, true
}

func (it *encodedColumnIterator) At(idx uint64) DataField {
	words := []uint64{uint64(uint32(it.vals[idx]))}
	return FieldOf(words, nil)
}

func (it *encodedColumnIterator) Pos() uint64 { return it.pos }

type encodedRow struct {
	block *EncodedColumnBlock
	idx   uint32
}

func (r *encodedRow) NumFields() int { return r.block.numCols }
func (r *encodedRow) Field(i int) DataField {
	return r.block.Col(i).At(uint64(r.idx))
}
func (r *encodedRow) Raw(i int) (DataField, bool) { return r.Field(i), true }
func (r *encodedRow) Snapshot() *MemDataRow        { return SnapshotRow(r) }

type encodedRowIterator struct {
	block *EncodedColumnBlock
	pos   uint64
}

func (it *encodedRowIterator) Next() (DataRow, bool) {
	if it.pos >= it.block.Size() {
		return nil, false
	}
	r := &encodedRow{block: it.block, idx: uint32(it.pos)}
	it.pos++
	return r, true
}

func (it *encodedRowIterator) At(idx uint64) DataRow {
	return &encodedRow{block: it.block, idx: uint32(idx)}
}

func (it *encodedRowIterator) Pos() uint64 { return it.pos }
