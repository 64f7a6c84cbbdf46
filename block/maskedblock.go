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

// MaskedBlock is an inner block plus a live bitmap. It is the result
// of masking any block variant that cannot cheaply mask itself
// in-place (everything except RowBlock).
//
// Masking is monotone-shrinking and fluent: Mask(m) ANDs m into the
// block's own bitmap and returns the same MaskedBlock, per REDESIGN
// FLAGS open question (a) (the original mutates in place and returns
// self; callers rely on reference equality, so this is re-expressed
// as an explicit fluent API rather than hidden aliasing).
type MaskedBlock struct {
	inner Block
	mask  *bitmap.Bitmap
}

// NewMaskedBlock wraps inner with the given live bitmap.
func NewMaskedBlock(inner Block, mask *bitmap.Bitmap) *MaskedBlock {
	return &MaskedBlock{inner: inner, mask: mask}
}

// Inner returns the wrapped block.
func (b *MaskedBlock) Inner() Block { return b.inner }

// BitMask returns the block's current live bitmap.
func (b *MaskedBlock) BitMask() *bitmap.Bitmap { return b.mask }

func (b *MaskedBlock) ID() uint32    { return b.inner.ID() }
func (b *MaskedBlock) Size() uint64  { return b.mask.Cardinality() }
func (b *MaskedBlock) Limit() uint64 { return b.inner.Limit() }

func (b *MaskedBlock) Col(i int) ColumnIterator {
	return newMaskedColumnIterator(b.inner.Col(i), b.mask)
}

func (b *MaskedBlock) Rows() RowIterator {
	return newMaskedRowIterator(b.inner.Rows(), b.mask)
}

// Mask combines m into the block's existing mask (old & m) and
// returns the same block, mutated.
func (b *MaskedBlock) Mask(m *bitmap.Bitmap) Block {
	b.mask = b.mask.And(m)
	return b
}

type maskedColumnIterator struct {
	inner     ColumnIterator
	positions []uint64
	pos       int
}

func newMaskedColumnIterator(inner ColumnIterator, mask *bitmap.Bitmap) *maskedColumnIterator {
	return &maskedColumnIterator{inner: inner, positions: mask.Positions()}
}

func (it *maskedColumnIterator) Next() (DataField, bool) {
	if it.pos >= len(it.positions) {
		return DataField{}, false
	}
	f := it.inner.At(it.positions[it.pos])
	it.pos++
	return f, true
}

func (it *maskedColumnIterator) At(idx uint64) DataField {
	return it.inner.At(it.positions[idx])
}

func (it *maskedColumnIterator) Pos() uint64 { return uint64(it.pos) }

type maskedRowIterator struct {
	inner     RowIterator
	positions []uint64
	pos       int
}

func newMaskedRowIterator(inner RowIterator, mask *bitmap.Bitmap) *maskedRowIterator {
	return &maskedRowIterator{inner: inner, positions: mask.Positions()}
}

func (it *maskedRowIterator) Next() (DataRow, bool) {
	if it.pos >= len(it.positions) {
		return nil, false
	}
	r := it.inner.At(it.positions[it.pos])
	it.pos++
	return r, true
}

func (it *maskedRowIterator) At(idx uint64) DataRow {
	return it.inner.At(it.positions[idx])
}

func (it *maskedRowIterator) Pos() uint64 { return uint64(it.pos) }
