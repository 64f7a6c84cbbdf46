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

package table

import (
	"github.com/chidata/lqf/bitmap"
	"github.com/chidata/lqf/block"
)

// TableView projects and/or reorders an inner table's columns without
// copying any block: cols[i] names the inner column ordinal that view
// column i addresses. It is how an operator hands a downstream
// consumer "the left table, but only these columns, renumbered from
// zero" without forcing a copy the way FilterMat/HashMat would.
type TableView struct {
	inner Table
	cols  []int
	sizes []uint32
}

// NewTableView builds a view of inner exposing exactly the inner
// column ordinals listed in cols, renumbered to their position in
// cols.
func NewTableView(inner Table, cols []int) *TableView {
	innerSizes := inner.ColSize()
	sizes := make([]uint32, len(cols))
	for i, c := range cols {
		sizes[i] = innerSizes[c]
	}
	return &TableView{inner: inner, cols: append([]int(nil), cols...), sizes: sizes}
}

func (t *TableView) ColSize() []uint32 { return t.sizes }

func (t *TableView) Blocks() BlockIterator {
	return &viewTableIterator{inner: t.inner.Blocks(), cols: t.cols}
}

type viewTableIterator struct {
	inner BlockIterator
	cols  []int
}

func (it *viewTableIterator) Next() (block.Block, bool) {
	b, ok := it.inner.Next()
	if !ok {
		return nil, false
	}
	return &viewBlock{inner: b, cols: it.cols}, true
}

// viewBlock adapts one inner block through a column projection/
// reorder: Col/Rows translate view-column indices to inner-column
// indices, while ID/Size/Limit/Mask pass straight through.
type viewBlock struct {
	inner block.Block
	cols  []int
}

func (b *viewBlock) ID() uint32    { return b.inner.ID() }
func (b *viewBlock) Size() uint64  { return b.inner.Size() }
func (b *viewBlock) Limit() uint64 { return b.inner.Limit() }

func (b *viewBlock) Col(i int) block.ColumnIterator {
	return b.inner.Col(b.cols[i])
}

func (b *viewBlock) Rows() block.RowIterator {
	return &viewRowIterator{inner: b.inner.Rows(), cols: b.cols}
}

func (b *viewBlock) Mask(m *bitmap.Bitmap) block.Block {
	return &viewBlock{inner: b.inner.Mask(m), cols: b.cols}
}

type viewRow struct {
	inner block.DataRow
	cols  []int
}

func (r *viewRow) NumFields() int { return len(r.cols) }
func (r *viewRow) Field(i int) block.DataField {
	return r.inner.Field(r.cols[i])
}
func (r *viewRow) Raw(i int) (block.DataField, bool) {
	return r.inner.Raw(r.cols[i])
}
func (r *viewRow) Snapshot() *block.MemDataRow { return block.SnapshotRow(r) }

type viewRowIterator struct {
	inner block.RowIterator
	cols  []int
}

func (it *viewRowIterator) Next() (block.DataRow, bool) {
	r, ok := it.inner.Next()
	if !ok {
		return nil, false
	}
	return &viewRow{inner: r, cols: it.cols}, true
}

func (it *viewRowIterator) At(idx uint64) block.DataRow {
	return &viewRow{inner: it.inner.At(idx), cols: it.cols}
}

func (it *viewRowIterator) Pos() uint64 { return it.inner.Pos() }
