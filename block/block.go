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

// Package block implements the LQF two-level data model: the typed
// DataField/DataRow access surface, column layouts, and the five
// Block variants (RowBlock, ColumnBlock, EncodedColumnBlock,
// ColumnarFileBlock, MaskedBlock) that unify on-disk columnar
// storage, row-major scratch, columnar scratch, and dictionary-coded
// scratch behind one contract.
package block

import (
	"sync/atomic"

	"github.com/chidata/lqf/bitmap"
)

// ColumnIterator is a forward cursor over one column of a block, with
// random access for blocks that support it cheaply.
type ColumnIterator interface {
	// Next returns the field at the cursor and advances it. ok is
	// false once the column is exhausted.
	Next() (DataField, bool)

	// At returns the field at row idx directly.
	At(idx uint64) DataField

	// Pos returns the cursor's current row index.
	Pos() uint64
}

// RowIterator is a forward cursor over the rows of a block.
type RowIterator interface {
	Next() (DataRow, bool)
	At(idx uint64) DataRow
	Pos() uint64
}

// Block is the abstract container of rows sharing one layout: the
// unit of parallelism in LQF. See spec.md §3 for the full contract.
type Block interface {
	// ID returns the block's identifier: a process-wide monotonic
	// value unless the producer set one explicitly (the on-disk
	// block uses its row-group index).
	ID() uint32

	// Size returns the number of live rows.
	Size() uint64

	// Limit returns the size of the row space the block is defined
	// over, used to size bitmaps before masking; Limit() >= Size().
	Limit() uint64

	// Col returns a column iterator over column i.
	Col(i int) ColumnIterator

	// Rows returns a row iterator over the block.
	Rows() RowIterator

	// Mask returns a block logically restricted to the rows set in m.
	Mask(m *bitmap.Bitmap) Block
}

// blockIDCounter is the process-wide monotonic block-id generator
// REDESIGN FLAGS calls for in place of the original's static random
// number generator. It has an explicit lifecycle: ResetBlockIDs is
// meant to be called once by the embedding process at engine start
// (see the engine package), and NextBlockID thereafter.
var blockIDCounter uint32

// NextBlockID returns the next block id in the process-wide monotonic
// sequence.
func NextBlockID() uint32 {
	return atomic.AddUint32(&blockIDCounter, 1)
}

// ResetBlockIDs resets the block-id sequence to zero. Call once at
// process start, before any block is constructed; concurrent calls
// during steady-state operation are a bug (ids would no longer be
// unique within a running query).
func ResetBlockIDs() {
	atomic.StoreUint32(&blockIDCounter, 0)
}
