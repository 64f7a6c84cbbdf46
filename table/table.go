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

// Package table implements the four Table variants (ColumnarFileTable,
// MaskedTable, MemTable, TableView) that sit above the block package:
// immutable references to a lazy stream of blocks, plus the column
// layout (colSize) that stream consumers need to build compatible
// output blocks.
package table

import "github.com/chidata/lqf/block"

// BlockIterator is a single-pass cursor over a table's blocks. Table
// implementations must return a fresh BlockIterator from every Blocks
// call: repeated calls restart iteration, per spec.md §3.
type BlockIterator interface {
	// Next returns the next block and true, or (nil, false) once the
	// table is exhausted.
	Next() (block.Block, bool)
}

// Table is a stream of blocks plus the column widths (in words) of
// every row under its layout. NumFields is derived from len(ColSize).
// Tables are immutable references to their producers: they never
// mutate their own blocks, only hand out iterators over them.
type Table interface {
	// ColSize returns the word width of each column.
	ColSize() []uint32

	// Blocks returns a fresh iterator over the table's blocks.
	Blocks() BlockIterator
}

// NumFields returns the number of columns in t's layout.
func NumFields(t Table) int { return len(t.ColSize()) }

// sliceIterator adapts a pre-materialized slice of blocks into a
// BlockIterator; used by table variants whose blocks are already all
// in memory (MemTable, TableView).
type sliceIterator struct {
	blocks []block.Block
	pos    int
}

func newSliceIterator(blocks []block.Block) *sliceIterator {
	return &sliceIterator{blocks: blocks}
}

func (it *sliceIterator) Next() (block.Block, bool) {
	if it.pos >= len(it.blocks) {
		return nil, false
	}
	b := it.blocks[it.pos]
	it.pos++
	return b, true
}
