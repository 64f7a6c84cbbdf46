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
	"fmt"
	"math/bits"

	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/colreader"
)

// ColumnarFileTable is the leaf table variant backed by an open
// columnar file: one ColumnarFileBlock per row group, each projecting
// exactly the columns set in the columns bitmask (bit i projects
// column i; max 64 columns per spec.md §6).
type ColumnarFileTable struct {
	file    colreader.FileReader
	columns uint64
	sizes   []uint32
}

// OpenColumnarFile opens path with colreader.Open and projects the
// columns set in the columns bitmask. sizes gives the word width of
// every column ordinal up to the highest projected one (see
// NewColumnarFileTable).
func OpenColumnarFile(path string, columns uint64, sizes []uint32) (*ColumnarFileTable, error) {
	f, err := colreader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: OpenColumnarFile: %w", err)
	}
	return NewColumnarFileTable(f, columns, sizes), nil
}

// NewColumnarFileTable wraps an already-open FileReader. Useful for
// tests, which substitute colreader.MemFile for the external reader.
//
// sizes is sparse-indexed by on-disk column ordinal, like the block's
// own row/column access (spec.md §4.2): len(sizes) must cover one past
// the highest ordinal set in columns, and entries for ordinals outside
// the projection are never read.
func NewColumnarFileTable(f colreader.FileReader, columns uint64, sizes []uint32) *ColumnarFileTable {
	if len(sizes) != bits.Len64(columns) {
		panic("table: ColumnarFileTable: len(sizes) must cover one past the highest projected ordinal")
	}
	return &ColumnarFileTable{file: f, columns: columns, sizes: sizes}
}

func (t *ColumnarFileTable) ColSize() []uint32 { return t.sizes }

func (t *ColumnarFileTable) Blocks() BlockIterator {
	return &fileTableIterator{table: t}
}

// Close releases the underlying file reader.
func (t *ColumnarFileTable) Close() error { return t.file.Close() }

type fileTableIterator struct {
	table *ColumnarFileTable
	pos   int
}

func (it *fileTableIterator) Next() (block.Block, bool) {
	if it.pos >= it.table.file.NumRowGroups() {
		return nil, false
	}
	rg, err := it.table.file.RowGroup(it.pos)
	if err != nil {
		panic(fmt.Errorf("table: ColumnarFileTable: row group %d: %w", it.pos, err))
	}
	b := block.NewColumnarFileBlock(uint32(it.pos), rg, it.table.columns)
	it.pos++
	return b, true
}
