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
	"sync"

	"github.com/chidata/lqf/block"
)

// MemTable is the in-memory handoff table of spec.md §6: operators
// that produce output blocks (hash join, hash agg, sort) either
// allocate a fresh block directly and Append it here, or allocate
// through the table so later blocks share its layout. vertical
// selects whether Allocate hands back a row-major block.RowBlock or a
// column-major block.ColumnBlock.
//
// MemTable is safe for concurrent Append calls (parallel probe phases
// append their per-block outputs independently) but Blocks iterators
// must not run concurrently with Append.
type MemTable struct {
	sizes    []uint32
	vertical bool

	mu     sync.Mutex
	blocks []block.Block
}

// NewMemTable creates an empty MemTable with the given per-column word
// widths. vertical=true makes Allocate produce ColumnBlocks instead of
// RowBlocks.
func NewMemTable(sizes []uint32, vertical bool) *MemTable {
	return &MemTable{sizes: append([]uint32(nil), sizes...), vertical: vertical}
}

func (t *MemTable) ColSize() []uint32 { return t.sizes }

// Allocate creates a new block with room for n rows under the table's
// layout, appends it to the table, and returns it for the caller to
// fill in place.
func (t *MemTable) Allocate(n uint32) block.Block {
	var b block.Block
	if t.vertical {
		b = block.NewColumnBlock(t.sizes, n)
	} else {
		rb := block.NewRowBlock(block.FromSizes(t.sizes), n)
		rb.Reserve(n)
		b = rb
	}
	t.Append(b)
	return b
}

// Append adds a pre-built block (typically produced elsewhere, e.g. by
// a hash join's RowBuilder) to the table.
func (t *MemTable) Append(b block.Block) {
	t.mu.Lock()
	t.blocks = append(t.blocks, b)
	t.mu.Unlock()
}

func (t *MemTable) Blocks() BlockIterator {
	t.mu.Lock()
	snapshot := append([]block.Block(nil), t.blocks...)
	t.mu.Unlock()
	return newSliceIterator(snapshot)
}
