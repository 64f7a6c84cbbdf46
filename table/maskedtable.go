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

// MaskFunc computes the live-row bitmap for one block of a table: the
// product of a predicate scan or a hash filter operator (ColFilter,
// HashFilterJoin, ...). It is called once per block, lazily, as the
// table is iterated.
type MaskFunc func(b block.Block) *bitmap.Bitmap

// MaskedTable lazily applies a per-block mask to every block an inner
// table produces. Unlike block.MaskedBlock (which wraps one already
// fixed bitmap), MaskedTable recomputes the mask per block by calling
// fn, so it composes directly with a predicate scan or filter-join
// probe without forcing materialization (spec.md §4.8 contrasts this
// with FilterMat/HashMat, which do force materialization).
type MaskedTable struct {
	inner Table
	fn    MaskFunc
}

// NewMaskedTable wraps inner, applying fn to every block it produces.
func NewMaskedTable(inner Table, fn MaskFunc) *MaskedTable {
	return &MaskedTable{inner: inner, fn: fn}
}

func (t *MaskedTable) ColSize() []uint32 { return t.inner.ColSize() }

func (t *MaskedTable) Blocks() BlockIterator {
	return &maskedTableIterator{inner: t.inner.Blocks(), fn: t.fn}
}

type maskedTableIterator struct {
	inner BlockIterator
	fn    MaskFunc
}

func (it *maskedTableIterator) Next() (block.Block, bool) {
	b, ok := it.inner.Next()
	if !ok {
		return nil, false
	}
	m := it.fn(b)
	return b.Mask(m), true
}
