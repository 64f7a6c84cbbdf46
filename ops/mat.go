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

package ops

import (
	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/rowcopy"
)

// FilterMat forces b (typically a lazily masked block) into a dense
// RowBlock, per spec.md §4.8: every live row is copied, in iteration
// order, into one contiguous row-major block. kinds describes b's
// columns; a RowBlock input still benefits, since the masked rows are
// compacted rather than merely iterated around.
func FilterMat(b block.Block, kinds []rowcopy.FieldKind) *block.RowBlock {
	layout, schedule := identitySchedule(kinds)
	copyRow := rowcopy.Compile(block.Layout{}, layout, rowcopy.OTHER, rowcopy.RAW, schedule, nil)
	out := block.NewRowBlock(layout, uint32(b.Size()))
	rows := b.Rows()
	for {
		row, ok := rows.Next()
		if !ok {
			break
		}
		i := out.Reserve(1)
		copyRow(out.RowAt(i), row)
	}
	return out
}

// HashMat forces b into dense RowBlocks as FilterMat does, additionally
// partitioning rows across n buckets by hash, per spec.md §4.8's
// hash-partitioning hint: a downstream operator that itself shards
// work by hash (a parallel hash join's build side, say) can consume
// bucket i without re-hashing every row to find out which rows belong
// to it.
func HashMat(b block.Block, kinds []rowcopy.FieldKind, hash KeyFunc, n int) []*block.RowBlock {
	layout, schedule := identitySchedule(kinds)
	copyRow := rowcopy.Compile(block.Layout{}, layout, rowcopy.OTHER, rowcopy.RAW, schedule, nil)
	buckets := make([]*block.RowBlock, n)
	for i := range buckets {
		buckets[i] = block.NewRowBlock(layout, 0)
	}
	rows := b.Rows()
	for {
		row, ok := rows.Next()
		if !ok {
			break
		}
		bucket := buckets[hash(row)%uint64(n)]
		i := bucket.Reserve(1)
		copyRow(bucket.RowAt(i), row)
	}
	return buckets
}

func identitySchedule(kinds []rowcopy.FieldKind) (block.Layout, []rowcopy.Entry) {
	sizes := make([]uint32, len(kinds))
	schedule := make([]rowcopy.Entry, len(kinds))
	for i, k := range kinds {
		w := uint32(1)
		if k == rowcopy.String {
			w = 2
		}
		sizes[i] = w
		schedule[i] = rowcopy.Entry{Kind: k, FromCol: i, ToCol: i}
	}
	return block.FromSizes(sizes), schedule
}
