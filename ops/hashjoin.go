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
	"github.com/chidata/lqf/table"
)

// HashJoin is the row-materialized inner join of spec.md §4.5.1: build
// snapshots every right-side row keyed by rightKey, retaining it
// unconditionally; probe looks up each left row's leftKey and, on a
// match, assembles one output row per (left, matching-right) pair via
// a RowBuilder. A key with several matching build rows only ever joins
// against the first one stored (spec.md's HashJoin is a 1:1-per-probe
// shape; use HashColumnJoin when the build side is known unique and
// the left columns should pass through by reference instead).
type HashJoin struct {
	rightKey KeyFunc
	index    buildIndex[*block.MemDataRow]
	snap     *rowcopy.Snapshoter
	builder  *RowBuilder
}

// NewHashJoin builds a HashJoin. buildKinds describes the right row's
// field kinds, for the build-side Snapshoter. dense declares that
// rightKey always produces a small dense integer, switching the build
// index to the Hash32Sparse-backed container.
func NewHashJoin(rightKey KeyFunc, buildKinds []rowcopy.FieldKind, builder *RowBuilder, dense bool) *HashJoin {
	return &HashJoin{
		rightKey: rightKey,
		index:    newBuildIndex[*block.MemDataRow](dense),
		snap:     rowcopy.NewSnapshoter(buildKinds),
		builder:  builder,
	}
}

// Build scans every block of right once, storing snapshot(row) keyed
// by rightKey(row).
func (j *HashJoin) Build(right table.Table) {
	it := right.Blocks()
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		rows := b.Rows()
		for {
			row, ok := rows.Next()
			if !ok {
				break
			}
			j.index.Put(j.rightKey(row), j.snap.Snapshot(row))
		}
	}
}

// Probe scans one left block, emitting one dense RowBlock of matches
// under outLayout.
func (j *HashJoin) Probe(leftKey KeyFunc, left block.Block, outLayout block.Layout) *block.RowBlock {
	out := block.NewRowBlock(outLayout, uint32(left.Size()))
	rows := left.Rows()
	for {
		lrow, ok := rows.Next()
		if !ok {
			break
		}
		key := leftKey(lrow)
		rrow, ok := j.index.Get(key)
		if !ok {
			continue
		}
		i := out.Reserve(1)
		j.builder.Build(out.RowAt(i), lrow, rrow, key)
	}
	return out
}
