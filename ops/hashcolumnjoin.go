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
	"fmt"

	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/rowcopy"
	"github.com/chidata/lqf/table"
)

// ColPair maps one left source column straight through to a target
// column of the same width, for HashColumnJoin's zero-copy left side.
type ColPair struct{ Src, Dst int }

// HashColumnJoin is the vertical join of spec.md §4.5.2: the left
// block's columns are borrowed into the output by reference
// (block.ColumnBlock.MoveColumn), and only the right-side columns are
// materialized, one value per left row, via a compiled row-copy
// closure. Output cardinality always equals the left block's
// cardinality: this is a 1:1 inner join, so the build side must be
// unique-keyed, and every probe row must find a match (pre-filter with
// HashFilterJoin first if that isn't already guaranteed).
type HashColumnJoin struct {
	rightKey  KeyFunc
	index     buildIndex[*block.MemDataRow]
	snap      *rowcopy.Snapshoter
	leftPairs []ColPair
	rightCopy rowcopy.Func
	outSizes  []uint32
}

// NewHashColumnJoin builds a HashColumnJoin. buildLayout/buildKinds
// describe the right row snapshot; rightSchedule copies from that
// snapshot into the trailing (materialized) columns of outSizes;
// leftPairs lists which left columns move, unchanged, into which
// leading columns of outSizes.
func NewHashColumnJoin(
	rightKey KeyFunc, buildKinds []rowcopy.FieldKind,
	outLayout block.Layout, leftPairs []ColPair, rightSchedule []rowcopy.Entry,
	outSizes []uint32, dense bool,
) *HashColumnJoin {
	snap := rowcopy.NewSnapshoter(buildKinds)
	return &HashColumnJoin{
		rightKey:  rightKey,
		index:     newBuildIndex[*block.MemDataRow](dense),
		snap:      snap,
		leftPairs: leftPairs,
		rightCopy: rowcopy.Compile(snap.Layout(), outLayout, rowcopy.RAW, rowcopy.OTHER, rightSchedule, nil),
		outSizes:  outSizes,
	}
}

// Build scans every block of right once, storing snapshot(row) keyed
// by rightKey(row).
func (j *HashColumnJoin) Build(right table.Table) {
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

// Probe produces the vertical join output for one left ColumnBlock.
func (j *HashColumnJoin) Probe(leftKey KeyFunc, left *block.ColumnBlock) (*block.ColumnBlock, error) {
	n := uint32(left.Size())
	out := block.NewColumnBlock(j.outSizes, n)
	for _, p := range j.leftPairs {
		out.MoveColumn(left, p.Src, p.Dst)
	}
	rows := left.Rows()
	targets := out.Rows()
	i := uint64(0)
	for {
		lrow, ok := rows.Next()
		if !ok {
			break
		}
		key := leftKey(lrow)
		rrow, ok := j.index.Get(key)
		if !ok {
			return nil, fmt.Errorf("ops: HashColumnJoin: probe row %d has no build-side match", i)
		}
		j.rightCopy(targets.At(i), rrow)
		i++
	}
	return out, nil
}
