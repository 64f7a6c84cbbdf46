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

// HashExistJoin is the existence join of spec.md §4.5.4: like
// HashFilterJoin, build only records key presence, but here the roles
// are reversed -- the left side builds the key set, and probing
// happens over the right side, materializing one output row per right
// row whose key was present on the left.
type HashExistJoin struct {
	leftKey buildIndex[struct{}]
	outCopy rowcopy.Func
}

// NewHashExistJoin builds a HashExistJoin. rightLayout/rightKind
// describe the probe-side rows Probe will be called with; schedule
// copies their fields into outLayout.
func NewHashExistJoin(rightLayout, outLayout block.Layout, rightKind rowcopy.StorageKind, schedule []rowcopy.Entry, dense bool) *HashExistJoin {
	return &HashExistJoin{
		leftKey: newBuildIndex[struct{}](dense),
		outCopy: rowcopy.Compile(rightLayout, outLayout, rightKind, rowcopy.RAW, schedule, nil),
	}
}

// Build scans every block of left once, recording the presence of
// leftKey(row) for each row.
func (j *HashExistJoin) Build(left table.Table, leftKey KeyFunc) {
	it := left.Blocks()
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
			j.leftKey.Put(leftKey(row), struct{}{})
		}
	}
}

// Probe scans one right block, emitting one output row (via the
// compiled schedule) for every row whose key was recorded during
// Build.
func (j *HashExistJoin) Probe(rightKey KeyFunc, right block.Block, outLayout block.Layout) *block.RowBlock {
	out := block.NewRowBlock(outLayout, 0)
	rows := right.Rows()
	for {
		row, ok := rows.Next()
		if !ok {
			break
		}
		if !j.leftKey.Has(rightKey(row)) {
			continue
		}
		i := out.Reserve(1)
		j.outCopy(out.RowAt(i), row)
	}
	return out
}
