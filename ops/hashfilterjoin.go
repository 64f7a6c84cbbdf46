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
	"github.com/chidata/lqf/bitmap"
	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/table"
)

// HashFilterJoin is the semi join of spec.md §4.5.3: build stores only
// the presence of each right-side key, nothing else; probe returns the
// left block masked to the rows whose key is present on the right.
type HashFilterJoin struct {
	rightKey KeyFunc
	keys     buildIndex[struct{}]
}

// NewHashFilterJoin builds a HashFilterJoin. dense declares that
// rightKey always produces a small dense integer.
func NewHashFilterJoin(rightKey KeyFunc, dense bool) *HashFilterJoin {
	return &HashFilterJoin{rightKey: rightKey, keys: newBuildIndex[struct{}](dense)}
}

// Build scans every block of right once, recording the presence of
// rightKey(row) for each row.
func (j *HashFilterJoin) Build(right table.Table) {
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
			j.keys.Put(j.rightKey(row), struct{}{})
		}
	}
}

// Probe returns left masked to the rows whose key matched a right-side
// key during Build.
func (j *HashFilterJoin) Probe(leftKey KeyFunc, left block.Block) block.Block {
	bm := bitmap.New(left.Limit())
	rows := left.Rows()
	for i := uint64(0); i < left.Limit(); i++ {
		if j.keys.Has(leftKey(rows.At(i))) {
			bm.Set(i)
		}
	}
	return left.Mask(bm)
}
