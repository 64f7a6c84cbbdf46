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

// RowBuilder assembles one output row from a matched (left, right) pair
// of rows found by HashJoin, per spec.md §4.5.1: two independently
// compiled row-copy closures, one per side, write into disjoint column
// ranges of the same target row.
type RowBuilder struct {
	leftCopy, rightCopy rowcopy.Func
	keepKey             bool
	keyCol              int
}

// NewRowBuilder compiles a RowBuilder. leftKind/rightKind describe the
// storage shape of the rows Build will be called with (RAW for a
// dense row-major producer, OTHER otherwise), enabling rowcopy's bulk
// path wherever it applies. When keepKey is true, Build also writes
// the join key (as a plain integer) into keyCol of the output row.
func NewRowBuilder(
	leftLayout, rightLayout, outLayout block.Layout,
	leftKind, rightKind rowcopy.StorageKind,
	leftSchedule, rightSchedule []rowcopy.Entry,
	keepKey bool, keyCol int,
) *RowBuilder {
	return &RowBuilder{
		leftCopy:  rowcopy.Compile(leftLayout, outLayout, leftKind, rowcopy.RAW, leftSchedule, nil),
		rightCopy: rowcopy.Compile(rightLayout, outLayout, rightKind, rowcopy.RAW, rightSchedule, nil),
		keepKey:   keepKey,
		keyCol:    keyCol,
	}
}

// Build writes left's and right's scheduled fields into target, and
// the join key if configured to keep one.
func (b *RowBuilder) Build(target, left, right block.DataRow, key uint64) {
	b.leftCopy(target, left)
	b.rightCopy(target, right)
	if b.keepKey {
		target.Field(b.keyCol).SetInt(int64(key))
	}
}
