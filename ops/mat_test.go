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
	"testing"

	"github.com/chidata/lqf/bitmap"
	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/rowcopy"
)

func TestFilterMatCompactsMaskedRows(t *testing.T) {
	src := block.NewRowBlock(block.Uniform(1), 3)
	src.Reserve(3)
	intRow(src, 0, 1)
	intRow(src, 1, 2)
	intRow(src, 2, 3)

	m := bitmap.New(3)
	m.Set(0)
	m.Set(2)
	masked := src.Mask(m)

	out := FilterMat(masked, []rowcopy.FieldKind{rowcopy.Regular})
	if out.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", out.Size())
	}
	r0 := out.RowAt(0)
	r1 := out.RowAt(1)
	if r0.Field(0).AsInt() != 1 || r1.Field(0).AsInt() != 3 {
		t.Fatalf("got (%d, %d), want (1, 3)", r0.Field(0).AsInt(), r1.Field(0).AsInt())
	}
}

func TestHashMatPartitionsByKey(t *testing.T) {
	src := block.NewRowBlock(block.Uniform(1), 4)
	src.Reserve(4)
	intRow(src, 0, 0)
	intRow(src, 1, 1)
	intRow(src, 2, 2)
	intRow(src, 3, 3)

	buckets := HashMat(src, []rowcopy.FieldKind{rowcopy.Regular}, IntKey(0), 2)
	if len(buckets) != 2 {
		t.Fatalf("len(buckets) = %d, want 2", len(buckets))
	}
	var total uint64
	for bi, b := range buckets {
		total += b.Size()
		it := b.Rows()
		for {
			row, ok := it.Next()
			if !ok {
				break
			}
			if int(row.Field(0).AsInt())%2 != bi {
				t.Fatalf("key %d landed in bucket %d", row.Field(0).AsInt(), bi)
			}
		}
	}
	if total != 4 {
		t.Fatalf("total rows across buckets = %d, want 4", total)
	}
}
