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

	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/rowcopy"
)

func ascendingInt(col int) Less {
	return func(a, b block.DataRow) bool { return a.Field(col).AsInt() < b.Field(col).AsInt() }
}

func TestSmallSortOrdersAscending(t *testing.T) {
	src := block.NewRowBlock(block.Uniform(1), 3)
	src.Reserve(3)
	intRow(src, 0, 3)
	intRow(src, 1, 1)
	intRow(src, 2, 2)

	s := NewSmallSort(ascendingInt(0), []rowcopy.FieldKind{rowcopy.Regular})
	rows := src.Rows()
	for {
		row, ok := rows.Next()
		if !ok {
			break
		}
		s.Add(row)
	}
	out := s.Finalize()
	if out.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", out.Size())
	}
	want := []int64{1, 2, 3}
	it := out.Rows()
	for i := 0; i < 3; i++ {
		row, _ := it.Next()
		if row.Field(0).AsInt() != want[i] {
			t.Fatalf("row %d = %d, want %d", i, row.Field(0).AsInt(), want[i])
		}
	}
}

func TestTopNKeepsSmallestK(t *testing.T) {
	values := []int64{5, 3, 8, 1, 9}
	topn := NewTopN(2, ascendingInt(0), []rowcopy.FieldKind{rowcopy.Regular})

	src := block.NewRowBlock(block.Uniform(1), uint32(len(values)))
	src.Reserve(uint32(len(values)))
	for i, v := range values {
		intRow(src, uint32(i), v)
	}
	rows := src.Rows()
	for {
		row, ok := rows.Next()
		if !ok {
			break
		}
		topn.Add(row)
	}
	out := topn.Finalize()
	if out.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", out.Size())
	}
	want := []int64{1, 3}
	it := out.Rows()
	for i := 0; i < 2; i++ {
		row, _ := it.Next()
		if row.Field(0).AsInt() != want[i] {
			t.Fatalf("row %d = %d, want %d", i, row.Field(0).AsInt(), want[i])
		}
	}
}

func TestTopNWithKGreaterThanInputKeepsEverything(t *testing.T) {
	values := []int64{5, 3}
	topn := NewTopN(5, ascendingInt(0), []rowcopy.FieldKind{rowcopy.Regular})

	src := block.NewRowBlock(block.Uniform(1), uint32(len(values)))
	src.Reserve(uint32(len(values)))
	for i, v := range values {
		intRow(src, uint32(i), v)
	}
	rows := src.Rows()
	for {
		row, ok := rows.Next()
		if !ok {
			break
		}
		topn.Add(row)
	}
	out := topn.Finalize()
	if out.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", out.Size())
	}
}
