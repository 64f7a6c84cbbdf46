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

package rowcopy

import (
	"testing"

	"github.com/chidata/lqf/block"
)

func TestCompileIdentityLayoutIsBytewiseCopy(t *testing.T) {
	layout := block.Uniform(4)
	schedule := []Entry{
		{Kind: Regular, FromCol: 0, ToCol: 0},
		{Kind: Regular, FromCol: 1, ToCol: 1},
		{Kind: Regular, FromCol: 2, ToCol: 2},
		{Kind: Regular, FromCol: 3, ToCol: 3},
	}
	cp := Compile(layout, layout, RAW, RAW, schedule, nil)

	src := block.NewRowBlock(layout, 1)
	src.Reserve(1)
	row := src.RowAt(0)
	for i := 0; i < 4; i++ {
		row.Field(i).SetInt(int64(100 + i))
	}

	dst := block.NewRowBlock(layout, 1)
	dst.Reserve(1)
	drow := dst.RowAt(0)

	cp(drow, row)

	for i := 0; i < 4; i++ {
		if drow.Field(i).AsInt() != int64(100+i) {
			t.Fatalf("field %d = %d, want %d", i, drow.Field(i).AsInt(), 100+i)
		}
	}
}

func TestCompileHandlesStringsAndReorder(t *testing.T) {
	fromLayout := block.FromSizes([]uint32{1, 2, 1})
	toLayout := block.FromSizes([]uint32{1, 1, 2})
	schedule := []Entry{
		{Kind: Regular, FromCol: 0, ToCol: 0},
		{Kind: Regular, FromCol: 2, ToCol: 1},
		{Kind: String, FromCol: 1, ToCol: 2},
	}
	cp := Compile(fromLayout, toLayout, RAW, RAW, schedule, nil)

	src := block.NewRowBlock(fromLayout, 1)
	src.Reserve(1)
	row := src.RowAt(0)
	row.Field(0).SetInt(7)
	row.Field(1).SetBytes([]byte("hello"))
	row.Field(2).SetInt(9)

	dst := block.NewRowBlock(toLayout, 1)
	dst.Reserve(1)
	drow := dst.RowAt(0)

	cp(drow, row)

	if drow.Field(0).AsInt() != 7 {
		t.Fatalf("field 0 = %d, want 7", drow.Field(0).AsInt())
	}
	if drow.Field(1).AsInt() != 9 {
		t.Fatalf("field 1 = %d, want 9", drow.Field(1).AsInt())
	}
	if string(drow.Field(2).AsBytes()) != "hello" {
		t.Fatalf("field 2 = %q, want hello", drow.Field(2).AsBytes())
	}
}

func TestCompilePostProcessorRuns(t *testing.T) {
	layout := block.Uniform(1)
	var ran bool
	cp := Compile(layout, layout, RAW, RAW, nil, []PostProcessor{
		func(target, source block.DataRow) { ran = true },
	})
	src := block.NewRowBlock(layout, 1)
	src.Reserve(1)
	dst := block.NewRowBlock(layout, 1)
	dst.Reserve(1)
	cp(dst.RowAt(0), src.RowAt(0))
	if !ran {
		t.Fatalf("post-processor did not run")
	}
}

func TestSnapshoterProducesIndependentRow(t *testing.T) {
	s := NewSnapshoter([]FieldKind{Regular, String})
	var src *block.RowBlock
	src = block.NewRowBlock(block.FromSizes([]uint32{1, 2}), 1)
	src.Reserve(1)
	row := src.RowAt(0)
	row.Field(0).SetInt(5)
	row.Field(1).SetBytes([]byte("snap"))

	snap := s.Snapshot(row)
	src = nil
	_ = src

	if snap.Field(0).AsInt() != 5 {
		t.Fatalf("field 0 = %d, want 5", snap.Field(0).AsInt())
	}
	if string(snap.Field(1).AsBytes()) != "snap" {
		t.Fatalf("field 1 = %q, want snap", snap.Field(1).AsBytes())
	}
}
