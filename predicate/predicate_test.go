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

package predicate

import (
	"bytes"
	"testing"

	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/colreader"
)

func buildFile(t *testing.T) *colreader.MemFile {
	t.Helper()
	f, err := colreader.NewMemFile(4,
		&colreader.MemColumn{Type: colreader.Int64, Dictionary: true, Ints: []int64{10, 20, 10, 30, 20, 10, 40, 30}},
		&colreader.MemColumn{Type: colreader.ByteArray, Dictionary: true, Strings: [][]byte{
			[]byte("a"), []byte("b"), []byte("a"), []byte("c"),
			[]byte("b"), []byte("a"), []byte("d"), []byte("c"),
		}},
	)
	if err != nil {
		t.Fatalf("NewMemFile: %v", err)
	}
	return f
}

func TestSimplePredicateDecodedScan(t *testing.T) {
	f := buildFile(t)
	rg, err := f.RowGroup(0)
	if err != nil {
		t.Fatalf("RowGroup: %v", err)
	}
	b := block.NewColumnarFileBlock(0, rg, 0b11)

	p := NewSimple(0, func(fv block.DataField) bool { return fv.AsInt() == 20 })
	bm, err := p.Eval(b)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if bm.Cardinality() != 1 {
		t.Fatalf("cardinality = %d, want 1 (rows in this row group: 10,20,10,30)", bm.Cardinality())
	}
	if !bm.Get(1) {
		t.Fatalf("expected row 1 set")
	}
}

func TestRawEqualityMatchesDecodedFallback(t *testing.T) {
	f := buildFile(t)
	rg, err := f.RowGroup(0)
	if err != nil {
		t.Fatalf("RowGroup: %v", err)
	}
	fb := block.NewColumnarFileBlock(0, rg, 0b11)

	cmp := func(a, b int64) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	p := NewRawEquality[int64](0, colreader.DecodeDictInts, cmp, 10, func(fv block.DataField) int64 { return fv.AsInt() })

	raw, err := p.Eval(fb)
	if err != nil {
		t.Fatalf("Eval (raw path): %v", err)
	}

	decoded := scanDecoded(fb, 0, func(fv block.DataField) bool { return fv.AsInt() == 10 })

	if raw.Cardinality() != decoded.Cardinality() {
		t.Fatalf("raw cardinality %d != decoded cardinality %d", raw.Cardinality(), decoded.Cardinality())
	}
	for i := uint64(0); i < raw.Limit(); i++ {
		if raw.Get(i) != decoded.Get(i) {
			t.Fatalf("row %d: raw=%v decoded=%v", i, raw.Get(i), decoded.Get(i))
		}
	}
	if raw.Cardinality() != 2 {
		t.Fatalf("cardinality = %d, want 2 (rows 0 and 2 are 10 in this row group)", raw.Cardinality())
	}
}

func TestRawRangeOnStringColumn(t *testing.T) {
	f := buildFile(t)
	rg, err := f.RowGroup(0)
	if err != nil {
		t.Fatalf("RowGroup: %v", err)
	}
	fb := block.NewColumnarFileBlock(0, rg, 0b11)

	p := NewRawRange[[]byte](1, colreader.DecodeDictByteArrays, bytes.Compare, []byte("b"), []byte("d"),
		func(fv block.DataField) []byte { return fv.AsBytes() })

	bm, err := p.Eval(fb)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	// row group 0 strings: a, b, a, c -> [b,d) matches b and c -> rows 1,3
	if bm.Cardinality() != 2 || !bm.Get(1) || !bm.Get(3) {
		t.Fatalf("unexpected bitmap: card=%d bits=%v", bm.Cardinality(), bm.Positions())
	}
}

func TestColFilterShortCircuitsOnEmptyAnd(t *testing.T) {
	f := buildFile(t)
	rg, err := f.RowGroup(0)
	if err != nil {
		t.Fatalf("RowGroup: %v", err)
	}
	fb := block.NewColumnarFileBlock(0, rg, 0b11)

	neverCalled := false
	never := NewSimple(1, func(fv block.DataField) bool {
		neverCalled = true
		return true
	})
	impossible := NewSimple(0, func(fv block.DataField) bool { return fv.AsInt() == 999 })

	cf := NewColFilter(impossible, never)
	out, err := cf.Apply(fb)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", out.Size())
	}
	if neverCalled {
		t.Fatalf("second predicate ran despite an empty cumulative bitmap")
	}
}

func TestColFilterAndsAcrossColumns(t *testing.T) {
	f := buildFile(t)
	rg, err := f.RowGroup(0)
	if err != nil {
		t.Fatalf("RowGroup: %v", err)
	}
	fb := block.NewColumnarFileBlock(0, rg, 0b11)

	p0 := NewSimple(0, func(fv block.DataField) bool { return fv.AsInt() == 10 })
	p1 := NewSimple(1, func(fv block.DataField) bool { return string(fv.AsBytes()) == "a" })

	cf := NewColFilter(p0, p1)
	out, err := cf.Apply(fb)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// row group 0: (10,a) (20,b) (10,a) (30,c) -> rows 0 and 2 match both.
	if out.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", out.Size())
	}
}
