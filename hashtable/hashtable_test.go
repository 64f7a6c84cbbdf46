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

package hashtable

import (
	"testing"

	"github.com/chidata/lqf/block"
)

func oneRow(layout block.Layout, setup func(block.DataRow)) block.DataRow {
	b := block.NewRowBlock(layout, 1)
	b.Reserve(1)
	row := b.RowAt(0)
	setup(row)
	return row
}

func TestHashRowStableAndDistinguishesValues(t *testing.T) {
	layout := block.Uniform(2)
	a := oneRow(layout, func(r block.DataRow) {
		r.Field(0).SetInt(1)
		r.Field(1).SetInt(2)
	})
	b := oneRow(layout, func(r block.DataRow) {
		r.Field(0).SetInt(1)
		r.Field(1).SetInt(2)
	})
	c := oneRow(layout, func(r block.DataRow) {
		r.Field(0).SetInt(2)
		r.Field(1).SetInt(1)
	})

	ha := HashRow(a, []int{0, 1})
	hb := HashRow(b, []int{0, 1})
	hc := HashRow(c, []int{0, 1})

	if ha != hb {
		t.Fatalf("equal rows hashed differently: %x != %x", ha, hb)
	}
	if ha == hc {
		t.Fatalf("distinct rows hashed identically: %x", ha)
	}
}

func TestTablePutGetAndMulti(t *testing.T) {
	tbl := NewTable[string]()
	tbl.Put(1, "a")
	tbl.Put(1, "b")
	tbl.Put(2, "c")

	if v, ok := tbl.Get(1); !ok || v != "a" {
		t.Fatalf("Get(1) = %q, %v, want a, true", v, ok)
	}
	all, ok := tbl.GetAll(1)
	if !ok || len(all) != 2 || all[0] != "a" || all[1] != "b" {
		t.Fatalf("GetAll(1) = %v, %v", all, ok)
	}
	if !tbl.Has(2) {
		t.Fatalf("Has(2) = false")
	}
	if tbl.Has(3) {
		t.Fatalf("Has(3) = true")
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}
}

func TestHash32SparsePutGetAndGrow(t *testing.T) {
	h := NewHash32Sparse[int]()
	const n = 500
	for i := 0; i < n; i++ {
		h.Put(uint32(i), i*10)
	}
	if h.Len() != n {
		t.Fatalf("Len() = %d, want %d", h.Len(), n)
	}
	for i := 0; i < n; i++ {
		v, ok := h.Get(uint32(i))
		if !ok || v != i*10 {
			t.Fatalf("Get(%d) = %d, %v, want %d, true", i, v, ok, i*10)
		}
	}
	if h.Has(n + 1) {
		t.Fatalf("Has(%d) = true, want false", n+1)
	}
}

func TestHash32SparseOverwrite(t *testing.T) {
	h := NewHash32Sparse[int]()
	h.Put(7, 1)
	h.Put(7, 2)
	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}
	v, ok := h.Get(7)
	if !ok || v != 2 {
		t.Fatalf("Get(7) = %d, %v, want 2, true", v, ok)
	}
}
