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

package bitmap

import (
	"testing"
)

func TestSetGetCardinality(t *testing.T) {
	b := New(130)
	for _, i := range []uint64{0, 1, 63, 64, 65, 129} {
		b.Set(i)
	}
	if got, want := b.Cardinality(), uint64(6); got != want {
		t.Fatalf("cardinality = %d, want %d", got, want)
	}
	for _, i := range []uint64{0, 1, 63, 64, 65, 129} {
		if !b.Get(i) {
			t.Errorf("bit %d should be set", i)
		}
	}
	if b.Get(2) {
		t.Errorf("bit 2 should be clear")
	}
}

func TestFull(t *testing.T) {
	b := Full(70)
	if got, want := b.Cardinality(), uint64(70); got != want {
		t.Fatalf("cardinality = %d, want %d", got, want)
	}
}

func TestAndOrNot(t *testing.T) {
	a := New(8)
	a.Set(0)
	a.Set(2)
	a.Set(4)
	c := New(8)
	c.Set(2)
	c.Set(3)

	and := a.And(c)
	if and.Positions()[0] != 2 || and.Cardinality() != 1 {
		t.Fatalf("AND mismatch: %v", and.Positions())
	}

	or := a.Or(c)
	wantOr := []uint64{0, 2, 3, 4}
	gotOr := or.Positions()
	if len(gotOr) != len(wantOr) {
		t.Fatalf("OR mismatch: %v", gotOr)
	}
	for i := range wantOr {
		if gotOr[i] != wantOr[i] {
			t.Fatalf("OR mismatch at %d: got %v want %v", i, gotOr, wantOr)
		}
	}

	not := a.Not()
	if not.Get(0) || not.Get(2) || not.Get(4) {
		t.Fatalf("NOT should have cleared set bits")
	}
	if !not.Get(1) || !not.Get(3) {
		t.Fatalf("NOT should have set previously-clear bits")
	}
}

func TestEachStopsEarly(t *testing.T) {
	b := New(10)
	b.Set(1)
	b.Set(2)
	b.Set(3)
	var seen []uint64
	b.Each(func(pos uint64) bool {
		seen = append(seen, pos)
		return pos != 2
	})
	if len(seen) != 2 {
		t.Fatalf("Each should have stopped after 2 elements, got %v", seen)
	}
}

func TestChainedMaskEquivalence(t *testing.T) {
	// mask(m1).mask(m2) must equal mask(m1 & m2) in surviving positions.
	m1 := New(16)
	m2 := New(16)
	for i := uint64(0); i < 16; i++ {
		if i%2 == 0 {
			m1.Set(i)
		}
		if i%3 == 0 {
			m2.Set(i)
		}
	}
	chained := Full(16).And(m1).And(m2)
	combined := m1.And(m2)
	if chained.Cardinality() != combined.Cardinality() {
		t.Fatalf("chained mask should equal combined mask")
	}
	chained.Each(func(pos uint64) bool {
		if !combined.Get(pos) {
			t.Fatalf("position %d present in chained but not combined", pos)
		}
		return true
	})
}
