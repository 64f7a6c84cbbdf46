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

package dictionary

import (
	"testing"
)

func intCmp(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func TestLookupHitAndMiss(t *testing.T) {
	d := New([]int32{10, 20, 30, 40}, intCmp, nil)
	if got := d.Lookup(30); got != 2 {
		t.Fatalf("Lookup(30) = %d, want 2", got)
	}
	miss := d.Lookup(25)
	if miss >= 0 {
		t.Fatalf("Lookup(25) should miss, got %d", miss)
	}
	insertionPoint := int(-miss - 1)
	if insertionPoint != 2 {
		t.Fatalf("insertion point = %d, want 2", insertionPoint)
	}
}

func TestLookupBoundaryMiss(t *testing.T) {
	d := New([]int32{10, 20, 30}, intCmp, nil)
	miss := d.Lookup(5)
	if int(-miss-1) != 0 {
		t.Fatalf("expected insertion point 0, got %d", -miss-1)
	}
	miss = d.Lookup(100)
	if int(-miss-1) != 3 {
		t.Fatalf("expected insertion point 3, got %d", -miss-1)
	}
}

func TestRangeAndList(t *testing.T) {
	d := New([]int32{1, 3, 5, 7, 9, 11}, intCmp, nil)
	got := d.Range(3, 9)
	want := []Ordinal{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("Range = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Range[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	listed := d.List(func(v int32) bool { return v%5 == 0 })
	if len(listed) != 1 || d.At(listed[0]) != 5 {
		t.Fatalf("List mismatch: %v", listed)
	}
}

func TestFingerprintStableAndSensitive(t *testing.T) {
	d1 := New([]int32{1, 2, 3}, intCmp, [][]byte{{1}, {2}, {3}})
	d2 := New([]int32{1, 2, 3}, intCmp, [][]byte{{1}, {2}, {3}})
	d3 := New([]int32{1, 2, 4}, intCmp, [][]byte{{1}, {2}, {4}})

	if d1.Fingerprint() != d2.Fingerprint() {
		t.Fatalf("identical dictionaries should fingerprint identically")
	}
	if d1.Fingerprint() == d3.Fingerprint() {
		t.Fatalf("different dictionaries should not collide")
	}
}
