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

package block

import (
	"testing"

	"github.com/chidata/lqf/bitmap"
)

func fillRowBlock(t *testing.T, vals []int64) *RowBlock {
	t.Helper()
	layout := Uniform(1)
	b := NewRowBlock(layout, uint32(len(vals)))
	b.Reserve(uint32(len(vals)))
	for i, v := range vals {
		b.RowAt(uint32(i)).Field(0).SetInt(v)
	}
	return b
}

func TestRowBlockMaskCardinality(t *testing.T) {
	b := fillRowBlock(t, []int64{10, 20, 30, 40, 50})
	m := bitmap.New(b.Limit())
	m.Set(1)
	m.Set(3)
	masked := b.Mask(m)
	if masked.Size() != m.Cardinality() {
		t.Fatalf("mask size = %d, want %d", masked.Size(), m.Cardinality())
	}
	rows := masked.Rows()
	var got []int64
	for {
		r, ok := rows.Next()
		if !ok {
			break
		}
		got = append(got, r.Field(0).AsInt())
	}
	if len(got) != 2 || got[0] != 20 || got[1] != 40 {
		t.Fatalf("unexpected masked rows: %v", got)
	}
}

func TestColumnBlockMaskAlwaysWraps(t *testing.T) {
	cb := NewColumnBlock([]uint32{1}, 4)
	for i := uint32(0); i < 4; i++ {
		cb.ColumnField(0, i).SetInt(int64(i))
	}
	m := bitmap.New(4)
	m.Set(0)
	m.Set(2)
	masked := cb.Mask(m)
	mb, ok := masked.(*MaskedBlock)
	if !ok {
		t.Fatalf("ColumnBlock.Mask must always return a *MaskedBlock, got %T", masked)
	}
	if mb.Size() != 2 {
		t.Fatalf("size = %d, want 2", mb.Size())
	}
}

func TestMaskedBlockChainEquivalence(t *testing.T) {
	b := fillRowBlock(t, []int64{1, 2, 3, 4, 5, 6})
	m1 := bitmap.New(6)
	m2 := bitmap.New(6)
	for i := uint64(0); i < 6; i++ {
		if i%2 == 0 {
			m1.Set(i)
		}
		if i < 4 {
			m2.Set(i)
		}
	}
	mb := NewMaskedBlock(b, bitmap.Full(6))
	mb.Mask(m1)
	mb.Mask(m2)

	combined := bitmap.Full(6).And(m1).And(m2)
	mb2 := NewMaskedBlock(b, combined)

	if mb.Size() != mb2.Size() {
		t.Fatalf("chained mask size %d != combined mask size %d", mb.Size(), mb2.Size())
	}
	r1 := mb.Rows()
	r2 := mb2.Rows()
	for {
		row1, ok1 := r1.Next()
		row2, ok2 := r2.Next()
		if ok1 != ok2 {
			t.Fatalf("row iterator length mismatch")
		}
		if !ok1 {
			break
		}
		if row1.Field(0).AsInt() != row2.Field(0).AsInt() {
			t.Fatalf("chained vs combined mask disagree")
		}
	}
}

func TestSnapshotSurvivesSourceBlock(t *testing.T) {
	layout := FromSizes([]uint32{1, 2})
	rb := NewRowBlock(layout, 1)
	rb.Reserve(1)
	row := rb.RowAt(0)
	row.Field(0).SetInt(42)
	row.Field(1).SetBytes([]byte("hello"))

	snap := row.Snapshot()
	rb = nil // drop the source block
	_ = rb

	if snap.Field(0).AsInt() != 42 {
		t.Fatalf("snapshot int field mismatch")
	}
	if string(snap.Field(1).AsBytes()) != "hello" {
		t.Fatalf("snapshot string field mismatch: %q", snap.Field(1).AsBytes())
	}
}

func TestDataFieldAssignWidthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic assigning a wider field into a narrower one")
		}
	}()
	wide := FieldOf(make([]uint64, 2), &BytePool{})
	narrow := FieldOf(make([]uint64, 1), nil)
	narrow.Assign(wide)
}

func TestBlockIDsAreMonotonicAndUnique(t *testing.T) {
	ResetBlockIDs()
	a := NewRowBlock(Uniform(1), 0)
	b := NewRowBlock(Uniform(1), 0)
	if a.ID() == 0 || b.ID() == 0 {
		t.Fatalf("block ids should start above zero")
	}
	if a.ID() == b.ID() {
		t.Fatalf("block ids should be unique")
	}
	if b.ID() < a.ID() {
		t.Fatalf("block ids should be monotonic")
	}
}
