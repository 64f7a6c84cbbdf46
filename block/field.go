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

import "math"

// BytePool is an append-only buffer that backs the byte-array
// descriptors of string-valued DataFields. Each block (or MemDataRow)
// owns exactly one BytePool; DataField offsets are only meaningful
// relative to the pool that produced them.
type BytePool struct {
	buf []byte
}

// Append copies b into the pool and returns the (offset, length)
// descriptor that addresses it.
func (p *BytePool) Append(b []byte) (offset, length uint32) {
	offset = uint32(len(p.buf))
	p.buf = append(p.buf, b...)
	length = uint32(len(b))
	return
}

// Bytes resolves an (offset, length) descriptor back to a byte slice.
func (p *BytePool) Bytes(offset, length uint32) []byte {
	return p.buf[offset : offset+length]
}

// DataField is a typed view into a slot: one word for an int or
// double, or two words (offset, length into a BytePool) for a
// variable-length byte array. DataField is a thin value type bound to
// a sub-slice of its owning block's word buffer; it borrows, it does
// not own.
type DataField struct {
	words []uint64
	pool  *BytePool
}

// FieldOf constructs a DataField bound to exactly len(words) words of
// backing storage. pool is required only when len(words) == 2.
func FieldOf(words []uint64, pool *BytePool) DataField {
	return DataField{words: words, pool: pool}
}

// Size returns the field's width in words: 1 for int/double/raw
// ordinal fields, 2 for a byte-array descriptor.
func (f DataField) Size() int { return len(f.words) }

// AsInt interprets the field as a signed 64-bit integer.
func (f DataField) AsInt() int64 { return int64(f.words[0]) }

// AsDouble interprets the field as an IEEE-754 double.
func (f DataField) AsDouble() float64 { return math.Float64frombits(f.words[0]) }

// AsRawOrdinal interprets the field as an undecoded 32-bit dictionary
// ordinal, as produced by a dictionary-encoded column's raw accessor.
func (f DataField) AsRawOrdinal() int32 { return int32(f.words[0]) }

// AsBytes resolves a two-word byte-array descriptor against the
// field's BytePool. Panics if Size() != 2.
func (f DataField) AsBytes() []byte {
	if len(f.words) != 2 {
		panic("block: AsBytes on a non-byte-array field")
	}
	return f.pool.Bytes(uint32(f.words[0]), uint32(f.words[1]))
}

// SetInt stores v in place.
func (f DataField) SetInt(v int64) { f.words[0] = uint64(v) }

// SetDouble stores v in place.
func (f DataField) SetDouble(v float64) { f.words[0] = math.Float64bits(v) }

// SetRawOrdinal stores an undecoded dictionary ordinal in place.
func (f DataField) SetRawOrdinal(v int32) { f.words[0] = uint64(uint32(v)) }

// SetBytes copies b into the field's BytePool and stores the
// resulting descriptor. Panics if Size() != 2.
func (f DataField) SetBytes(b []byte) {
	if len(f.words) != 2 {
		panic("block: SetBytes on a non-byte-array field")
	}
	off, ln := f.pool.Append(b)
	f.words[0] = uint64(off)
	f.words[1] = uint64(ln)
}

// Assign copies src's words into f in place. The destination must be
// at least as large as the source; assigning a narrower field into a
// wider one is allowed (it leaves any extra destination words
// untouched), matching spec.md's DataField assignment contract.
func (f DataField) Assign(src DataField) {
	if src.Size() > f.Size() {
		panic("block: DataField.Assign: source wider than destination")
	}
	copy(f.words, src.words)
	if src.Size() == 2 {
		f.pool = src.pool
	}
}
