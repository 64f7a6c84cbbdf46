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
	"encoding/binary"

	"github.com/chidata/lqf/bitmap"
	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/colreader"
	"github.com/chidata/lqf/dictionary"
)

// DictDecoder decodes a raw dictionary page's bytes into the sorted,
// deduplicated values it encodes. colreader.DecodeDictInts and
// colreader.DecodeDictByteArrays satisfy this directly.
type DictDecoder[T any] func(data []byte) []T

// rawOrdinalWidth is the byte width of one encoded ordinal in a
// dictionary column's data page (colreader always packs ordinals as
// little-endian int32).
const rawOrdinalWidth = 4

// equalityAccessor is the block.RawAccessor for dictionary-encoded
// equality, per spec.md §4.3: the dictionary page is looked up once
// for the matching ordinal, then every data-page ordinal is compared
// against it directly, without ever materializing a decoded value.
type equalityAccessor[T any] struct {
	decode DictDecoder[T]
	cmp    func(a, b T) int
	key    T

	bm      *bitmap.Bitmap
	wantOrd dictionary.Ordinal
	haveOrd bool
	pos     uint64
}

func (a *equalityAccessor[T]) Init(size uint64) { a.bm = bitmap.New(size) }

func (a *equalityAccessor[T]) Dict(page *colreader.Page) {
	dict := dictionary.New(a.decode(page.Data), a.cmp, nil)
	if ord := dict.Lookup(a.key); ord >= 0 {
		a.wantOrd, a.haveOrd = ord, true
	}
}

func (a *equalityAccessor[T]) Data(page *colreader.Page) {
	if !a.haveOrd {
		a.pos += uint64(page.NumValues)
		return
	}
	for i := 0; i < page.NumValues; i++ {
		ord := dictionary.Ordinal(int32(binary.LittleEndian.Uint32(page.Data[i*rawOrdinalWidth:])))
		if ord == a.wantOrd {
			a.bm.Set(a.pos)
		}
		a.pos++
	}
}

func (a *equalityAccessor[T]) Result() *bitmap.Bitmap { return a.bm }

// rangeAccessor is the block.RawAccessor for a dictionary-encoded
// half-open range [lo, hi): the dictionary is binary-searched once for
// the ordinal span the range covers, then every data-page ordinal is
// range-tested against that span.
type rangeAccessor[T any] struct {
	decode DictDecoder[T]
	cmp    func(a, b T) int
	lo, hi T

	bm           *bitmap.Bitmap
	loOrd, hiOrd dictionary.Ordinal
	pos          uint64
}

func (a *rangeAccessor[T]) Init(size uint64) { a.bm = bitmap.New(size) }

func (a *rangeAccessor[T]) Dict(page *colreader.Page) {
	dict := dictionary.New(a.decode(page.Data), a.cmp, nil)
	ords := dict.Range(a.lo, a.hi)
	if len(ords) == 0 {
		return
	}
	a.loOrd = ords[0]
	a.hiOrd = ords[len(ords)-1] + 1
}

func (a *rangeAccessor[T]) Data(page *colreader.Page) {
	if a.hiOrd <= a.loOrd {
		a.pos += uint64(page.NumValues)
		return
	}
	for i := 0; i < page.NumValues; i++ {
		ord := dictionary.Ordinal(int32(binary.LittleEndian.Uint32(page.Data[i*rawOrdinalWidth:])))
		if ord >= a.loOrd && ord < a.hiOrd {
			a.bm.Set(a.pos)
		}
		a.pos++
	}
}

func (a *rangeAccessor[T]) Result() *bitmap.Bitmap { return a.bm }

// rawPredicate adapts a block.RawAccessor family to Predicate: when
// evaluated against a *block.ColumnarFileBlock it drives the raw page
// scan directly (the fast path spec.md §4.3 prefers); against any
// other block variant — one already fully materialized in memory,
// with no on-disk pages to hand a RawAccessor — it falls back to the
// same decoded-value test via scanDecoded.
type rawPredicate struct {
	col      int
	newAccessor func() block.RawAccessor
	fallback func(block.DataField) bool
}

func (p *rawPredicate) Column() int { return p.col }

func (p *rawPredicate) Eval(b block.Block) (*bitmap.Bitmap, error) {
	if fb, ok := b.(*block.ColumnarFileBlock); ok {
		return fb.RawScan(p.col, p.newAccessor())
	}
	return scanDecoded(b, p.col, p.fallback), nil
}

// NewRawEquality builds the raw equality predicate of spec.md §4.3 for
// a dictionary-encoded column: col is the column index, decode turns a
// dictionary page's bytes into sorted values, cmp orders two values
// (matching the column's on-disk dictionary order), key is the value
// to match, and asValue decodes one row's already-materialized
// DataField for the decoded-scan fallback path.
func NewRawEquality[T any](col int, decode DictDecoder[T], cmp func(a, b T) int, key T, asValue func(block.DataField) T) Predicate {
	return &rawPredicate{
		col: col,
		newAccessor: func() block.RawAccessor {
			return &equalityAccessor[T]{decode: decode, cmp: cmp, key: key}
		},
		fallback: func(f block.DataField) bool { return cmp(asValue(f), key) == 0 },
	}
}

// NewRawRange builds the raw half-open range predicate [lo, hi) of
// spec.md §4.3, with the same parameters as NewRawEquality.
func NewRawRange[T any](col int, decode DictDecoder[T], cmp func(a, b T) int, lo, hi T, asValue func(block.DataField) T) Predicate {
	return &rawPredicate{
		col: col,
		newAccessor: func() block.RawAccessor {
			return &rangeAccessor[T]{decode: decode, cmp: cmp, lo: lo, hi: hi}
		},
		fallback: func(f block.DataField) bool {
			v := asValue(f)
			return cmp(v, lo) >= 0 && cmp(v, hi) < 0
		},
	}
}
