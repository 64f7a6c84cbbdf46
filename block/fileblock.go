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
	"fmt"
	"math/bits"

	"github.com/chidata/lqf/bitmap"
	"github.com/chidata/lqf/colreader"
)

// batchSize is the minimum decoded-value batch window a column
// iterator keeps buffered, per spec.md §4.2 ("a small batch buffer
// (>= 8 rows)").
const batchSize = 64

// RawAccessor receives a dictionary-encoded column's pages directly
// and produces a bitmap without materializing decoded values: the
// raw-predicate-scan contract of spec.md §4.3. Implementations live
// in the predicate package; ColumnarFileBlock only drives the calls.
type RawAccessor interface {
	// Init is called once before any page, with the size of the
	// bitmap to allocate (the row group's row count).
	Init(size uint64)
	// Dict is called once per dictionary page encountered.
	Dict(page *colreader.Page)
	// Data is called once per data page encountered, in order.
	Data(page *colreader.Page)
	// Result returns the accumulated bitmap after all pages are seen.
	Result() *bitmap.Bitmap
}

// ColumnarFileBlock is the on-disk block variant: a row-group reader
// plus lazily constructed per-column page readers. It is read-only.
type ColumnarFileBlock struct {
	id      uint32
	rg      colreader.RowGroup
	columns uint64 // projection bitmask: bit i selects column i
	numRows uint64

	readers map[int]colreader.ColumnReader
	dicts   map[int]*fileDict
}

type fileDict struct {
	typ  colreader.Type
	ints []int64
	strs [][]byte
}

// NewColumnarFileBlock wraps one row group of an open columnar file,
// projecting exactly the columns set in the columns bitmask. id
// should be the row group's index, matching spec.md's note that the
// on-disk block uses its row-group index as its block id rather than
// the monotonic counter.
func NewColumnarFileBlock(id uint32, rg colreader.RowGroup, columns uint64) *ColumnarFileBlock {
	return &ColumnarFileBlock{
		id:      id,
		rg:      rg,
		columns: columns,
		numRows: uint64(rg.NumRows()),
		readers: map[int]colreader.ColumnReader{},
		dicts:   map[int]*fileDict{},
	}
}

// Projected reports whether column i is selected by the block's
// projection mask.
func (b *ColumnarFileBlock) Projected(i int) bool {
	return b.columns&(uint64(1)<<uint(i)) != 0
}

func (b *ColumnarFileBlock) reader(col int) (colreader.ColumnReader, error) {
	if !b.Projected(col) {
		return nil, fmt.Errorf("block: column %d is not in the projection", col)
	}
	if r, ok := b.readers[col]; ok {
		return r, nil
	}
	r, err := b.rg.Column(col)
	if err != nil {
		return nil, err
	}
	b.readers[col] = r
	return r, nil
}

func (b *ColumnarFileBlock) dictionary(col int) (*fileDict, error) {
	if d, ok := b.dicts[col]; ok {
		return d, nil
	}
	r, err := b.reader(col)
	if err != nil {
		return nil, err
	}
	raw := r.Dictionary()
	if raw == nil {
		return nil, nil
	}
	d := &fileDict{typ: r.Type()}
	switch r.Type() {
	case colreader.ByteArray:
		d.strs = colreader.DecodeDictByteArrays(raw)
	default:
		d.ints = colreader.DecodeDictInts(raw)
	}
	b.dicts[col] = d
	return d, nil
}

// Translate materializes the decoded value for dictionary ordinal ord
// in column col. It panics if column col is not dictionary-encoded.
func (b *ColumnarFileBlock) Translate(col int, ord int32) DataField {
	d, err := b.dictionary(col)
	if err != nil || d == nil {
		panic(fmt.Errorf("block: Translate: column %d has no dictionary", col))
	}
	if d.typ == colreader.ByteArray {
		pool := &BytePool{}
		f := FieldOf(make([]uint64, 2), pool)
		f.SetBytes(d.strs[ord])
		return f
	}
	return FieldOf([]uint64{uint64(d.ints[ord])}, nil)
}

// RawScan drives acc over every page of column col's on-disk
// encoding, in order, and returns the resulting bitmap.
func (b *ColumnarFileBlock) RawScan(col int, acc RawAccessor) (*bitmap.Bitmap, error) {
	r, err := b.reader(col)
	if err != nil {
		return nil, err
	}
	acc.Init(b.numRows)
	for {
		page, err := r.NextPage()
		if err != nil {
			return nil, err
		}
		if page == nil {
			break
		}
		if page.Kind == colreader.DictPage {
			acc.Dict(page)
		} else {
			acc.Data(page)
		}
	}
	return acc.Result(), nil
}

func (b *ColumnarFileBlock) ID() uint32    { return b.id }
func (b *ColumnarFileBlock) Size() uint64  { return b.numRows }
func (b *ColumnarFileBlock) Limit() uint64 { return b.numRows }

func (b *ColumnarFileBlock) Col(i int) ColumnIterator {
	r, err := b.reader(i)
	if err != nil {
		panic(err)
	}
	isDict := r.Dictionary() != nil
	return &fileColumnIterator{block: b, col: i, reader: r, isDict: isDict}
}

func (b *ColumnarFileBlock) Rows() RowIterator {
	return &fileRowIterator{block: b, numCols: bits.Len64(b.columns)}
}

// Mask always wraps in a MaskedBlock: the on-disk block is read-only.
func (b *ColumnarFileBlock) Mask(m *bitmap.Bitmap) Block {
	return NewMaskedBlock(b, m)
}

// fileColumnIterator is the decoded-value column cursor described in
// spec.md §4.2: a small batch buffer refilled by seeking the
// underlying reader whenever the caller asks for an index outside the
// current window.
type fileColumnIterator struct {
	block  *ColumnarFileBlock
	col    int
	reader colreader.ColumnReader
	isDict bool

	pos        uint64
	batchStart uint64
	batchWords []uint64
	batchOrds  []int32
	pool       BytePool
}

func (it *fileColumnIterator) fill(start uint64) {
	if err := it.reader.MoveTo(int(start)); err != nil {
		panic(err)
	}
	n := batchSize
	if it.isDict {
		it.batchOrds = make([]int32, n)
		got, err := it.reader.ReadBatchRaw(n, it.batchOrds)
		if err != nil {
			panic(err)
		}
		it.batchOrds = it.batchOrds[:got]
	} else {
		it.batchWords = make([]uint64, n)
		got, err := it.reader.ReadBatch(n, it.batchWords)
		if err != nil {
			panic(err)
		}
		it.batchWords = it.batchWords[:got]
	}
	it.batchStart = start
}

func (it *fileColumnIterator) windowLen() int {
	if it.isDict {
		return len(it.batchOrds)
	}
	return len(it.batchWords)
}

func (it *fileColumnIterator) At(idx uint64) DataField {
	if it.windowLen() == 0 || idx < it.batchStart || idx >= it.batchStart+uint64(it.windowLen()) {
		it.fill(idx)
	}
	offset := idx - it.batchStart
	if it.isDict {
		return it.block.Translate(it.col, it.batchOrds[offset])
	}
	return FieldOf([]uint64{it.batchWords[offset]}, nil)
}

func (it *fileColumnIterator) Next() (DataField, bool) {
	if it.pos >= it.block.Size() {
		return DataField{}, false
	}
	f := it.At(it.pos)
	it.pos++
	return f, true
}

func (it *fileColumnIterator) Pos() uint64 { return it.pos }

// rawOrdinalAt returns the undecoded ordinal at idx, for columns that
// are dictionary-encoded; ok is false otherwise.
func (it *fileColumnIterator) rawOrdinalAt(idx uint64) (int32, bool) {
	if !it.isDict {
		return 0, false
	}
	if idx < it.batchStart || idx >= it.batchStart+uint64(len(it.batchOrds)) {
		it.fill(idx)
	}
	return it.batchOrds[idx-it.batchStart], true
}

type fileRow struct {
	block *ColumnarFileBlock
	idx   uint64
	iters map[int]*fileColumnIterator
}

// NumFields returns one past the highest projected column ordinal:
// fields are sparse-indexed by on-disk column ordinal (spec.md §4.2),
// not densely renumbered, so callers must only address indices the
// block's projection actually selects.
func (r *fileRow) NumFields() int {
	return bits.Len64(r.block.columns)
}

func (r *fileRow) iter(i int) *fileColumnIterator {
	it, ok := r.iters[i]
	if !ok {
		it = r.block.Col(i).(*fileColumnIterator)
		r.iters[i] = it
	}
	return it
}

func (r *fileRow) Field(i int) DataField { return r.iter(i).At(r.idx) }

func (r *fileRow) Raw(i int) (DataField, bool) {
	it := r.iter(i)
	ord, ok := it.rawOrdinalAt(r.idx)
	if !ok {
		return DataField{}, false
	}
	return FieldOf([]uint64{uint64(uint32(ord))}, nil), true
}

func (r *fileRow) Snapshot() *MemDataRow { return SnapshotRow(r) }

type fileRowIterator struct {
	block   *ColumnarFileBlock
	numCols int
	pos     uint64
}

func (it *fileRowIterator) Next() (DataRow, bool) {
	if it.pos >= it.block.Size() {
		return nil, false
	}
	r := it.At(it.pos)
	it.pos++
	return r, true
}

func (it *fileRowIterator) At(idx uint64) DataRow {
	return &fileRow{block: it.block, idx: idx, iters: map[int]*fileColumnIterator{}}
}

func (it *fileRowIterator) Pos() uint64 { return it.pos }
