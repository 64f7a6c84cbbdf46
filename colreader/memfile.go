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

package colreader

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

// MemColumn is one column's worth of in-memory values for MemFile,
// used to synthesize row groups in tests without a real file on disk.
type MemColumn struct {
	Type Type
	// Ints holds Int32/Int64/Bool values (as int64); Doubles holds
	// Float/Double values; Strings holds ByteArray values. Exactly
	// one is populated, selected by Type.
	Ints    []int64
	Doubles []float64
	Strings [][]byte

	// Dictionary, if true, makes this column present itself through
	// dictionary-ordinal pages instead of plain data pages.
	Dictionary bool
}

func (c *MemColumn) len() int {
	switch c.Type {
	case Float, Double:
		return len(c.Doubles)
	case ByteArray:
		return len(c.Strings)
	default:
		return len(c.Ints)
	}
}

// MemFile is a reference FileReader backed entirely by in-memory
// slices, grouped into row groups of a fixed size. It exists so this
// module's tests can exercise ColumnarFileBlock and
// the raw predicate scan path without depending on a real columnar
// file reader, which is an external collaborator (spec.md §6).
type MemFile struct {
	columns     []*MemColumn
	rowsPerGrp  int
	totalRows   int
	dictOrdinal map[int][]int32 // column index -> per-row ordinal, when Dictionary
	dictValues  map[int]*MemColumn
}

// NewMemFile builds a MemFile from columns that must all have equal
// length; rowsPerGroup controls how many rows land in each row group.
func NewMemFile(rowsPerGroup int, columns ...*MemColumn) (*MemFile, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("colreader: MemFile needs at least one column")
	}
	n := columns[0].len()
	for i, c := range columns {
		if c.len() != n {
			return nil, fmt.Errorf("colreader: column %d has %d rows, want %d", i, c.len(), n)
		}
	}
	f := &MemFile{
		columns:     columns,
		rowsPerGrp:  rowsPerGroup,
		totalRows:   n,
		dictOrdinal: map[int][]int32{},
		dictValues:  map[int]*MemColumn{},
	}
	for ci, c := range columns {
		if !c.Dictionary {
			continue
		}
		f.buildDictionary(ci, c)
	}
	return f, nil
}

func (f *MemFile) buildDictionary(ci int, c *MemColumn) {
	switch c.Type {
	case ByteArray:
		seen := map[string]int32{}
		var uniq [][]byte
		ord := make([]int32, len(c.Strings))
		for i, s := range c.Strings {
			key := string(s)
			id, ok := seen[key]
			if !ok {
				id = int32(len(uniq))
				uniq = append(uniq, s)
				seen[key] = id
			}
			ord[i] = id
		}
		sort.Slice(uniq, func(a, b int) bool { return string(uniq[a]) < string(uniq[b]) })
		remap := make(map[string]int32, len(uniq))
		for i, v := range uniq {
			remap[string(v)] = int32(i)
		}
		for i, s := range c.Strings {
			ord[i] = remap[string(s)]
		}
		f.dictOrdinal[ci] = ord
		f.dictValues[ci] = &MemColumn{Type: ByteArray, Strings: uniq}
	default:
		seen := map[int64]int32{}
		var uniq []int64
		for _, v := range c.Ints {
			if _, ok := seen[v]; !ok {
				seen[v] = 0
				uniq = append(uniq, v)
			}
		}
		sort.Slice(uniq, func(a, b int) bool { return uniq[a] < uniq[b] })
		for i, v := range uniq {
			seen[v] = int32(i)
		}
		ord := make([]int32, len(c.Ints))
		for i, v := range c.Ints {
			ord[i] = seen[v]
		}
		f.dictOrdinal[ci] = ord
		f.dictValues[ci] = &MemColumn{Type: c.Type, Ints: uniq}
	}
}

func (f *MemFile) NumRowGroups() int {
	return (f.totalRows + f.rowsPerGrp - 1) / f.rowsPerGrp
}

func (f *MemFile) Close() error { return nil }

func (f *MemFile) RowGroup(i int) (RowGroup, error) {
	if i < 0 || i >= f.NumRowGroups() {
		return nil, fmt.Errorf("colreader: row group %d out of range", i)
	}
	start := i * f.rowsPerGrp
	end := start + f.rowsPerGrp
	if end > f.totalRows {
		end = f.totalRows
	}
	return &memRowGroup{file: f, start: start, end: end}, nil
}

type memRowGroup struct {
	file       *MemFile
	start, end int
}

func (g *memRowGroup) NumRows() int { return g.end - g.start }

func (g *memRowGroup) Column(i int) (ColumnReader, error) {
	if i < 0 || i >= len(g.file.columns) {
		return nil, fmt.Errorf("colreader: column %d out of range", i)
	}
	return &memColumnReader{
		group: g,
		col:   i,
		pos:   0,
	}, nil
}

// memColumnReader is the reference ColumnReader: it serves one page
// per NextPage call containing the entire row group (dictionary page
// first, if the column is dictionary-encoded, followed by one data
// page of ordinals or values).
type memColumnReader struct {
	group    *memRowGroup
	col      int
	pos      int
	servedDict bool
	servedData bool
}

func (r *memColumnReader) Type() Type { return r.group.file.columns[r.col].Type }

func (r *memColumnReader) MoveTo(idx int) error {
	if idx < 0 || idx > r.group.NumRows() {
		return fmt.Errorf("colreader: MoveTo(%d) out of range", idx)
	}
	r.pos = idx
	return nil
}

func (r *memColumnReader) isDict() bool {
	return r.group.file.columns[r.col].Dictionary
}

func (r *memColumnReader) Dictionary() []byte {
	if !r.isDict() {
		return nil
	}
	return encodeDictPage(r.group.file.dictValues[r.col])
}

func (r *memColumnReader) ReadBatch(n int, out []uint64) (int, error) {
	col := r.group.file.columns[r.col]
	base := r.group.start
	read := 0
	for read < n && r.pos < r.group.NumRows() {
		idx := base + r.pos
		switch col.Type {
		case Float, Double:
			out[read] = math.Float64bits(col.Doubles[idx])
		case ByteArray:
			return read, fmt.Errorf("colreader: ReadBatch does not support ByteArray, use ReadBatchRaw+translate")
		default:
			out[read] = uint64(col.Ints[idx])
		}
		r.pos++
		read++
	}
	return read, nil
}

func (r *memColumnReader) ReadBatchRaw(n int, out []int32) (int, error) {
	if !r.isDict() {
		return 0, fmt.Errorf("colreader: column %d is not dictionary-encoded", r.col)
	}
	ord := r.group.file.dictOrdinal[r.col]
	base := r.group.start
	read := 0
	for read < n && r.pos < r.group.NumRows() {
		out[read] = ord[base+r.pos]
		r.pos++
		read++
	}
	return read, nil
}

func (r *memColumnReader) NextPage() (*Page, error) {
	if r.isDict() && !r.servedDict {
		r.servedDict = true
		return &Page{Kind: DictPage, NumValues: r.group.file.dictValues[r.col].len(), Data: r.Dictionary()}, nil
	}
	if r.servedData {
		return nil, nil
	}
	r.servedData = true
	n := r.group.NumRows()
	if r.isDict() {
		buf := make([]byte, n*4)
		ord := r.group.file.dictOrdinal[r.col][r.group.start : r.group.start+n]
		for i, o := range ord {
			binary.LittleEndian.PutUint32(buf[i*4:], uint32(o))
		}
		return &Page{Kind: DataPage, NumValues: n, Data: buf}, nil
	}
	col := r.group.file.columns[r.col]
	buf := make([]byte, n*8)
	for i := 0; i < n; i++ {
		idx := r.group.start + i
		var bits uint64
		switch col.Type {
		case Float, Double:
			bits = math.Float64bits(col.Doubles[idx])
		default:
			bits = uint64(col.Ints[idx])
		}
		binary.LittleEndian.PutUint64(buf[i*8:], bits)
	}
	return &Page{Kind: DataPage, NumValues: n, Data: buf}, nil
}

func encodeDictPage(c *MemColumn) []byte {
	switch c.Type {
	case ByteArray:
		var buf []byte
		for _, s := range c.Strings {
			var lenb [4]byte
			binary.LittleEndian.PutUint32(lenb[:], uint32(len(s)))
			buf = append(buf, lenb[:]...)
			buf = append(buf, s...)
		}
		return buf
	default:
		buf := make([]byte, len(c.Ints)*8)
		for i, v := range c.Ints {
			binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
		}
		return buf
	}
}

// DecodeDictByteArrays decodes a ByteArray dictionary page produced by
// encodeDictPage back into individual values; used by
// block.ColumnarFileBlock to decode a ByteArray column's dictionary for
// Translate.
func DecodeDictByteArrays(data []byte) [][]byte {
	var out [][]byte
	for len(data) > 0 {
		n := binary.LittleEndian.Uint32(data)
		data = data[4:]
		out = append(out, data[:n])
		data = data[n:]
	}
	return out
}

// DecodeDictInts decodes an integer dictionary page produced by
// encodeDictPage.
func DecodeDictInts(data []byte) []int64 {
	out := make([]int64, len(data)/8)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return out
}
