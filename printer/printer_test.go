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

package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/dictionary"
	"github.com/chidata/lqf/table"
)

func buildTable(t *testing.T, rows [][2]int64, strs []string) *table.MemTable {
	mt := table.NewMemTable([]uint32{1, 1, 2}, false)
	rb := mt.Allocate(uint32(len(rows))).(*block.RowBlock)
	for i, r := range rows {
		row := rb.RowAt(uint32(i))
		row.Field(0).SetInt(r[0])
		row.Field(1).SetRawOrdinal(int32(r[1]))
		row.Field(2).SetBytes([]byte(strs[i]))
	}
	return mt
}

func TestPrinterFormatsIntDictAndBytesColumns(t *testing.T) {
	dict := dictionary.New([]string{"alpha", "beta", "gamma"}, strings.Compare, nil)

	mt := buildTable(t, [][2]int64{{1, 0}, {2, 2}}, []string{"x", "y"})

	var buf bytes.Buffer
	p := New(&buf, []Column{
		{Index: 0, Kind: Int},
		{Index: 1, Kind: Dict, Dict: StringDict[string]{
			At:     func(o int32) string { return dict.At(dictionary.Ordinal(o)) },
			Format: func(s string) string { return s },
		}},
		{Index: 2, Kind: Bytes},
	})
	if err := p.Print(mt); err != nil {
		t.Fatalf("Print: %v", err)
	}
	want := "1\talpha\tx\n2\tgamma\ty\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestPrinterDoubleColumn(t *testing.T) {
	mt := table.NewMemTable([]uint32{1}, false)
	rb := mt.Allocate(1).(*block.RowBlock)
	rb.RowAt(0).Field(0).SetDouble(3.5)

	var buf bytes.Buffer
	p := New(&buf, []Column{{Index: 0, Kind: Double}})
	if err := p.Print(mt); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if buf.String() != "3.5\n" {
		t.Fatalf("got %q, want %q", buf.String(), "3.5\n")
	}
}

func TestNodePassesTableThroughUnchanged(t *testing.T) {
	mt := buildTable(t, [][2]int64{{7, 1}}, []string{"z"})
	var buf bytes.Buffer
	p := New(&buf, []Column{{Index: 0, Kind: Int}})
	node := NewNode(p)

	out, err := node.Execute([]table.Table{mt})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != table.Table(mt) {
		t.Fatalf("Node.Execute did not pass the input table through unchanged")
	}
	if buf.String() != "7\n" {
		t.Fatalf("got %q, want %q", buf.String(), "7\n")
	}
}
