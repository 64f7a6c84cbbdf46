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

// Package hashtable implements the two build-side hash container
// shapes spec.md §4.5 requires for the hash join and hash aggregation
// operators, plus the row hash function they share.
package hashtable

import (
	"encoding/binary"

	"github.com/dchest/siphash"

	"github.com/chidata/lqf/block"
)

// HashRow hashes the selected columns of row into a single uint64 key,
// for use as a general hash container key or an aggregation group key.
// Fields are hashed in column order: regular/raw fields contribute
// their one word, string fields contribute their decoded bytes, so two
// rows with equal values in cols hash identically regardless of which
// block variant produced them.
func HashRow(row block.DataRow, cols []int) uint64 {
	var buf []byte
	for _, c := range cols {
		f := row.Field(c)
		if f.Size() == 2 {
			buf = append(buf, f.AsBytes()...)
		} else {
			var w [8]byte
			binary.LittleEndian.PutUint64(w[:], uint64(f.AsInt()))
			buf = append(buf, w[:]...)
		}
		buf = append(buf, 0xff) // field separator, so (1,"23") != (12,"3")
	}
	return siphash.Hash(0, 0, buf)
}
