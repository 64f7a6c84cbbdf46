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

package graph

import "github.com/chidata/lqf/block"

// colSizeOf recovers a RowBlock's per-column word widths so a node
// that built the block directly (SmallSort/TopN finalize their own
// layout internally rather than taking outSizes from the caller) can
// still wrap it in a table.Table with a matching ColSize.
func colSizeOf(b *block.RowBlock) []uint32 {
	return b.Layout().Sizes()
}
