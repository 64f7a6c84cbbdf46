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

package engine

import (
	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/exec"
)

// Init starts a process-wide engine instance under cfg: it resets the
// block-id sequence (REDESIGN FLAGS' explicit lifecycle in place of
// the original's static random generator) and returns an exec.Executor
// sized to cfg.Workers. Call once, before any block or graph is
// constructed; a second call mid-query would make block ids
// non-unique for whatever query is already in flight.
func Init(cfg Config) (*exec.Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	block.ResetBlockIDs()
	return exec.NewExecutor(cfg.Workers), nil
}
