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

package exec

import (
	"sync/atomic"
	"testing"
)

func TestExecutorRunsAllTasks(t *testing.T) {
	e := NewExecutor(4)
	defer e.Shutdown()

	var n int64
	futs := make([]*Future, 50)
	for i := range futs {
		futs[i] = e.Submit(func() error {
			atomic.AddInt64(&n, 1)
			return nil
		})
	}
	for _, f := range futs {
		if err := f.Wait(); err != nil {
			t.Fatalf("task error: %v", err)
		}
	}
	if n != 50 {
		t.Fatalf("n = %d, want 50", n)
	}
}

func TestExecutorFuturePropagatesError(t *testing.T) {
	e := NewExecutor(2)
	defer e.Shutdown()

	wantErr := shutdownError{}
	f := e.Submit(func() error { return wantErr })
	if err := f.Wait(); err != wantErr {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestExecutorSubmitAfterShutdownFails(t *testing.T) {
	e := NewExecutor(1)
	e.Shutdown()
	f := e.Submit(func() error { return nil })
	if err := f.Wait(); err == nil {
		t.Fatalf("expected error submitting after shutdown")
	}
}
