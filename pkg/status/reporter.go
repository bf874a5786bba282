// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package status tracks per-file outcomes during a run and renders them
// for the operator: one formatted line per file plus an aggregate summary.
package status

import (
	"fmt"
	"io"
	"sync"
)

// 📈 Reporter accumulates file outcomes and writes display lines to out.
// It is safe for concurrent use so the parallel walk can share one.
type Reporter struct {
	mu  sync.Mutex
	out io.Writer

	transcoded int
	done       int
	pending    int
	skipped    int
	failed     int
}

// 🏭 NewReporter creates a reporter writing display lines to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// File records one outcome and prints its display line.
func (r *Reporter) File(relPath string, outcome Outcome, note string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch outcome {
	case OutcomeTranscoded:
		r.transcoded++
	case OutcomeDone:
		r.done++
	case OutcomePending:
		r.pending++
	case OutcomeSkipped:
		r.skipped++
	case OutcomeFailed:
		r.failed++
	}

	fmt.Fprintln(r.out, FormatFileLine(relPath, outcome, note))
}

// Counts returns the accumulated totals in display order.
func (r *Reporter) Counts() (transcoded, done, pending, skipped, failed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transcoded, r.done, r.pending, r.skipped, r.failed
}

// Summary renders the one-line aggregate for the end of a run.
func (r *Reporter) Summary() string {
	transcoded, done, pending, skipped, failed := r.Counts()
	return fmt.Sprintf("%d transcoded, %d already done, %d pending, %d skipped, %d failed",
		transcoded, done, pending, skipped, failed)
}
