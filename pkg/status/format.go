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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 45 // base width for the relative path
	noteWidth  = 12 // width for the outcome label
)

// 📦 Outcome classifies what happened to one file during a run or scan.
type Outcome int

const (
	OutcomeTranscoded Outcome = iota // destination produced this run
	OutcomeDone                      // destination already present
	OutcomePending                   // would be transcoded (scan/dry-run)
	OutcomeSkipped                   // not eligible (extension, kind, exclude)
	OutcomeFailed                    // transform or filesystem error
)

// String returns the user-facing label for an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeTranscoded:
		return "transcoded"
	case OutcomeDone:
		return "done"
	case OutcomePending:
		return "pending"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 🎯 FormatFileLine formats one file outcome for display.
func FormatFileLine(relPath string, outcome Outcome, note string) string {
	var prefix string
	switch outcome {
	case OutcomeTranscoded:
		prefix = color.GreenString("✓")
	case OutcomeDone:
		prefix = color.CyanString("•")
	case OutcomePending:
		prefix = color.YellowString("⟳")
	case OutcomeFailed:
		prefix = color.RedString("✗")
	default:
		prefix = color.HiBlackString("-")
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, relPath)
	outcomePart := fmt.Sprintf("%-*s", noteWidth, outcome.String())

	line := fmt.Sprintf("%s%s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		outcomePart,
	)
	if note != "" {
		line += " " + color.HiBlackString(note)
	}
	return line
}
