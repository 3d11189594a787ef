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
	"time"

	"github.com/fatih/color"
	"github.com/walteh/autodocs/pkg/pipeline"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 40 // Base width for filename
	kindWidth    = 10
	changeWidth  = 10
	reasonIndent = 6
)

// FileFormatter turns run events into single lines of text
type FileFormatter interface {
	// FormatResult formats the outcome of one candidate
	FormatResult(r pipeline.Result) string
	// FormatProgress formats a progress message
	FormatProgress(current, total int) string
	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatResult formats a candidate result with emojis
func (f *DefaultFileFormatter) FormatResult(r pipeline.Result) string {
	switch r.Status {
	case pipeline.StatusSucceeded:
		if !r.Written {
			return fmt.Sprintf("👍 Unchanged %s", r.Path)
		}
		return fmt.Sprintf("✨ Translated %s (%d units)", r.Path, r.Units)
	case pipeline.StatusSkipped:
		return fmt.Sprintf("⏭️  Skipped %s", r.Path)
	case pipeline.StatusFailed:
		return fmt.Sprintf("❌ Failed %s", r.Path)
	default:
		return fmt.Sprintf("⏸️  Not run %s", r.Path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

// 📊 FormatSummary renders the counts of a run followed by one line per failure
func FormatSummary(s *pipeline.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s", s.RunID)
	if s.Revision != "" {
		fmt.Fprintf(&b, " @ %s", shortRevision(s.Revision))
	}
	fmt.Fprintf(&b, ": %d selected, %d translated, %d skipped, %d failed",
		len(s.Results),
		s.Count(pipeline.StatusSucceeded),
		s.Count(pipeline.StatusSkipped),
		s.Count(pipeline.StatusFailed),
	)
	if n := s.Count(pipeline.StatusNotRun); n > 0 {
		fmt.Fprintf(&b, ", %d not run", n)
	}
	if len(s.Mirrored) > 0 {
		fmt.Fprintf(&b, ", %d copied", len(s.Mirrored))
	}
	if len(s.Pruned) > 0 {
		fmt.Fprintf(&b, ", %d removed", len(s.Pruned))
	}
	fmt.Fprintf(&b, " in %s", s.Duration.Round(time.Millisecond))

	for _, r := range s.Failures() {
		fmt.Fprintf(&b, "\n%s%s: %v", strings.Repeat(" ", reasonIndent), r.Path, r.Err)
	}
	return b.String()
}

// 🎯 FormatPlanItem formats one line of a dry run listing
func FormatPlanItem(it pipeline.PlanItem) string {
	var prefix string
	switch it.Change {
	case pipeline.ChangeNew:
		prefix = color.GreenString("✓")
	case pipeline.ChangeModified:
		prefix = color.YellowString("⟳")
	case pipeline.ChangeOrphaned:
		prefix = color.RedString("✗")
	default:
		prefix = color.HiBlackString("-")
	}

	return fmt.Sprintf("%s%s %-*s %-*s %-*s",
		strings.Repeat(" ", fileIndent),
		prefix,
		nameWidth, it.Path,
		kindWidth, it.Kind,
		changeWidth, it.Change,
	)
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
