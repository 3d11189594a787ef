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
	"context"
	"io"
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/autodocs/pkg/pipeline"
)

// 📢 UserLogger provides user-friendly feedback about a run. It implements
// pipeline.Reporter.
type UserLogger struct {
	log     zerolog.Logger // for debug/error logging
	out     io.Writer
	format  FileFormatter
	verbose bool

	mu    sync.Mutex
	done  int
	total int
}

// 🎯 NewUserLogger creates a user logger printing to out
func NewUserLogger(ctx context.Context, out io.Writer) *UserLogger {
	return &UserLogger{
		log:    *zerolog.Ctx(ctx),
		out:    out,
		format: NewDefaultFileFormatter(),
	}
}

// WithVerbose also prints skipped files
func (u *UserLogger) WithVerbose(v bool) *UserLogger {
	u.verbose = v
	return u
}

func (u *UserLogger) printer(p pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return p.WithPrefix(pterm.Prefix{Text: prefix, Style: p.Prefix.Style}).WithWriter(u.out)
}

// Start resets progress for a new run
func (u *UserLogger) Start(runID string, total int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.done, u.total = 0, total

	u.printer(pterm.Info, "🚀").Printfln("Translating %d files", total)
	u.log.Debug().Str("run_id", runID).Int("total", total).Msg("run started")
}

// 📝 Report prints one finished candidate with appropriate emoji and formatting
func (u *UserLogger) Report(r pipeline.Result) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.done++

	msg := u.format.FormatResult(r)
	switch r.Status {
	case pipeline.StatusSucceeded:
		if r.Written {
			u.printer(pterm.Success, "✨").Println(msg)
		} else if u.verbose {
			u.printer(pterm.Info, "👍").Println(msg)
		}
		u.log.Info().Str("path", r.Path).Bool("written", r.Written).Msg("candidate translated")
	case pipeline.StatusSkipped:
		if u.verbose {
			u.printer(pterm.Info, "⏭️").Println(msg)
		}
		u.log.Debug().Str("path", r.Path).Msg("candidate skipped")
	case pipeline.StatusFailed:
		u.printer(pterm.Error, "❌").Println(msg)
		u.printer(pterm.Error, "  ").Println(u.format.FormatError(r.Err))
		u.log.Error().Err(r.Err).Str("path", r.Path).Msg("candidate failed")
	default:
		u.log.Debug().Str("path", r.Path).Msg("candidate not run")
	}

	if u.verbose || u.done == u.total {
		u.printer(pterm.Info, "📊").Println(u.format.FormatProgress(u.done, u.total))
	}
}

// 📊 LogSummary prints the end of run summary
func (u *UserLogger) LogSummary(s *pipeline.Summary) {
	if s == nil {
		return
	}
	text := FormatSummary(s)
	if len(s.Failures()) > 0 || s.Count(pipeline.StatusNotRun) > 0 {
		u.printer(pterm.Warning, "⚠️").Println(text)
	} else {
		u.printer(pterm.Success, "✅").Println(text)
	}
	u.log.Info().EmbedObject(s).Msg("run summary")
}

// 🔍 LogPlan prints a dry run listing
func (u *UserLogger) LogPlan(items []pipeline.PlanItem) {
	counts := map[pipeline.Change]int{}
	for _, it := range items {
		counts[it.Change]++
		if it.Change == pipeline.ChangeUnchanged && !u.verbose {
			continue
		}
		pterm.Fprintln(u.out, FormatPlanItem(it))
	}
	u.printer(pterm.Info, "📦").Printfln("%d new, %d modified, %d unchanged, %d orphaned",
		counts[pipeline.ChangeNew],
		counts[pipeline.ChangeModified],
		counts[pipeline.ChangeUnchanged],
		counts[pipeline.ChangeOrphaned],
	)
}

// 📦 LogStateChange logs a change to the overall state
func (u *UserLogger) LogStateChange(description string) {
	u.printer(pterm.Info, "📦").Println(description)
	u.log.Info().Msg(description)
}

// 🔒 LogLockOperation logs workspace locking operations
func (u *UserLogger) LogLockOperation(acquired bool, path string, err error) {
	if acquired {
		u.log.Debug().Msgf("Acquired lock on %s", path)
		return
	}
	if err != nil {
		u.printer(pterm.Error, "🔓").Printfln("Failed to acquire lock on %s", path)
		u.printer(pterm.Error, "  ").Println(err)
		u.log.Error().Err(err).Msgf("Failed to acquire lock on %s", path)
		return
	}
	u.log.Debug().Msgf("Released lock on %s", path)
}

// LogError prints a run level error
func (u *UserLogger) LogError(err error) {
	if err == nil {
		return
	}
	u.printer(pterm.Error, "❌").Println(u.format.FormatError(err))
	u.log.Error().Err(err).Msg("run failed")
}
