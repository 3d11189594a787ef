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

package pipeline

import (
	"time"

	"github.com/rs/zerolog"
)

// Status is the terminal state of one candidate in a run
type Status string

const (
	StatusSkipped   Status = "skipped"
	StatusSucceeded Status = "translated"
	StatusFailed    Status = "failed"
	StatusNotRun    Status = "not_run" // run ended before the candidate finished
)

// Result describes what happened to one candidate
type Result struct {
	Path    string
	Status  Status
	Written bool // output file changed on disk
	Units   int
	Err     error
}

// 📊 Summary is the outcome of a whole run, ordered by path
type Summary struct {
	RunID    string
	Revision string
	Results  []Result
	Mirrored []string
	Pruned   []string // entries dropped because their source is gone or unselected
	Started  time.Time
	Duration time.Duration
}

// Count returns how many candidates ended in st
func (s *Summary) Count(st Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == st {
			n++
		}
	}
	return n
}

// Failures lists the failed candidates with their reasons
func (s *Summary) Failures() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			out = append(out, r)
		}
	}
	return out
}

// Written lists the paths whose output changed
func (s *Summary) Written() []string {
	var out []string
	for _, r := range s.Results {
		if r.Written {
			out = append(out, r.Path)
		}
	}
	return out
}

func (s *Summary) MarshalZerologObject(e *zerolog.Event) {
	e.Str("run_id", s.RunID).
		Str("revision", s.Revision).
		Int("selected", len(s.Results)).
		Int("skipped", s.Count(StatusSkipped)).
		Int("succeeded", s.Count(StatusSucceeded)).
		Int("failed", s.Count(StatusFailed)).
		Int("not_run", s.Count(StatusNotRun)).
		Int("mirrored", len(s.Mirrored)).
		Int("pruned", len(s.Pruned)).
		Dur("duration", s.Duration)
}
