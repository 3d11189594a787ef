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

/*
Package status is the user facing side of a run.

🎯 Purpose:
- Reports candidate results as a run progresses
- Renders the run summary with per-failure reasons
- Lists what a dry run would translate

🔄 Flow:
1. The pipeline calls Start with the number of selected files
2. Every finished candidate is passed to Report
3. The command prints the Summary once the run returns

🤝 Types:
- UserLogger: pterm printers for terminal output, mirrored to zerolog
- FileFormatter: plain text formatting of results, progress and errors

Terminal output goes to the writer given to NewUserLogger so commands can
send it to stderr and tests can capture it.

🔍 Example:

	ul := status.NewUserLogger(ctx, os.Stderr)
	p := pipeline.New(pipeline.Options{Reporter: ul})

	summary, err := p.Run(ctx, src.Dir, src.Revision, cfg.Filter)
	ul.LogSummary(summary)
*/
package status
