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
Package operation wires one configuration into the commands of autodocs.

🎯 Purpose:
- Takes the workspace lock so scheduled runs never overlap
- Syncs the source repository and hands it to the pipeline
- Publishes changed output when a publish target is configured
- Repeats passes on an interval for daemon style use

🔄 Flow:
1. Acquire <workspace>/<repo>.lock
2. repository.Syncer brings the source tree up to date
3. pipeline.Run translates changed files into the output tree
4. publish.Publisher uploads what was written
5. Release the lock

Each pass is stateless apart from the workspace store, so a crashed pass is
recovered by simply running again.

🔍 Example:

	op, err := operation.New(operation.Options{Config: cfg, Reporter: ul})
	summary, err := op.Sync(ctx)
*/
package operation
