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

package operation

import (
	"context"

	"github.com/walteh/autodocs/pkg/workspace"
)

// 🧹 Clean removes translated output and forgets every entry so the next
// run translates everything again. The synced source is kept.
func (op *operator) Clean(ctx context.Context) error {
	return op.withWorkspace(ctx, func(ws *workspace.Manager) error {
		return ws.Clean(ctx)
	})
}
