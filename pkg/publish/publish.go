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

package publish

import (
	"context"

	"github.com/walteh/autodocs/pkg/config"
)

// 🚀 Publisher pushes changed files of the output tree downstream. paths are
// slash separated and relative to outDir.
type Publisher interface {
	Publish(ctx context.Context, outDir string, paths []string) error
}

// 🎯 New returns the publisher configured in args, or nil when publishing is off
func New(ctx context.Context, args *config.PublishArgs) (Publisher, error) {
	if args == nil || args.S3 == nil {
		return nil, nil
	}
	p, err := NewS3(ctx, *args.S3)
	if err != nil {
		return nil, err
	}
	return p, nil
}
