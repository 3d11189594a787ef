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
	"path/filepath"
	"sync"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/autodocs/pkg/config"
	"gitlab.com/tozd/go/errors"
)

type upload struct {
	bucket, key, file, contentType string
}

type fakeClient struct {
	mu      sync.Mutex
	uploads []upload
	fail    string
}

func (f *fakeClient) FPutObject(ctx context.Context, bucket, object, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if object == f.fail {
		return minio.UploadInfo{}, errors.New("access denied")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, upload{bucket, object, filePath, opts.ContentType})
	return minio.UploadInfo{Bucket: bucket, Key: object, Size: 1}, nil
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestPublish(t *testing.T) {
	ctx := testContext(t)
	fc := &fakeClient{}
	p := newS3(fc, config.S3Args{Bucket: "docs", Prefix: "/de/"})

	err := p.Publish(ctx, "/out", []string{"index.html", "guide/intro.md"})
	require.NoError(t, err, "publish should succeed")

	require.Len(t, fc.uploads, 2)
	got := map[string]upload{}
	for _, u := range fc.uploads {
		got[u.key] = u
	}
	assert.Equal(t, filepath.Join("/out", "guide", "intro.md"), got["de/guide/intro.md"].file)
	assert.Equal(t, "docs", got["de/guide/intro.md"].bucket)
	assert.Contains(t, got["de/guide/intro.md"].contentType, "markdown")
	assert.Equal(t, "text/html; charset=utf-8", got["de/index.html"].contentType)
}

func TestPublishFailure(t *testing.T) {
	ctx := testContext(t)
	fc := &fakeClient{fail: "b.md"}
	p := newS3(fc, config.S3Args{Bucket: "docs"})

	err := p.Publish(ctx, "/out", []string{"a.md", "b.md"})
	require.Error(t, err, "failed upload should surface")
	assert.Contains(t, err.Error(), "uploading b.md")
}

func TestNewDisabled(t *testing.T) {
	p, err := New(testContext(t), nil)
	require.NoError(t, err)
	assert.Nil(t, p, "no publish block means no publisher")

	p, err = New(testContext(t), &config.PublishArgs{S3: &config.S3Args{Endpoint: "localhost:9000", Bucket: "docs"}})
	require.NoError(t, err, "client construction should not dial")
	assert.NotNil(t, p)
}
