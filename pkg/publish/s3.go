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
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
	"github.com/walteh/autodocs/pkg/config"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

const uploadConcurrency = 4

// objectClient is the part of minio.Client the publisher uses
type objectClient interface {
	FPutObject(ctx context.Context, bucket, object, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// ☁️ S3Publisher uploads files to an S3 compatible bucket
type S3Publisher struct {
	client objectClient
	bucket string
	prefix string
}

// NewS3 reads credentials from AWS_* or MINIO_* environment variables
func NewS3(ctx context.Context, args config.S3Args) (*S3Publisher, error) {
	creds := credentials.NewChainCredentials([]credentials.Provider{
		&credentials.EnvAWS{},
		&credentials.EnvMinio{},
	})
	client, err := minio.New(args.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: args.UseSSL,
		Region: args.Region,
	})
	if err != nil {
		return nil, errors.Errorf("creating s3 client for %s: %w", args.Endpoint, err)
	}
	return newS3(client, args), nil
}

func newS3(client objectClient, args config.S3Args) *S3Publisher {
	return &S3Publisher{
		client: client,
		bucket: args.Bucket,
		prefix: strings.Trim(args.Prefix, "/"),
	}
}

// Key is the object name for a relative output path
func (p *S3Publisher) Key(rel string) string {
	if p.prefix == "" {
		return rel
	}
	return path.Join(p.prefix, rel)
}

// Publish uploads every path. Uploads stop after the first failure.
func (p *S3Publisher) Publish(ctx context.Context, outDir string, paths []string) error {
	logger := zerolog.Ctx(ctx).With().Str("bucket", p.bucket).Logger()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for _, rel := range paths {
		g.Go(func() error {
			key := p.Key(rel)
			opts := minio.PutObjectOptions{ContentType: contentType(rel)}
			info, err := p.client.FPutObject(gctx, p.bucket, key, filepath.Join(outDir, filepath.FromSlash(rel)), opts)
			if err != nil {
				return errors.Errorf("uploading %s: %w", rel, err)
			}
			logger.Debug().Str("key", key).Int64("size", info.Size).Msg("published file")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info().Int("files", len(paths)).Msg("published output")
	return nil
}

func contentType(rel string) string {
	if ct := mime.TypeByExtension(path.Ext(rel)); ct != "" {
		return ct
	}
	switch path.Ext(rel) {
	case ".md", ".markdown", ".mdx":
		return "text/markdown; charset=utf-8"
	case ".yaml", ".yml":
		return "application/yaml"
	}
	return "application/octet-stream"
}
