/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package direct

import (
	"context"
	goerrors "errors"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/models"
)

// fileStore implements storekit.FileStore over an S3 bucket acting as the
// hierarchical share, with directory paths encoded in object keys. The
// capability is optional: it is disabled for the whole process lifetime
// when provisioning was skipped (development endpoint) or failed.
type fileStore struct {
	b *Backend
}

// Available reports whether the hierarchical store was provisioned.
func (fs *fileStore) Available() bool {
	fs.b.mu.RLock()
	defer fs.b.mu.RUnlock()
	return fs.b.fileShareReady
}

func (fs *fileStore) guard() error {
	fs.b.mu.RLock()
	defer fs.b.mu.RUnlock()
	if !fs.b.fileShareReady {
		return errors.NewCapabilityUnavailableError("hierarchical file store", fs.b.fileShareReason)
	}
	return nil
}

// Upload stores the content under dir in the share and returns the stored
// file name (timestamp-prefixed, same convention as document blobs).
func (fs *fileStore) Upload(ctx context.Context, content models.FileContent, share, dir string) (string, error) {
	if err := fs.guard(); err != nil {
		return "", err
	}

	name := documentObjectName(time.Now(), content.Name)
	key := path.Join(dir, name)

	input := &s3.PutObjectInput{
		Bucket: aws.String(share),
		Key:    aws.String(key),
		Body:   content.Reader,
	}
	if content.ContentType != "" {
		input.ContentType = aws.String(content.ContentType)
	}
	if _, err := fs.b.s3.PutObject(ctx, input); err != nil {
		return "", errors.NewBackendError("UploadFile", share+"/"+dir, err)
	}
	fs.b.log.Info("file uploaded",
		slog.String("share", share), slog.String("key", key))
	return name, nil
}

// Download returns the bytes of a stored file. A missing file is a hard
// failure here, unlike entity lookups.
func (fs *fileStore) Download(ctx context.Context, share, dir, name string) ([]byte, error) {
	if err := fs.guard(); err != nil {
		return nil, err
	}

	key := path.Join(dir, name)
	out, err := fs.b.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(share),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if goerrors.As(err, &noSuchKey) {
			return nil, errors.NewNotFoundError("file", key)
		}
		return nil, errors.NewBackendError("DownloadFile", share+"/"+key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.NewBackendError("DownloadFile", share+"/"+key, err)
	}
	return data, nil
}
