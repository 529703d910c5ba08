/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package direct

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/models"
	"github.com/suparena/storekit/registry"
)

// blobStore implements storekit.BlobStore over S3 buckets, one bucket per
// container.
type blobStore struct {
	b *Backend
}

// Upload stores the content under a backend-chosen object name. Images go
// in under a random identifier; documents keep their name behind a sortable
// timestamp prefix. The locator is a URL for public containers and the
// bare object name for private ones.
func (bs *blobStore) Upload(ctx context.Context, content models.FileContent, container string) (string, error) {
	public := registry.IsPublicContainer(container)

	var name string
	if public {
		name = imageObjectName(content.Name)
	} else {
		name = documentObjectName(time.Now(), content.Name)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(name),
		Body:   content.Reader,
	}
	if content.ContentType != "" {
		input.ContentType = aws.String(content.ContentType)
	}
	if public {
		input.ACL = s3types.ObjectCannedACLPublicRead
	}

	if _, err := bs.b.s3.PutObject(ctx, input); err != nil {
		return "", errors.NewBackendError("UploadBlob", container, err)
	}
	bs.b.log.Info("blob uploaded",
		slog.String("container", container), slog.String("name", name))

	if public {
		return bs.objectURL(container, name), nil
	}
	return name, nil
}

// Delete removes a blob by name; deleting an absent blob is not an error.
func (bs *blobStore) Delete(ctx context.Context, name, container string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	_, err := bs.b.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(name),
	})
	if err != nil {
		return errors.NewBackendError("DeleteBlob", container, err)
	}
	return nil
}

// objectURL builds the dereferenceable locator for a public object.
func (bs *blobStore) objectURL(container, name string) string {
	if bs.b.cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(bs.b.cfg.Endpoint, "/"), container, name)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", container, bs.b.cfg.Region, name)
}
