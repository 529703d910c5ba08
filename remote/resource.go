/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/models"
)

// requestBody is a prepared request payload together with its content type.
type requestBody struct {
	reader      io.Reader
	contentType string
}

func jsonBody(v any) (requestBody, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return requestBody{}, err
	}
	return requestBody{reader: bytes.NewReader(data), contentType: "application/json"}, nil
}

// codec binds one entity kind to its wire shape: the collection route, the
// DTO-to-entity projection, and the request bodies for create and update.
// A nil updateBody marks replacement as unsupported for the kind.
type codec[T models.Entity, D any] struct {
	kind       models.Kind
	route      string
	newEntity  func() T
	apply      func(*D, T)
	createBody func(T) (requestBody, error)
	updateBody func(T) (requestBody, error)
}

// resource is a typed entity store over one collection route of the
// remote API.
type resource[T models.Entity, D any] struct {
	c     *Client
	codec codec[T, D]
}

func newResource[T models.Entity, D any](c *Client, codec codec[T, D]) *resource[T, D] {
	return &resource[T, D]{c: c, codec: codec}
}

func (r *resource[T, D]) List(ctx context.Context) ([]T, error) {
	op := "List " + string(r.codec.kind)
	target := r.c.endpoint(r.codec.route)

	resp, err := r.c.do(ctx, op, http.MethodGet, target, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(op, target, resp); err != nil {
		return nil, err
	}

	var dtos []D
	if err := decodeJSON(op, target, resp, &dtos); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(dtos))
	for i := range dtos {
		entity := r.codec.newEntity()
		r.codec.apply(&dtos[i], entity)
		out = append(out, entity)
	}
	return out, nil
}

func (r *resource[T, D]) Get(ctx context.Context, partitionKey, rowKey string) (T, error) {
	var zero T
	if partitionKey == "" || rowKey == "" {
		return zero, nil
	}
	op := "Get " + string(r.codec.kind)
	target := r.c.endpoint(r.codec.route, rowKey)

	resp, err := r.c.do(ctx, op, http.MethodGet, target, nil, "")
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return zero, nil
	}
	if err := checkStatus(op, target, resp); err != nil {
		return zero, err
	}

	var dto D
	if err := decodeJSON(op, target, resp, &dto); err != nil {
		return zero, err
	}
	entity := r.codec.newEntity()
	r.codec.apply(&dto, entity)
	return entity, nil
}

func (r *resource[T, D]) Create(ctx context.Context, entity T) error {
	op := "Create " + string(r.codec.kind)
	target := r.c.endpoint(r.codec.route)

	body, err := r.codec.createBody(entity)
	if err != nil {
		return errors.NewBackendError(op, target, err)
	}
	resp, err := r.c.do(ctx, op, http.MethodPost, target, body.reader, body.contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusConflict {
		_, rowKey := entity.Keys()
		return errors.NewDuplicateKeyError(string(r.codec.kind), string(r.codec.kind), rowKey)
	}
	if err := checkStatus(op, target, resp); err != nil {
		return err
	}

	var dto D
	if err := decodeJSON(op, target, resp, &dto); err != nil {
		return err
	}
	r.codec.apply(&dto, entity)
	return nil
}

func (r *resource[T, D]) Update(ctx context.Context, entity T) error {
	if r.codec.updateBody == nil {
		return errors.NewCapabilityUnavailableError(
			"update "+string(r.codec.kind),
			"the resource API does not expose full replacement for this kind")
	}
	_, rowKey := entity.Keys()
	if rowKey == "" {
		return errors.NewValidationError("rowKey", "must not be empty on update")
	}
	op := "Update " + string(r.codec.kind)
	target := r.c.endpoint(r.codec.route, rowKey)

	body, err := r.codec.updateBody(entity)
	if err != nil {
		return errors.NewBackendError(op, target, err)
	}
	resp, err := r.c.do(ctx, op, http.MethodPut, target, body.reader, body.contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return errors.NewNotFoundError(string(r.codec.kind), rowKey)
	}
	if resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusPreconditionFailed {
		return errors.NewConcurrencyConflictError(string(r.codec.kind), rowKey)
	}
	if err := checkStatus(op, target, resp); err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dto D
	if err := decodeJSON(op, target, resp, &dto); err != nil {
		return err
	}
	r.codec.apply(&dto, entity)
	return nil
}

func (r *resource[T, D]) Delete(ctx context.Context, partitionKey, rowKey string) error {
	if partitionKey == "" || rowKey == "" {
		return nil
	}
	op := "Delete " + string(r.codec.kind)
	target := r.c.endpoint(r.codec.route, rowKey)

	resp, err := r.c.do(ctx, op, http.MethodDelete, target, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	// Deleting an absent entity is a no-op, same as the direct backend.
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if err := checkStatus(op, target, resp); err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}
