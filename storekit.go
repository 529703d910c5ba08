/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storekit

import (
	"context"

	"github.com/suparena/storekit/models"
)

// EntityStore is the backend-agnostic contract for one entity kind.
// T is an entity pointer type (*models.Customer, *models.Product,
// *models.Order).
type EntityStore[T models.Entity] interface {
	// List returns all entities of the kind. Order is unspecified unless
	// the backend documents one.
	List(ctx context.Context) ([]T, error)

	// Get returns the entity with the given keys, or nil when either key
	// is blank or no entity matches. Absence is not an error.
	Get(ctx context.Context, partitionKey, rowKey string) (T, error)

	// Create persists a new entity. A blank row key is assigned by the
	// backend; a fresh concurrency token is always assigned. Fails with
	// errors.ErrDuplicateKey when the (partition key, row key) pair
	// already exists.
	Create(ctx context.Context, entity T) error

	// Update replaces the stored entity if and only if the entity's
	// concurrency token matches the stored one, then rotates the token.
	// Fails with errors.ErrConcurrencyConflict on mismatch; the caller
	// must re-read and retry. Updates are never retried or merged here.
	Update(ctx context.Context, entity T) error

	// Delete removes the entity permanently. Deleting an absent entity is
	// not an error.
	Delete(ctx context.Context, partitionKey, rowKey string) error
}

// BlobStore stores binary content in named containers.
type BlobStore interface {
	// Upload stores the content under a backend-chosen name and returns a
	// locator: a dereferenceable URL for public containers, an opaque
	// object name for private ones.
	Upload(ctx context.Context, content models.FileContent, container string) (string, error)

	// Delete removes a blob by name. Deleting an absent blob is not an
	// error.
	Delete(ctx context.Context, name, container string) error
}

// QueueStore sends and receives asynchronous notification messages with
// at-least-once, receive-then-acknowledge semantics.
type QueueStore interface {
	// Send enqueues a message payload.
	Send(ctx context.Context, queue, payload string) error

	// Receive takes a single message off the queue and acknowledges it,
	// returning nil when the queue is empty.
	Receive(ctx context.Context, queue string) (*string, error)
}

// FileStore stores files in a hierarchical share. The capability is
// optional: when it was not provisioned, Available reports false and both
// operations fail with errors.ErrCapabilityUnavailable. Callers must check
// availability or handle that failure explicitly.
type FileStore interface {
	// Upload stores the content under directory dir in the share and
	// returns the stored file name.
	Upload(ctx context.Context, content models.FileContent, share, dir string) (string, error)

	// Download returns the bytes of a stored file.
	Download(ctx context.Context, share, dir, name string) ([]byte, error)

	// Available reports whether the hierarchical store was provisioned.
	Available() bool
}

// Store is the full capability contract. Exactly one implementation — the
// direct storage backend or the remote resource backend — is selected at
// configuration time; callers are oblivious to which is active.
type Store interface {
	// Customers returns the customer entity store.
	Customers() EntityStore[*models.Customer]

	// Products returns the product entity store.
	Products() EntityStore[*models.Product]

	// Orders returns the order entity store.
	Orders() EntityStore[*models.Order]

	// UpdateOrderStatus records a status transition as a partial update,
	// distinct from full entity replacement: the status field is owned by
	// an order workflow, not freely overwritten alongside other fields.
	UpdateOrderStatus(ctx context.Context, orderID, status string) error

	// Blobs returns the blob capability.
	Blobs() BlobStore

	// Queues returns the queue capability.
	Queues() QueueStore

	// Files returns the hierarchical file capability.
	Files() FileStore
}
