/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/suparena/storekit"
	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/models"
	"github.com/suparena/storekit/registry"
)

// Store is a fully in-memory implementation of the store contract with
// the same semantics as the real backends: token-checked updates,
// duplicate detection, receive-and-acknowledge queues and an optional
// file share. Entities are stored as JSON snapshots so callers never
// share memory with the store.
type Store struct {
	mu sync.Mutex

	records map[models.Kind]map[string][]byte
	queues  map[string][]string
	blobs   map[string]map[string][]byte
	files   map[string][]byte

	filesAvailable bool

	customers *entityStore[*models.Customer]
	products  *entityStore[*models.Product]
	orders    *entityStore[*models.Order]
}

var _ storekit.Store = (*Store)(nil)

// Option configures a Store under construction.
type Option func(*Store)

// WithoutFileShare builds the store as if the hierarchical file
// capability had not been provisioned.
func WithoutFileShare() Option {
	return func(s *Store) { s.filesAvailable = false }
}

// New returns an empty in-memory store with every capability available.
func New(opts ...Option) *Store {
	s := &Store{
		records:        make(map[models.Kind]map[string][]byte),
		queues:         make(map[string][]string),
		blobs:          make(map[string]map[string][]byte),
		files:          make(map[string][]byte),
		filesAvailable: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.customers = &entityStore[*models.Customer]{s: s, kind: models.KindCustomer,
		newEntity: func() *models.Customer { return &models.Customer{} }}
	s.products = &entityStore[*models.Product]{s: s, kind: models.KindProduct,
		newEntity: func() *models.Product { return &models.Product{} }}
	s.orders = &entityStore[*models.Order]{s: s, kind: models.KindOrder,
		newEntity: func() *models.Order { return &models.Order{} }}
	return s
}

// Customers returns the customer entity store.
func (s *Store) Customers() storekit.EntityStore[*models.Customer] { return s.customers }

// Products returns the product entity store.
func (s *Store) Products() storekit.EntityStore[*models.Product] { return s.products }

// Orders returns the order entity store.
func (s *Store) Orders() storekit.EntityStore[*models.Order] { return s.orders }

// UpdateOrderStatus sets the status of a stored order and rotates its
// concurrency token.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	if orderID == "" {
		return errors.NewValidationError("orderId", "must not be empty")
	}
	if status == "" {
		return errors.NewValidationError("status", "must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := compositeKey(string(models.KindOrder), orderID)
	data, ok := s.records[models.KindOrder][key]
	if !ok {
		return errors.NewNotFoundError(string(models.KindOrder), orderID)
	}
	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return err
	}
	order.Status = status
	order.SetConcurrencyToken(uuid.NewString())

	updated, err := json.Marshal(&order)
	if err != nil {
		return err
	}
	s.records[models.KindOrder][key] = updated
	return nil
}

// Blobs returns the blob capability.
func (s *Store) Blobs() storekit.BlobStore { return blobStore{s: s} }

// Queues returns the queue capability.
func (s *Store) Queues() storekit.QueueStore { return queueStore{s: s} }

// Files returns the hierarchical file capability.
func (s *Store) Files() storekit.FileStore { return fileStore{s: s} }

func compositeKey(partitionKey, rowKey string) string {
	return partitionKey + "|" + rowKey
}

type entityStore[T models.Entity] struct {
	s         *Store
	kind      models.Kind
	newEntity func() T
}

func (e *entityStore[T]) bucket() map[string][]byte {
	b, ok := e.s.records[e.kind]
	if !ok {
		b = make(map[string][]byte)
		e.s.records[e.kind] = b
	}
	return b
}

func (e *entityStore[T]) List(ctx context.Context) ([]T, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	bucket := e.bucket()
	out := make([]T, 0, len(bucket))
	for _, data := range bucket {
		entity := e.newEntity()
		if err := json.Unmarshal(data, entity); err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

func (e *entityStore[T]) Get(ctx context.Context, partitionKey, rowKey string) (T, error) {
	var zero T
	if partitionKey == "" || rowKey == "" {
		return zero, nil
	}
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	data, ok := e.bucket()[compositeKey(partitionKey, rowKey)]
	if !ok {
		return zero, nil
	}
	entity := e.newEntity()
	if err := json.Unmarshal(data, entity); err != nil {
		return zero, err
	}
	return entity, nil
}

func (e *entityStore[T]) Create(ctx context.Context, entity T) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	partitionKey, rowKey := entity.Keys()
	if partitionKey == "" {
		partitionKey = string(e.kind)
		entity.SetPartitionKey(partitionKey)
	}
	if rowKey == "" {
		rowKey = uuid.NewString()
		entity.SetRowKey(rowKey)
	}

	bucket := e.bucket()
	key := compositeKey(partitionKey, rowKey)
	if _, exists := bucket[key]; exists {
		return errors.NewDuplicateKeyError(string(e.kind), partitionKey, rowKey)
	}

	entity.SetConcurrencyToken(uuid.NewString())
	data, err := json.Marshal(entity)
	if err != nil {
		return err
	}
	bucket[key] = data
	return nil
}

func (e *entityStore[T]) Update(ctx context.Context, entity T) error {
	partitionKey, rowKey := entity.Keys()
	if partitionKey == "" || rowKey == "" {
		return errors.NewValidationError("rowKey", "both keys are required on update")
	}
	expected := entity.ConcurrencyToken()
	if expected == "" {
		return errors.NewValidationError("concurrencyToken", "update requires the token from a prior read")
	}

	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	bucket := e.bucket()
	key := compositeKey(partitionKey, rowKey)
	data, ok := bucket[key]
	if !ok {
		return errors.NewConcurrencyConflictError(string(e.kind), rowKey)
	}
	stored := e.newEntity()
	if err := json.Unmarshal(data, stored); err != nil {
		return err
	}
	if stored.ConcurrencyToken() != expected {
		return errors.NewConcurrencyConflictError(string(e.kind), rowKey)
	}

	entity.SetConcurrencyToken(uuid.NewString())
	updated, err := json.Marshal(entity)
	if err != nil {
		entity.SetConcurrencyToken(expected)
		return err
	}
	bucket[key] = updated
	return nil
}

func (e *entityStore[T]) Delete(ctx context.Context, partitionKey, rowKey string) error {
	if partitionKey == "" || rowKey == "" {
		return nil
	}
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	delete(e.bucket(), compositeKey(partitionKey, rowKey))
	return nil
}

type blobStore struct {
	s *Store
}

func (b blobStore) Upload(ctx context.Context, content models.FileContent, container string) (string, error) {
	data, err := io.ReadAll(content.Reader)
	if err != nil {
		return "", err
	}

	var name string
	if registry.IsPublicContainer(container) {
		name = uuid.NewString() + path.Ext(content.Name)
	} else {
		name = time.Now().UTC().Format("20060102_150405") + "_" + content.Name
	}

	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	bucket, ok := b.s.blobs[container]
	if !ok {
		bucket = make(map[string][]byte)
		b.s.blobs[container] = bucket
	}
	bucket[name] = data

	if registry.IsPublicContainer(container) {
		return fmt.Sprintf("https://blobs.example.com/%s/%s", container, name), nil
	}
	return name, nil
}

func (b blobStore) Delete(ctx context.Context, name, container string) error {
	if name == "" {
		return nil
	}
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	delete(b.s.blobs[container], name)
	return nil
}

type queueStore struct {
	s *Store
}

func (q queueStore) Send(ctx context.Context, queue, payload string) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	q.s.queues[queue] = append(q.s.queues[queue], payload)
	return nil
}

func (q queueStore) Receive(ctx context.Context, queue string) (*string, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	pending := q.s.queues[queue]
	if len(pending) == 0 {
		return nil, nil
	}
	payload := pending[0]
	q.s.queues[queue] = pending[1:]
	return &payload, nil
}

type fileStore struct {
	s *Store
}

func (f fileStore) guard() error {
	if !f.s.filesAvailable {
		return errors.NewCapabilityUnavailableError("files", "the file share was not provisioned")
	}
	return nil
}

func (f fileStore) Upload(ctx context.Context, content models.FileContent, share, dir string) (string, error) {
	if err := f.guard(); err != nil {
		return "", err
	}
	data, err := io.ReadAll(content.Reader)
	if err != nil {
		return "", err
	}
	name := time.Now().UTC().Format("20060102_150405") + "_" + content.Name

	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.files[path.Join(share, dir, name)] = data
	return name, nil
}

func (f fileStore) Download(ctx context.Context, share, dir, name string) ([]byte, error) {
	if err := f.guard(); err != nil {
		return nil, err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	key := path.Join(share, dir, name)
	data, ok := f.s.files[key]
	if !ok {
		return nil, errors.NewNotFoundError("file", key)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (f fileStore) Available() bool { return f.s.filesAvailable }
