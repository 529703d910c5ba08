/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an entity or stored object is not found.
	// Single-entity lookups report absence as a nil result instead; the
	// sentinel exists for operations where absence is a hard failure
	// (for example downloading a named file).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateKey is returned when a create collides with an existing
	// (partition key, row key) pair.
	ErrDuplicateKey = errors.New("entity already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConcurrencyConflict is returned when an update's concurrency-token
	// precondition fails because the entity changed since it was read.
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	// ErrCapabilityUnavailable is returned when an optionally-provisioned
	// capability (such as the hierarchical file store) was not set up.
	ErrCapabilityUnavailable = errors.New("capability unavailable")

	// ErrBackendUnreachable is returned when the underlying store or the
	// remote resource API could not be reached or reported a failure.
	ErrBackendUnreachable = errors.New("storage backend unreachable")
)

// NotFoundError represents an error when an entity or object is not found
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateKeyError represents a create that collided with an existing entity
type DuplicateKeyError struct {
	Kind         string
	PartitionKey string
	RowKey       string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s with key (%q, %q) already exists", e.Kind, e.PartitionKey, e.RowKey)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConcurrencyConflictError represents a failed concurrency-token precondition.
// The conflict is recoverable: the caller must re-read the entity to obtain
// the current token and retry. It is never retried automatically.
type ConcurrencyConflictError struct {
	Kind   string
	RowKey string
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("%s with key %q was modified by another process; refresh and try again", e.Kind, e.RowKey)
}

func (e *ConcurrencyConflictError) Is(target error) bool {
	return target == ErrConcurrencyConflict
}

// CapabilityUnavailableError reports an operation against a capability that
// was not provisioned. The condition is permanent for the process lifetime.
type CapabilityUnavailableError struct {
	Capability string
	Reason     string
}

func (e *CapabilityUnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s is not available: %s", e.Capability, e.Reason)
	}
	return fmt.Sprintf("%s is not available", e.Capability)
}

func (e *CapabilityUnavailableError) Is(target error) bool {
	return target == ErrCapabilityUnavailable
}

// BackendError represents a transport or remote-service failure. Op names the
// storage operation, Target the table, container, queue, or resource path it
// was issued against. Status and Body are set for HTTP failures.
type BackendError struct {
	Op     string
	Target string
	Status int
	Body   string
	Err    error
}

func (e *BackendError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: backend returned status %d: %s", e.Op, e.Target, e.Status, e.Body)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s %s: backend unreachable", e.Op, e.Target)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func (e *BackendError) Is(target error) bool {
	return target == ErrBackendUnreachable
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(kind, key string) error {
	return &NotFoundError{Kind: kind, Key: key}
}

// NewDuplicateKeyError creates a new DuplicateKeyError
func NewDuplicateKeyError(kind, partitionKey, rowKey string) error {
	return &DuplicateKeyError{Kind: kind, PartitionKey: partitionKey, RowKey: rowKey}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConcurrencyConflictError creates a new ConcurrencyConflictError
func NewConcurrencyConflictError(kind, rowKey string) error {
	return &ConcurrencyConflictError{Kind: kind, RowKey: rowKey}
}

// NewCapabilityUnavailableError creates a new CapabilityUnavailableError
func NewCapabilityUnavailableError(capability, reason string) error {
	return &CapabilityUnavailableError{Capability: capability, Reason: reason}
}

// NewBackendError wraps a transport failure with operation context
func NewBackendError(op, target string, err error) error {
	return &BackendError{Op: op, Target: target, Err: err}
}

// NewBackendStatusError creates a BackendError from a non-2xx HTTP response
func NewBackendStatusError(op, target string, status int, body string) error {
	return &BackendError{Op: op, Target: target, Status: status, Body: body}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateKey checks if an error is a duplicate key error
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConcurrencyConflict checks if an error is a concurrency conflict
func IsConcurrencyConflict(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict)
}

// IsCapabilityUnavailable checks if an error reports a missing capability
func IsCapabilityUnavailable(err error) bool {
	return errors.Is(err, ErrCapabilityUnavailable)
}

// IsBackendUnreachable checks if an error is a transport or backend failure
func IsBackendUnreachable(err error) bool {
	return errors.Is(err, ErrBackendUnreachable)
}
