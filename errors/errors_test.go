/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("Order", "123")

	expected := `Order with key "123" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestDuplicateKeyError(t *testing.T) {
	err := NewDuplicateKeyError("Product", "Product", "ABC")

	expected := `Product with key ("Product", "ABC") already exists`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrDuplicateKey) {
		t.Error("DuplicateKeyError should match ErrDuplicateKey")
	}

	if !IsDuplicateKey(err) {
		t.Error("IsDuplicateKey should return true for DuplicateKeyError")
	}
}

func TestConcurrencyConflictError(t *testing.T) {
	err := NewConcurrencyConflictError("Product", "ABC")

	expected := `Product with key "ABC" was modified by another process; refresh and try again`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrConcurrencyConflict) {
		t.Error("ConcurrencyConflictError should match ErrConcurrencyConflict")
	}

	if !IsConcurrencyConflict(err) {
		t.Error("IsConcurrencyConflict should return true for ConcurrencyConflictError")
	}

	// A conflict must never look like a duplicate or a missing entity
	if IsDuplicateKey(err) || IsNotFound(err) {
		t.Error("ConcurrencyConflictError should not match other sentinels")
	}
}

func TestCapabilityUnavailableError(t *testing.T) {
	err := NewCapabilityUnavailableError("file share", "development storage endpoint")

	expected := "file share is not available: development storage endpoint"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsCapabilityUnavailable(err) {
		t.Error("IsCapabilityUnavailable should return true for CapabilityUnavailableError")
	}

	bare := NewCapabilityUnavailableError("file share", "")
	if bare.Error() != "file share is not available" {
		t.Errorf("Unexpected error message %q", bare.Error())
	}
}

func TestBackendError(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := NewBackendError("SendMessage", "order-notifications", cause)

	if !IsBackendUnreachable(err) {
		t.Error("IsBackendUnreachable should return true for BackendError")
	}

	if !errors.Is(err, cause) {
		t.Error("BackendError should unwrap to its cause")
	}

	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatal("errors.As should extract *BackendError")
	}
	if be.Op != "SendMessage" || be.Target != "order-notifications" {
		t.Errorf("Unexpected context: %+v", be)
	}
}

func TestBackendStatusError(t *testing.T) {
	err := NewBackendStatusError("Get", "orders/42", 500, "internal error")

	expected := "Get orders/42: backend returned status 500: internal error"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatal("errors.As should extract *BackendError")
	}
	if be.Status != 500 || be.Body != "internal error" {
		t.Errorf("Unexpected status context: %+v", be)
	}
	if !IsBackendUnreachable(err) {
		t.Error("status errors should still match ErrBackendUnreachable")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("rowKey", "must not be empty")

	expected := `validation failed for field "rowKey": must not be empty`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsValidationError(err) {
		t.Error("IsValidationError should return true for ValidationError")
	}
}

func TestWrappedErrors(t *testing.T) {
	inner := NewConcurrencyConflictError("Order", "42")
	wrapped := fmt.Errorf("updating order: %w", inner)

	if !IsConcurrencyConflict(wrapped) {
		t.Error("IsConcurrencyConflict should see through wrapping")
	}

	var cc *ConcurrencyConflictError
	if !errors.As(wrapped, &cc) {
		t.Fatal("errors.As should extract *ConcurrencyConflictError")
	}
	if cc.RowKey != "42" {
		t.Errorf("Expected row key 42, got %q", cc.RowKey)
	}
}
