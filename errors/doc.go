/*
Package errors provides the semantic error taxonomy shared by all storekit
backends.

Every failure class callers may branch on has both a sentinel error and a
typed error carrying context, bridged through Is():

	product, err := store.Products().Get(ctx, "Product", id)
	if errors.IsConcurrencyConflict(err) {
	    // re-read the entity and retry the update with the fresh token
	}

The taxonomy:

  - ErrNotFound / NotFoundError — lookups of single entities report absence
    as a nil result; the error form is used where absence is a hard failure.
  - ErrDuplicateKey / DuplicateKeyError — create collided with an existing
    (partition key, row key) pair.
  - ErrConcurrencyConflict / ConcurrencyConflictError — update precondition
    failed; recoverable by re-read-and-retry, never retried automatically.
  - ErrCapabilityUnavailable / CapabilityUnavailableError — an optionally
    provisioned capability was not set up; permanent for the process.
  - ErrBackendUnreachable / BackendError — transport or remote-service
    failure with operation and target context; no built-in backoff.
  - ErrInvalidInput / ValidationError — key presence and token presence
    checks, the only validation the storage contract itself enforces.
*/
package errors
