/*
Package storekit provides a backend-agnostic storage abstraction for
partition/row-keyed entities, binary blobs, asynchronous queue messages,
and hierarchical files.

Two independently swappable backends satisfy the Store contract:

  - direct: DynamoDB tables for entities, S3 buckets for blobs and the
    hierarchical file share, SQS queues for messages, with optimistic
    concurrency enforced through conditional writes.
  - remote: a typed HTTP client that maps JSON resource representations
    (customers, products, orders, uploads) onto the same entity model.

Callers pick exactly one backend at configuration time:

	cfg, err := config.FromEnv()
	// ...
	var store storekit.Store
	switch cfg.Backend {
	case "remote":
	    store, err = remote.New(cfg.Remote, logger)
	default:
	    store, err = direct.New(ctx, cfg.Direct, logger)
	}

The direct backend additionally exposes an explicit Provision step that
idempotently creates its tables, buckets, and queues; run it once at
process start (or via cmd/provision) before serving traffic.

Every entity carries an opaque concurrency token assigned by the backend.
Updates present the token read earlier; a mismatch fails with
errors.ErrConcurrencyConflict and the caller re-reads and retries. The
layer never caches entities, never retries internally, and surfaces every
failure as a typed error from the errors package.

The mock package provides a complete in-memory Store for tests.
*/
package storekit
