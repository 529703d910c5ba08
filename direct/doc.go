/*
Package direct implements the storekit.Store contract against three
sub-stores: DynamoDB tables for entities, S3 buckets for blobs and the
hierarchical file share, and SQS queues for notification messages.

Construction builds the service clients; Provision then idempotently
creates every table, bucket, and queue once at process start. Provisioning
is explicit and awaitable — failures are collected per capability in a
ProvisionReport and logged, never fatal, and a capability that failed to
provision stays unavailable for the process lifetime.

Optimistic concurrency is enforced with conditional writes: creates require
the key to be absent, updates require the stored concurrency token to equal
the one the caller read. A failed precondition surfaces as
errors.ErrDuplicateKey or errors.ErrConcurrencyConflict; nothing is retried
or merged here.

The hierarchical file store is skipped entirely when the endpoint override
targets a local development emulator, mirroring storage emulators that do
not support file shares; Files().Available() lets callers branch before
attempting an operation.
*/
package direct
