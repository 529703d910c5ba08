/*
Package models defines the entity model shared by every storekit backend:
Customer, Product, and Order records keyed by a (partition key, row key)
pair and guarded by an opaque concurrency token.

Entities embed TableKeys, which makes their pointer types satisfy the
Entity interface consumed by the generic store implementations. The
partition key is fixed per kind (it equals the kind name); the row key is
backend-generated and immutable once assigned; the concurrency token is
rotated by the backend on every successful write and must be presented
unchanged on update.

Price is an exact decimal amount parsed once, at the input boundary, from a
single invariant format. FileContent describes caller-supplied upload
payloads for the blob and hierarchical file capabilities.
*/
package models
