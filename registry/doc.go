/*
Package registry holds the table-driven mapping from entity kinds to the
physical names of the collections that store them, together with the names
of the blob containers, queues, and the file share the direct backend
provisions.

The mapping is deliberately explicit. Known kinds resolve through a fixed
table (Customer → Customers, Product → Products, Order → Orders); unknown
kinds fall back to the kind name plus "s". Nothing is inferred from Go type
names at runtime.
*/
package registry
