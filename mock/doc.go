/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory store for tests and local
// development. It honors the same contract as the real backends,
// including concurrency-token checks and the optional file share, so
// code exercised against it behaves the same against real storage.
package mock
