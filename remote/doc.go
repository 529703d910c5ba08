/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package remote implements the store contract against an HTTP resource
// API instead of direct storage services. Entities travel as camelCase
// JSON documents; products and proof-of-payment documents are sent as
// multipart forms so an attached file can ride along.
//
// The remote surface is narrower than the direct one. Queue messaging,
// the hierarchical file share, blob deletion and full order replacement
// have no routes, and the corresponding operations fail with
// errors.ErrCapabilityUnavailable so callers can degrade deliberately.
package remote
