/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import "io"

// FileContent describes an upload payload supplied by the caller: a name,
// a content type, the byte length, and a readable stream. The storage layer
// never validates content type or size; that is a caller concern.
type FileContent struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}
