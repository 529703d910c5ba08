/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package direct

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// imageObjectName renames an uploaded image to a random unique identifier,
// preserving the original extension. User-supplied names never reach the
// store, which rules out collisions and path traversal.
func imageObjectName(originalName string) string {
	return uuid.NewString() + path.Ext(sanitizeFileName(originalName))
}

// documentObjectName prefixes the original file name with a sortable UTC
// timestamp. Two uploads of the same name within the same second still
// collide; avoiding that is caller discipline, not a guarantee of this
// layer.
func documentObjectName(now time.Time, originalName string) string {
	return now.UTC().Format("20060102_150405") + "_" + sanitizeFileName(originalName)
}

// sanitizeFileName strips any directory component from a caller-supplied
// file name.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	base := path.Base(name)
	if base == "." || base == "/" {
		return "file"
	}
	return base
}
