package service

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// contentPolicy strips all markup from user-supplied text. Stored content is
// always the sanitized form, never the raw client string.
var contentPolicy = bluemonday.StrictPolicy()

// sanitizeContent trims and strips markup/script from user text. Applied on
// every write path: post create, post update, comment add.
func sanitizeContent(s string) string {
	return strings.TrimSpace(contentPolicy.Sanitize(strings.TrimSpace(s)))
}
