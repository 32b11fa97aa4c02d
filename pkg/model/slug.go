package model

import (
	"regexp"
	"strings"
)

var nonWordPattern = regexp.MustCompile(`[\W\s]`)

// Slugify derives an id/name token from a label: quotes are dropped,
// underscores become hyphens, every other non-word character becomes a hyphen
// and the result is lower-cased. Applying it twice yields the same value.
func Slugify(label string) string {
	out := strings.NewReplacer(`"`, "", "'", "", "_", "-").Replace(label)
	out = nonWordPattern.ReplaceAllString(out, "-")
	return strings.ToLower(out)
}
