package models

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// Post is a candidate post produced by a source scan. Posts are ephemeral:
// they live for one pipeline run and are never persisted themselves, only
// their identifier and fingerprint are.
type Post struct {
	// ID is the source-assigned unique identifier of the post.
	ID string

	// Source is the account handle the post was scraped from.
	Source string

	// Text is the full post text.
	Text string

	// Media holds the post's image URLs in document order, deduplicated.
	Media []string

	// PostedAt is the publication timestamp. The zero value means the
	// timestamp could not be parsed.
	PostedAt time.Time

	// Fingerprint is the content hash of Text, used to catch the same
	// content reappearing under a different identifier.
	Fingerprint string
}

// Message is the outbound payload derived from an accepted post.
type Message struct {
	// Caption is the formatted, length-bounded caption text (HTML markup).
	Caption string

	// PhotoURL is the single media URL attached to the message.
	PhotoURL string
}

// Fingerprint returns the hex MD5 digest of the given text. The digest
// format matches the entries already recorded in posted_content.json files.
func Fingerprint(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
