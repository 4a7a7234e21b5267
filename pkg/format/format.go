// Package format builds the outbound caption for an accepted post: a bolded
// headline, decorative separators around the full text, and a footer
// signature, using Telegram's HTML parse mode.
package format

import (
	"fmt"
	"strings"

	"animerelay/pkg/models"
)

const (
	// maxCaptionRunes is Telegram's practical caption ceiling; anything
	// longer is cut at truncateAtRunes and marked as continued. Both are
	// rune counts, and the cut may fall mid-word.
	maxCaptionRunes = 1000
	truncateAtRunes = 950
	continuedMarker = "...\n\n[CONTINUED]"
	headlineWords   = 7
	topSeparator    = "﹏﹏﹏﹏﹏﹏﹏﹏﹏﹏﹏﹏﹏﹏﹏﹏﹏"
	bottomSeparator = "﹋﹋﹋﹋﹋﹋﹋﹋﹋﹋﹋﹋﹋﹋﹋﹋﹋"
)

// Formatter converts an accepted post into an outbound message
type Formatter struct {
	footer string
}

// NewFormatter creates a formatter with the given footer signature
func NewFormatter(footer string) *Formatter {
	return &Formatter{footer: footer}
}

// Build renders the post into a message. Formatting is deterministic: the
// same post always yields an identical message. Exactly the first media URL
// is attached.
func (f *Formatter) Build(post models.Post) models.Message {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>⚡ %s</b>\n", ExtractTitle(post.Text)))
	b.WriteString(topSeparator + "\n\n")
	b.WriteString(post.Text + "\n\n")
	b.WriteString(bottomSeparator + "\n")
	b.WriteString(f.footer)

	photo := ""
	if len(post.Media) > 0 {
		photo = post.Media[0]
	}

	return models.Message{
		Caption:  TruncateCaption(b.String()),
		PhotoURL: photo,
	}
}

// ExtractTitle returns the headline for a post: the text up to the first
// period, or, when there is no period, the first seven words followed by an
// ellipsis.
func ExtractTitle(text string) string {
	if idx := strings.Index(text, "."); idx >= 0 {
		return strings.TrimSpace(text[:idx])
	}

	words := strings.Fields(text)
	if len(words) > headlineWords {
		words = words[:headlineWords]
	}
	return strings.Join(words, " ") + "..."
}

// TruncateCaption bounds a caption to maxCaptionRunes. An over-long caption
// is cut to its first truncateAtRunes runes with the continued marker
// appended; a caption at or under the limit is returned unchanged.
func TruncateCaption(caption string) string {
	runes := []rune(caption)
	if len(runes) <= maxCaptionRunes {
		return caption
	}
	return string(runes[:truncateAtRunes]) + continuedMarker
}
