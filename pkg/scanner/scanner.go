// Package scanner turns a source account's page into candidate posts. A
// candidate needs a unique identifier, a publication timestamp inside the
// lookback window, a text block, and at least one media URL; raw items
// missing any of these are skipped individually, while a failure to fetch or
// parse the page aborts the scan for that source only.
package scanner

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"

	apperrors "animerelay/pkg/errors"
	"animerelay/pkg/logger"
	"animerelay/pkg/models"
)

// timestampLayout is the publication timestamp format found in the page's
// time elements.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Scanner extracts recent candidate posts from source pages
type Scanner struct {
	fetcher  Fetcher
	lookback time.Duration
	logger   logger.Logger
}

// New creates a scanner over the given fetcher with the given lookback window
func New(fetcher Fetcher, lookback time.Duration, log logger.Logger) *Scanner {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Scanner{
		fetcher:  fetcher,
		lookback: lookback,
		logger:   log,
	}
}

// Scan fetches the source's page and returns its candidate posts. The
// returned error means the whole source was unreachable or unparseable; the
// caller is expected to log it and continue with the next source.
func (s *Scanner) Scan(source string) ([]models.Post, error) {
	raw, err := s.fetcher.Fetch(source)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, apperrors.New(apperrors.ErrorTypeParsing, fmt.Sprintf("failed to parse page: %v", err), 0)
	}

	cutoff := time.Now().Add(-s.lookback)

	var posts []models.Post
	for _, article := range findElements(doc, "article") {
		post, ok := s.parseArticle(source, article, cutoff)
		if !ok {
			continue
		}
		posts = append(posts, post)
	}

	s.logger.DebugWithFields("scanned source", map[string]interface{}{
		"source":     source,
		"candidates": len(posts),
	})

	return posts, nil
}

// parseArticle extracts one candidate from an article element. It returns
// false whenever a required field is missing or the post falls outside the
// lookback window; an unusable item never aborts the scan.
func (s *Scanner) parseArticle(source string, article *html.Node, cutoff time.Time) (models.Post, bool) {
	id := attrVal(article, "data-tweet-id")
	if id == "" {
		s.logger.WarnWithFields("skipping item without identifier", map[string]interface{}{
			"source": source,
		})
		return models.Post{}, false
	}

	timeNode := findFirst(article, "time")
	if timeNode == nil {
		s.logger.WarnWithFields("skipping item without timestamp", map[string]interface{}{
			"source": source,
			"id":     id,
		})
		return models.Post{}, false
	}

	postedAt, recent := parseTimestamp(attrVal(timeNode, "datetime"), cutoff)
	if !recent {
		return models.Post{}, false
	}

	text := extractText(article)
	media := extractMedia(article)

	// A post with neither text nor media has nothing worth relaying; the
	// formatter needs both.
	if text == "" || len(media) == 0 {
		return models.Post{}, false
	}

	return models.Post{
		ID:          id,
		Source:      source,
		Text:        text,
		Media:       media,
		PostedAt:    postedAt,
		Fingerprint: models.Fingerprint(text),
	}, true
}

// parseTimestamp parses a publication timestamp and reports whether the post
// is recent enough. An unparseable timestamp counts as recent, so a format
// change on the source page surfaces items instead of silently dropping
// them (at the cost of possibly re-examining stale ones).
func parseTimestamp(value string, cutoff time.Time) (time.Time, bool) {
	t, err := time.Parse(timestampLayout, value)
	if err != nil {
		return time.Time{}, true
	}
	return t, t.After(cutoff)
}

// extractText joins the text of every p element inside the post's text
// block, space-separated. Returns "" when the block is absent.
func extractText(article *html.Node) string {
	textDiv := findFirstWithAttr(article, "div", "data-testid", "tweetText")
	if textDiv == nil {
		return ""
	}

	var parts []string
	for _, p := range findElements(textDiv, "p") {
		if t := strings.TrimSpace(nodeText(p)); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// extractMedia collects image URLs hosted on the media CDN, upgrading small
// size variants to large and deduplicating while preserving document order.
func extractMedia(article *html.Node) []string {
	var media []string
	seen := make(map[string]bool)

	for _, img := range findElements(article, "img") {
		src := attrVal(img, "src")
		if src == "" {
			continue
		}
		if !strings.Contains(src, "media") && !strings.Contains(src, "twimg") {
			continue
		}
		src = strings.ReplaceAll(src, "&name=small", "&name=large")
		if seen[src] {
			continue
		}
		seen[src] = true
		media = append(media, src)
	}

	return media
}

// findElements returns all element nodes with the given tag, in document
// order
func findElements(node *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return found
}

// findFirst returns the first element node with the given tag, or nil
func findFirst(node *html.Node, tag string) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == tag {
			found = n
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return found
}

// findFirstWithAttr returns the first element node with the given tag and
// attribute value, or nil
func findFirstWithAttr(node *html.Node, tag, key, value string) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == tag && attrVal(n, key) == value {
			found = n
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return found
}

// nodeText concatenates all text nodes under the given node
func nodeText(node *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return buf.String()
}

// attrVal returns the value of the named attribute, or ""
func attrVal(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
