package scanner

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animerelay/pkg/config"
	apperrors "animerelay/pkg/errors"
	"animerelay/pkg/logger"
	"animerelay/pkg/models"
)

// stubFetcher returns a fixed page or error for every source
type stubFetcher struct {
	page []byte
	err  error
}

func (s *stubFetcher) Fetch(source string) ([]byte, error) {
	return s.page, s.err
}

// article renders one post container the way the scanner expects to find it
func article(id, datetime, text string, imgs ...string) string {
	imgTags := ""
	for _, src := range imgs {
		imgTags += fmt.Sprintf(`<img src="%s">`, src)
	}
	textDiv := ""
	if text != "" {
		textDiv = fmt.Sprintf(`<div data-testid="tweetText"><p>%s</p></div>`, text)
	}
	timeTag := ""
	if datetime != "" {
		timeTag = fmt.Sprintf(`<time datetime="%s"></time>`, datetime)
	}
	return fmt.Sprintf(`<article data-tweet-id="%s">%s%s%s</article>`, id, timeTag, textDiv, imgTags)
}

func page(articles ...string) []byte {
	body := ""
	for _, a := range articles {
		body += a
	}
	return []byte("<html><body>" + body + "</body></html>")
}

func stamp(age time.Duration) string {
	return time.Now().Add(-age).UTC().Format(timestampLayout)
}

func newScanner(page []byte) *Scanner {
	return New(&stubFetcher{page: page}, 24*time.Hour, logger.NewNop())
}

func TestScanExtractsCandidates(t *testing.T) {
	s := newScanner(page(
		article("100", stamp(time.Hour), "Fresh news. More inside.",
			"https://pbs.twimg.com/media/a.jpg&name=small"),
	))

	posts, err := s.Scan("@Anime")
	require.NoError(t, err)
	require.Len(t, posts, 1)

	post := posts[0]
	assert.Equal(t, "100", post.ID)
	assert.Equal(t, "@Anime", post.Source)
	assert.Equal(t, "Fresh news. More inside.", post.Text)
	assert.Equal(t, models.Fingerprint("Fresh news. More inside."), post.Fingerprint)
	require.Len(t, post.Media, 1)
	assert.Equal(t, "https://pbs.twimg.com/media/a.jpg&name=large", post.Media[0],
		"small size variant is upgraded to large")
}

func TestScanRecencyWindow(t *testing.T) {
	tests := []struct {
		name     string
		datetime string
		included bool
	}{
		{"23 hours old passes", stamp(23 * time.Hour), true},
		{"25 hours old is excluded", stamp(25 * time.Hour), false},
		{"malformed timestamp is treated as recent", "not-a-timestamp", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScanner(page(
				article("1", tt.datetime, "Some text here", "https://pbs.twimg.com/media/a.jpg"),
			))
			posts, err := s.Scan("@Anime")
			require.NoError(t, err)
			if tt.included {
				assert.Len(t, posts, 1)
			} else {
				assert.Empty(t, posts)
			}
		})
	}
}

func TestScanSkipsIncompleteItems(t *testing.T) {
	tests := []struct {
		name    string
		article string
	}{
		{"missing identifier", article("", stamp(time.Hour), "text", "https://pbs.twimg.com/media/a.jpg")},
		{"missing timestamp", article("1", "", "text", "https://pbs.twimg.com/media/a.jpg")},
		{"missing text block", article("1", stamp(time.Hour), "", "https://pbs.twimg.com/media/a.jpg")},
		{"no media", article("1", stamp(time.Hour), "text only")},
		{"image not on media host", article("1", stamp(time.Hour), "text", "https://example.com/avatar.jpg")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScanner(page(tt.article))
			posts, err := s.Scan("@Anime")
			require.NoError(t, err)
			assert.Empty(t, posts)
		})
	}
}

func TestScanSkipsBrokenItemButKeepsRest(t *testing.T) {
	s := newScanner(page(
		article("", stamp(time.Hour), "broken item", "https://pbs.twimg.com/media/a.jpg"),
		article("2", stamp(time.Hour), "good item", "https://pbs.twimg.com/media/b.jpg"),
	))

	posts, err := s.Scan("@Anime")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "2", posts[0].ID)
}

func TestScanDeduplicatesMediaWithinPost(t *testing.T) {
	s := newScanner(page(
		article("1", stamp(time.Hour), "text",
			"https://pbs.twimg.com/media/a.jpg&name=small",
			"https://pbs.twimg.com/media/a.jpg&name=large",
			"https://pbs.twimg.com/media/b.jpg"),
	))

	posts, err := s.Scan("@Anime")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, []string{
		"https://pbs.twimg.com/media/a.jpg&name=large",
		"https://pbs.twimg.com/media/b.jpg",
	}, posts[0].Media)
}

func TestScanPropagatesFetchError(t *testing.T) {
	fetchErr := apperrors.New(apperrors.ErrorTypeNetwork, "connection refused", 0)
	s := New(&stubFetcher{err: fetchErr}, 24*time.Hour, logger.NewNop())

	posts, err := s.Scan("@Anime")
	assert.Empty(t, posts)
	assert.ErrorIs(t, err, fetchErr)
}

func TestHTTPFetcher(t *testing.T) {
	t.Run("fetches the source page with browser headers", func(t *testing.T) {
		var gotPath, gotUA, gotLang string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotUA = r.Header.Get("User-Agent")
			gotLang = r.Header.Get("Accept-Language")
			fmt.Fprint(w, "<html></html>")
		}))
		defer server.Close()

		f := NewHTTPFetcher(&config.ScanConfig{
			BaseURL:        server.URL,
			UserAgent:      "Mozilla/5.0",
			RequestTimeout: 5 * time.Second,
		}, logger.NewNop())

		body, err := f.Fetch("@Anime")
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", string(body))
		assert.Equal(t, "/Anime", gotPath, "leading @ is stripped")
		assert.Equal(t, "Mozilla/5.0", gotUA)
		assert.Equal(t, "en-US,en;q=0.9", gotLang)
	})

	t.Run("non-2xx status is a typed error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		f := NewHTTPFetcher(&config.ScanConfig{
			BaseURL:        server.URL,
			UserAgent:      "Mozilla/5.0",
			RequestTimeout: 5 * time.Second,
		}, logger.NewNop())

		_, err := f.Fetch("@Anime")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeServerError))
	})

	t.Run("network failure is a typed error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // immediately, so the connection is refused

		f := NewHTTPFetcher(&config.ScanConfig{
			BaseURL:        server.URL,
			UserAgent:      "Mozilla/5.0",
			RequestTimeout: time.Second,
		}, logger.NewNop())

		_, err := f.Fetch("@Anime")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNetwork))
	})
}
