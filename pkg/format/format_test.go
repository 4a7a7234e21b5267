package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animerelay/pkg/models"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "first sentence up to period",
			text:     "Hello world. More text.",
			expected: "Hello world",
		},
		{
			name:     "no period takes first seven words",
			text:     "no punctuation here at all across nine words total",
			expected: "no punctuation here at all across nine...",
		},
		{
			name:     "short text without period keeps all words",
			text:     "just three words",
			expected: "just three words...",
		},
		{
			name:     "trailing period still counts as sentence",
			text:     "Single sentence.",
			expected: "Single sentence",
		},
		{
			name:     "whitespace before period is trimmed",
			text:     "Spaced out . rest",
			expected: "Spaced out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractTitle(tt.text))
		})
	}
}

func TestBuildCaptionLayout(t *testing.T) {
	f := NewFormatter("🍁 | @TheAnimeTimes_acn")
	post := models.Post{
		ID:    "123",
		Text:  "Big announcement. Details inside.",
		Media: []string{"https://pbs.twimg.com/media/a.jpg", "https://pbs.twimg.com/media/b.jpg"},
	}

	msg := f.Build(post)

	assert.True(t, strings.HasPrefix(msg.Caption, "<b>⚡ Big announcement</b>\n"))
	assert.Contains(t, msg.Caption, "\n\nBig announcement. Details inside.\n\n")
	assert.Contains(t, msg.Caption, topSeparator)
	assert.Contains(t, msg.Caption, bottomSeparator)
	assert.True(t, strings.HasSuffix(msg.Caption, "🍁 | @TheAnimeTimes_acn"))
	assert.Equal(t, "https://pbs.twimg.com/media/a.jpg", msg.PhotoURL, "first media URL is attached")
}

func TestBuildIsIdempotent(t *testing.T) {
	f := NewFormatter("footer")
	post := models.Post{
		ID:    "42",
		Text:  "Same post, same message.",
		Media: []string{"https://pbs.twimg.com/media/x.jpg"},
	}

	first := f.Build(post)
	second := f.Build(post)
	assert.Equal(t, first, second)
}

func TestTruncateCaption(t *testing.T) {
	t.Run("caption at the limit is unchanged", func(t *testing.T) {
		caption := strings.Repeat("x", 1000)
		assert.Equal(t, caption, TruncateCaption(caption))
	})

	t.Run("caption one over the limit is cut", func(t *testing.T) {
		caption := strings.Repeat("x", 1001)
		got := TruncateCaption(caption)

		require.True(t, strings.HasSuffix(got, "...\n\n[CONTINUED]"))
		body := strings.TrimSuffix(got, "\n\n[CONTINUED]")
		assert.Equal(t, 953, len([]rune(body)), "950 kept runes plus the ellipsis")
		assert.Equal(t, strings.Repeat("x", 950)+"...", body)
	})

	t.Run("cut is by runes, not bytes", func(t *testing.T) {
		caption := strings.Repeat("カ", 1001)
		got := TruncateCaption(caption)

		require.True(t, strings.HasPrefix(got, strings.Repeat("カ", 950)))
		assert.Equal(t, strings.Repeat("カ", 950)+"...\n\n[CONTINUED]", got)
	})
}
