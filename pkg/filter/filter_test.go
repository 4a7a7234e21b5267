package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"animerelay/pkg/dedup"
	"animerelay/pkg/models"
)

func TestIsNew(t *testing.T) {
	seenIDs := dedup.NewSet("100")
	seenFingerprints := dedup.NewSet("aaaa")
	f := New(seenIDs, seenFingerprints)

	tests := []struct {
		name string
		post models.Post
		want bool
	}{
		{
			name: "unseen id and fingerprint is new",
			post: models.Post{ID: "200", Fingerprint: "bbbb"},
			want: true,
		},
		{
			name: "seen id blocks regardless of fingerprint",
			post: models.Post{ID: "100", Fingerprint: "bbbb"},
			want: false,
		},
		{
			name: "seen fingerprint blocks regardless of id",
			post: models.Post{ID: "300", Fingerprint: "aaaa"},
			want: false,
		},
		{
			name: "both seen blocks",
			post: models.Post{ID: "100", Fingerprint: "aaaa"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IsNew(tt.post))
		})
	}
}

func TestMarkSeen(t *testing.T) {
	f := New(nil, nil)

	post := models.Post{ID: "1", Fingerprint: models.Fingerprint("identical text")}
	assert.True(t, f.IsNew(post))

	f.MarkSeen(post)

	assert.False(t, f.IsNew(post), "same post is no longer new")

	// Same text under a different identifier is caught by the fingerprint
	twin := models.Post{ID: "2", Fingerprint: models.Fingerprint("identical text")}
	assert.False(t, f.IsNew(twin))
}
