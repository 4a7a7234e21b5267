// Package filter decides whether a candidate post is new. A post is new only
// if neither its identifier nor its content fingerprint has been seen: the
// identifier check catches the same item reappearing, the fingerprint check
// catches identical text posted by a different account.
package filter

import (
	"animerelay/pkg/dedup"
	"animerelay/pkg/models"
)

// Filter holds the seen-identifier and seen-fingerprint sets for one run
type Filter struct {
	ids          dedup.Set
	fingerprints dedup.Set
}

// New creates a filter over the given sets. The sets are used directly, not
// copied; MarkSeen mutates them.
func New(ids, fingerprints dedup.Set) *Filter {
	if ids == nil {
		ids = dedup.NewSet()
	}
	if fingerprints == nil {
		fingerprints = dedup.NewSet()
	}
	return &Filter{ids: ids, fingerprints: fingerprints}
}

// IsNew reports whether the post has been seen by neither identifier nor
// fingerprint
func (f *Filter) IsNew(post models.Post) bool {
	return !f.ids.Contains(post.ID) && !f.fingerprints.Contains(post.Fingerprint)
}

// MarkSeen records the post in the in-memory sets so later candidates with
// the same identifier or text are dropped within the same run
func (f *Filter) MarkSeen(post models.Post) {
	f.ids.Add(post.ID)
	f.fingerprints.Add(post.Fingerprint)
}
