package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	// Known MD5 vector, matches hashes written by earlier deployments
	assert.Equal(t, "9e107d9d372bb6826bd81d3542a419d6",
		Fingerprint("The quick brown fox jumps over the lazy dog"))

	assert.Equal(t, Fingerprint("same text"), Fingerprint("same text"))
	assert.NotEqual(t, Fingerprint("one"), Fingerprint("two"))
}
