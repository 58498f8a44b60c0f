package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidHandle(t *testing.T) {
	valid := []string{"abc", "Alice_99", "book-worm", "a1b2c3", "ABCDEFGHIJKLMNOPQRSTUVWXYZ1234"}
	for _, handle := range valid {
		assert.True(t, ValidHandle(handle), "expected %q to be valid", handle)
	}

	invalid := []string{
		"",
		"ab",                              // too short
		"abcdefghijklmnopqrstuvwxyz12345", // 31 chars
		"has space",
		"ümlaut",
		"semi;colon",
		"dot.name",
		"at@sign",
	}
	for _, handle := range invalid {
		assert.False(t, ValidHandle(handle), "expected %q to be invalid", handle)
	}
}

func TestNormalizeHandle(t *testing.T) {
	assert.Equal(t, "alice", NormalizeHandle("Alice"))
	assert.Equal(t, "alice", NormalizeHandle("  ALICE  "))
	assert.Equal(t, "bob_99", NormalizeHandle("Bob_99"))
}
