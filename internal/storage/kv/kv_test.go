package kv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"notesData", "notes.v2", "a-b_c", strings.Repeat("k", 128)} {
		assert.NoError(t, ValidateKey(key), key)
	}
	for _, key := range []string{"", " ", "notes data", "../notes", "a/b", ".", "..", strings.Repeat("k", 129)} {
		assert.ErrorIs(t, ValidateKey(key), ErrInvalidKey, key)
	}
}
