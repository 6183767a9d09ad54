package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "(?,?)", placeholders(1, 2))
	assert.Equal(t, "(?,?,?),(?,?,?)", placeholders(2, 3))
	assert.Equal(t, "(?)", placeholders(1, 1))
}
