package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagingInt(t *testing.T) {
	assert.Equal(t, 20, parsePagingInt("", 20, 100))
	assert.Equal(t, 5, parsePagingInt("5", 20, 100))
	assert.Equal(t, 20, parsePagingInt("not-a-number", 20, 100))
	assert.Equal(t, 20, parsePagingInt("-1", 20, 100))
	assert.Equal(t, 100, parsePagingInt("500", 20, 100))
	assert.Equal(t, 0, parsePagingInt("0", 20, 100))
}
