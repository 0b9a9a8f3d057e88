package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMeta(t *testing.T) {
	t.Run("exact pages", func(t *testing.T) {
		meta := GetMeta(&Params{Page: 1, Limit: 20}, 40)
		assert.Equal(t, 2, meta.TotalPages)
		assert.True(t, meta.HasNext)
		assert.False(t, meta.HasPrev)
	})

	t.Run("partial last page", func(t *testing.T) {
		meta := GetMeta(&Params{Page: 3, Limit: 20}, 41)
		assert.Equal(t, 3, meta.TotalPages)
		assert.False(t, meta.HasNext)
		assert.True(t, meta.HasPrev)
	})

	t.Run("empty result", func(t *testing.T) {
		meta := GetMeta(&Params{Page: 1, Limit: 20}, 0)
		assert.Equal(t, 0, meta.TotalPages)
		assert.False(t, meta.HasNext)
		assert.False(t, meta.HasPrev)
	})
}
