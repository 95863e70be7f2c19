package reviews

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/everywear-ai/crawler/internal/models"
)

func TestDedupSet(t *testing.T) {
	t.Run("duplicate ids are ignored", func(t *testing.T) {
		d := newDedupSet()
		d.Add("a", models.Review{Content: "첫번째"})
		d.Add("a", models.Review{Content: "덮어쓰기 시도"})

		assert.Equal(t, 1, d.Len())
		assert.Equal(t, "첫번째", d.Values(0)[0].Content)
	})

	t.Run("first-seen order preserved", func(t *testing.T) {
		d := newDedupSet()
		for i := 0; i < 10; i++ {
			d.Add(fmt.Sprintf("id-%d", i), models.Review{Content: fmt.Sprintf("리뷰 %d", i)})
		}
		// Re-adding earlier ids must not reshuffle.
		d.Add("id-3", models.Review{})
		d.Add("id-0", models.Review{})

		values := d.Values(0)
		assert.Len(t, values, 10)
		assert.Equal(t, "리뷰 0", values[0].Content)
		assert.Equal(t, "리뷰 9", values[9].Content)
	})

	t.Run("values truncated to limit", func(t *testing.T) {
		d := newDedupSet()
		for i := 0; i < 10; i++ {
			d.Add(fmt.Sprintf("id-%d", i), models.Review{})
		}

		assert.Len(t, d.Values(3), 3)
		assert.Len(t, d.Values(0), 10, "zero limit means everything")
		assert.Len(t, d.Values(50), 10)
	})

	t.Run("has reflects membership", func(t *testing.T) {
		d := newDedupSet()
		assert.False(t, d.Has("x"))
		d.Add("x", models.Review{})
		assert.True(t, d.Has("x"))
	})
}
