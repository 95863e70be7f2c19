package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCM29ReviewItem(t *testing.T) {
	html := `<li data-review-id="20250101">
		<i class="absolute" style="width: 100%;"></i>
		<i class="absolute" style="width: 100%;"></i>
		<i class="absolute" style="width: 100%;"></i>
		<i class="absolute" style="width: 100%;"></i>
		<i class="absolute" style="width: 0%;"></i>
		<span class="text-s">min****</span>
		<span class="text-s text-tertiary">2025.01.15</span>
		<p class="text-s text-tertiary">
			<span>옵션 : 멜란지그레이, M</span>
			<span>체형 : 163cm, 52kg</span>
		</p>
		<p class="text-l text-primary">
			두께감 적당하고 색감이 사진 그대로예요
		</p>
		<img src="https://img.29cm.co.kr/review/a.jpg?width=400" />
	</li>`

	review, err := ParseCM29ReviewItem("20250101", html)
	require.NoError(t, err)

	assert.Equal(t, "20250101", review.ReviewID)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "min****", review.UserID)
	assert.Equal(t, "2025.01.15", review.Date)
	assert.Equal(t, "멜란지그레이, M", review.Option)
	assert.Equal(t, "두께감 적당하고 색감이 사진 그대로예요", review.Content)
	assert.Contains(t, review.Height, "163cm")
	assert.Contains(t, review.Weight, "52kg")
	assert.Equal(t, []string{"https://img.29cm.co.kr/review/a.jpg"}, review.Images,
		"resize query parameters are stripped")
}

func TestParseCM29ReviewItemNoBodySpec(t *testing.T) {
	html := `<li>
		<p class="text-l text-primary">선물용으로 샀어요</p>
	</li>`

	review, err := ParseCM29ReviewItem("1", html)
	require.NoError(t, err)

	assert.Equal(t, "선물용으로 샀어요", review.Content)
	assert.Empty(t, review.Height)
	assert.Empty(t, review.Weight)
	assert.Equal(t, 5, review.Rating, "missing star widget defaults to five")
}
