package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseZigzagReviewItem(t *testing.T) {
	html := `<div>
		<svg data-zds-icon="IconStarSolid"></svg>
		<svg data-zds-icon="IconStarSolid"></svg>
		<svg data-zds-icon="IconStarSolid"></svg>
		<svg data-zds-icon="IconStarSolid"></svg>
		<p class="zds4_s96ru82j">2024.05.01</p>
		<span class="zds4_s96ru81z">원단이 부드럽고 좋아요<p class="zds4_s96ru82b">더보기</p></span>
		<img src="https://cf.image-farm.s.zigzag.kr/review/1.jpg" />
		<div class="css-1y13n9">
			<div class="zds4_s96ru82b" style="color: var(--quaternary)">구매 옵션</div>
			<div class="zds4_s96ru82b" style="color: var(--tertiary)">블랙
M</div>
		</div>
		<div class="css-1y13n9">
			<div class="zds4_s96ru82b" style="color: var(--quaternary)">체형 정보</div>
			<div class="zds4_s96ru82b" style="color: var(--tertiary)">160cm, 50kg</div>
		</div>
	</div>`

	review, err := ParseZigzagReviewItem("7", html)
	require.NoError(t, err)

	assert.Equal(t, "7", review.ReviewIndex)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "원단이 부드럽고 좋아요", review.Content, "expand control text must not leak")
	assert.Equal(t, "2024.05.01", review.Date)
	assert.Equal(t, []string{"https://cf.image-farm.s.zigzag.kr/review/1.jpg"}, review.Images)
	assert.Equal(t, "블랙 M", review.OptionText)
	assert.Equal(t, "160cm, 50kg", review.BodyText)
}

func TestParseZigzagReviewItemDefaults(t *testing.T) {
	review, err := ParseZigzagReviewItem("0", `<div><span class="zds4_s96ru81z">보통이에요</span></div>`)
	require.NoError(t, err)

	assert.Equal(t, 5, review.Rating, "missing stars default to five")
	assert.Equal(t, "보통이에요", review.Content)
	assert.Empty(t, review.Images)
	assert.Empty(t, review.OptionText)
}

func TestParseZigzagReviewItemEmpty(t *testing.T) {
	review, err := ParseZigzagReviewItem("1", `<div></div>`)
	require.NoError(t, err)
	assert.Empty(t, review.Content)
}
