package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wconceptRowHTML = `<table><tbody>
	<tr>
		<td>
			<span class="star-grade"><strong style="width: 80%;">80%</strong></span>
			<div class="pdt_review_option">
				<p>컬러 : 아이보리</p>
				<p>사이즈 : FREE</p>
			</div>
		</td>
		<td>
			<div class="product_review_evaluation">
				<ul>
					<li><strong>사이즈</strong><em>정사이즈예요</em></li>
					<li><strong>색상</strong><em>화면과 같아요</em></li>
				</ul>
			</div>
			<p class="pdt_review_text">가볍고 따뜻해서 겨울 내내 입을 것 같아요</p>
			<div class="pdt_review_photo"><img src="https://image.wconcept.co.kr/review/r1.jpg" /></div>
		</td>
		<td>
			<div class="product_review_info_right">
				<em>yun***</em>
				<span>2024.12.20</span>
			</div>
		</td>
	</tr>
	<tr><td colspan="3">포토리뷰 영역, 리뷰 아님</td></tr>
</tbody></table>`

func TestParseWConceptReviewRows(t *testing.T) {
	reviews, err := ParseWConceptReviewRows(wconceptRowHTML)
	require.NoError(t, err)
	require.Len(t, reviews, 1, "rows without review text are skipped")

	r := reviews[0]
	assert.InDelta(t, 4.0, r.Score, 0.001, "80% fill width is four stars")
	assert.Equal(t, "컬러 : 아이보리 | 사이즈 : FREE", r.Option)
	assert.Equal(t, "yun***", r.UserID)
	assert.Equal(t, "2024.12.20", r.Date)
	assert.Equal(t, "가볍고 따뜻해서 겨울 내내 입을 것 같아요", r.Content)
	assert.Equal(t, []string{"https://image.wconcept.co.kr/review/r1.jpg"}, r.Images)
	assert.Equal(t, map[string]string{
		"사이즈": "정사이즈예요",
		"색상":  "화면과 같아요",
	}, r.Satisfaction)
}

func TestParseWConceptReviewRowsEmpty(t *testing.T) {
	reviews, err := ParseWConceptReviewRows(`<table><tr><td>없음</td></tr></table>`)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestWConceptReviewNormalizeRounding(t *testing.T) {
	reviews, err := ParseWConceptReviewRows(wconceptRowHTML)
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	unified := reviews[0].Normalize()
	assert.Equal(t, 4, unified.Rating)
	assert.Equal(t, "2024.12.20", unified.ReviewDate)
}
