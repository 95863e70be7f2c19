package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"two-digit year expanded", "24.12.15", "2024.12.15"},
		{"four-digit year untouched", "2024.12.15", "2024.12.15"},
		{"idempotent on expanded output", "2023.01.02", "2023.01.02"},
		{"whitespace trimmed", "  24.01.05  ", "2024.01.05"},
		{"unparseable shape kept as-is", "어제", "어제"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDate(tt.input))
		})
	}
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain number gains suffix", "39900", "39900원"},
		{"already suffixed not duplicated", "39,900원", "39,900원"},
		{"longest digit group wins over discount percent", "30% 27,930원", "27,930원"},
		{"surrounding text stripped", "판매가 129,000원 쿠폰가", "129,000원"},
		{"sentinel passes through", Unknown, Unknown},
		{"empty becomes sentinel", "", Unknown},
		{"no digits keeps text with suffix", "품절", "품절원"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePrice(tt.input))
		})
	}
}

func TestParseBodySpec(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		height *int
		weight *int
	}{
		{"both present", "158cm, 47kg", intPtr(158), intPtr(47)},
		{"with spaces", "키 170 cm 몸무게 60 kg", intPtr(170), intPtr(60)},
		{"height only", "165cm", intPtr(165), nil},
		{"weight only", "55kg", nil, intPtr(55)},
		{"nothing", "사이즈 정보 없음", nil, nil},
		{"empty", "", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, w := ParseBodySpec(tt.input)
			assert.Equal(t, tt.height, h)
			assert.Equal(t, tt.weight, w)
		})
	}
}

func TestAbsoluteImageURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"protocol relative", "//image.msscdn.net/thumbnails/a.jpg", "https://image.msscdn.net/thumbnails/a.jpg"},
		{"already absolute https", "https://img.29cm.co.kr/a.jpg", "https://img.29cm.co.kr/a.jpg"},
		{"already absolute http", "http://img.29cm.co.kr/a.jpg", "http://img.29cm.co.kr/a.jpg"},
		{"site-relative path untouched", "/images/a.jpg", "/images/a.jpg"},
		{"bare host gains scheme", "cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"empty becomes sentinel", "", Unknown},
		{"sentinel passes through", Unknown, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AbsoluteImageURL(tt.input))
		})
	}
}

func TestMusinsaReviewNormalize(t *testing.T) {
	raw := MusinsaReview{
		ReviewNo:   "99",
		Content:    "  핏이 예뻐요  ",
		Date:       "24.11.02",
		Score:      7,
		Option:     "블랙 / L",
		UserHeight: "175cm",
		UserWeight: "70kg",
		Images:     []string{"https://image.msscdn.net/r/1.jpg"},
	}

	review := raw.Normalize()
	assert.Equal(t, 5, review.Rating, "rating clamps to the 0-5 scale")
	assert.Equal(t, "핏이 예뻐요", review.Content)
	assert.Equal(t, "2024.11.02", review.ReviewDate)
	assert.Equal(t, "블랙 / L", review.OptionText)
	require.NotNil(t, review.UserHeight)
	assert.Equal(t, 175, *review.UserHeight)
	require.NotNil(t, review.UserWeight)
	assert.Equal(t, 70, *review.UserWeight)
}

func TestZigzagReviewNormalize(t *testing.T) {
	raw := ZigzagReview{
		Rating:   -2,
		Content:  "생각보다 얇아요",
		Date:     "2024.03.10",
		BodyText: "158cm · 47kg",
	}

	review := raw.Normalize()
	assert.Equal(t, 5, review.Rating, "unparseable ratings default to full stars")
	require.NotNil(t, review.UserHeight)
	assert.Equal(t, 158, *review.UserHeight)
	require.NotNil(t, review.UserWeight)
	assert.Equal(t, 47, *review.UserWeight)
}

func TestProductPriceNumeric(t *testing.T) {
	p := NewProduct("무신사", "https://www.musinsa.com/products/1")
	assert.Equal(t, int64(0), p.PriceNumeric())

	p.Price = "39,900원"
	assert.Equal(t, int64(39900), p.PriceNumeric())
}

func intPtr(v int) *int { return &v }
