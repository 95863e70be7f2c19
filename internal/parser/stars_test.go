package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidthPercent(t *testing.T) {
	tests := []struct {
		name     string
		style    string
		expected float64
	}{
		{"integer percent", "width: 50%;", 50},
		{"fractional percent", "width: 87.5%", 87.5},
		{"no spacing", "width:100%", 100},
		{"zero", "width: 0%;", 0},
		{"no width at all", "height: 20px;", -1},
		{"empty style", "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WidthPercent(tt.style))
		})
	}
}

func TestScoreFromWidths(t *testing.T) {
	tests := []struct {
		name     string
		widths   []float64
		expected *float64
	}{
		{"three and a half stars", []float64{100, 100, 100, 50, 0}, floatPtr(3.5)},
		{"full five", []float64{100, 100, 100, 100, 100}, floatPtr(5)},
		{"partial fill rounds to one decimal", []float64{100, 100, 100, 100, 87}, floatPtr(4.9)},
		{"missing widths skipped", []float64{100, -1, 100, 0, 0}, floatPtr(2)},
		{"six filled stars is not a five-star widget", []float64{100, 100, 100, 100, 100, 100}, nil},
		{"extra partial star pushes the sum out of range", []float64{100, 100, 100, 100, 100, 50}, nil},
		{"no widths", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreFromWidths(tt.widths)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.expected, *got, 0.001)
		})
	}
}

func TestStarWidthsFromHTML(t *testing.T) {
	html := `<div class="inline-flex items-center">
		<i class="relative"><i class="absolute inset-0" style="width: 100%;"></i></i>
		<i class="relative"><i class="absolute inset-0" style="width: 100%;"></i></i>
		<i class="relative"><i class="absolute inset-0" style="width: 100%;"></i></i>
		<i class="relative"><i class="absolute inset-0" style="width: 50%;"></i></i>
		<i class="relative"><i class="absolute inset-0" style="width: 0%;"></i></i>
	</div>`

	widths := StarWidthsFromHTML(html)
	require.Len(t, widths, 5)
	assert.Equal(t, []float64{100, 100, 100, 50, 0}, widths)

	score := ScoreFromWidths(widths)
	require.NotNil(t, score)
	assert.InDelta(t, 3.5, *score, 0.001)
}

func TestFilledStarCount(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected int
	}{
		{
			name: "four filled stars",
			html: `<div>
				<i class="absolute" style="width: 100%;"></i>
				<i class="absolute" style="width: 100%;"></i>
				<i class="absolute" style="width: 100%;"></i>
				<i class="absolute" style="width: 100%;"></i>
				<i class="absolute" style="width: 0%;"></i>
			</div>`,
			expected: 4,
		},
		{
			name:     "no star markup defaults to five",
			html:     `<div>리뷰 본문만 있는 경우</div>`,
			expected: 5,
		},
		{
			name: "more than five filled treated as unreadable",
			html: `<div>
				<i class="absolute" style="width: 100%;"></i>
				<i class="absolute" style="width: 100%;"></i>
				<i class="absolute" style="width: 100%;"></i>
				<i class="absolute" style="width: 100%;"></i>
				<i class="absolute" style="width: 100%;"></i>
				<i class="absolute" style="width: 100%;"></i>
			</div>`,
			expected: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FilledStarCount(tt.html))
		})
	}
}

func floatPtr(v float64) *float64 { return &v }
