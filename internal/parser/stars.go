package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var widthStyleRe = regexp.MustCompile(`width:\s*(\d+(?:\.\d+)?)%`)

// WidthPercent extracts the percentage from an inline width style like
// "width: 50%;". Returns -1 when no width is present.
func WidthPercent(style string) float64 {
	m := widthStyleRe.FindStringSubmatch(style)
	if m == nil {
		return -1
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return -1
	}
	return v
}

// ScoreFromWidths converts a sequence of per-star fill percentages into a
// 0-5 score: each star contributes its fill fraction, and the sum rounds to
// one decimal. A sum outside [0, 5], including one inflated by extra star
// elements, means the markup was not the expected five-star widget and
// yields nil.
func ScoreFromWidths(widths []float64) *float64 {
	if len(widths) == 0 {
		return nil
	}
	total := 0.0
	for _, w := range widths {
		if w < 0 {
			continue
		}
		total += w / 100.0
	}
	if total < 0 || total > 5 {
		return nil
	}
	total = math.Round(total*10) / 10
	return &total
}

// StarWidthsFromHTML reads the inline width styles of the star sub-elements
// inside a 29CM rating widget fragment.
func StarWidthsFromHTML(html string) []float64 {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	sel := doc.Find("i.relative i.absolute")
	if sel.Length() == 0 {
		sel = doc.Find("i.absolute.inset-0")
	}
	var widths []float64
	sel.Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		widths = append(widths, WidthPercent(style))
	})
	return widths
}

// FilledStarCount counts star sub-elements whose wrapper is filled to 100%,
// the rating convention of the 29CM review list. Defaults to 5 when the
// pattern cannot be read.
func FilledStarCount(html string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 5
	}
	filled := 0
	doc.Find("i.absolute").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		if strings.Contains(style, "width: 100%") || WidthPercent(style) == 100 {
			filled++
		}
	})
	if filled == 0 || filled > 5 {
		return 5
	}
	return filled
}
