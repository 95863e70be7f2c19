package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/everywear-ai/crawler/internal/models"
)

// Zigzag review feed selectors. The class names come from Zigzag's design
// system bundle and change when the bundle is regenerated.
const (
	zigzagContentSel  = "span.zds4_s96ru81z"
	zigzagExpandSel   = "p.zds4_s96ru82b"
	zigzagStarSel     = "svg[data-zds-icon='IconStarSolid']"
	zigzagDateSel     = "p.zds4_s96ru82j"
	zigzagImageSel    = "img[src*='zigzag.kr']"
	zigzagSectionSel  = "div.css-1y13n9"
	zigzagSecLabelSel = "div.zds4_s96ru82b[style*='quaternary']"
	zigzagSecValueSel = "div.zds4_s96ru82b[style*='tertiary']"
)

// ParseZigzagReviewItem extracts one raw review from the inner HTML of a
// review feed item. The expand control's own text is stripped from the
// content so "더보기" never leaks into the record.
func ParseZigzagReviewItem(reviewIndex, html string) (models.ZigzagReview, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.ZigzagReview{}, err
	}

	review := models.ZigzagReview{ReviewIndex: reviewIndex, Rating: 5}

	content := doc.Find(zigzagContentSel).First().Clone()
	content.Find(zigzagExpandSel).Remove()
	review.Content = strings.TrimSpace(content.Text())

	if stars := doc.Find(zigzagStarSel).Length(); stars > 0 {
		review.Rating = stars
	}

	review.Date = strings.TrimSpace(doc.Find(zigzagDateSel).First().Text())

	doc.Find(zigzagImageSel).Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && src != "" {
			review.Images = append(review.Images, src)
		}
	})

	doc.Find(zigzagSectionSel).Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Find(zigzagSecLabelSel).First().Text())
		value := strings.TrimSpace(s.Find(zigzagSecValueSel).First().Text())
		if label == "" || value == "" {
			return
		}
		switch {
		case strings.Contains(label, "옵션"):
			review.OptionText = strings.ReplaceAll(value, "\n", " ")
		case strings.Contains(label, "정보"):
			review.BodyText = value
		}
	})

	return review, nil
}
