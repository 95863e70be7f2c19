package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/everywear-ai/crawler/internal/models"
)

// ParseWConceptReviewRows extracts every review row present in a W Concept
// review table's HTML. Rows without content are dropped; the caller counts
// only what is returned.
func ParseWConceptReviewRows(html string) ([]models.WConceptReview, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var reviews []models.WConceptReview
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if row.Find("p.pdt_review_text").Length() == 0 {
			return
		}
		r := parseWConceptRow(row)
		if r.Content != "" {
			reviews = append(reviews, r)
		}
	})
	return reviews, nil
}

func parseWConceptRow(row *goquery.Selection) models.WConceptReview {
	review := models.WConceptReview{Satisfaction: map[string]string{}}

	// The star widget encodes the score as a fill width: 100% = 5.0.
	if style, ok := row.Find(".star-grade strong").First().Attr("style"); ok {
		if w := WidthPercent(style); w >= 0 {
			review.Score = w / 20.0
		}
	}

	var opts []string
	row.Find(".pdt_review_option p").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			opts = append(opts, t)
		}
	})
	review.Option = strings.Join(opts, " | ")

	info := row.Find(".product_review_info_right").First()
	review.UserID = strings.TrimSpace(info.Find("em").First().Text())
	review.Date = strings.TrimSpace(info.Find("span").First().Text())

	row.Find(".product_review_evaluation li").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Find("strong").First().Text())
		value := strings.TrimSpace(s.Find("em").First().Text())
		if label != "" && value != "" {
			review.Satisfaction[label] = value
		}
	})

	review.Content = strings.TrimSpace(row.Find(".pdt_review_text").First().Text())

	row.Find(".pdt_review_photo img").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && src != "" {
			review.Images = append(review.Images, src)
		}
	})

	return review
}
