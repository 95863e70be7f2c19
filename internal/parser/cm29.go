package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/everywear-ai/crawler/internal/models"
)

// ParseCM29ReviewItem extracts one raw review from the inner HTML of a
// li[data-review-id] node in the 29CM review list.
func ParseCM29ReviewItem(reviewID, html string) (models.CM29Review, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.CM29Review{}, err
	}

	review := models.CM29Review{
		ReviewID: reviewID,
		Rating:   FilledStarCount(html),
	}

	review.UserID = strings.TrimSpace(doc.Find("span.text-s").First().Text())

	dates := doc.Find("span.text-s.text-tertiary")
	if dates.Length() > 0 {
		review.Date = strings.TrimSpace(dates.Last().Text())
	}

	doc.Find("p.text-s.text-tertiary span").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		switch {
		case strings.HasPrefix(text, "옵션 :"):
			review.Option = strings.TrimSpace(strings.TrimPrefix(text, "옵션 :"))
		case strings.HasPrefix(text, "체형 :"):
			body := strings.TrimPrefix(text, "체형 :")
			if h, _ := models.ParseBodySpec(body); h != nil {
				review.Height = body
			}
			if _, w := models.ParseBodySpec(body); w != nil {
				review.Weight = body
			}
		}
	})

	review.Content = strings.TrimSpace(doc.Find("p.text-l.text-primary").First().Text())

	doc.Find("img[src*='img.29cm.co.kr']").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return
		}
		// Drop the resize query so the original image is stored.
		if i := strings.Index(src, "?"); i >= 0 {
			src = src[:i]
		}
		review.Images = append(review.Images, src)
	})

	return review, nil
}
