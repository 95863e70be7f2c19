package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/everywear-ai/crawler/internal/models"
)

const (
	musinsaContentSel = "div.review-contents__text"
	musinsaDateSel    = "p.review-profile__date"
	musinsaOptionSel  = "p.review-goods-information__option"
	musinsaBodySel    = "span.review-profile__body_information"
	musinsaImageSel   = "img[src*='image.msscdn.net']"
)

// ParseMusinsaReviewItem extracts one review from a Musinsa feed item's
// inner HTML. The body information span carries height and weight as one
// text blob.
func ParseMusinsaReviewItem(reviewID, html string) (models.MusinsaReview, error) {
	review := models.MusinsaReview{ReviewNo: reviewID}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return review, err
	}

	review.Content = strings.TrimSpace(doc.Find(musinsaContentSel).First().Text())
	review.Date = strings.TrimSpace(doc.Find(musinsaDateSel).First().Text())
	review.Option = strings.TrimSpace(doc.Find(musinsaOptionSel).First().Text())
	review.Score = FilledStarCount(html)

	if body := strings.TrimSpace(doc.Find(musinsaBodySel).First().Text()); body != "" {
		review.UserHeight = body
		review.UserWeight = body
	}

	doc.Find(musinsaImageSel).Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok && src != "" {
			review.Images = append(review.Images, models.AbsoluteImageURL(src))
		}
	})

	return review, nil
}
