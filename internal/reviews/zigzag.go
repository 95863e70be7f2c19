package reviews

import (
	"strings"

	"github.com/everywear-ai/crawler/internal/models"
	"github.com/everywear-ai/crawler/internal/parser"
)

// Clicking every visible expand control in one pass keeps truncated review
// text fully present before extraction.
const zigzagExpandScript = `
document.querySelectorAll("p.zds4_s96ru82b").forEach(btn => {
	if (btn.innerText.includes('더보기')) {
		btn.click();
	}
});
`

func zigzagScrollProfile() scrollProfile {
	return scrollProfile{
		reviewURL:     zigzagReviewURL,
		readySelector: "div[data-review-feed-index]",
		itemSelector:  "div[data-review-feed-index]",
		idAttribute:   "data-review-feed-index",
		expandScript:  zigzagExpandScript,
		parse: func(id, html string) (models.Review, bool) {
			raw, err := parser.ParseZigzagReviewItem(id, html)
			if err != nil {
				return models.Review{}, false
			}
			return raw.Normalize(), true
		},
	}
}

// zigzagReviewURL forces the product page onto its review tab.
func zigzagReviewURL(productURL string) string {
	if strings.Contains(productURL, "?") {
		return productURL + "&tab=review"
	}
	return productURL + "?tab=review"
}
