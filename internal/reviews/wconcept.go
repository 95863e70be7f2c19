package reviews

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/everywear-ai/crawler/internal/browser"
	"github.com/everywear-ai/crawler/internal/models"
	"github.com/everywear-ai/crawler/internal/parser"
)

const (
	wconceptRowSelector  = "p.pdt_review_text"
	wconceptPagerPattern = "#reviewPageNavigation a[title='%d']"

	wconceptPageSettle = 2500 * time.Millisecond
)

// collectWConcept walks the numbered review pages. Rows on successive
// pages are disjoint, so there is no identifier dedup here; exhaustion is
// a missing next-page control.
func (s *Service) collectWConcept(ctx context.Context, productURL string, target int) ([]models.Review, error) {
	sess, err := browser.NewSession(s.browserOpts)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	if err := sess.Navigate(wconceptReviewURL(productURL)); err != nil {
		return nil, err
	}
	page := sess.Page()
	time.Sleep(feedSettleDelay)

	var all []models.Review
	currentPage := 1

	for len(all) < target {
		if err := ctx.Err(); err != nil {
			return all, err
		}

		// No rows within the wait means either no reviews at all or the end
		// of the feed; both return the partial result.
		if _, err := page.WaitForSelector(wconceptRowSelector, playwright.PageWaitForSelectorOptions{
			State:   playwright.WaitForSelectorStateAttached,
			Timeout: playwright.Float(10000),
		}); err != nil {
			break
		}

		html, err := page.Content()
		if err != nil {
			break
		}
		rows, err := parser.ParseWConceptReviewRows(html)
		if err != nil {
			break
		}
		for _, raw := range rows {
			if len(all) >= target {
				break
			}
			review := raw.Normalize()
			if review.Content == "" {
				continue
			}
			all = append(all, review)
		}

		s.logger.Debug("wconcept review page", "page", currentPage, "collected", len(all))

		if len(all) >= target {
			break
		}

		currentPage++
		if !s.clickWConceptPage(page, currentPage) {
			break
		}
		time.Sleep(wconceptPageSettle)
	}

	return all, nil
}

func (s *Service) clickWConceptPage(page playwright.Page, pageNo int) bool {
	sel := fmt.Sprintf(wconceptPagerPattern, pageNo)
	handle, err := page.QuerySelector(sel)
	if err != nil || handle == nil {
		return false
	}
	handle.ScrollIntoViewIfNeeded()
	time.Sleep(500 * time.Millisecond)
	// A scripted click sidesteps floaters that would intercept the pointer.
	if _, err := page.Evaluate("sel => document.querySelector(sel).click()", sel); err != nil {
		return false
	}
	return true
}

// wconceptReviewURL anchors the page load at the review section.
func wconceptReviewURL(productURL string) string {
	if strings.Contains(productURL, "#review") {
		return productURL
	}
	return productURL + "#review"
}
