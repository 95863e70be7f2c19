package reviews

import (
	"context"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/everywear-ai/crawler/internal/browser"
	"github.com/everywear-ai/crawler/internal/models"
)

// Scroll loop bounds. The feed is virtualized, so the loop keeps scrolling
// until the target is met, the round cap trips, or enough consecutive
// rounds produce nothing new.
const (
	maxScrollRounds     = 50
	stagnationLimit     = 5
	minRoundsBeforeExit = 10

	feedSettleDelay     = 2 * time.Second
	expandSettleDelay   = 500 * time.Millisecond
	scrollSettleDelay   = 800 * time.Millisecond
	recoverySettleDelay = 1500 * time.Millisecond
)

// scrollProfile describes one mall's virtualized review feed.
type scrollProfile struct {
	reviewURL     func(productURL string) string
	readySelector string
	itemSelector  string
	idAttribute   string
	expandScript  string
	prepare       func(page playwright.Page)
	parse         func(id, html string) (models.Review, bool)
}

// collectByScroll drives a virtualized review feed until it has target
// records. Items are keyed by a DOM-carried identifier; an item with empty
// content is skipped, not recorded.
func (s *Service) collectByScroll(ctx context.Context, p scrollProfile, productURL string, target int) ([]models.Review, error) {
	sess, err := browser.NewSession(s.browserOpts)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	if err := sess.Navigate(p.reviewURL(productURL)); err != nil {
		return nil, err
	}
	page := sess.Page()

	page.WaitForSelector(p.readySelector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(10000),
	})
	time.Sleep(feedSettleDelay)

	if p.prepare != nil {
		p.prepare(page)
	}

	seen := newDedupSet()
	stagnantRounds := 0

	for round := 0; round < maxScrollRounds && seen.Len() < target; round++ {
		if err := ctx.Err(); err != nil {
			return seen.Values(target), err
		}

		if p.expandScript != "" {
			page.Evaluate(p.expandScript)
			time.Sleep(expandSettleDelay)
		}

		handles, err := page.QuerySelectorAll(p.itemSelector)
		if err != nil {
			handles = nil
		}

		newFound := 0
		var lastHandle playwright.ElementHandle
		for _, h := range handles {
			lastHandle = h
			id, err := h.GetAttribute(p.idAttribute)
			if err != nil || id == "" || seen.Has(id) {
				continue
			}
			html, err := h.InnerHTML()
			if err != nil {
				continue
			}
			review, ok := p.parse(id, html)
			if !ok || review.Content == "" {
				continue
			}
			seen.Add(id, review)
			newFound++
			if seen.Len() >= target {
				break
			}
		}

		s.logger.Debug("review scroll round",
			"round", round,
			"new", newFound,
			"collected", seen.Len(),
		)

		if newFound == 0 {
			stagnantRounds++
			if stagnantRounds >= stagnationLimit && round >= minRoundsBeforeExit {
				break
			}
		} else {
			stagnantRounds = 0
		}

		// Nudge the feed forward; a dead round gets the aggressive
		// full-height scroll to recover stalled virtualization.
		if newFound == 0 || lastHandle == nil {
			page.Evaluate("window.scrollTo(0, document.body.scrollHeight)")
			time.Sleep(recoverySettleDelay)
		} else {
			lastHandle.ScrollIntoViewIfNeeded()
			time.Sleep(scrollSettleDelay)
		}
	}

	return seen.Values(target), nil
}
