package scraper

import (
	"log/slog"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Candidate is one element locator in a fallback chain. An empty Attribute
// means the candidate extracts text content; otherwise the named attribute
// is read.
type Candidate struct {
	Selector  string
	Attribute string
}

// Text builds a text-extraction candidate.
func Text(selector string) Candidate {
	return Candidate{Selector: selector}
}

// Attr builds an attribute-extraction candidate.
func Attr(selector, attribute string) Candidate {
	return Candidate{Selector: selector, Attribute: attribute}
}

// Locator resolves values from a page by trying an ordered list of
// candidate selectors. Site markup ships in several skins (desktop layout,
// mobile-derived DOM, legacy component names); trying fallbacks in priority
// order maximizes the hit rate without a full layout parser.
type Locator struct {
	page    playwright.Page
	timeout time.Duration
	logger  *slog.Logger
}

// NewLocator wraps a page. The timeout bounds the wait for each candidate
// individually.
func NewLocator(page playwright.Page, timeout time.Duration, logger *slog.Logger) *Locator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Locator{
		page:    page,
		timeout: timeout,
		logger:  logger.With("component", "locator"),
	}
}

// Locate tries each candidate strictly in order and returns the first
// non-empty value. The second return is false when every candidate timed
// out or yielded empty; it never raises past this boundary.
func (l *Locator) Locate(candidates ...Candidate) (string, bool) {
	for _, c := range candidates {
		value, ok := l.tryCandidate(c)
		if ok {
			return value, true
		}
	}
	return "", false
}

// LocateOr is Locate with a sentinel default.
func (l *Locator) LocateOr(sentinel string, candidates ...Candidate) string {
	if v, ok := l.Locate(candidates...); ok {
		return v
	}
	return sentinel
}

func (l *Locator) tryCandidate(c Candidate) (string, bool) {
	handle, err := l.page.WaitForSelector(c.Selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(l.timeout.Milliseconds())),
	})
	if err != nil || handle == nil {
		return "", false
	}

	if c.Attribute != "" {
		value, err := handle.GetAttribute(c.Attribute)
		if err != nil || strings.TrimSpace(value) == "" {
			return "", false
		}
		return strings.TrimSpace(value), true
	}

	// Headless rendering can attach nodes before layout settles; give the
	// element a short window to become visible before reading its text.
	l.page.WaitForSelector(c.Selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(3000),
	})

	value, err := handle.TextContent()
	if err != nil || strings.TrimSpace(value) == "" {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// LastMatchingText queries every node matching the selector and returns the
// last one with non-empty text. Some layouts render placeholder nodes ahead
// of the real value, so the final match is the trustworthy one.
func (l *Locator) LastMatchingText(selector string) (string, bool) {
	handles, err := l.page.QuerySelectorAll(selector)
	if err != nil {
		return "", false
	}
	var texts []string
	for _, h := range handles {
		if t, err := h.TextContent(); err == nil {
			if t = strings.TrimSpace(t); t != "" {
				texts = append(texts, t)
			}
		}
	}
	if len(texts) == 0 {
		return "", false
	}
	return texts[len(texts)-1], true
}

// AllMatchingText returns the trimmed non-empty text of every node matching
// the selector.
func (l *Locator) AllMatchingText(selector string) []string {
	handles, err := l.page.QuerySelectorAll(selector)
	if err != nil {
		return nil
	}
	var texts []string
	for _, h := range handles {
		if t, err := h.TextContent(); err == nil {
			if t = strings.TrimSpace(t); t != "" {
				texts = append(texts, t)
			}
		}
	}
	return texts
}

// AllMatchingAttr returns the trimmed non-empty values of one attribute
// across every node matching the selector.
func (l *Locator) AllMatchingAttr(selector, attribute string) []string {
	handles, err := l.page.QuerySelectorAll(selector)
	if err != nil {
		return nil
	}
	var values []string
	for _, h := range handles {
		if v, err := h.GetAttribute(attribute); err == nil {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

// ScrollTo nudges an element into view so lazy-loaded content around it
// renders; a miss is ignored.
func (l *Locator) ScrollTo(selector string) {
	handle, err := l.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(5000),
	})
	if err != nil || handle == nil {
		return
	}
	handle.ScrollIntoViewIfNeeded()
	time.Sleep(500 * time.Millisecond)
}
