package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/everywear-ai/crawler/internal/browser"
	"github.com/everywear-ai/crawler/internal/category"
	"github.com/everywear-ai/crawler/internal/malls"
	"github.com/everywear-ai/crawler/internal/models"
)

// Settle delays for content that keeps rendering after the readiness gate.
// These are a documented last resort for known lazy loading, not the
// primary synchronization mechanism; the readiness selector is.
const (
	pageSettleDelay   = 2 * time.Second
	scrollSettleDelay = 500 * time.Millisecond
)

var numericTextRe = regexp.MustCompile(`^\d+\.?\d*$`)

// Service extracts normalized product records from the four supported
// malls. Every call launches its own rendering session and tears it down on
// every exit path.
type Service struct {
	browserOpts    *browser.Options
	resolver       *malls.Resolver
	classifier     *category.Classifier
	locatorTimeout time.Duration
	logger         *slog.Logger
}

// NewService wires the extractor with its collaborators.
func NewService(opts *browser.Options, resolver *malls.Resolver, classifier *category.Classifier, logger *slog.Logger) *Service {
	if opts == nil {
		opts = browser.DefaultOptions()
	}
	return &Service{
		browserOpts:    opts,
		resolver:       resolver,
		classifier:     classifier,
		locatorTimeout: 10 * time.Second,
		logger:         logger.With("component", "product_scraper"),
	}
}

// ExtractProduct scrapes one product page. Field misses degrade to
// sentinels; only a session that cannot launch or navigate at all
// propagates an error.
func (s *Service) ExtractProduct(ctx context.Context, mall malls.Mall, url string) (*models.Product, error) {
	profile, err := malls.Lookup(mall)
	if err != nil {
		return nil, err
	}

	s.logger.Info("extracting product", "mall", mall, "url", url)

	sess, err := browser.NewSession(s.browserOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start rendering session: %w", err)
	}
	defer sess.Close()

	if err := sess.Navigate(url); err != nil {
		return nil, err
	}

	product := models.NewProduct(profile.DisplayName, url)
	loc := NewLocator(sess.Page(), s.locatorTimeout, s.logger)

	// Readiness gate. A timeout is not fatal: the record is returned with
	// sentinels and whatever URL/id could still be salvaged.
	if _, err := sess.Page().WaitForSelector(profile.ReadinessSelector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(s.locatorTimeout.Milliseconds())),
	}); err != nil {
		s.logger.Warn("page readiness timeout", "mall", mall, "url", url)
		product.ProductURL = sess.CurrentURL()
		product.ProductNum = s.resolver.Resolve(ctx, profile, product.ProductURL)
		return product, nil
	}

	time.Sleep(pageSettleDelay)

	switch mall {
	case malls.Musinsa:
		s.extractMusinsa(ctx, sess, loc, profile, product)
	case malls.Zigzag:
		s.extractZigzag(ctx, sess, loc, profile, product)
	case malls.CM29:
		s.extractCM29(ctx, sess, loc, profile, product)
	case malls.WConcept:
		s.extractWConcept(ctx, sess, loc, profile, product)
	}

	s.logger.Info("extracted product",
		"mall", mall,
		"name", product.ProductName,
		"category", product.Category,
		"hasStarPoint", product.StarPoint != nil,
	)
	return product, nil
}

// parseStarText converts a rating string to a float validated to the 0–5
// range. Anything else is unavailable.
func parseStarText(text string) *float64 {
	if !numericTextRe.MatchString(text) {
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v < 0 || v > 5 {
		return nil
	}
	return &v
}
