package reviews

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/everywear-ai/crawler/internal/browser"
	"github.com/everywear-ai/crawler/internal/malls"
	"github.com/everywear-ai/crawler/internal/models"
	"github.com/everywear-ai/crawler/internal/ratelimit"
)

// DefaultTargetCount is how many reviews a collection run gathers when the
// caller does not say otherwise.
const DefaultTargetCount = 20

const reviewAPIUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ErrNoProductNumber means the product URL carries no usable product number,
// so the listing API cannot be addressed. Callers treat it as bad input.
var ErrNoProductNumber = errors.New("no product number in url")

// Service collects unified review records from all four malls, choosing the
// right strategy per mall: virtualized feed scrolling, listing API paging,
// or numbered page walking.
type Service struct {
	browserOpts *browser.Options
	resolver    *malls.Resolver
	client      *http.Client
	limiter     *ratelimit.AdaptiveRateLimiter
	musinsaAPI  string
	cm29API     string
	logger      *slog.Logger
}

func NewService(browserOpts *browser.Options, resolver *malls.Resolver, logger *slog.Logger) *Service {
	if browserOpts == nil {
		browserOpts = browser.DefaultOptions()
	}
	return &Service{
		browserOpts: browserOpts,
		resolver:    resolver,
		client:      &http.Client{Timeout: 30 * time.Second},
		limiter:     ratelimit.NewAdaptiveRateLimiter(400*time.Millisecond, 800*time.Millisecond),
		musinsaAPI:  DefaultMusinsaReviewAPI,
		cm29API:     DefaultCM29ReviewAPI,
		logger:      logger.With("component", "review_collector"),
	}
}

// SetRateLimit replaces the listing API rate limiter bounds.
func (s *Service) SetRateLimit(min, max time.Duration) {
	s.limiter = ratelimit.NewAdaptiveRateLimiter(min, max)
}

// Collect gathers up to target unified reviews for one product. Fewer than
// target is a valid outcome, not an error; an error means the collection
// could not run at all.
func (s *Service) Collect(ctx context.Context, mall malls.Mall, productURL string, target int) ([]models.Review, error) {
	profile, err := malls.Lookup(mall)
	if err != nil {
		return nil, err
	}
	if target <= 0 {
		target = DefaultTargetCount
	}

	s.logger.Info("collecting reviews", "mall", mall, "url", productURL, "target", target)

	switch mall {
	case malls.Musinsa:
		goodsNo := s.resolver.ProductNo(ctx, profile, productURL)
		if goodsNo == "" {
			return nil, fmt.Errorf("%w: %s", ErrNoProductNumber, productURL)
		}
		raws := s.CollectMusinsaByAPI(ctx, goodsNo, target)
		if len(raws) == 0 {
			// Listing API occasionally rejects unauthenticated paging; the
			// feed scroll covers that case.
			return s.collectByScroll(ctx, musinsaScrollProfile(), productURL, target)
		}
		return normalizeMusinsa(raws), nil

	case malls.Zigzag:
		return s.collectByScroll(ctx, zigzagScrollProfile(), productURL, target)

	case malls.CM29:
		collected, err := s.collectByScroll(ctx, cm29ScrollProfile(), productURL, target)
		if err == nil && len(collected) == 0 {
			if itemID := malls.ExtractProductNo(profile, productURL); itemID != "" {
				return normalizeCM29(s.CollectCM29ByAPI(ctx, itemID, target)), nil
			}
		}
		return collected, err

	case malls.WConcept:
		return s.collectWConcept(ctx, productURL, target)
	}

	return nil, fmt.Errorf("unsupported mall %q", mall)
}

func normalizeMusinsa(raws []models.MusinsaReview) []models.Review {
	out := make([]models.Review, 0, len(raws))
	for _, r := range raws {
		review := r.Normalize()
		if review.Content == "" {
			continue
		}
		out = append(out, review)
	}
	return out
}

func normalizeCM29(raws []models.CM29Review) []models.Review {
	out := make([]models.Review, 0, len(raws))
	for _, r := range raws {
		review := r.Normalize()
		if review.Content == "" {
			continue
		}
		out = append(out, review)
	}
	return out
}
