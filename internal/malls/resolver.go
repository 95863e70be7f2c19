package malls

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// canonicalWidth is the total digit budget for cross-mall identifiers: one
// prefix digit plus a zero-padded mall-local product number.
const canonicalWidth = 15

// Resolver extracts mall-local product numbers from product URLs, following
// short-link redirects when needed, and encodes them into cross-mall unique
// canonical identifiers.
type Resolver struct {
	client *http.Client
	logger *slog.Logger
}

// NewResolver creates a resolver with a bounded redirect-following client.
func NewResolver(timeout time.Duration, logger *slog.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Resolver{
		client: &http.Client{Timeout: timeout},
		logger: logger.With("component", "id_resolver"),
	}
}

// ProductNo extracts the mall-local product number from a URL. Short-link
// URLs are resolved to their final destination first. Returns "" when no
// number can be found; callers treat that as id unknown, not as an error.
func (r *Resolver) ProductNo(ctx context.Context, p *Profile, rawURL string) string {
	if r.isShortLink(p, rawURL) {
		final, err := r.resolveRedirect(ctx, rawURL)
		if err != nil {
			r.logger.Warn("short-link resolution failed", "mall", p.Mall, "url", rawURL, "error", err)
			return ""
		}
		rawURL = final
	}
	return ExtractProductNo(p, rawURL)
}

// ExtractProductNo applies the profile's path pattern (and query-parameter
// fallback) to an already-final URL.
func ExtractProductNo(p *Profile, rawURL string) string {
	if m := p.IDPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	if p.IDQueryParam != "" {
		if u, err := url.Parse(rawURL); err == nil {
			if v := u.Query().Get(p.IDQueryParam); v != "" {
				return v
			}
		}
	}
	return ""
}

// CanonicalID encodes a mall-local product number into the fixed-width
// prefixed form so identifiers from different malls never collide. If the
// local number is too long for the digit budget it is returned raw and
// unprefixed; the source treats this as acceptable rather than an error.
func CanonicalID(p *Profile, productNo string) (int64, error) {
	if productNo == "" {
		return 0, fmt.Errorf("empty product number")
	}
	zeros := canonicalWidth - len(p.CanonicalPrefix) - len(productNo)
	if zeros < 0 {
		return strconv.ParseInt(productNo, 10, 64)
	}
	return strconv.ParseInt(p.CanonicalPrefix+strings.Repeat("0", zeros)+productNo, 10, 64)
}

// Resolve combines extraction and encoding: URL in, canonical id out.
// A nil result means the id is unknown; the rest of the record still stands.
func (r *Resolver) Resolve(ctx context.Context, p *Profile, rawURL string) *int64 {
	no := r.ProductNo(ctx, p, rawURL)
	if no == "" {
		return nil
	}
	id, err := CanonicalID(p, no)
	if err != nil {
		r.logger.Warn("canonical id encoding failed", "mall", p.Mall, "product_no", no, "error", err)
		return nil
	}
	return &id
}

func (r *Resolver) isShortLink(p *Profile, rawURL string) bool {
	for _, domain := range p.ShortLinkDomains {
		if strings.Contains(rawURL, domain) {
			return true
		}
	}
	return false
}

// resolveRedirect follows a short link to its final URL. HEAD is preferred;
// some link services only answer GET.
func (r *Resolver) resolveRedirect(ctx context.Context, rawURL string) (string, error) {
	for _, method := range []string{http.MethodHead, http.MethodGet} {
		req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
		if err != nil {
			return "", err
		}
		resp, err := r.client.Do(req)
		if err != nil {
			continue
		}
		final := resp.Request.URL.String()
		resp.Body.Close()
		if resp.StatusCode < 400 {
			return final, nil
		}
	}
	return "", fmt.Errorf("could not resolve redirect for %s", rawURL)
}
