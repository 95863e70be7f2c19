package scraper

import (
	"context"

	"github.com/playwright-community/playwright-go"

	"github.com/everywear-ai/crawler/internal/browser"
	"github.com/everywear-ai/crawler/internal/category"
	"github.com/everywear-ai/crawler/internal/malls"
	"github.com/everywear-ai/crawler/internal/models"
)

// Musinsa renders breadcrumb nodes late in headless mode, so the category
// probe gets its own longer wait on top of the readiness gate.
const musinsaCategoryWait = 15000.0

func (s *Service) extractMusinsa(ctx context.Context, sess *browser.Session, loc *Locator, profile *malls.Profile, product *models.Product) {
	product.ProductURL = sess.CurrentURL()
	product.ProductNum = s.resolver.Resolve(ctx, profile, product.ProductURL)

	// Breadcrumbs carry a data-category-name attribute each; the mapping
	// picks the highest-priority garment label among them.
	sess.Page().WaitForSelector("[data-category-name]", playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(musinsaCategoryWait),
	})
	labels := loc.AllMatchingAttr("[data-category-name]", "data-category-name")
	product.Category = category.FromMusinsaLabels(labels)

	if img, ok := loc.Locate(
		Attr("xpath=//*[@id='root']/div[1]/div[1]/div[1]/div[1]/div[1]/div/div[1]/img", "src"),
		Attr("#root img[src*='image.msscdn.net']", "src"),
	); ok {
		product.ProductImgURL = models.AbsoluteImageURL(img)
	}

	// Typography spans repeat through the page; the product name and price
	// are the last non-empty match of their style class.
	if name, ok := loc.LastMatchingText("span[data-mds='Typography'].text-title_18px_med.font-pretendard"); ok {
		product.ProductName = name
	}

	if brand, ok := loc.Locate(
		Text("xpath=//*[@id='root']/div[1]/div[1]/div[5]/div[2]/div/div[1]/div/span"),
		Text("a[href*='/brand/'] span"),
	); ok {
		product.BrandName = brand
	}

	if price, ok := loc.LastMatchingText("span[data-mds='Typography'].text-title_18px_semi.font-pretendard"); ok {
		product.Price = models.NormalizePrice(price)
	}

	// The rating shares its style class with unrelated counters; the first
	// purely numeric value inside the 0-5 range wins.
	for _, text := range loc.AllMatchingText("span[data-mds='Typography'].text-body_13px_med.font-pretendard") {
		if v := parseStarText(text); v != nil {
			product.StarPoint = v
			break
		}
	}
}
