package scraper

import (
	"context"

	"github.com/everywear-ai/crawler/internal/browser"
	"github.com/everywear-ai/crawler/internal/malls"
	"github.com/everywear-ai/crawler/internal/models"
)

// Zigzag ships no category breadcrumb, so classification happens on the
// extracted product name instead of the DOM.
func (s *Service) extractZigzag(ctx context.Context, sess *browser.Session, loc *Locator, profile *malls.Profile, product *models.Product) {
	product.ProductURL = sess.CurrentURL()
	product.ProductNum = s.resolver.Resolve(ctx, profile, product.ProductURL)

	if img, ok := loc.Locate(
		Attr("xpath=//picture/img[1]", "src"),
		Attr("xpath=//*[@id='__next']/div[1]/div[1]/div/div[1]/div[1]/div/div/div[1]/div[1]/div/div/picture/img", "src"),
	); ok {
		product.ProductImgURL = models.AbsoluteImageURL(img)
	}

	// The detail column shifts by one slot depending on promotional
	// banners, hence the two absolute candidates per field.
	if name, ok := loc.Locate(
		Text("xpath=//*[@id='__next']/div[1]/div[1]/div/div[4]/h1"),
		Text("xpath=//*[@id='__next']/div[1]/div[1]/div/div[3]/h1"),
		Text("xpath=//h1[contains(@class, 'product') or contains(@class, 'title')] | //div[contains(@class, 'product')]//h1"),
	); ok {
		product.ProductName = name
	}

	if brand, ok := loc.Locate(
		Text("xpath=//*[@id='__next']/div[1]/div[1]/div/div[2]/button[1]/span"),
		Text("xpath=//button[contains(@class, 'brand') or contains(@class, 'Brand')]/span | //div[contains(@class, 'brand')]//span[1]"),
	); ok {
		product.BrandName = brand
	}

	if price, ok := loc.Locate(
		Text("xpath=//*[@id='__next']/div[1]/div[1]/div/div[5]/div/div[1]/div[1]/div[2]/div[1]"),
		Text("xpath=//*[@id='__next']/div[1]/div[1]/div/div[6]/div/div[1]/div[1]/div[2]/div[1]"),
		Text("xpath=//div[contains(@class, 'price')]//div[contains(text(), ',') or contains(text(), '원')] | //div[contains(@class, 'Price')]//div[1]"),
	); ok {
		product.Price = models.NormalizePrice(price)
	}

	if star, ok := loc.Locate(
		Text("xpath=//*[@id='__next']/div[1]/div[1]/div/div[4]/div"),
		Text("xpath=//*[@id='__next']/div[1]/div[1]/div/div[5]/div"),
		Text("xpath=//div[contains(@class, 'rating') or contains(@class, 'star') or contains(@class, 'review')]//div[contains(text(), '.') or contains(text(), '점')]"),
	); ok {
		product.StarPoint = parseStarText(star)
	}

	if product.ProductName != models.Unknown && s.classifier != nil {
		product.Category = s.classifier.Classify(ctx, product.ProductName)
	}
}
