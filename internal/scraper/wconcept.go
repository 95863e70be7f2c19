package scraper

import (
	"context"

	"github.com/everywear-ai/crawler/internal/browser"
	"github.com/everywear-ai/crawler/internal/category"
	"github.com/everywear-ai/crawler/internal/malls"
	"github.com/everywear-ai/crawler/internal/models"
)

func (s *Service) extractWConcept(ctx context.Context, sess *browser.Session, loc *Locator, profile *malls.Profile, product *models.Product) {
	product.ProductURL = sess.CurrentURL()
	product.ProductNum = s.resolver.Resolve(ctx, profile, product.ProductURL)

	if label, ok := loc.Locate(
		Text("#cateDepth3 button"),
		Text("xpath=//div[@id='cateDepth3']//button | //button[contains(@class, 'category') or contains(@class, 'cate')]"),
	); ok {
		product.Category = category.FromWConcept(label)
	} else {
		product.Category = models.CategoryOther
	}

	// The hero image may still be a lazy placeholder, so data-src is the
	// second pass over the same candidates.
	imgCandidates := []Candidate{
		Attr("#img_01", "src"),
		Attr("xpath=//img[@id='img_01'] | //div[@id='img_01']//img[1] | //img[contains(@class, 'main') or contains(@class, 'product')][1]", "src"),
	}
	if img, ok := loc.Locate(imgCandidates...); ok {
		product.ProductImgURL = models.AbsoluteImageURL(img)
	} else {
		for i := range imgCandidates {
			imgCandidates[i].Attribute = "data-src"
		}
		if img, ok := loc.Locate(imgCandidates...); ok {
			product.ProductImgURL = models.AbsoluteImageURL(img)
		}
	}

	if name, ok := loc.Locate(
		Text("xpath=//*[@id='frmproduct']/div[1]/div/h3"),
		Text("xpath=//form[@id='frmproduct']//div[1]//h3 | //div[contains(@class, 'product')]//h3[1]"),
	); ok {
		product.ProductName = name
	}

	if brand, ok := loc.Locate(
		Text("xpath=//*[@id='frmproduct']/div[1]/h2/a"),
		Text("xpath=//form[@id='frmproduct']//h2//a | //div[contains(@class, 'product')]//h2//a[1]"),
	); ok {
		product.BrandName = brand
	}

	// Discounted products render an extra dd for the original price, which
	// shifts the selling price to the second slot.
	if price, ok := loc.Locate(
		Text("xpath=//*[@id='frmproduct']/div[3]/dl/dd[2]/em"),
		Text("xpath=//*[@id='frmproduct']/div[3]/dl/dd/em"),
		Text("xpath=//form[@id='frmproduct']//div[3]//dl//dd//em | //div[contains(@class, 'price')]//em | //dl[contains(@class, 'price')]//em"),
	); ok {
		product.Price = models.NormalizePrice(price)
	}

	if star, ok := loc.Locate(
		Text("xpath=//*[@id='frmproduct']/div[2]/p[2]"),
		Text("xpath=//form[@id='frmproduct']//div[2]//p[2] | //div[contains(@class, 'rating') or contains(@class, 'star') or contains(@class, 'review')]//p"),
	); ok {
		product.StarPoint = parseStarText(star)
	}
}
