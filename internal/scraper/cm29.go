package scraper

import (
	"context"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/everywear-ai/crawler/internal/browser"
	"github.com/everywear-ai/crawler/internal/category"
	"github.com/everywear-ai/crawler/internal/malls"
	"github.com/everywear-ai/crawler/internal/models"
	"github.com/everywear-ai/crawler/internal/parser"
)

const (
	cm29CategorySel    = "xpath=/html/body/main/div/div[1]/div/ul/li[2]/div/div[1]/span"
	cm29SubCategorySel = "xpath=/html/body/main/div/div[1]/div/ul/li[3]/div/div[1]/span"
	cm29StarWidgetSel  = "div.inline-flex.items-center"
)

// 29CM lazy-renders most of the detail column in headless mode; the
// extractor scrolls before each keyed read to force it in.
func (s *Service) extractCM29(ctx context.Context, sess *browser.Session, loc *Locator, profile *malls.Profile, product *models.Product) {
	page := sess.Page()
	page.Evaluate("window.scrollTo(0, 0)")
	time.Sleep(scrollSettleDelay)
	page.Evaluate("window.scrollTo(0, 300)")
	time.Sleep(time.Second)

	// Short links land here already expanded, so the id comes off the
	// rendered location rather than the request URL.
	product.ProductURL = sess.CurrentURL()
	product.ProductNum = s.resolver.Resolve(ctx, profile, product.ProductURL)

	loc.ScrollTo(cm29CategorySel)
	if raw, ok := loc.Locate(
		Text(cm29CategorySel),
		Text("xpath=//main//ul//li[2]//span[1] | //nav//span[contains(text(), '/')]"),
	); ok {
		sub := ""
		if category.CM29NeedsSubLabel(raw) {
			if v, subOK := loc.Locate(Text(cm29SubCategorySel)); subOK {
				sub = v
			}
		}
		product.Category = category.FromCM29(raw, sub)
	} else {
		product.Category = models.CategoryOther
	}

	if img, ok := loc.Locate(
		Attr("xpath=//main//section//img[1] | //div[contains(@class, 'product')]//img[1] | //div[contains(@class, 'image')]//img[1]", "src"),
		Attr("xpath=/html/body/main/div/div[2]/div[2]/div[1]/section/div/div/div[1]/div[1]/img", "src"),
	); ok {
		product.ProductImgURL = models.AbsoluteImageURL(img)
	}

	if name, ok := loc.Locate(
		Text("#pdp_product_name"),
		Text("xpath=//h1[contains(@class, 'product')] | //div[contains(@class, 'product-name')] | //h1"),
	); ok {
		product.ProductName = name
	}

	loc.ScrollTo("xpath=/html/body/main/div/div[2]/div[1]/div/div/a/div/div/h3/span")
	if brand, ok := loc.Locate(
		Text("xpath=/html/body/main/div/div[2]/div[1]/div/div/a/div/div/h3/span"),
		Text("xpath=//main//h3//span | //a[contains(@href, 'brand')]//span | //div[contains(@class, 'brand')]//span"),
	); ok {
		product.BrandName = brand
	}

	if price, ok := loc.Locate(
		Text("#pdp_product_price"),
		Text("xpath=//div[contains(@class, 'price')]//span | //span[contains(@class, 'price')] | //div[contains(text(), ',') and contains(text(), '원')]"),
	); ok {
		product.Price = models.NormalizePrice(price)
	}

	product.StarPoint = s.cm29StarPoint(page)
}

// cm29StarPoint reads the five-star widget, whose score is encoded as the
// CSS fill width of each star overlay.
func (s *Service) cm29StarPoint(page playwright.Page) *float64 {
	handle, err := page.WaitForSelector(cm29StarWidgetSel, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(10000),
	})
	if err != nil || handle == nil {
		return nil
	}
	html, err := handle.InnerHTML()
	if err != nil {
		return nil
	}
	widths := parser.StarWidthsFromHTML(html)
	return parser.ScoreFromWidths(widths)
}
