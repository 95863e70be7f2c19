package models

import (
	"time"
)

// Unknown is the sentinel for string fields the extractor could not resolve.
// A missing field never aborts a record; it degrades to this value.
const Unknown = "-"

// Canonical categories shared by all four malls.
const (
	CategoryTop    = "상의"
	CategoryBottom = "하의"
	CategoryOuter  = "아우터"
	CategoryDress  = "원피스"
	CategoryOther  = "기타"
)

// Product is the normalized product record returned by every mall extractor.
// String fields are never empty: a real value or Unknown. Numeric fields use
// nil when unavailable.
type Product struct {
	ShoppingmallName string    `json:"shoppingmall_name"`
	ProductURL       string    `json:"product_url"`
	ProductNum       *int64    `json:"product_num"`
	Category         string    `json:"category"`
	ProductImgURL    string    `json:"product_img_url"`
	ProductName      string    `json:"product_name"`
	BrandName        string    `json:"brand_name"`
	Price            string    `json:"price"`
	StarPoint        *float64  `json:"star_point"`
	AIReview         *string   `json:"ai_review"`
	ScrapedAt        time.Time `json:"scraped_at"`
}

// NewProduct returns a record pre-filled with sentinels so that extraction
// failures leave every field in a valid state.
func NewProduct(mallName, url string) *Product {
	return &Product{
		ShoppingmallName: mallName,
		ProductURL:       url,
		Category:         Unknown,
		ProductImgURL:    Unknown,
		ProductName:      Unknown,
		BrandName:        Unknown,
		Price:            Unknown,
		ScrapedAt:        time.Now(),
	}
}

// PriceNumeric strips the price string down to its digits for storage.
// Returns 0 for the sentinel.
func (p *Product) PriceNumeric() int64 {
	if p.Price == Unknown {
		return 0
	}
	var n int64
	for _, r := range p.Price {
		if r >= '0' && r <= '9' {
			n = n*10 + int64(r-'0')
		}
	}
	return n
}
