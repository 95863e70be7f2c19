package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everywear-ai/crawler/internal/models"
)

func TestNewProductCrawledPayload(t *testing.T) {
	num := int64(100000005432652)
	star := 4.8
	product := &models.Product{
		ShoppingmallName: "무신사",
		ProductURL:       "https://www.musinsa.com/products/5432652",
		ProductNum:       &num,
		Category:         models.CategoryTop,
		ProductName:      "오버핏 맨투맨",
		BrandName:        "무신사 스탠다드",
		Price:            "39,900원",
		StarPoint:        &star,
	}

	payload := NewProductCrawledPayload(42, product, 20)

	assert.Equal(t, int64(42), payload.ProductID)
	assert.Equal(t, "무신사", payload.ShoppingmallName)
	assert.Equal(t, models.CategoryTop, payload.Category)
	assert.Equal(t, 20, payload.ReviewCount)
	require.NotNil(t, payload.ProductNum)
	assert.Equal(t, num, *payload.ProductNum)
	require.NotNil(t, payload.StarPoint)
	assert.Equal(t, star, *payload.StarPoint)
}

func TestProductCrawledPayloadJSON(t *testing.T) {
	product := models.NewProduct("29CM", "https://product.29cm.co.kr/products/3437237")
	payload := NewProductCrawledPayload(7, product, 0)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "29CM", decoded["shoppingmall_name"])
	assert.NotContains(t, decoded, "product_num", "nil identifiers are omitted")
	assert.NotContains(t, decoded, "star_point")
	assert.Equal(t, float64(0), decoded["review_count"])
}
