package reviews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/everywear-ai/crawler/internal/models"
	"github.com/everywear-ai/crawler/internal/parser"
)

// DefaultCM29ReviewAPI is the 29CM review listing endpoint.
const DefaultCM29ReviewAPI = "https://review-api.29cm.co.kr/api/v4/reviews"

const (
	cm29PageSize     = 20
	cm29ImageBaseURL = "https://img.29cm.co.kr"
)

func cm29ScrollProfile() scrollProfile {
	return scrollProfile{
		reviewURL:     func(u string) string { return u },
		readySelector: "li[data-review-id], div[data-review-id]",
		itemSelector:  "li[data-review-id], div[data-review-id]",
		idAttribute:   "data-review-id",
		prepare: func(page playwright.Page) {
			// Reviews sit below the fold; a half-height scroll pulls the
			// section into the render window.
			page.Evaluate("window.scrollTo(0, document.body.scrollHeight / 2)")
		},
		parse: func(id, html string) (models.Review, bool) {
			raw, err := parser.ParseCM29ReviewItem(id, html)
			if err != nil {
				return models.Review{}, false
			}
			return raw.Normalize(), true
		},
	}
}

type cm29ListResponse struct {
	Data struct {
		Results []cm29ListItem `json:"results"`
	} `json:"data"`
}

type cm29ListItem struct {
	ItemReviewNo    json.Number `json:"itemReviewNo"`
	UserID          string      `json:"userId"`
	Point           json.Number `json:"point"`
	Contents        string      `json:"contents"`
	OptionValue     []string    `json:"optionValue"`
	InsertTimestamp string      `json:"insertTimestamp"`
	UserSize        []string    `json:"userSize"`
	UploadFiles     []struct {
		URL string `json:"url"`
	} `json:"uploadFiles"`
	IsGift string `json:"isGift"`
}

// CollectCM29ByAPI pages the 29CM review listing sorted by BEST until
// target items are mapped or a page comes back empty. Failures end the loop
// with the partial result.
func (s *Service) CollectCM29ByAPI(ctx context.Context, itemID string, target int) []models.CM29Review {
	var all []models.CM29Review
	page := 0

	for len(all) < target {
		if err := s.limiter.Wait(ctx); err != nil {
			return all
		}

		resp, ok := s.fetchCM29Page(ctx, itemID, page)
		if !ok {
			s.limiter.RecordError()
			return all
		}
		s.limiter.RecordSuccess()

		if len(resp.Data.Results) == 0 {
			return all
		}

		for _, item := range resp.Data.Results {
			if len(all) >= target {
				break
			}
			all = append(all, mapCM29Item(itemID, item))
		}

		s.logger.Debug("29cm review page", "page", page, "collected", len(all))
		page++
	}

	return all
}

func (s *Service) fetchCM29Page(ctx context.Context, itemID string, page int) (*cm29ListResponse, bool) {
	q := url.Values{}
	q.Set("itemId", itemID)
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("size", fmt.Sprintf("%d", cm29PageSize))
	q.Set("sort", "BEST")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cm29API+"?"+q.Encode(), nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", reviewAPIUserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Referer", "https://www.29cm.co.kr/")
	req.Header.Set("Origin", "https://www.29cm.co.kr")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("29cm review API rejected page", "status", resp.StatusCode, "page", page)
		return nil, false
	}

	var out cm29ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		s.logger.Warn("29cm review API returned malformed JSON", "error", err)
		return nil, false
	}
	return &out, true
}

func mapCM29Item(itemID string, item cm29ListItem) models.CM29Review {
	review := models.CM29Review{
		ItemID:   itemID,
		ReviewID: item.ItemReviewNo.String(),
		UserID:   item.UserID,
		Content:  strings.TrimSpace(item.Contents),
		Option:   strings.Join(item.OptionValue, ", "),
		Date:     item.InsertTimestamp,
		IsGift:   item.IsGift == "T",
	}

	if p, err := item.Point.Int64(); err == nil {
		review.Rating = int(p)
	}

	if len(item.UserSize) > 0 {
		review.Height = item.UserSize[0]
	}
	if len(item.UserSize) > 1 {
		review.Weight = item.UserSize[1]
	}

	for _, f := range item.UploadFiles {
		if f.URL != "" {
			review.Images = append(review.Images, cm29ImageBaseURL+f.URL)
		}
	}

	return review
}
