package reviews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/everywear-ai/crawler/internal/models"
	"github.com/everywear-ai/crawler/internal/parser"
)

// DefaultMusinsaReviewAPI is the Musinsa review listing endpoint.
const DefaultMusinsaReviewAPI = "https://goods.musinsa.com/api2/review/v1/view/list"

const musinsaPageSize = 20

func musinsaScrollProfile() scrollProfile {
	return scrollProfile{
		reviewURL:     func(u string) string { return u },
		readySelector: "div[data-review-id]",
		itemSelector:  "div[data-review-id]",
		idAttribute:   "data-review-id",
		parse: func(id, html string) (models.Review, bool) {
			raw, err := parser.ParseMusinsaReviewItem(id, html)
			if err != nil {
				return models.Review{}, false
			}
			return raw.Normalize(), true
		},
	}
}

// Listing response. Nested blocks are frequently null for reviews without
// a survey or profile, hence the pointer fields.
type musinsaListResponse struct {
	Data struct {
		List []musinsaListItem `json:"list"`
		Page struct {
			TotalPages int `json:"totalPages"`
		} `json:"page"`
	} `json:"data"`
}

type musinsaListItem struct {
	No          json.Number `json:"no"`
	Content     string      `json:"content"`
	CreateDate  string      `json:"createDate"`
	Grade       json.Number `json:"grade"`
	GoodsOption string      `json:"goodsOption"`
	LikeCount   int         `json:"likeCount"`
	Images      []struct {
		ImageURL string `json:"imageUrl"`
	} `json:"images"`
	UserProfileInfo *struct {
		ReviewSex  string      `json:"reviewSex"`
		UserHeight json.Number `json:"userHeight"`
		UserWeight json.Number `json:"userWeight"`
	} `json:"userProfileInfo"`
	ReviewSurveySatisfaction *struct {
		Questions []struct {
			Attribute string `json:"attribute"`
			Answers   []struct {
				AnswerShortText string `json:"answerShortText"`
			} `json:"answers"`
		} `json:"questions"`
	} `json:"reviewSurveySatisfaction"`
}

// CollectMusinsaByAPI pages the Musinsa review listing sorted by helpfulness
// until target items are mapped or a page comes back empty. Any non-200 or
// parse failure ends the loop with whatever accumulated.
func (s *Service) CollectMusinsaByAPI(ctx context.Context, goodsNo string, target int) []models.MusinsaReview {
	var all []models.MusinsaReview
	page := 0

	for len(all) < target {
		if err := s.limiter.Wait(ctx); err != nil {
			return all
		}

		resp, ok := s.fetchMusinsaPage(ctx, goodsNo, page)
		if !ok {
			s.limiter.RecordError()
			return all
		}
		s.limiter.RecordSuccess()

		if len(resp.Data.List) == 0 {
			return all
		}

		for _, item := range resp.Data.List {
			if len(all) >= target {
				break
			}
			all = append(all, mapMusinsaItem(goodsNo, item))
		}

		s.logger.Debug("musinsa review page", "page", page, "collected", len(all))

		if page >= resp.Data.Page.TotalPages-1 {
			return all
		}
		page++
	}

	return all
}

func (s *Service) fetchMusinsaPage(ctx context.Context, goodsNo string, page int) (*musinsaListResponse, bool) {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("pageSize", fmt.Sprintf("%d", musinsaPageSize))
	q.Set("goodsNo", goodsNo)
	q.Set("sort", "up_cnt_desc")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.musinsaAPI+"?"+q.Encode(), nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", reviewAPIUserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Referer", "https://www.musinsa.com/products/"+goodsNo)
	req.Header.Set("Origin", "https://www.musinsa.com")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("musinsa review API rejected page", "status", resp.StatusCode, "page", page)
		return nil, false
	}

	var out musinsaListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		s.logger.Warn("musinsa review API returned malformed JSON", "error", err)
		return nil, false
	}
	return &out, true
}

func mapMusinsaItem(goodsNo string, item musinsaListItem) models.MusinsaReview {
	review := models.MusinsaReview{
		ProductNo: goodsNo,
		ReviewNo:  item.No.String(),
		Content:   strings.TrimSpace(item.Content),
		Date:      item.CreateDate,
		Option:    item.GoodsOption,
		UserSex:   "미선택",
		HelpCount: item.LikeCount,
	}

	if g, err := item.Grade.Int64(); err == nil {
		review.Score = int(g)
	}

	if p := item.UserProfileInfo; p != nil {
		if p.ReviewSex != "" {
			review.UserSex = p.ReviewSex
		}
		if h := p.UserHeight.String(); h != "" && h != "0" {
			review.UserHeight = h + "cm"
		}
		if w := p.UserWeight.String(); w != "" && w != "0" {
			review.UserWeight = w + "kg"
		}
	}

	if sat := item.ReviewSurveySatisfaction; sat != nil {
		review.Satisfaction = make(map[string]string, len(sat.Questions))
		for _, q := range sat.Questions {
			if q.Attribute == "" {
				continue
			}
			answer := ""
			if len(q.Answers) > 0 {
				answer = q.Answers[0].AnswerShortText
			}
			review.Satisfaction[q.Attribute] = answer
		}
	}

	for _, img := range item.Images {
		if img.ImageURL == "" {
			continue
		}
		if strings.HasPrefix(img.ImageURL, "http") {
			review.Images = append(review.Images, img.ImageURL)
		} else {
			review.Images = append(review.Images, "https://image.msscdn.net"+img.ImageURL)
		}
	}

	return review
}
