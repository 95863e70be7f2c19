package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/everywear-ai/crawler/internal/models"
)

const classifyTimeout = 30 * time.Second

var validCategories = []string{
	models.CategoryTop,
	models.CategoryBottom,
	models.CategoryOuter,
	models.CategoryDress,
	models.CategoryOther,
}

const promptTemplate = `다음 상품명을 보고 이 상품이 다음 다섯 가지 카테고리 중 어느 것에 해당하는지 분류해주세요.

카테고리: 상의, 하의, 아우터, 원피스, 기타

상품명: %s

위 상품명을 분석하여 정확히 하나의 카테고리만 선택하여 응답해주세요.
응답 형식은 반드시 다음 중 하나만 출력하세요: 상의, 하의, 아우터, 원피스, 기타
다른 설명이나 추가 텍스트 없이 카테고리 이름만 출력해주세요.`

// Classifier infers a canonical category from a product name through a
// text-completion call. Used for Zigzag, whose DOM carries no usable
// category. The call is single-shot and timeout-bounded; every failure mode
// collapses to 기타 so classification never breaks an extraction.
type Classifier struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewClassifier builds a classifier for the given API key. An optional
// baseURL overrides the API endpoint (tests use this).
func NewClassifier(apiKey, model, baseURL string, logger *slog.Logger) *Classifier {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Classifier{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger.With("component", "category_classifier"),
	}
}

// Classify returns one of the five canonical categories for a product name.
func (c *Classifier) Classify(ctx context.Context, productName string) string {
	if productName == "" || productName == models.Unknown {
		return models.CategoryOther
	}

	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(promptTemplate, productName),
			},
		},
	})
	if err != nil {
		c.logger.Warn("classification call failed", "error", err)
		return models.CategoryOther
	}
	if len(resp.Choices) == 0 {
		c.logger.Warn("classification returned no choices")
		return models.CategoryOther
	}

	return ParseCategoryResponse(resp.Choices[0].Message.Content)
}

// ParseCategoryResponse validates a model response against the allowed
// label set: substring match first, then a whitespace-stripped exact match.
// Anything unparseable collapses to 기타.
func ParseCategoryResponse(text string) string {
	text = strings.TrimSpace(text)
	for _, cat := range validCategories {
		if strings.Contains(text, cat) {
			return cat
		}
	}
	clean := strings.NewReplacer(" ", "", "\n", "").Replace(text)
	for _, cat := range validCategories {
		if clean == cat {
			return cat
		}
	}
	return models.CategoryOther
}
