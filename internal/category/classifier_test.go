package category

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/everywear-ai/crawler/internal/models"
)

func newFakeCompletionServer(t *testing.T, answer string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		resp := map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": answer,
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestClassifierClassify(t *testing.T) {
	logger := slog.Default()

	tests := []struct {
		name     string
		answer   string
		product  string
		expected string
	}{
		{"model answers a plain category", "원피스", "플라워 패턴 미니 드레스", models.CategoryDress},
		{"model answers with extra text", "카테고리: 상의", "오버핏 맨투맨", models.CategoryTop},
		{"model answers nonsense", "분류 불가", "정체불명 상품", models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newFakeCompletionServer(t, tt.answer)
			defer server.Close()

			c := NewClassifier("test-key", "gpt-4o-mini", server.URL+"/v1", logger)
			assert.Equal(t, tt.expected, c.Classify(context.Background(), tt.product))
		})
	}
}

func TestClassifierClassifyDegradesOnFailure(t *testing.T) {
	logger := slog.Default()

	t.Run("empty product name never calls the API", func(t *testing.T) {
		c := NewClassifier("test-key", "", "http://127.0.0.1:0", logger)
		assert.Equal(t, models.CategoryOther, c.Classify(context.Background(), ""))
		assert.Equal(t, models.CategoryOther, c.Classify(context.Background(), models.Unknown))
	})

	t.Run("API error collapses to 기타", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer server.Close()

		c := NewClassifier("test-key", "gpt-4o-mini", server.URL+"/v1", logger)
		assert.Equal(t, models.CategoryOther, c.Classify(context.Background(), "오버핏 셔츠"))
	})
}
