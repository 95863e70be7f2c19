package malls

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Mall
		hasError bool
	}{
		{"musinsa", Musinsa, false},
		{"zigzag", Zigzag, false},
		{"29cm", CM29, false},
		{"wconcept", WConcept, false},
		{"gmarket", "", true},
		{"", "", true},
		{"MUSINSA", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mall, err := Parse(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mall)
		})
	}
}

func TestExtractProductNo(t *testing.T) {
	tests := []struct {
		name     string
		mall     Mall
		url      string
		expected string
	}{
		{
			name:     "musinsa product path",
			mall:     Musinsa,
			url:      "https://www.musinsa.com/products/5432652",
			expected: "5432652",
		},
		{
			name:     "musinsa goodsNo query fallback",
			mall:     Musinsa,
			url:      "https://www.musinsa.com/app/goods/detail?goodsNo=4567890",
			expected: "4567890",
		},
		{
			name:     "zigzag catalog path",
			mall:     Zigzag,
			url:      "https://zigzag.kr/catalog/products/113272923",
			expected: "113272923",
		},
		{
			name:     "29cm product path",
			mall:     CM29,
			url:      "https://product.29cm.co.kr/products/3437237",
			expected: "3437237",
		},
		{
			name:     "wconcept lowercase product path",
			mall:     WConcept,
			url:      "https://www.wconcept.co.kr/product/306095341",
			expected: "306095341",
		},
		{
			name:     "wconcept uppercase product path",
			mall:     WConcept,
			url:      "https://www.wconcept.co.kr/Product/306095341",
			expected: "306095341",
		},
		{
			name:     "no product number",
			mall:     Musinsa,
			url:      "https://www.musinsa.com/brand/musinsastandard",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := Lookup(tt.mall)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ExtractProductNo(profile, tt.url))
		})
	}
}

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		name      string
		mall      Mall
		productNo string
		expected  int64
	}{
		{
			name:      "musinsa gets prefix 1",
			mall:      Musinsa,
			productNo: "5432652",
			expected:  100000005432652,
		},
		{
			name:      "zigzag gets prefix 2",
			mall:      Zigzag,
			productNo: "113272923",
			expected:  200000113272923,
		},
		{
			name:      "29cm gets prefix 3",
			mall:      CM29,
			productNo: "3437237",
			expected:  300000003437237,
		},
		{
			name:      "wconcept gets prefix 4",
			mall:      WConcept,
			productNo: "306095341",
			expected:  400000306095341,
		},
		{
			name:      "overflowing number kept raw",
			mall:      Musinsa,
			productNo: "123456789012345",
			expected:  123456789012345,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := Lookup(tt.mall)
			require.NoError(t, err)
			id, err := CanonicalID(profile, tt.productNo)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}

	t.Run("same local number never collides across malls", func(t *testing.T) {
		seen := map[int64]Mall{}
		for _, mall := range All() {
			profile, err := Lookup(mall)
			require.NoError(t, err)
			id, err := CanonicalID(profile, "12345")
			require.NoError(t, err)
			prev, dup := seen[id]
			assert.False(t, dup, "collision between %s and %s", prev, mall)
			seen[id] = mall
		}
	})

	t.Run("empty product number is an error", func(t *testing.T) {
		profile, err := Lookup(Musinsa)
		require.NoError(t, err)
		_, err = CanonicalID(profile, "")
		assert.Error(t, err)
	})
}

func TestResolverShortLink(t *testing.T) {
	logger := slog.Default()

	t.Run("short link resolved to final product url", func(t *testing.T) {
		final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer final.Close()

		short := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, final.URL+"/products/5432652", http.StatusFound)
		}))
		defer short.Close()

		profile := &Profile{
			Mall:             Musinsa,
			IDPattern:        regexpFor(t, Musinsa),
			ShortLinkDomains: []string{"127.0.0.1"},
			CanonicalPrefix:  "1",
		}

		r := NewResolver(5*time.Second, logger)
		no := r.ProductNo(context.Background(), profile, short.URL+"/go")
		assert.Equal(t, "5432652", no)
	})

	t.Run("direct url skips redirect resolution", func(t *testing.T) {
		profile, err := Lookup(Zigzag)
		require.NoError(t, err)

		r := NewResolver(5*time.Second, logger)
		no := r.ProductNo(context.Background(), profile, "https://zigzag.kr/catalog/products/99")
		assert.Equal(t, "99", no)
	})

	t.Run("unresolvable short link yields empty", func(t *testing.T) {
		profile := &Profile{
			Mall:             Musinsa,
			IDPattern:        regexpFor(t, Musinsa),
			ShortLinkDomains: []string{"127.0.0.1"},
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		r := NewResolver(2*time.Second, logger)
		assert.Empty(t, r.ProductNo(context.Background(), profile, server.URL+"/dead"))
	})
}

func regexpFor(t *testing.T, mall Mall) *regexp.Regexp {
	t.Helper()
	profile, err := Lookup(mall)
	require.NoError(t, err)
	return profile.IDPattern
}
