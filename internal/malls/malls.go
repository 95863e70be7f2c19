package malls

import (
	"fmt"
	"regexp"
)

// Mall identifies one of the supported shopping malls.
type Mall string

const (
	Musinsa  Mall = "musinsa"
	Zigzag   Mall = "zigzag"
	CM29     Mall = "29cm"
	WConcept Mall = "wconcept"
)

// Profile carries everything that differs between malls: display name,
// page-readiness selector, product-id pattern, short-link domains, and the
// canonical id prefix. Extraction code consults the profile instead of
// hard-coding per-site strings.
type Profile struct {
	Mall              Mall
	DisplayName       string
	ReadinessSelector string
	IDPattern         *regexp.Regexp
	IDQueryParam      string
	ShortLinkDomains  []string
	CanonicalPrefix   string
}

var profiles = map[Mall]*Profile{
	Musinsa: {
		Mall:              Musinsa,
		DisplayName:       "무신사",
		ReadinessSelector: "#root",
		IDPattern:         regexp.MustCompile(`/products/(\d+)`),
		IDQueryParam:      "goodsNo",
		ShortLinkDomains:  []string{"onelink.me", "musinsa.link"},
		CanonicalPrefix:   "1",
	},
	Zigzag: {
		Mall:              Zigzag,
		DisplayName:       "지그재그",
		ReadinessSelector: "#__next",
		IDPattern:         regexp.MustCompile(`/catalog/products/(\d+)`),
		CanonicalPrefix:   "2",
	},
	CM29: {
		Mall:              CM29,
		DisplayName:       "29CM",
		ReadinessSelector: "main",
		IDPattern:         regexp.MustCompile(`/products/(\d+)`),
		ShortLinkDomains:  []string{"onelink.me", "29cm.link"},
		CanonicalPrefix:   "3",
	},
	WConcept: {
		Mall:              WConcept,
		DisplayName:       "W컨셉",
		ReadinessSelector: "#frmproduct",
		IDPattern:         regexp.MustCompile(`/[Pp]roduct/(\d+)`),
		CanonicalPrefix:   "4",
	},
}

// Lookup returns the profile for a mall.
func Lookup(m Mall) (*Profile, error) {
	p, ok := profiles[m]
	if !ok {
		return nil, fmt.Errorf("unknown mall: %q", m)
	}
	return p, nil
}

// Parse maps an API path segment to a Mall.
func Parse(s string) (Mall, error) {
	switch Mall(s) {
	case Musinsa, Zigzag, CM29, WConcept:
		return Mall(s), nil
	}
	return "", fmt.Errorf("unknown mall: %q", s)
}

// All returns every supported mall in a stable order.
func All() []Mall {
	return []Mall{Musinsa, Zigzag, CM29, WConcept}
}
