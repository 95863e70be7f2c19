package models

import (
	"regexp"
	"strings"
)

var (
	shortDateRe = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{2})$`)
	digitsRe    = regexp.MustCompile(`[\d,]+`)
	heightRe    = regexp.MustCompile(`(\d+)\s*cm`)
	weightRe    = regexp.MustCompile(`(\d+)\s*kg`)
)

// NormalizeDate expands two-digit-year dates like "24.12.15" to
// "2024.12.15". Dates already carrying a four-digit year pass through
// unchanged, so the function is idempotent.
func NormalizeDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}
	if strings.HasPrefix(date, "20") {
		return date
	}
	if m := shortDateRe.FindStringSubmatch(date); m != nil {
		return "20" + m[1] + "." + m[2] + "." + m[3]
	}
	return date
}

// NormalizePrice reduces a raw price string to its longest digit group with
// a 원 suffix. Already-suffixed values keep their digit group without
// duplicating the suffix. The sentinel passes through.
func NormalizePrice(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == Unknown {
		return Unknown
	}
	groups := digitsRe.FindAllString(raw, -1)
	if len(groups) == 0 {
		if strings.HasSuffix(raw, "원") {
			return raw
		}
		return raw + "원"
	}
	price := groups[0]
	for _, g := range groups {
		if len(g) > len(price) {
			price = g
		}
	}
	return price + "원"
}

// ParseBodySpec pulls height (cm) and weight (kg) out of a free-form body
// info blob like "158cm, 47kg". Either value may be absent.
func ParseBodySpec(text string) (height *int, weight *int) {
	if m := heightRe.FindStringSubmatch(text); m != nil {
		if v := atoi(m[1]); v > 0 {
			height = &v
		}
	}
	if m := weightRe.FindStringSubmatch(text); m != nil {
		if v := atoi(m[1]); v > 0 {
			weight = &v
		}
	}
	return height, weight
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// AbsoluteImageURL rewrites protocol-relative or bare-host image URLs to
// absolute https form.
func AbsoluteImageURL(src string) string {
	switch {
	case src == "" || src == Unknown:
		return Unknown
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return src
	case strings.HasPrefix(src, "/"):
		return src
	default:
		return "https://" + src
	}
}
