package models

import "strings"

// Review is the unified seven-field review shape every mall collector
// reduces to. Content is required; an item without content is never
// collected.
type Review struct {
	Rating     int      `json:"rating"`
	Content    string   `json:"content"`
	ReviewDate string   `json:"review_date"`
	Images     []string `json:"images"`
	UserHeight *int     `json:"user_height"`
	UserWeight *int     `json:"user_weight"`
	OptionText string   `json:"option_text"`
}

// MusinsaReview is the raw shape returned by the Musinsa review listing API.
type MusinsaReview struct {
	ProductNo    string            `json:"product_no"`
	ReviewNo     string            `json:"review_no"`
	Content      string            `json:"content"`
	Date         string            `json:"date"`
	Score        int               `json:"score"`
	Option       string            `json:"option"`
	UserSex      string            `json:"user_sex"`
	UserHeight   string            `json:"user_height"`
	UserWeight   string            `json:"user_weight"`
	Satisfaction map[string]string `json:"satisfaction"`
	HelpCount    int               `json:"help_count"`
	Images       []string          `json:"images"`
}

// Normalize reduces the Musinsa shape to the unified record.
func (r MusinsaReview) Normalize() Review {
	h, _ := ParseBodySpec(r.UserHeight)
	_, w := ParseBodySpec(r.UserWeight)
	return Review{
		Rating:     clampRating(r.Score),
		Content:    strings.TrimSpace(r.Content),
		ReviewDate: NormalizeDate(r.Date),
		Images:     r.Images,
		UserHeight: h,
		UserWeight: w,
		OptionText: r.Option,
	}
}

// ZigzagReview is the raw shape extracted from the Zigzag review feed DOM.
type ZigzagReview struct {
	ReviewIndex string   `json:"review_index"`
	Nickname    string   `json:"nickname"`
	Rating      int      `json:"rating"`
	Content     string   `json:"content"`
	Date        string   `json:"date"`
	Images      []string `json:"images"`
	OptionText  string   `json:"option_text"`
	BodyText    string   `json:"body_text"`
}

// Normalize reduces the Zigzag shape to the unified record.
func (r ZigzagReview) Normalize() Review {
	h, w := ParseBodySpec(r.BodyText)
	return Review{
		Rating:     clampRating(r.Rating),
		Content:    strings.TrimSpace(r.Content),
		ReviewDate: NormalizeDate(r.Date),
		Images:     r.Images,
		UserHeight: h,
		UserWeight: w,
		OptionText: r.OptionText,
	}
}

// CM29Review is the raw shape shared by the 29CM review DOM and its listing
// API.
type CM29Review struct {
	ItemID   string   `json:"item_id"`
	ReviewID string   `json:"review_id"`
	UserID   string   `json:"user_id"`
	Rating   int      `json:"rating"`
	Content  string   `json:"content"`
	Option   string   `json:"option"`
	Date     string   `json:"date"`
	Height   string   `json:"height"`
	Weight   string   `json:"weight"`
	Images   []string `json:"images"`
	IsGift   bool     `json:"is_gift"`
}

// Normalize reduces the 29CM shape to the unified record.
func (r CM29Review) Normalize() Review {
	h, _ := ParseBodySpec(r.Height)
	_, w := ParseBodySpec(r.Weight)
	return Review{
		Rating:     clampRating(r.Rating),
		Content:    strings.TrimSpace(r.Content),
		ReviewDate: NormalizeDate(r.Date),
		Images:     r.Images,
		UserHeight: h,
		UserWeight: w,
		OptionText: r.Option,
	}
}

// WConceptReview is the raw shape extracted from a W Concept review table
// row.
type WConceptReview struct {
	Score        float64           `json:"score"`
	Option       string            `json:"option"`
	UserID       string            `json:"user_id"`
	Date         string            `json:"date"`
	Satisfaction map[string]string `json:"satisfaction"`
	Content      string            `json:"content"`
	Images       []string          `json:"images"`
}

// Normalize reduces the W Concept shape to the unified record. The score
// arrives as a 0–5 float computed from the star fill width; it rounds to the
// nearest whole star.
func (r WConceptReview) Normalize() Review {
	rating := int(r.Score + 0.5)
	return Review{
		Rating:     clampRating(rating),
		Content:    strings.TrimSpace(r.Content),
		ReviewDate: NormalizeDate(r.Date),
		Images:     r.Images,
		OptionText: r.Option,
	}
}

// clampRating forces a rating into 1–5, defaulting to 5 when the source
// value was unparseable.
func clampRating(n int) int {
	if n < 1 || n > 5 {
		return 5
	}
	return n
}
