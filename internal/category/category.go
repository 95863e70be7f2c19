// Package category maps each mall's raw taxonomy labels onto the five
// canonical categories. Three malls resolve through deterministic lookup
// tables; Zigzag, which exposes no reliable category in its DOM, is
// classified from the product name by a language model (see classifier.go).
package category

import (
	"github.com/everywear-ai/crawler/internal/models"
)

// musinsaPriority orders the raw labels Musinsa attaches to a page; when a
// page carries several, the first match wins.
var musinsaPriority = []string{"아우터", "바지", "상의", "원피스/스커트"}

var musinsaTable = map[string]string{
	"아우터":     models.CategoryOuter,
	"바지":      models.CategoryBottom,
	"상의":      models.CategoryTop,
	"원피스/스커트": models.CategoryDress,
}

// FromMusinsaLabels picks the highest-priority raw label and maps it.
func FromMusinsaLabels(labels []string) string {
	if len(labels) == 0 {
		return models.Unknown
	}
	selected := ""
	for _, want := range musinsaPriority {
		for _, l := range labels {
			if l == want {
				selected = want
				break
			}
		}
		if selected != "" {
			break
		}
	}
	if selected == "" {
		selected = labels[0]
	}
	if c, ok := musinsaTable[selected]; ok {
		return c
	}
	return models.CategoryOther
}

var cm29Table = map[string]string{
	"바지":      models.CategoryBottom,
	"점프수트":    models.CategoryBottom,
	"셋업":      models.CategoryOther,
	"스커트":     models.CategoryDress,
	"니트웨어":    models.CategoryTop,
	"홈웨어":     models.CategoryOther,
	"파티복/행사복": models.CategoryOther,
	"언더웨어":    models.CategoryOther,
	"이너웨어":    models.CategoryOther,
	"상의":      models.CategoryTop,
	"원피스":     models.CategoryDress,
}

// cm29SubTable resolves the sub-label probed when the top-level 29CM label
// is a generic bucket (해외브랜드 or 단독).
var cm29SubTable = map[string]string{
	"아우터":     models.CategoryOuter,
	"티셔츠":     models.CategoryTop,
	"셔츠/블라우스": models.CategoryTop,
	"니트웨어":    models.CategoryTop,
	"원피스":     models.CategoryDress,
	"팬츠":      models.CategoryBottom,
	"하의":      models.CategoryBottom,
	"스커트":     models.CategoryDress,
	"셔츠":      models.CategoryTop,
	"상의":      models.CategoryTop,
}

// CM29NeedsSubLabel reports whether a raw 29CM label is a generic bucket
// that requires probing the next breadcrumb level.
func CM29NeedsSubLabel(raw string) bool {
	return raw == "해외브랜드" || raw == "단독"
}

// FromCM29 maps a raw 29CM category label, optionally refined by the
// sub-label taken from the next breadcrumb.
func FromCM29(raw, sub string) string {
	if raw == "" || raw == models.Unknown {
		return models.CategoryOther
	}
	if CM29NeedsSubLabel(raw) {
		if c, ok := cm29SubTable[sub]; ok {
			return c
		}
		return models.CategoryOther
	}
	if c, ok := cm29Table[raw]; ok {
		return c
	}
	return models.CategoryOther
}

var wconceptTable = map[string]string{
	"아우터":    models.CategoryOuter,
	"원피스":    models.CategoryDress,
	"블라우스":   models.CategoryTop,
	"상의":     models.CategoryTop,
	"셔츠":     models.CategoryTop,
	"티셔츠":    models.CategoryTop,
	"니트":     models.CategoryTop,
	"스커트":    models.CategoryDress,
	"팬츠":     models.CategoryBottom,
	"데님":     models.CategoryBottom,
	"라운지웨어":  models.CategoryOther,
	"언더웨어":   models.CategoryOther,
}

// FromWConcept maps a raw W Concept category label.
func FromWConcept(raw string) string {
	if raw == "" || raw == models.Unknown {
		return models.CategoryOther
	}
	if c, ok := wconceptTable[raw]; ok {
		return c
	}
	return models.CategoryOther
}
