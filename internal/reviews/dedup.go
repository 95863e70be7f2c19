package reviews

import "github.com/everywear-ai/crawler/internal/models"

// dedupSet maps stable per-review identifiers to their extracted records,
// preserving first-seen order. Virtualized feeds detach and re-attach nodes
// while scrolling, so identity, not position, decides whether an item is
// new.
type dedupSet struct {
	order []string
	items map[string]models.Review
}

func newDedupSet() *dedupSet {
	return &dedupSet{items: make(map[string]models.Review)}
}

func (d *dedupSet) Has(id string) bool {
	_, ok := d.items[id]
	return ok
}

func (d *dedupSet) Add(id string, r models.Review) {
	if _, ok := d.items[id]; ok {
		return
	}
	d.items[id] = r
	d.order = append(d.order, id)
}

func (d *dedupSet) Len() int {
	return len(d.items)
}

// Values returns the collected records in first-seen order, truncated to
// limit when limit is positive.
func (d *dedupSet) Values(limit int) []models.Review {
	out := make([]models.Review, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.items[id])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
