package utak

import (
	"strconv"
	"strings"

	"kikiks-backend/internal/catalog"
)

// Field aliases recognized in Utak exports, in lookup order.
var (
	titleAliases = []string{"title", "product", "description"}
	stockAliases = []string{"end", "end stock", "ending"}
)

// Item: one classified export row. Code is empty for unmatched items until an
// operator resolves them by hand.
type Item struct {
	SourceTitle string `json:"source_title"`
	Category    string `json:"category"`
	EndStock    int    `json:"end_stock"`
	Code        string `json:"code"`
	Raw         Row    `json:"raw"`
}

// ClassifyResult: partition of the parsed rows. Matched and Unmatched keep
// the original row order; a row is never in both. Dropped counts rows judged
// out of domain (merchandise etc.) which appear in neither.
type ClassifyResult struct {
	Matched   []Item `json:"matched"`
	Unmatched []Item `json:"unmatched"`
	Dropped   int    `json:"dropped"`
}

// CodeDetector derives a canonical product code from a free-text title.
// The shipped implementation is first-hit substring matching against the
// catalog tables; a stricter tokenizer can be swapped in without touching
// the pipeline.
type CodeDetector interface {
	Detect(title string) (code string, ok bool)
}

// firstHitDetector scans the flavor table then the size table and takes the
// first keyword contained in the title. A title holding two flavor keywords
// resolves to whichever is declared first, not the longest match. Known
// precision limitation, kept for compatibility with historical imports.
type firstHitDetector struct {
	cat catalog.Catalog
}

func (d firstHitDetector) Detect(title string) (string, bool) {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return "", false
	}

	flavor := ""
	for _, f := range d.cat.Flavors {
		if strings.Contains(title, f.Key) {
			flavor = f.Code
			break
		}
	}

	size := ""
	for _, s := range d.cat.Sizes {
		if strings.Contains(title, s.Key) {
			size = s.Code
			break
		}
	}

	if flavor == "" || size == "" {
		return "", false
	}
	return catalog.Code(size, flavor), true
}

// Matcher classifies export rows against an injected catalog.
type Matcher struct {
	cat      catalog.Catalog
	detector CodeDetector
}

func NewMatcher(cat catalog.Catalog) *Matcher {
	return &Matcher{cat: cat, detector: firstHitDetector{cat: cat}}
}

// NewMatcherWithDetector allows substituting the code detection strategy.
func NewMatcherWithDetector(cat catalog.Catalog, d CodeDetector) *Matcher {
	return &Matcher{cat: cat, detector: d}
}

// Classify partitions rows into matched and unmatched items. Rows that match
// neither a code nor a product-family keyword are assumed to be unrelated
// products (merchandise, packaging) and only counted in Dropped.
func (m *Matcher) Classify(rows []Row) ClassifyResult {
	res := ClassifyResult{
		Matched:   make([]Item, 0, len(rows)),
		Unmatched: make([]Item, 0),
	}

	for _, row := range rows {
		title := firstField(row, titleAliases)
		item := Item{
			SourceTitle: title,
			Category:    row["category"],
			EndStock:    parseStock(firstField(row, stockAliases)),
			Raw:         row,
		}

		if code, ok := m.detector.Detect(title); ok {
			item.Code = code
			res.Matched = append(res.Matched, item)
			continue
		}

		if m.isRelevant(title, item.Category) {
			res.Unmatched = append(res.Unmatched, item)
		} else {
			res.Dropped++
		}
	}

	return res
}

// isRelevant decides whether an unmatched row is still one of our product
// families and worth showing to the operator.
func (m *Matcher) isRelevant(title, category string) bool {
	haystack := strings.ToLower(title + " " + category)
	for _, kw := range m.cat.FamilyKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

func firstField(row Row, aliases []string) string {
	for _, key := range aliases {
		if v := strings.TrimSpace(row[key]); v != "" {
			return v
		}
	}
	return ""
}

// parseStock coerces the ending-stock field to an int; missing or
// non-numeric values become 0 rather than an error.
func parseStock(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
