package catalog

import "fmt"

// Entry: one keyword in the size or flavor table. Several keywords may map to
// the same code (singular/plural forms, compact aliases like "1l").
type Entry struct {
	Key         string // lower-case keyword searched for in product titles
	Code        string // canonical code this keyword resolves to
	DisplayName string
}

// Catalog: read-only reference data for SKU matching. Declaration order
// matters: detection is first-hit, so more specific keywords must come before
// the generic ones they contain.
type Catalog struct {
	Sizes   []Entry
	Flavors []Entry

	// FamilyKeywords decide whether an unmatched row is still one of our
	// products (kept for manual mapping) or something out of domain like
	// merchandise (silently dropped).
	FamilyKeywords []string
}

// Default returns the production catalog for Kikik's ice cream lines.
func Default() Catalog {
	return Catalog{
		Sizes: []Entry{
			{Key: "cups", Code: "FGC", DisplayName: "Cup"},
			{Key: "cup", Code: "FGC", DisplayName: "Cup"},
			{Key: "pints", Code: "FGP", DisplayName: "Pint"},
			{Key: "pint", Code: "FGP", DisplayName: "Pint"},
			{Key: "liters", Code: "FGL", DisplayName: "1 Liter"},
			{Key: "liter", Code: "FGL", DisplayName: "1 Liter"},
			{Key: "1l", Code: "FGL", DisplayName: "1 Liter"},
			{Key: "gallons", Code: "FGG", DisplayName: "Gallon"},
			{Key: "gallon", Code: "FGG", DisplayName: "Gallon"},
			{Key: "1gal", Code: "FGG", DisplayName: "Gallon"},
			{Key: "trays", Code: "FGT", DisplayName: "Tray"},
			{Key: "tray", Code: "FGT", DisplayName: "Tray"},
		},
		Flavors: []Entry{
			{Key: "ube", Code: "001", DisplayName: "Ube"},
			{Key: "mango", Code: "002", DisplayName: "Mango"},
			{Key: "cheese", Code: "003", DisplayName: "Cheese"},
			{Key: "chocolate", Code: "004", DisplayName: "Chocolate"},
			{Key: "vanilla langka", Code: "005", DisplayName: "Vanilla Langka"},
			{Key: "strawberry", Code: "006", DisplayName: "Strawberry"},
			{Key: "avocado", Code: "007", DisplayName: "Avocado"},
			{Key: "buko pandan", Code: "008", DisplayName: "Buko Pandan"},
			{Key: "cookies and cream", Code: "009", DisplayName: "Cookies and Cream"},
			{Key: "coffee", Code: "010", DisplayName: "Coffee"},
			{Key: "melon", Code: "011", DisplayName: "Melon"},
			{Key: "durian", Code: "012", DisplayName: "Durian"},
		},
		FamilyKeywords: []string{"cup", "pint", "liter", "gallon", "tray"},
	}
}

// Code joins a size code and flavor code into the canonical product code,
// e.g. Code("FGC", "005") == "FGC-005".
func Code(sizeCode, flavorCode string) string {
	return fmt.Sprintf("%s-%s", sizeCode, flavorCode)
}

// ProductVariant: one entry of the full size x flavor listing.
type ProductVariant struct {
	Code       string `json:"code"`
	SizeCode   string `json:"size_code"`
	FlavorCode string `json:"flavor_code"`
	Name       string `json:"name"` // e.g. "Vanilla Langka (Cup)"
}

// AllVariants lists every sellable code the catalog can produce, one per
// distinct size/flavor code pair, in declaration order.
func (c Catalog) AllVariants() []ProductVariant {
	seenSizes := make(map[string]bool)
	sizes := make([]Entry, 0, len(c.Sizes))
	for _, s := range c.Sizes {
		if seenSizes[s.Code] {
			continue
		}
		seenSizes[s.Code] = true
		sizes = append(sizes, s)
	}

	seenFlavors := make(map[string]bool)
	flavors := make([]Entry, 0, len(c.Flavors))
	for _, f := range c.Flavors {
		if seenFlavors[f.Code] {
			continue
		}
		seenFlavors[f.Code] = true
		flavors = append(flavors, f)
	}

	out := make([]ProductVariant, 0, len(sizes)*len(flavors))
	for _, s := range sizes {
		for _, f := range flavors {
			out = append(out, ProductVariant{
				Code:       Code(s.Code, f.Code),
				SizeCode:   s.Code,
				FlavorCode: f.Code,
				Name:       fmt.Sprintf("%s (%s)", f.DisplayName, s.DisplayName),
			})
		}
	}
	return out
}
