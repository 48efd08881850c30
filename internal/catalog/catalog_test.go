package catalog

import (
	"regexp"
	"testing"
)

var codePattern = regexp.MustCompile(`^[A-Z]{2,4}-[0-9]{3}$`)

func TestCode(t *testing.T) {
	if got := Code("FGC", "005"); got != "FGC-005" {
		t.Fatalf("Code = %q, want FGC-005", got)
	}
}

func TestAllVariants(t *testing.T) {
	c := Default()
	variants := c.AllVariants()

	// 5 distinct sizes x 12 flavors
	if len(variants) != 60 {
		t.Fatalf("got %d variants, want 60", len(variants))
	}

	seen := map[string]bool{}
	for _, v := range variants {
		if !codePattern.MatchString(v.Code) {
			t.Errorf("code %q does not match the canonical pattern", v.Code)
		}
		if seen[v.Code] {
			t.Errorf("duplicate code %q", v.Code)
		}
		seen[v.Code] = true
		if v.Name == "" {
			t.Errorf("variant %q has no display name", v.Code)
		}
	}
}

func TestDefaultTables(t *testing.T) {
	c := Default()
	if len(c.FamilyKeywords) == 0 {
		t.Fatal("family keywords must not be empty")
	}
	for _, e := range c.Flavors {
		if !regexp.MustCompile(`^[0-9]{3}$`).MatchString(e.Code) {
			t.Errorf("flavor code %q is not 3 digits", e.Code)
		}
	}
	for _, e := range c.Sizes {
		if !regexp.MustCompile(`^[A-Z]{2,4}$`).MatchString(e.Code) {
			t.Errorf("size code %q is not 2-4 letters", e.Code)
		}
	}
}
