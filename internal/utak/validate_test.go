package utak

import "testing"

func validItem() Item {
	return Item{SourceTitle: "Ube | cup", Code: "FGC-001", EndStock: 5}
}

func TestValidateOK(t *testing.T) {
	res := Validate([]Item{validItem()}, "SM Sorsogon")
	if !res.IsValid || len(res.Errors) != 0 {
		t.Fatalf("expected valid, got %+v", res)
	}
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name   string
		items  []Item
		branch string
	}{
		{"empty matched set", []Item{}, "SM Sorsogon"},
		{"empty branch", []Item{validItem()}, ""},
		{"blank branch", []Item{validItem()}, "   "},
		{"nil code", []Item{{SourceTitle: "x", EndStock: 1}}, "SM Sorsogon"},
		{"negative stock", []Item{{SourceTitle: "x", Code: "FGC-001", EndStock: -1}}, "SM Sorsogon"},
	}
	for _, tc := range cases {
		res := Validate(tc.items, tc.branch)
		if res.IsValid {
			t.Errorf("%s: expected invalid", tc.name)
		}
		if len(res.Errors) == 0 {
			t.Errorf("%s: expected at least one error message", tc.name)
		}
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	items := []Item{
		{SourceTitle: "a", EndStock: -2},          // no code AND negative
		{SourceTitle: "b", Code: "", EndStock: 1}, // no code
	}
	res := Validate(items, "")
	if res.IsValid {
		t.Fatal("expected invalid")
	}
	// branch + 2x missing code + negative stock
	if len(res.Errors) != 4 {
		t.Fatalf("got %d errors, want 4: %v", len(res.Errors), res.Errors)
	}
}
