package utak

import "testing"

func TestDetectBranchByAccount(t *testing.T) {
	dir := DefaultDirectory()

	got := dir.DetectBranch("kikiksphilippines.finance@gmail.com Inventory for 2026-01-03.csv")
	if got != "Ayala Legazpi" {
		t.Fatalf("DetectBranch = %q, want %q", got, "Ayala Legazpi")
	}
}

func TestDetectBranchByFragment(t *testing.T) {
	dir := DefaultDirectory()

	cases := []struct {
		filename string
		want     string
	}{
		{"SM Sorsogon stock count 20260115.csv", "SM Sorsogon"},
		{"inventory AYALA jan.csv", "Ayala Legazpi"},
		{"legazpi-export.csv", "Ayala Legazpi"},
		{"main store count.csv", "Main Store Sorsogon"},
		// "sm sorsogon" outranks the bare "sorsogon" fragment
		{"sm sorsogon vs sorsogon.csv", "SM Sorsogon"},
		{"random-export.csv", ""},
	}
	for _, tc := range cases {
		if got := dir.DetectBranch(tc.filename); got != tc.want {
			t.Errorf("DetectBranch(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}

func TestDetectBranchAccountBeatsFragment(t *testing.T) {
	dir := DefaultDirectory()

	// the account identifier wins even when a fragment for another branch
	// also appears in the name
	got := dir.DetectBranch("kikiks.smsorsogon@gmail.com ayala backup.csv")
	if got != "SM Sorsogon" {
		t.Fatalf("DetectBranch = %q, want %q", got, "SM Sorsogon")
	}
}

func TestDetectDate(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"Inventory for 2026-01-03.csv", "2026-01-03"},
		{"Inventory 2026/01/03.csv", "2026-01-03"},
		{"stock-20260103.csv", "2026-01-03"},
		{"no date here.csv", ""},
		// literal match only, no calendar validation
		{"export 2026-13-40.csv", "2026-13-40"},
	}
	for _, tc := range cases {
		if got := DetectDate(tc.filename); got != tc.want {
			t.Errorf("DetectDate(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}
