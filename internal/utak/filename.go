package utak

import (
	"fmt"
	"regexp"
	"strings"
)

// BranchRule: substring -> branch display name.
type BranchRule struct {
	Match  string
	Branch string
}

// BranchDirectory: ordered rules for resolving which branch a Utak export
// belongs to, from its filename alone. Accounts are checked first (the POS
// login email usually appears in the download name), then literal branch-name
// fragments as a fallback. Order is priority order.
type BranchDirectory struct {
	Accounts  []BranchRule
	Fragments []BranchRule
}

// DefaultDirectory returns the known Utak accounts and name fragments for
// Kikik's branches. Deployments that manage branches in the database should
// build the directory from branch rows instead (see inventory.buildDirectory).
func DefaultDirectory() BranchDirectory {
	return BranchDirectory{
		Accounts: []BranchRule{
			{Match: "kikiksphilippines.finance@gmail.com", Branch: "Ayala Legazpi"},
			{Match: "kikiks.smsorsogon@gmail.com", Branch: "SM Sorsogon"},
			{Match: "kikiks.mainstore@gmail.com", Branch: "Main Store Sorsogon"},
		},
		Fragments: []BranchRule{
			{Match: "sm sorsogon", Branch: "SM Sorsogon"},
			{Match: "ayala", Branch: "Ayala Legazpi"},
			{Match: "legazpi", Branch: "Ayala Legazpi"},
			{Match: "main store", Branch: "Main Store Sorsogon"},
			{Match: "sorsogon", Branch: "Main Store Sorsogon"},
		},
	}
}

// DetectBranch returns the branch display name inferred from the filename, or
// "" when nothing matches. "" is not an error; the operator picks the branch
// by hand in that case.
func (d BranchDirectory) DetectBranch(filename string) string {
	lower := strings.ToLower(filename)

	for _, rule := range d.Accounts {
		if rule.Match != "" && strings.Contains(lower, strings.ToLower(rule.Match)) {
			return rule.Branch
		}
	}
	for _, rule := range d.Fragments {
		if rule.Match != "" && strings.Contains(lower, strings.ToLower(rule.Match)) {
			return rule.Branch
		}
	}
	return ""
}

// Tried in order; first match wins. No calendar validation on purpose, the
// filename is a hint, not a source of truth.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`),
	regexp.MustCompile(`(\d{4})/(\d{2})/(\d{2})`),
	regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`),
}

// DetectDate returns the inventory as-of date embedded in the filename,
// normalized to YYYY-MM-DD, or "" when no pattern matches.
func DetectDate(filename string) string {
	for _, re := range datePatterns {
		if m := re.FindStringSubmatch(filename); m != nil {
			return fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
		}
	}
	return ""
}
