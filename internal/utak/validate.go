package utak

import (
	"fmt"
	"strings"
)

// ValidationResult: outcome of the pre-commit checks. Never an error; the
// caller branches on IsValid.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Validate runs every pre-flight check and collects all failures, so the
// operator sees everything wrong with a run in one pass instead of fixing
// problems one at a time.
func Validate(items []Item, branch string) ValidationResult {
	var errs []string

	if strings.TrimSpace(branch) == "" {
		errs = append(errs, "branch is required")
	}
	if len(items) == 0 {
		errs = append(errs, "no matched items to import")
	}
	for i, item := range items {
		if item.Code == "" {
			errs = append(errs, fmt.Sprintf("item %d (%q) has no product code", i+1, item.SourceTitle))
		}
		if item.EndStock < 0 {
			errs = append(errs, fmt.Sprintf("item %d (%q) has negative stock %d", i+1, item.SourceTitle, item.EndStock))
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
