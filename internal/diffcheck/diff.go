// Package diffcheck renders the unified diff shown by `turtlefmt --check`
// when a file's current contents differ from its formatted form
// (spec.md §4.6, §6, Scenario F).
//
// Grounded on original_source/src/main.rs's use of `diffy::create_patch` +
// `PatchFormatter`; the Go equivalent role is played here by
// github.com/pmezard/go-difflib, an indirect dependency of
// custodia-labs-sercha-cli (via testify) promoted to direct use.
package diffcheck

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Unified returns a unified diff between the original and formatted text
// of a file, or "" if they are identical.
func Unified(path, original, formatted string) (string, error) {
	if original == formatted {
		return "", nil
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(formatted),
		FromFile: path,
		ToFile:   path + " (formatted)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diffcheck: %w", err)
	}
	return text, nil
}
