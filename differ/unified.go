package differ

import (
	"strings"

	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContextLines is the number of unchanged lines shown around each hunk.
const DefaultContextLines = 3

// UnifiedPatch returns a unified diff from baseline to candidate labelled
// a/<label> and b/<label>, or "" when the texts are identical.
func UnifiedPatch(baseline, candidate, label string, contextLines int) (string, error) {
	if baseline == candidate {
		return "", nil
	}
	if contextLines < 0 {
		return "", &oaserrors.PatchError{Label: label, Message: "context lines must not be negative"}
	}
	patch, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(baseline),
		B:        splitLines(candidate),
		FromFile: "a/" + label,
		ToFile:   "b/" + label,
		Context:  contextLines,
	})
	if err != nil {
		return "", &oaserrors.PatchError{Label: label, Cause: err}
	}
	return patch, nil
}

// splitLines keeps line terminators; an empty text has no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n\\ No newline at end of file\n"
	}
	return lines
}
