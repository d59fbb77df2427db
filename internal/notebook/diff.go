package notebook

import (
	"strings"

	godiffpatch "github.com/sourcegraph/go-diff-patch"
)

// UnifiedDiff returns a unified diff between two texts, labelled with the
// given names. It returns the empty string when the texts are identical.
func UnifiedDiff(before, after, beforeLabel, afterLabel string) string {
	if before == after {
		return ""
	}

	patch := godiffpatch.GeneratePatch("", before, after)
	if strings.TrimSpace(patch) == "" {
		return ""
	}

	// Replace the "--- a/" and "+++ b/" header lines with the given labels.
	hunks := stripPatchHeader(patch)
	return "--- " + beforeLabel + "\n+++ " + afterLabel + "\n" + hunks
}

// stripPatchHeader drops the two header lines of a patch.
func stripPatchHeader(patch string) string {
	rest := patch
	for i := 0; i < 2; i++ {
		if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
			rest = rest[idx+1:]
		}
	}
	return rest
}
