// Package updater checks for, downloads, and installs new portable
// builds. Installation is a two-phase handoff: the running binary writes
// an install plan and spawns the downloaded binary, which replays the
// plan after the old process exits.
package updater

import (
	"strconv"
	"strings"
)

// CompareVersions compares two dotted numeric versions. It returns 1 when
// a is newer, -1 when b is newer, and 0 when they are equal. Missing
// segments and non-numeric segments read as 0, so "1.0" equals "1.0.0".
func CompareVersions(a, b string) int {
	partsA := strings.Split(a, ".")
	partsB := strings.Split(b, ".")

	n := len(partsA)
	if len(partsB) > n {
		n = len(partsB)
	}
	for i := 0; i < n; i++ {
		va := segment(partsA, i)
		vb := segment(partsB, i)
		if va > vb {
			return 1
		}
		if va < vb {
			return -1
		}
	}
	return 0
}

func segment(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil {
		return 0
	}
	return v
}
