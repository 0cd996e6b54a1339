package types

import "github.com/agnivade/levenshtein"

// EnvironmentOption pairs a preset environment code with its display label.
type EnvironmentOption struct {
	Display string
	Code    string
}

// EnvironmentOptions is the fixed table of known preset environments.
// Codes not in this table are arbitrary passthrough values.
var EnvironmentOptions = []EnvironmentOption{
	{Display: "Hospital - Betty", Code: "BDS_Hospital"},
	{Display: "Hospital - Joshua", Code: "BDS_Hospital_Male"},
	{Display: "Hospital - David", Code: "BDS_Hospital_Male_David"},
	{Display: "Hospital - Rachael", Code: "BDS_Hospital_Rachael"},
}

// EnvironmentDisplay maps an environment code to its display label.
// Unknown codes are returned unchanged; an empty code reads as
// "Not specified".
func EnvironmentDisplay(code string) string {
	if code == "" {
		return "Not specified"
	}
	for _, opt := range EnvironmentOptions {
		if opt.Code == code {
			return opt.Display
		}
	}
	return code
}

// EnvironmentCode maps a display label back to its environment code.
// Unknown labels pass through unchanged so arbitrary values are never lost.
func EnvironmentCode(display string) string {
	if display == "" {
		return ""
	}
	for _, opt := range EnvironmentOptions {
		if opt.Display == display {
			return opt.Code
		}
	}
	return display
}

// KnownEnvironment reports whether the value matches a known code or
// display label exactly.
func KnownEnvironment(value string) bool {
	for _, opt := range EnvironmentOptions {
		if opt.Code == value || opt.Display == value {
			return true
		}
	}
	return false
}

// SuggestEnvironment returns the known display label closest to the given
// value, when one is close enough to be a plausible typo. The caller uses
// it for warning text only; the original value still passes through.
func SuggestEnvironment(value string) (string, bool) {
	best := ""
	bestDist := -1
	for _, opt := range EnvironmentOptions {
		for _, cand := range []string{opt.Display, opt.Code} {
			dist := levenshtein.ComputeDistance(value, cand)
			if dist > editLimit(len(cand)) {
				continue
			}
			if bestDist == -1 || dist < bestDist {
				best = opt.Display
				bestDist = dist
			}
		}
	}
	return best, bestDist != -1
}

// editLimit scales the accepted edit distance with candidate length so
// short codes do not fuzzy-match everything.
func editLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 10:
		return 2
	default:
		return 3
	}
}
