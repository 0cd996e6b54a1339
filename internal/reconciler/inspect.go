package reconciler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vrsetup/scenctl/pkg/types"
)

// Required-field labels as presented to the user.
const (
	labelTitle       = "Title"
	labelCharacterID = "Character ID"
	labelEnvironment = "Environment"
	labelGreeting    = "Greeting"
)

// Finding names one incomplete scenario and its missing required fields.
type Finding struct {
	Index   int
	Missing []string
}

// Report collects the non-fatal structural warnings for a collection.
// Nothing in it blocks an operation; callers surface it and carry on.
type Report struct {
	Incomplete []Finding
	// MissingFields is the union of missing-field labels across the
	// collection, in presentation order.
	MissingFields []string
	// Duplicates lists grid positions occupied by more than one scenario.
	// First match wins on lookup; the duplicates stay in the document.
	Duplicates []types.Position
}

// OK reports whether the collection raised no warnings.
func (r Report) OK() bool {
	return len(r.Incomplete) == 0 && len(r.Duplicates) == 0
}

// Summary renders the report as short user-facing warning lines.
func (r Report) Summary() []string {
	var lines []string
	if len(r.Incomplete) > 0 {
		noun := "scenarios have"
		if len(r.Incomplete) == 1 {
			noun = "scenario has"
		}
		lines = append(lines, fmt.Sprintf("%d %s missing required fields (%s)",
			len(r.Incomplete), noun, strings.Join(r.MissingFields, ", ")))
	}
	for _, p := range r.Duplicates {
		lines = append(lines, fmt.Sprintf("multiple scenarios share position (%d,%d); first match wins", p.Column, p.Row))
	}
	return lines
}

// Inspect checks a normalized collection for incomplete scenarios and
// duplicated grid positions.
func Inspect(scenarios []types.Scenario) Report {
	var report Report
	union := map[string]bool{}

	for i, s := range scenarios {
		var missing []string
		if strings.TrimSpace(s.Title) == "" {
			missing = append(missing, labelTitle)
		}
		if strings.TrimSpace(s.CharacterID) == "" {
			missing = append(missing, labelCharacterID)
		}
		if strings.TrimSpace(s.Environment) == "" {
			missing = append(missing, labelEnvironment)
		}
		if strings.TrimSpace(s.Greeting) == "" {
			missing = append(missing, labelGreeting)
		}
		if len(missing) > 0 {
			report.Incomplete = append(report.Incomplete, Finding{Index: i, Missing: missing})
			for _, m := range missing {
				union[m] = true
			}
		}
	}

	for _, label := range []string{labelTitle, labelCharacterID, labelEnvironment, labelGreeting} {
		if union[label] {
			report.MissingFields = append(report.MissingFields, label)
		}
	}

	counts := map[types.Position]int{}
	for _, s := range scenarios {
		counts[types.Position{Column: s.Column, Row: s.Row}]++
	}
	for pos, n := range counts {
		if n > 1 {
			report.Duplicates = append(report.Duplicates, pos)
		}
	}
	sort.Slice(report.Duplicates, func(i, j int) bool {
		a, b := report.Duplicates[i], report.Duplicates[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Column < b.Column
	})

	return report
}
