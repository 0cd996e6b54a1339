package reconciler

import (
	"encoding/json"
	"fmt"

	"github.com/vrsetup/scenctl/pkg/types"
)

// Extract produces the canonical scenario sequence, in source order,
// without mutating the document. Heterogeneous field-name variants collapse
// into the canonical fields; missing numeric positions read as zero.
// Extraction never fails and never drops incomplete records.
func Extract(d Document) []types.Scenario {
	out := make([]types.Scenario, 0, len(d.records))
	for i, r := range d.records {
		rec, ok := r.(map[string]any)
		if !ok {
			out = append(out, types.Scenario{ID: fmt.Sprintf("scenario-%d", i)})
			continue
		}
		out = append(out, normalize(rec, i))
	}
	return out
}

func normalize(rec map[string]any, index int) types.Scenario {
	s := types.Scenario{
		Title:       stringField(rec, "Title", "title", "name"),
		CharacterID: stringField(rec, "CharacterID", "characterId", "characterID", "character_id", "character", "characterName"),
		Environment: stringField(rec, "Environment", "environment", "env"),
		Greeting:    stringField(rec, "Greeting", "greeting", "greetingMessage"),
	}
	s.Column, _ = intField(rec, "Column", "column")
	s.Row, _ = intField(rec, "Row", "row")
	s.ButtonIndex, _ = intField(rec, "ButtonIndex", "buttonIndex", "button_index")

	s.ID = stringField(rec, "id", "ID", "Id")
	if s.ID == "" {
		s.ID = fmt.Sprintf("scenario-%d", index)
	}
	return s
}

// stringField returns the first non-empty string value among the keys.
func stringField(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := rec[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// intField returns the first present integer value among the keys.
func intField(rec map[string]any, keys ...string) (int, bool) {
	for _, k := range keys {
		v, present := rec[k]
		if !present {
			continue
		}
		if n, ok := intValue(v); ok {
			return n, true
		}
	}
	return 0, false
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}
