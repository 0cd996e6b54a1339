// Package reconciler turns loosely-structured scenario JSON into canonical
// records, lays them out on a sparse 2-D grid, and applies add, edit,
// duplicate, delete, and move operations that round-trip back to the
// original document shape.
//
// The package is pure data transformation: it performs no I/O and keeps no
// state of its own. Wrapper and field-casing shape are detected once when a
// document is decoded and carried as tags on the Document; grid minimums
// live in a GridState value owned by the caller.
package reconciler

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/vrsetup/scenctl/pkg/types"
)

// Document is one decoded scenario board. The zero value is not useful;
// construct with Decode.
type Document struct {
	// Wrapper and Key record how the collection is embedded in the source
	// document; Shape records the collection's field-name casing.
	Wrapper types.WrapperKind
	Key     string
	Shape   types.SourceShape

	root    any
	records []any
}

// DecodeBytes parses raw JSON and builds a Document. Extraction
// precedence: the value itself if it is an array, else its "scenarios"
// property, else "scenario", else the first array-valued property in
// document order, else an empty collection.
func DecodeBytes(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Document{}, err
	}
	return decode(raw, firstArrayKey(data)), nil
}

// Decode builds a Document from an already-decoded JSON value. Decoded
// maps lose document order, so the first-array-property fallback scans
// keys in sorted order here; prefer DecodeBytes when the source text is
// at hand.
func Decode(raw any) Document {
	return decode(raw, "")
}

// decode applies the extraction precedence. orderedKey, when non-empty,
// names the first array-valued property in document order and replaces
// the sorted-key scan.
func decode(raw any, orderedKey string) Document {
	doc := Document{root: raw}

	switch v := raw.(type) {
	case []any:
		doc.Wrapper = types.WrapperArray
		doc.records = v
	case map[string]any:
		doc.Wrapper = types.WrapperNone
		for _, key := range []string{"scenarios", "scenario"} {
			if arr, ok := v[key].([]any); ok {
				doc.Wrapper = types.WrapperProperty
				doc.Key = key
				doc.records = arr
				break
			}
		}
		if doc.Wrapper == types.WrapperNone && orderedKey != "" {
			if arr, ok := v[orderedKey].([]any); ok {
				doc.Wrapper = types.WrapperProperty
				doc.Key = orderedKey
				doc.records = arr
			}
		}
		if doc.Wrapper == types.WrapperNone {
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if arr, ok := v[k].([]any); ok {
					doc.Wrapper = types.WrapperProperty
					doc.Key = k
					doc.records = arr
					break
				}
			}
		}
	default:
		doc.Wrapper = types.WrapperNone
	}

	// A document with no collection still carries an empty one, so a
	// save materializes "scenarios": [] rather than null.
	if doc.records == nil {
		doc.records = []any{}
	}

	doc.Shape = detectShape(doc.records)
	return doc
}

// firstArrayKey scans the source text of an object document and returns
// the first top-level property, in document order, whose value is an
// array. Anything else, including malformed input, yields "".
func firstArrayKey(data []byte) string {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return ""
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ""
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return ""
		}
		key, _ := keyTok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return ""
		}
		if trimmed := bytes.TrimSpace(value); len(trimmed) > 0 && trimmed[0] == '[' {
			return key
		}
	}
	return ""
}

// detectShape sniffs the collection's field-name casing from the first
// object record. An empty collection adopts the lowercase id-bearing shape:
// it is self-describing and needs no sniffing on the next load.
func detectShape(records []any) types.SourceShape {
	for _, r := range records {
		rec, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if _, has := rec["Title"]; has {
			return types.ShapeCapitalized
		}
		if _, has := rec["CharacterID"]; has {
			return types.ShapeCapitalized
		}
		return types.ShapeLowercase
	}
	return types.ShapeLowercase
}

// Value rebuilds the full document around the current records, reproducing
// the wrapper shape the input used. A bare array stays a bare array; an
// object gets only the extraction property replaced; a document that had no
// collection at all gains a "scenarios" property.
func (d Document) Value() any {
	switch d.Wrapper {
	case types.WrapperArray:
		return d.records
	case types.WrapperProperty:
		obj := d.root.(map[string]any)
		out := make(map[string]any, len(obj))
		for k, v := range obj {
			out[k] = v
		}
		out[d.Key] = d.records
		return out
	default:
		if obj, ok := d.root.(map[string]any); ok {
			out := make(map[string]any, len(obj)+1)
			for k, v := range obj {
				out[k] = v
			}
			out["scenarios"] = d.records
			return out
		}
		return map[string]any{"scenarios": d.records}
	}
}

// Len returns the number of entries in the collection.
func (d Document) Len() int {
	return len(d.records)
}

// cloneRecords deep-copies the collection so a mutation never touches the
// decoded source.
func (d Document) cloneRecords() []any {
	out := make([]any, len(d.records))
	for i, r := range d.records {
		out[i] = deepCopy(r)
	}
	return out
}

// withRecords returns a Document carrying the same wrapper and shape tags
// but a replaced collection.
func (d Document) withRecords(records []any) Document {
	d.records = records
	return d
}

func deepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = deepCopy(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = deepCopy(elem)
		}
		return out
	default:
		// Scalars (string, bool, json.Number, nil) are immutable.
		return v
	}
}
