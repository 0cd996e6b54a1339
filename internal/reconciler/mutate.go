package reconciler

import (
	"github.com/google/uuid"

	"github.com/vrsetup/scenctl/pkg/types"
)

// Every mutation works on a deep copy of the original records, never on
// normalized scenarios, and finishes with a cleanup pass that strips any
// duplicate-casing keys so the output never carries both casings for one
// concept.

// Add places a new scenario at the first empty slot within the current
// display extent; when the grid is full it appends a new row at column 0
// and grows the state's row minimum. ButtonIndex is computed from the
// placement, never taken from input.
func Add(doc Document, state GridState, in types.ScenarioInput) (Document, GridState, error) {
	records := doc.cloneRecords()

	pos, buttonIndex, state := placeNext(doc, state)
	records = append(records, newRecord(doc.Shape, in, pos, buttonIndex))

	return doc.withRecords(cleanRecords(records)), state, nil
}

// Edit replaces the four editable fields of the scenario at the given
// position, preserving its grid position and identity.
func Edit(doc Document, pos types.Position, in types.ScenarioInput) (Document, error) {
	records := doc.cloneRecords()

	idx := findRecord(records, doc.Shape, pos)
	if idx < 0 {
		return doc, types.ErrScenarioNotFound
	}
	rec := records[idx].(map[string]any)

	if doc.Shape == types.ShapeCapitalized {
		// Rebuild the record outright so leaked normalized keys disappear.
		updated := map[string]any{
			"Column":      0,
			"Row":         0,
			"ButtonIndex": 0,
			"Title":       in.Title,
			"CharacterID": in.CharacterID,
			"Environment": in.Environment,
			"Greeting":    in.Greeting,
		}
		if col, ok := intField(rec, "Column"); ok {
			updated["Column"] = col
		}
		if row, ok := intField(rec, "Row"); ok {
			updated["Row"] = row
		}
		if bi, ok := intField(rec, "ButtonIndex"); ok {
			updated["ButtonIndex"] = bi
		}
		records[idx] = updated
	} else {
		rec["title"] = in.Title
		rec["characterId"] = in.CharacterID
		rec["environment"] = in.Environment
		rec["greeting"] = in.Greeting
	}

	return doc.withRecords(cleanRecords(records)), nil
}

// Duplicate copies the scenario at the given position into the next free
// slot, following the same placement rule as Add. The copy gets a fresh id
// in the lowercase shape and no identifier in the capitalized shape.
func Duplicate(doc Document, state GridState, pos types.Position) (Document, GridState, error) {
	records := doc.cloneRecords()

	idx := findRecord(records, doc.Shape, pos)
	if idx < 0 {
		return doc, state, types.ErrScenarioNotFound
	}
	src := normalize(records[idx].(map[string]any), idx)

	target, buttonIndex, state := placeNext(doc, state)
	in := types.ScenarioInput{
		Title:       src.Title,
		CharacterID: src.CharacterID,
		Environment: src.Environment,
		Greeting:    src.Greeting,
	}
	records = append(records, newRecord(doc.Shape, in, target, buttonIndex))

	return doc.withRecords(cleanRecords(records)), state, nil
}

// Delete removes the scenario at the given position. A missing target is a
// handled error, not a crash: the document comes back unchanged alongside
// ErrScenarioNotFound.
func Delete(doc Document, pos types.Position) (Document, error) {
	records := doc.cloneRecords()

	idx := findRecord(records, doc.Shape, pos)
	if idx < 0 {
		return doc, types.ErrScenarioNotFound
	}
	records = append(records[:idx], records[idx+1:]...)

	return doc.withRecords(cleanRecords(records)), nil
}

// Move relocates the scenario at from to the slot at to. When the target
// slot is occupied the two scenarios swap positions. Both targets are
// resolved from a snapshot of original positions taken before any field is
// touched, so one update cannot corrupt the other's destination.
func Move(doc Document, state GridState, from, to types.Position) (Document, error) {
	records := doc.cloneRecords()

	srcIdx := findRecord(records, doc.Shape, from)
	if srcIdx < 0 {
		return doc, types.ErrScenarioNotFound
	}
	tgtIdx := findRecord(records, doc.Shape, to)

	dims := Measure(Extract(doc), state)
	totalCols := dims.ActualColumns

	setPosition(records[srcIdx].(map[string]any), doc.Shape, to, to.Row*totalCols+to.Column)
	if tgtIdx >= 0 && tgtIdx != srcIdx {
		setPosition(records[tgtIdx].(map[string]any), doc.Shape, from, from.Row*totalCols+from.Column)
	}

	return doc.withRecords(cleanRecords(records)), nil
}

// placeNext resolves the landing slot for Add and Duplicate over the
// current display extent, growing the row minimum when the grid is full.
func placeNext(doc Document, state GridState) (types.Position, int, GridState) {
	scenarios := Extract(doc)
	dims := Measure(scenarios, state)

	pos, found := FirstEmptySlot(scenarios, dims.TotalRows, dims.ActualColumns)
	if !found {
		pos = types.Position{Column: 0, Row: dims.TotalRows}
		state.MinRows = dims.TotalRows + 1
	}
	return pos, pos.Row*dims.ActualColumns + pos.Column, state
}

// newRecord builds a source record in the collection's shape.
func newRecord(shape types.SourceShape, in types.ScenarioInput, pos types.Position, buttonIndex int) map[string]any {
	if shape == types.ShapeCapitalized {
		return map[string]any{
			"Column":      pos.Column,
			"Row":         pos.Row,
			"Title":       in.Title,
			"CharacterID": in.CharacterID,
			"ButtonIndex": buttonIndex,
			"Environment": in.Environment,
			"Greeting":    in.Greeting,
		}
	}
	return map[string]any{
		"id":          "scenario-" + uuid.NewString(),
		"title":       in.Title,
		"characterId": in.CharacterID,
		"environment": in.Environment,
		"greeting":    in.Greeting,
		"column":      pos.Column,
		"row":         pos.Row,
		"buttonIndex": buttonIndex,
	}
}

// findRecord locates a record by grid position using the collection shape's
// key set, with absent positions reading as zero. First match wins.
func findRecord(records []any, shape types.SourceShape, pos types.Position) int {
	for i, r := range records {
		rec, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if recordPosition(rec, shape) == pos {
			return i
		}
	}
	return -1
}

func recordPosition(rec map[string]any, shape types.SourceShape) types.Position {
	colKey, rowKey := "column", "row"
	if shape == types.ShapeCapitalized {
		colKey, rowKey = "Column", "Row"
	}
	col, _ := intField(rec, colKey)
	row, _ := intField(rec, rowKey)
	return types.Position{Column: col, Row: row}
}

func setPosition(rec map[string]any, shape types.SourceShape, pos types.Position, buttonIndex int) {
	if shape == types.ShapeCapitalized {
		rec["Column"] = pos.Column
		rec["Row"] = pos.Row
		rec["ButtonIndex"] = buttonIndex
		return
	}
	rec["column"] = pos.Column
	rec["row"] = pos.Row
	rec["buttonIndex"] = buttonIndex
}

// cleanRecords strips duplicate-casing keys that may have leaked onto a
// record, per record: a capitalized record keeps only its seven canonical
// keys; a lowercase record drops any lowercase key whose capitalized twin
// is also present.
func cleanRecords(records []any) []any {
	out := make([]any, len(records))
	for i, r := range records {
		rec, ok := r.(map[string]any)
		if !ok {
			out[i] = r
			continue
		}
		out[i] = cleanRecord(rec)
	}
	return out
}

var capitalizedKeys = []string{"Column", "Row", "Title", "CharacterID", "ButtonIndex", "Environment", "Greeting"}

var casingTwins = map[string]string{
	"title":       "Title",
	"characterId": "CharacterID",
	"environment": "Environment",
	"greeting":    "Greeting",
	"column":      "Column",
	"row":         "Row",
	"buttonIndex": "ButtonIndex",
}

func cleanRecord(rec map[string]any) map[string]any {
	_, hasTitle := rec["Title"]
	_, hasCharacterID := rec["CharacterID"]

	if hasTitle || hasCharacterID {
		clean := make(map[string]any, len(capitalizedKeys))
		for _, k := range capitalizedKeys {
			if v, present := rec[k]; present {
				clean[k] = v
			}
		}
		return clean
	}

	clean := make(map[string]any, len(rec))
	for k, v := range rec {
		if twin, dual := casingTwins[k]; dual {
			if _, present := rec[twin]; present {
				continue
			}
		}
		clean[k] = v
	}
	return clean
}
