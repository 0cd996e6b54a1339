package types

// SourceShape tags the field-name casing style a persisted scenario
// collection uses. It is detected once when a document is decoded and
// threaded through every mutation, never re-sniffed per operation.
type SourceShape string

const (
	// ShapeCapitalized stores Title, CharacterID, Column, Row, ButtonIndex,
	// Environment, Greeting.
	ShapeCapitalized SourceShape = "capitalized"

	// ShapeLowercase stores title, characterId, column, row, buttonIndex,
	// environment, greeting, plus an optional id.
	//
	// A collection that starts out empty adopts this shape: newly added
	// scenarios carry a generated UUID id, so the shape is self-describing
	// on the next load.
	ShapeLowercase SourceShape = "lowercase"
)

// WrapperKind tags how the scenario collection is embedded in the
// surrounding JSON document. The same wrapper is reproduced on every save.
type WrapperKind string

const (
	// WrapperArray means the document is the scenario array itself.
	WrapperArray WrapperKind = "array"

	// WrapperProperty means the document is an object and the collection
	// lives under a named property ("scenarios", "scenario", or the first
	// array-valued property found). The property name travels with the
	// document so saves go back through the same key.
	WrapperProperty WrapperKind = "property"

	// WrapperNone means no array was found anywhere; the collection is
	// empty and a save materializes a "scenarios" property.
	WrapperNone WrapperKind = "none"
)

// Scenario is the canonical in-memory form of one VR interaction record.
// It is read-only display/lookup material: mutations always operate on the
// original source records, never on this normalized form.
type Scenario struct {
	ID          string // stable identifier, synthesized if absent
	Title       string
	CharacterID string
	Environment string // environment code, possibly unrecognized passthrough
	Greeting    string
	Column      int // grid position; absent source fields read as 0
	Row         int
	ButtonIndex int // carried flat index; recomputed on every write
}

// Position is a (column,row) grid coordinate.
type Position struct {
	Column int
	Row    int
}

// ScenarioInput carries the four user-editable fields for add, edit, and
// duplicate operations.
type ScenarioInput struct {
	Title       string
	CharacterID string
	Environment string
	Greeting    string
}
