package reconciler

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrsetup/scenctl/pkg/types"
)

// mustDecode parses JSON the way the document loaders do (numbers kept as
// json.Number) and builds a Document.
func mustDecode(t *testing.T, src string) Document {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(src)))
	dec.UseNumber()
	var raw any
	require.NoError(t, dec.Decode(&raw))
	return Decode(raw)
}

// mustJSON marshals a rebuilt document for shape comparison.
func mustJSON(t *testing.T, v any) string {
	t.Helper()
	out, err := json.Marshal(v)
	require.NoError(t, err)
	return string(out)
}

func TestDecodeWrapperDetection(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		wantWrapper types.WrapperKind
		wantKey     string
		wantLen     int
	}{
		{
			name:        "bare array",
			src:         `[{"title":"a"},{"title":"b"}]`,
			wantWrapper: types.WrapperArray,
			wantLen:     2,
		},
		{
			name:        "scenarios property",
			src:         `{"scenarios":[{"title":"a"}],"version":2}`,
			wantWrapper: types.WrapperProperty,
			wantKey:     "scenarios",
			wantLen:     1,
		},
		{
			name:        "singular scenario property",
			src:         `{"scenario":[{"title":"a"}]}`,
			wantWrapper: types.WrapperProperty,
			wantKey:     "scenario",
			wantLen:     1,
		},
		{
			name:        "first array property fallback",
			src:         `{"label":"board","items":[{"title":"a"},{"title":"b"},{"title":"c"}]}`,
			wantWrapper: types.WrapperProperty,
			wantKey:     "items",
			wantLen:     3,
		},
		{
			name:        "object with no array",
			src:         `{"label":"board"}`,
			wantWrapper: types.WrapperNone,
			wantLen:     0,
		},
		{
			name:        "scalar document",
			src:         `"nothing here"`,
			wantWrapper: types.WrapperNone,
			wantLen:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDecode(t, tt.src)
			assert.Equal(t, tt.wantWrapper, doc.Wrapper)
			assert.Equal(t, tt.wantKey, doc.Key)
			assert.Equal(t, tt.wantLen, doc.Len())
		})
	}
}

func TestDecodeBytesHonorsPropertyOrder(t *testing.T) {
	// Two array properties, neither named scenarios: the one that
	// appears first in the source text wins, not the alphabetically
	// first one.
	doc, err := DecodeBytes([]byte(`{"zeta":[{"title":"a"}],"alpha":[{"title":"b"},{"title":"c"}]}`))
	require.NoError(t, err)
	assert.Equal(t, types.WrapperProperty, doc.Wrapper)
	assert.Equal(t, "zeta", doc.Key)
	assert.Equal(t, 1, doc.Len())

	// The named keys still outrank position.
	doc, err = DecodeBytes([]byte(`{"items":[{"title":"a"}],"scenarios":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "scenarios", doc.Key)
}

func TestDecodeBytesInvalidJSON(t *testing.T) {
	_, err := DecodeBytes([]byte(`{"scenarios":`))
	require.Error(t, err)
}

func TestDecodeShapeDetection(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want types.SourceShape
	}{
		{name: "capitalized via Title", src: `[{"Title":"a"}]`, want: types.ShapeCapitalized},
		{name: "capitalized via CharacterID", src: `[{"CharacterID":"betty"}]`, want: types.ShapeCapitalized},
		{name: "lowercase", src: `[{"title":"a","characterId":"betty"}]`, want: types.ShapeLowercase},
		{name: "empty collection defaults lowercase", src: `[]`, want: types.ShapeLowercase},
		{name: "empty document defaults lowercase", src: `{}`, want: types.ShapeLowercase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustDecode(t, tt.src).Shape)
		})
	}
}

func TestValuePreservesWrapper(t *testing.T) {
	t.Run("bare array stays bare array", func(t *testing.T) {
		doc := mustDecode(t, `[{"title":"a"}]`)
		assert.JSONEq(t, `[{"title":"a"}]`, mustJSON(t, doc.Value()))
	})

	t.Run("object keeps sibling properties", func(t *testing.T) {
		doc := mustDecode(t, `{"scenarios":[{"title":"a"}],"version":2}`)
		assert.JSONEq(t, `{"scenarios":[{"title":"a"}],"version":2}`, mustJSON(t, doc.Value()))
	})

	t.Run("singular property written back through same key", func(t *testing.T) {
		doc := mustDecode(t, `{"scenario":[{"title":"a"}]}`)
		assert.JSONEq(t, `{"scenario":[{"title":"a"}]}`, mustJSON(t, doc.Value()))
	})

	t.Run("arrayless object gains scenarios property", func(t *testing.T) {
		doc := mustDecode(t, `{"label":"board"}`)
		assert.JSONEq(t, `{"label":"board","scenarios":[]}`, mustJSON(t, doc.Value()))
	})
}

func TestRoundTripNoOp(t *testing.T) {
	// Extract followed by rebuild with no mutation must reproduce the
	// document exactly, up to key order.
	srcs := []string{
		`{"scenarios":[{"Title":"Intro","CharacterID":"betty","Column":0,"Row":0,"Environment":"BDS_Hospital","Greeting":"Hi"}]}`,
		`[{"id":"s1","title":"Intro","characterId":"betty","column":1,"row":2,"buttonIndex":5,"environment":"BDS_Hospital","greeting":"Hi"}]`,
		`{"scenarios":[],"owner":"vr-team"}`,
	}
	for _, src := range srcs {
		doc := mustDecode(t, src)
		_ = Extract(doc)
		assert.JSONEq(t, src, mustJSON(t, doc.Value()))
	}
}
