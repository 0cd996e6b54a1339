package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrsetup/scenctl/pkg/types"
)

func scenariosAt(positions ...types.Position) []types.Scenario {
	out := make([]types.Scenario, len(positions))
	for i, p := range positions {
		out[i] = types.Scenario{Title: "s", Column: p.Column, Row: p.Row}
	}
	return out
}

func TestMeasure(t *testing.T) {
	tests := []struct {
		name      string
		scenarios []types.Scenario
		state     GridState
		want      Dimensions
	}{
		{
			name:      "empty collection clamps to origin",
			scenarios: nil,
			state:     NewGridState(),
			want:      Dimensions{MaxRow: 0, MaxColumn: 0, ActualColumns: 2, TotalRows: 1, TotalSlots: 2},
		},
		{
			name:      "single scenario two column floor",
			scenarios: scenariosAt(types.Position{Column: 0, Row: 0}),
			state:     NewGridState(),
			want:      Dimensions{MaxRow: 0, MaxColumn: 0, ActualColumns: 2, TotalRows: 1, TotalSlots: 2},
		},
		{
			name: "data extent beyond floor",
			scenarios: scenariosAt(
				types.Position{Column: 2, Row: 1},
				types.Position{Column: 0, Row: 0},
			),
			state: NewGridState(),
			want:  Dimensions{MaxRow: 1, MaxColumn: 2, ActualColumns: 3, TotalRows: 2, TotalSlots: 6},
		},
		{
			name:      "user minimums win over data",
			scenarios: scenariosAt(types.Position{Column: 0, Row: 0}),
			state:     GridState{MinRows: 4, MinCols: 3},
			want:      Dimensions{MaxRow: 0, MaxColumn: 0, ActualColumns: 3, TotalRows: 4, TotalSlots: 3},
		},
		{
			name: "duplicate overflow rounds up to whole rows",
			scenarios: scenariosAt(
				types.Position{Column: 0, Row: 0},
				types.Position{Column: 0, Row: 0},
				types.Position{Column: 0, Row: 0},
			),
			state: NewGridState(),
			want:  Dimensions{MaxRow: 0, MaxColumn: 0, ActualColumns: 2, TotalRows: 2, TotalSlots: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Measure(tt.scenarios, tt.state))
		})
	}
}

func TestScenarioAtButtonIndexAgreement(t *testing.T) {
	// Within the computed extent, position lookup must agree with the flat
	// buttonIndex arithmetic.
	doc := mustDecode(t, `{"scenarios":[
		{"Title":"a","CharacterID":"x","Environment":"e","Greeting":"g","Column":0,"Row":0,"ButtonIndex":0},
		{"Title":"b","CharacterID":"x","Environment":"e","Greeting":"g","Column":1,"Row":0,"ButtonIndex":1},
		{"Title":"c","CharacterID":"x","Environment":"e","Greeting":"g","Column":0,"Row":1,"ButtonIndex":2}
	]}`)
	scs := Extract(doc)
	dims := Measure(scs, NewGridState())

	for row := 0; row < dims.TotalRows; row++ {
		for col := 0; col < dims.ActualColumns; col++ {
			s, ok := ScenarioAt(scs, col, row)
			if !ok {
				continue
			}
			assert.Equal(t, row*dims.ActualColumns+col, s.ButtonIndex,
				"scenario %q at (%d,%d)", s.Title, col, row)
		}
	}
}

func TestFirstEmptySlot(t *testing.T) {
	t.Run("row major order", func(t *testing.T) {
		scs := scenariosAt(types.Position{Column: 0, Row: 0})
		pos, ok := FirstEmptySlot(scs, 1, 2)
		require.True(t, ok)
		assert.Equal(t, types.Position{Column: 1, Row: 0}, pos)
	})

	t.Run("skips to next row", func(t *testing.T) {
		scs := scenariosAt(
			types.Position{Column: 0, Row: 0},
			types.Position{Column: 1, Row: 0},
		)
		pos, ok := FirstEmptySlot(scs, 2, 2)
		require.True(t, ok)
		assert.Equal(t, types.Position{Column: 0, Row: 1}, pos)
	})

	t.Run("full grid returns false", func(t *testing.T) {
		scs := scenariosAt(
			types.Position{Column: 0, Row: 0},
			types.Position{Column: 1, Row: 0},
		)
		_, ok := FirstEmptySlot(scs, 1, 2)
		assert.False(t, ok)
	})
}

func TestAddRow(t *testing.T) {
	t.Run("empty grid gets first row", func(t *testing.T) {
		state, err := AddRow(nil, NewGridState())
		require.NoError(t, err)
		assert.Equal(t, 1, state.MinRows)
	})

	t.Run("anchored row grows", func(t *testing.T) {
		scs := scenariosAt(types.Position{Column: 0, Row: 0})
		state, err := AddRow(scs, NewGridState())
		require.NoError(t, err)
		assert.Equal(t, 2, state.MinRows)
	})

	t.Run("refused when trailing row empty", func(t *testing.T) {
		scs := scenariosAt(types.Position{Column: 0, Row: 0})
		state := GridState{MinRows: 2, MinCols: 2}
		_, err := AddRow(scs, state)
		assert.ErrorIs(t, err, types.ErrRowNotAnchored)
	})
}

func TestAddColumn(t *testing.T) {
	t.Run("empty grid grows beyond default", func(t *testing.T) {
		state, err := AddColumn(nil, NewGridState())
		require.NoError(t, err)
		assert.Equal(t, 3, state.MinCols)
	})

	t.Run("anchored column grows", func(t *testing.T) {
		scs := scenariosAt(
			types.Position{Column: 0, Row: 0},
			types.Position{Column: 1, Row: 0},
		)
		state, err := AddColumn(scs, NewGridState())
		require.NoError(t, err)
		assert.Equal(t, 3, state.MinCols)
	})

	t.Run("refused when trailing column empty", func(t *testing.T) {
		scs := scenariosAt(types.Position{Column: 0, Row: 0})
		_, err := AddColumn(scs, NewGridState())
		assert.ErrorIs(t, err, types.ErrColumnNotAnchored)
	})
}

func TestRemoveEmptySlot(t *testing.T) {
	t.Run("occupied slot refused", func(t *testing.T) {
		scs := scenariosAt(types.Position{Column: 0, Row: 0})
		_, err := RemoveEmptySlot(scs, NewGridState(), 0, 0)
		assert.ErrorIs(t, err, types.ErrSlotOccupied)
	})

	t.Run("trailing empty row shrinks", func(t *testing.T) {
		scs := scenariosAt(types.Position{Column: 0, Row: 0})
		state := GridState{MinRows: 2, MinCols: 2}
		state, err := RemoveEmptySlot(scs, state, 0, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, state.MinRows)
	})

	t.Run("trailing empty column shrinks but not below two", func(t *testing.T) {
		scs := scenariosAt(types.Position{Column: 0, Row: 0})
		state := GridState{MinRows: 1, MinCols: 3}
		state, err := RemoveEmptySlot(scs, state, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, state.MinCols)
	})

	t.Run("interior slot changes nothing", func(t *testing.T) {
		scs := scenariosAt(
			types.Position{Column: 0, Row: 0},
			types.Position{Column: 0, Row: 2},
		)
		before := GridState{MinRows: 3, MinCols: 2}
		state, err := RemoveEmptySlot(scs, before, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, before, state)
	})
}

func TestRefreshIdempotent(t *testing.T) {
	scs := scenariosAt(
		types.Position{Column: 2, Row: 1},
		types.Position{Column: 0, Row: 0},
	)

	first := Refresh(scs)
	second := Refresh(scs)
	assert.Equal(t, first, second)
	assert.Equal(t, GridState{MinRows: 2, MinCols: 3}, first)

	// And the derived geometry is stable too.
	assert.Equal(t, Measure(scs, first), Measure(scs, second))
}

func TestRefreshEmpty(t *testing.T) {
	assert.Equal(t, NewGridState(), Refresh(nil))
}
