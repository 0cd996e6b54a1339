package reconciler

import "github.com/vrsetup/scenctl/pkg/types"

// GridState holds the caller-owned display minimums: rows and columns the
// user added beyond the data extent so trailing empty slots stay visible.
type GridState struct {
	MinRows int `json:"min_rows"`
	MinCols int `json:"min_cols"`
}

// NewGridState returns the default state: no extra rows, two-column floor.
func NewGridState() GridState {
	return GridState{MinRows: 0, MinCols: 2}
}

// Dimensions is the derived display geometry for a collection.
type Dimensions struct {
	MaxRow        int
	MaxColumn     int
	ActualColumns int
	TotalRows     int
	TotalSlots    int
}

// Measure computes the grid geometry from the scenario positions and the
// state's minimums. Positions default to zero, so a non-empty collection
// always occupies at least one row and column.
func Measure(scenarios []types.Scenario, state GridState) Dimensions {
	maxRow, maxCol := -1, -1
	for _, s := range scenarios {
		if s.Row > maxRow {
			maxRow = s.Row
		}
		if s.Column > maxCol {
			maxCol = s.Column
		}
	}
	if maxRow < 0 {
		maxRow = 0
	}
	if maxCol < 0 {
		maxCol = 0
	}

	actualCols := maxCol + 1
	if state.MinCols > actualCols {
		actualCols = state.MinCols
	}

	totalSlots := (maxRow + 1) * actualCols
	if len(scenarios) > totalSlots {
		totalSlots = len(scenarios)
	}

	// Duplicate positions can overflow the rectangular extent; round the
	// slot count up to whole rows.
	totalRows := maxRow + 1
	if overflow := (totalSlots + actualCols - 1) / actualCols; overflow > totalRows {
		totalRows = overflow
	}
	if state.MinRows > totalRows {
		totalRows = state.MinRows
	}

	return Dimensions{
		MaxRow:        maxRow,
		MaxColumn:     maxCol,
		ActualColumns: actualCols,
		TotalRows:     totalRows,
		TotalSlots:    totalSlots,
	}
}

// ScenarioAt returns the scenario occupying (column,row). Duplicates are
// tolerated: the first match in source order wins.
func ScenarioAt(scenarios []types.Scenario, column, row int) (types.Scenario, bool) {
	for _, s := range scenarios {
		if s.Column == column && s.Row == row {
			return s, true
		}
	}
	return types.Scenario{}, false
}

// FirstEmptySlot scans the grid row-major within the given bounds and
// returns the first unoccupied slot, or false if the grid is full (the
// caller then appends a new row at column 0).
func FirstEmptySlot(scenarios []types.Scenario, totalRows, totalCols int) (types.Position, bool) {
	for row := 0; row < totalRows; row++ {
		for col := 0; col < totalCols; col++ {
			if _, occupied := ScenarioAt(scenarios, col, row); !occupied {
				return types.Position{Column: col, Row: row}, true
			}
		}
	}
	return types.Position{}, false
}

func rowOccupied(scenarios []types.Scenario, row, maxCol int) bool {
	for col := 0; col <= maxCol; col++ {
		if _, ok := ScenarioAt(scenarios, col, row); ok {
			return true
		}
	}
	return false
}

func columnOccupied(scenarios []types.Scenario, column, maxRow int) bool {
	for row := 0; row <= maxRow; row++ {
		if _, ok := ScenarioAt(scenarios, column, row); ok {
			return true
		}
	}
	return false
}

// AddRow grows the display by one empty row. Refused when the trailing row
// is still empty, which keeps runs of empty structure bounded.
func AddRow(scenarios []types.Scenario, state GridState) (GridState, error) {
	if len(scenarios) == 0 {
		state.MinRows = 1
		return state, nil
	}

	dims := Measure(scenarios, state)
	lastRow := dims.MaxRow
	if state.MinRows-1 > lastRow {
		lastRow = state.MinRows - 1
	}
	if lastRow >= 0 && !rowOccupied(scenarios, lastRow, dims.MaxColumn) {
		return state, types.ErrRowNotAnchored
	}

	current := dims.MaxRow + 1
	if state.MinRows > current {
		current = state.MinRows
	}
	state.MinRows = current + 1
	return state, nil
}

// AddColumn grows the display by one empty column under the same
// anchoring rule as AddRow.
func AddColumn(scenarios []types.Scenario, state GridState) (GridState, error) {
	if len(scenarios) == 0 && state.MinCols <= 2 {
		state.MinCols = 3
		return state, nil
	}

	dims := Measure(scenarios, state)
	lastCol := dims.MaxColumn
	if state.MinCols-1 > lastCol {
		lastCol = state.MinCols - 1
	}
	if lastCol >= 0 && !columnOccupied(scenarios, lastCol, dims.MaxRow) {
		return state, types.ErrColumnNotAnchored
	}

	current := dims.MaxColumn + 1
	if state.MinCols > current {
		current = state.MinCols
	}
	state.MinCols = current + 1
	return state, nil
}

// RemoveEmptySlot shrinks the tracked minimums when the named slot sits in
// the trailing-most row or column and that row/column is entirely empty
// across the current extent. It never shrinks below the data-implied
// minimum (0 rows, 2 columns). Removing a slot that changes nothing is not
// an error; occupying the slot is.
func RemoveEmptySlot(scenarios []types.Scenario, state GridState, column, row int) (GridState, error) {
	if _, occupied := ScenarioAt(scenarios, column, row); occupied {
		return state, types.ErrSlotOccupied
	}

	dims := Measure(scenarios, state)
	totalCols := dims.ActualColumns
	currentRows := dims.MaxRow + 1
	if state.MinRows > currentRows {
		currentRows = state.MinRows
	}
	dataCols := dims.MaxColumn + 1

	if row == currentRows-1 {
		lastRowEmpty := true
		for col := 0; col < totalCols; col++ {
			if _, ok := ScenarioAt(scenarios, col, row); ok {
				lastRowEmpty = false
				break
			}
		}
		if lastRowEmpty && state.MinRows > 0 {
			state.MinRows--
		}
	}

	if column == totalCols-1 && state.MinCols > dataCols {
		lastColEmpty := true
		for r := 0; r < currentRows; r++ {
			if _, ok := ScenarioAt(scenarios, column, r); ok {
				lastColEmpty = false
				break
			}
		}
		if lastColEmpty && state.MinCols > 2 {
			state.MinCols--
		}
	}

	return state, nil
}

// Refresh resets the minimums to match the data extent, dropping any
// user-added empty rows and columns. Calling it twice with no intervening
// mutation is a no-op the second time.
func Refresh(scenarios []types.Scenario) GridState {
	if len(scenarios) == 0 {
		return NewGridState()
	}

	maxRow, maxCol := -1, -1
	for _, s := range scenarios {
		if s.Row > maxRow {
			maxRow = s.Row
		}
		if s.Column > maxCol {
			maxCol = s.Column
		}
	}

	state := GridState{MinRows: maxRow + 1, MinCols: maxCol + 1}
	if state.MinCols < 2 {
		state.MinCols = 2
	}
	return state
}
