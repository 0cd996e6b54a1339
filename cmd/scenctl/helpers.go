// Shared helpers for scenctl commands.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vrsetup/scenctl/internal/binstore"
	"github.com/vrsetup/scenctl/internal/jsonio"
	"github.com/vrsetup/scenctl/internal/paths"
	"github.com/vrsetup/scenctl/internal/reconciler"
	"github.com/vrsetup/scenctl/pkg/types"
)

// fetchBoard pulls the bin's current document and decodes it. Incomplete
// scenarios and duplicate positions are reported on stderr as warnings,
// never as failures.
func fetchBoard(ctx context.Context) (reconciler.Document, error) {
	client := binstore.New(binConfig)
	raw, err := client.Fetch(ctx)
	if err != nil {
		return reconciler.Document{}, fmt.Errorf("fetch board: %w", err)
	}

	doc, err := reconciler.DecodeBytes(raw)
	if err != nil {
		return reconciler.Document{}, fmt.Errorf("decode board: %w", err)
	}
	warnFindings(doc)
	return doc, nil
}

// pushBoard uploads the document back to the bin.
func pushBoard(ctx context.Context, doc reconciler.Document) error {
	client := binstore.New(binConfig)
	if err := client.Upload(ctx, doc.Value()); err != nil {
		return fmt.Errorf("push board: %w", err)
	}
	return nil
}

func warnFindings(doc reconciler.Document) {
	report := reconciler.Inspect(reconciler.Extract(doc))
	for _, line := range report.Summary() {
		fmt.Fprintln(os.Stderr, "Warning:", line)
	}
}

// parsePosition reads a COL,ROW argument.
func parsePosition(arg string) (types.Position, error) {
	parts := strings.SplitN(arg, ",", 2)
	if len(parts) != 2 {
		return types.Position{}, fmt.Errorf("invalid position %q (expected COL,ROW)", arg)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return types.Position{}, fmt.Errorf("invalid column in %q: %w", arg, err)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return types.Position{}, fmt.Errorf("invalid row in %q: %w", arg, err)
	}
	if col < 0 || row < 0 {
		return types.Position{}, fmt.Errorf("position %q must be non-negative", arg)
	}
	return types.Position{Column: col, Row: row}, nil
}

// confirm asks the user to proceed unless --yes was given.
func confirm(prompt string) bool {
	if flagYes {
		return true
	}
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// resolveEnvironment maps a display label or raw code to an environment
// code. Unknown values pass through with a warning, with a fuzzy
// suggestion when one is close enough.
func resolveEnvironment(value string) string {
	if value == "" || types.KnownEnvironment(value) {
		return types.EnvironmentCode(value)
	}
	code := types.EnvironmentCode(value)
	if types.KnownEnvironment(code) {
		return code
	}
	fmt.Fprintf(os.Stderr, "Warning: unknown environment %q\n", value)
	if suggestion, ok := types.SuggestEnvironment(value); ok {
		fmt.Fprintf(os.Stderr, "Did you mean %q?\n", suggestion)
	}
	return value
}

// loadSession reads the persisted grid state from the config directory.
// A missing or unreadable session file yields the defaults.
func loadSession() reconciler.GridState {
	raw, err := os.ReadFile(paths.SessionFile(resolvedConfigDir))
	if err != nil {
		return reconciler.NewGridState()
	}
	var state reconciler.GridState
	if err := json.Unmarshal(raw, &state); err != nil {
		return reconciler.NewGridState()
	}
	if state.MinCols < 2 {
		state.MinCols = 2
	}
	if state.MinRows < 0 {
		state.MinRows = 0
	}
	return state
}

func saveSession(state reconciler.GridState) error {
	return jsonio.WriteFile(paths.SessionFile(resolvedConfigDir), state, 2)
}
