// Package jsonio reads and writes scenario documents on disk. Decoding
// goes through json.Number so large integer ids survive a round trip
// without drifting through float64.
package jsonio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ReadFile loads and parses a JSON document. A missing file and a file
// with invalid JSON produce distinct errors so callers can report them
// differently.
func ReadFile(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	data, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return data, nil
}

// ReadRaw loads a JSON document without decoding it, for callers that
// need the source text itself. The same missing-file and invalid-JSON
// error distinction as ReadFile applies.
func ReadRaw(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("invalid JSON in %s", path)
	}
	return raw, nil
}

// WriteFile serializes data with the given indent width and writes it
// atomically enough for a single-user tool: straight to the target path.
func WriteFile(path string, data any, indent int) error {
	out, err := Format(data, indent)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Validate parses a JSON string and returns the decoded value, or an
// error describing why it does not parse.
func Validate(src string) (any, error) {
	return parse([]byte(src))
}

// Format serializes data as indented JSON with a trailing newline.
func Format(data any, indent int) (string, error) {
	if indent <= 0 {
		indent = 2
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", strings.Repeat(" ", indent))
	if err := enc.Encode(data); err != nil {
		return "", fmt.Errorf("serializing JSON: %w", err)
	}
	return buf.String(), nil
}

func parse(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}
