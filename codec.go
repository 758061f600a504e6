package trafficfsm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarshalText encodes the state by name
func (s StateID) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, NewStateNotFoundError(s.String())
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name
func (s *StateID) UnmarshalText(text []byte) error {
	id, err := ParseStateID(string(text))
	if err != nil {
		return err
	}
	*s = id
	return nil
}

type tableDocument struct {
	States []stateDocument `json:"states" yaml:"states"`
}

type stateDocument struct {
	Name      StateID   `json:"name" yaml:"name"`
	Main      uint8     `json:"main" yaml:"main"`
	Ped       uint8     `json:"ped" yaml:"ped"`
	HoldTicks uint32    `json:"hold_ticks" yaml:"hold_ticks"`
	Next      []StateID `json:"next" yaml:"next,flow"`
}

func (t Table) document() tableDocument {
	doc := tableDocument{States: make([]stateDocument, 0, NumStates)}
	for _, id := range AllStates() {
		row := t[id]
		doc.States = append(doc.States, stateDocument{
			Name:      id,
			Main:      uint8(row.MainOutput),
			Ped:       uint8(row.PedOutput),
			HoldTicks: row.HoldTicks,
			Next:      row.Next[:],
		})
	}
	return doc
}

// table rebuilds a Table from its document. Every state must appear exactly
// once with exactly NumInputs successors; the result is not otherwise
// validated.
func (doc tableDocument) table() (Table, error) {
	var (
		t         Table
		seen      [NumStates]bool
		collector = NewErrorCollector()
	)

	for _, st := range doc.States {
		if seen[st.Name] {
			collector.Add(NewTableError(ErrCodeInvalidState, st.Name, "state defined more than once"))
			continue
		}
		seen[st.Name] = true

		if len(st.Next) != NumInputs {
			collector.Add(NewIncompleteTableError(st.Name, len(st.Next)))
			continue
		}

		row := State{
			MainOutput: LampPattern(st.Main),
			PedOutput:  PedPattern(st.Ped),
			HoldTicks:  st.HoldTicks,
		}
		copy(row.Next[:], st.Next)
		t[st.Name] = row
	}

	for _, id := range AllStates() {
		if !seen[id] {
			collector.Add(NewTableError(ErrCodeIncompleteTable, id, "state missing from table"))
		}
	}

	return t, collector.Err()
}

// MarshalJSON encodes the table as a list of named rows
func (t Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.document())
}

// UnmarshalJSON decodes a table written by MarshalJSON
func (t *Table) UnmarshalJSON(data []byte) error {
	var doc tableDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	decoded, err := doc.table()
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}

// MarshalYAML encodes the table as a list of named rows
func (t Table) MarshalYAML() (interface{}, error) {
	return t.document(), nil
}

// UnmarshalYAML decodes a table written by MarshalYAML
func (t *Table) UnmarshalYAML(value *yaml.Node) error {
	var doc tableDocument
	if err := value.Decode(&doc); err != nil {
		return err
	}
	decoded, err := doc.table()
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}

// Format selects a table encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from a file extension
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", NewConfigurationError("Table", fmt.Sprintf("unknown table file extension in '%s'", path))
	}
}

// EncodeTable writes t to w
func EncodeTable(w io.Writer, t Table, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t); err != nil {
			return err
		}
		return enc.Close()
	default:
		return NewConfigurationError("Table", fmt.Sprintf("unknown format '%s'", format))
	}
}

// DecodeTable reads a table from r and validates it
func DecodeTable(r io.Reader, format Format) (Table, error) {
	var t Table
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&t); err != nil {
			return Table{}, fmt.Errorf("decode json table: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&t); err != nil {
			return Table{}, fmt.Errorf("decode yaml table: %w", err)
		}
	default:
		return Table{}, NewConfigurationError("Table", fmt.Sprintf("unknown format '%s'", format))
	}

	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// LoadTable reads and validates a table file
func LoadTable(path string) (Table, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Table{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read table: %w", err)
	}

	return DecodeTable(bytes.NewReader(data), format)
}

// SaveTable writes t to path in the format chosen by its extension
func SaveTable(path string, t Table) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := EncodeTable(&buf, t, format); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
