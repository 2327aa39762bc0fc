package hotspot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ListSchema is the JSON schema of a hotspot list.
const ListSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"type": {"enum": ["CAMERA", "HOTSPOT"]},
			"id": {"type": "integer", "minimum": 0},
			"position": {
				"type": "object",
				"properties": {
					"x": {"type": "number"},
					"y": {"type": "number"},
					"z": {"type": "number"}
				},
				"required": ["x", "y", "z"]
			},
			"linkedTo": {"type": "array", "items": {"type": "integer"}},
			"camera1": {"type": "integer"},
			"camera2": {"type": "integer"}
		},
		"required": ["type", "id", "position", "linkedTo"],
		"oneOf": [
			{"properties": {"type": {"enum": ["CAMERA"]}}},
			{"properties": {"type": {"enum": ["HOTSPOT"]}}, "required": ["camera1", "camera2"]}
		]
	}
}`

var listSchema = gojsonschema.NewStringLoader(ListSchema)

// Encode writes records as an indented JSON array.
func Encode(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Decode reads a hotspot list, rejecting documents that do not match
// ListSchema or that reuse an id.
func Decode(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading hotspot list: %w", err)
	}

	result, err := gojsonschema.Validate(listSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing hotspot list: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, fmt.Errorf("hotspot list schema violations: %s", strings.Join(msgs, "; "))
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding hotspot list: %w", err)
	}
	seen := make(map[int]bool, len(records))
	for _, rec := range records {
		if seen[rec.ID] {
			return nil, fmt.Errorf("hotspot list: duplicate id %d", rec.ID)
		}
		seen[rec.ID] = true
	}
	return records, nil
}

// ReadFile decodes the hotspot list at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// WriteFile encodes records to path. The list is written to a temporary file
// in the same directory and renamed over path, so readers never see a
// partial list.
func WriteFile(path string, records []Record) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".hotspots-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if err := Encode(tmp, records); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing hotspot list: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
