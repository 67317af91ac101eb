package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type jsonParser struct{}

func (jsonParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".json")
}

// Parse reads a JSON array of flat objects.
func (jsonParser) Parse(content []byte) ([]Row, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	var recs []map[string]any
	if err := dec.Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return stringRows(recs), nil
}

type yamlParser struct{}

func (yamlParser) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// Parse reads a YAML sequence of flat mappings.
func (yamlParser) Parse(content []byte) ([]Row, error) {
	var recs []map[string]any
	if err := yaml.Unmarshal(content, &recs); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return stringRows(recs), nil
}

func stringRows(recs []map[string]any) []Row {
	rows := make([]Row, 0, len(recs))
	for _, rec := range recs {
		raw := make(map[string]string, len(rec))
		for k, v := range rec {
			if v == nil {
				continue
			}
			raw[k] = fmt.Sprint(v)
		}
		rows = append(rows, canonicalRow(raw))
	}
	return rows
}
