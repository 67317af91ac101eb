package parser

import (
	"errors"
	"fmt"
	"os"

	"github.com/KaramelBytes/phenoqc/internal/measurement"
)

// Row is one raw input record keyed by canonical attribute name.
type Row map[string]string

// Parser defines a measurement file parser implementation.
type Parser interface {
	CanParse(filename string) bool
	Parse(content []byte) ([]Row, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// ParseFile selects a parser based on filename and returns the raw rows.
func ParseFile(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	for _, p := range registry {
		if !p.CanParse(path) {
			continue
		}
		// delimited files need the path to pick a separator
		if _, ok := p.(csvParser); ok {
			return parseDelimited(data, sniffDelimiter(path))
		}
		return p.Parse(data)
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
}

func init() {
	Register(csvParser{})
	Register(jsonParser{})
	Register(yamlParser{})
	Register(xlsxParser{})
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported measurement file format")

func canonicalRow(raw map[string]string) Row {
	r := make(Row, len(raw))
	for k, v := range raw {
		r[measurement.Canonical(k)] = v
	}
	return r
}
