package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Index is an insertion-ordered key to position table. Keys keep their Go
// type; they are only stringified when the table is serialized.
type Index[K comparable] struct {
	keys []K
	pos  map[K]int
}

// NewIndex returns an empty index.
func NewIndex[K comparable]() *Index[K] {
	return &Index[K]{pos: make(map[K]int)}
}

// add records k at the next position and returns it. Re-adding a key
// returns its existing position.
func (ix *Index[K]) add(k K) int {
	if i, ok := ix.pos[k]; ok {
		return i
	}
	i := len(ix.keys)
	ix.keys = append(ix.keys, k)
	ix.pos[k] = i
	return i
}

// Lookup returns the position of k.
func (ix *Index[K]) Lookup(k K) (int, bool) {
	if ix == nil {
		return 0, false
	}
	i, ok := ix.pos[k]
	return i, ok
}

// Keys returns the keys in position order.
func (ix *Index[K]) Keys() []K {
	if ix == nil {
		return nil
	}
	return append([]K(nil), ix.keys...)
}

// Len returns the number of keys.
func (ix *Index[K]) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.keys)
}

// MarshalJSON writes the index as a JSON object whose members appear in
// position order.
func (ix *Index[K]) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range ix.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		name, err := json.Marshal(keyString(k))
		if err != nil {
			return nil, fmt.Errorf("marshal index key: %w", err)
		}
		b.Write(name)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(i))
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// MarshalYAML writes the index as an ordered YAML mapping.
func (ix *Index[K]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, k := range ix.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: keyString(k)},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(i)},
		)
	}
	return node, nil
}

func keyString(k any) string {
	switch v := k.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		// named key types print through their String method, if any
		return fmt.Sprint(v)
	}
}
