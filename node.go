package dartdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node is a value in a generic document tree. It is one of *Mapping,
// Sequence or Leaf; no other implementations exist.
type Node interface {
	node()
}

// Leaf is a text value.
type Leaf string

// Sequence is an ordered list of nodes.
type Sequence []Node

// Mapping is a string-keyed collection of nodes that remembers insertion
// order. The zero value is ready to use.
type Mapping struct {
	keys   []string
	values map[string]Node
}

func (Leaf) node()     {}
func (Sequence) node() {}
func (*Mapping) node() {}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{}
}

// Set stores value under key. Setting an existing key replaces its value
// but keeps the key at its original position.
func (m *Mapping) Set(key string, value Node) {
	if m.values == nil {
		m.values = make(map[string]Node)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Each calls fn for every entry in insertion order.
func (m *Mapping) Each(fn func(key string, value Node)) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// MarshalJSON encodes the mapping as a JSON object with keys in insertion order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalNode(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	n, err := DecodeNode(data)
	if err != nil {
		return err
	}
	mm, ok := n.(*Mapping)
	if !ok {
		return Errorf(EINVALID, "expected JSON object")
	}
	*m = *mm
	return nil
}

func marshalNode(n Node) ([]byte, error) {
	switch v := n.(type) {
	case nil:
		return []byte("null"), nil
	case Leaf:
		return json.Marshal(string(v))
	case Sequence:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := marshalNode(item)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case *Mapping:
		return v.MarshalJSON()
	default:
		return nil, fmt.Errorf("unknown node type %T", n)
	}
}

// MarshalNode encodes any node as JSON. A nil node encodes as null.
func MarshalNode(n Node) ([]byte, error) {
	return marshalNode(n)
}

// DecodeNode parses JSON into a node tree. Objects become *Mapping with
// their key order preserved, arrays become Sequence and strings become
// Leaf. Numbers and booleans become a Leaf of their literal text; null
// becomes an empty Sequence.
func DecodeNode(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := decodeNode(dec)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid node JSON: %v", err)
	}
	if dec.More() {
		return nil, Errorf(EINVALID, "invalid node JSON: trailing data")
	}
	return n, nil
}

func decodeNode(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			m := NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T", keyTok)
				}
				value, err := decodeNode(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			seq := Sequence{}
			for dec.More() {
				item, err := decodeNode(dec)
				if err != nil {
					return nil, err
				}
				seq = append(seq, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return seq, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", v)
	case string:
		return Leaf(v), nil
	case json.Number:
		return Leaf(v.String()), nil
	case bool:
		return Leaf(fmt.Sprint(v)), nil
	case nil:
		return Sequence{}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}
