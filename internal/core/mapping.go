package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Mapping records that the document at Old now lives at New.
type Mapping struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// LinkMappings is an append-only, ordered list of path mappings.
// It marshals as a JSON object whose keys keep insertion order.
type LinkMappings []Mapping

// Add appends a mapping.
func (m *LinkMappings) Add(oldPath, newPath string) {
	*m = append(*m, Mapping{Old: oldPath, New: newPath})
}

// MarshalJSON writes {"old": "new", ...} in insertion order.
func (m LinkMappings) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, mp := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(mp.Old)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(mp.New)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object written by MarshalJSON, keeping key order.
func (m *LinkMappings) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	var out LinkMappings
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		k, ok := kt.(string)
		if !ok {
			return fmt.Errorf("mappings: unexpected token %v", kt)
		}
		var v string
		if err := dec.Decode(&v); err != nil {
			return err
		}
		out.Add(k, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}
