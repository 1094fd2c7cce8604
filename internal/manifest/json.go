package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonCodec rewrites JSON manifests with two-space indentation and a
// trailing newline, keeping top-level keys in their original order.
type jsonCodec struct{}

type jsonMember struct {
	key   string
	value json.RawMessage
}

func (jsonCodec) version(data []byte) (string, error) {
	members, err := decodeJSONObject(data)
	if err != nil {
		return "", err
	}
	for _, m := range members {
		if m.key != "version" {
			continue
		}
		var v string
		if err := json.Unmarshal(m.value, &v); err != nil {
			return "", ErrVersionNotString
		}
		return v, nil
	}
	return "", ErrNoVersion
}

func (c jsonCodec) setVersion(data []byte, version string) ([]byte, error) {
	members, err := decodeJSONObject(data)
	if err != nil {
		return nil, err
	}

	encoded, err := marshalNoEscape(version)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range members {
		if members[i].key == "version" {
			members[i].value = encoded
			found = true
		}
	}
	if !found {
		return nil, ErrNoVersion
	}

	return encodeJSONObject(members)
}

// decodeJSONObject reads a top-level JSON object as an ordered member list.
// A repeated key keeps its first position and takes its last value, the way
// JavaScript object literals and JSON.parse resolve duplicates.
func decodeJSONObject(data []byte) ([]jsonMember, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("invalid JSON: top-level value must be an object")
	}

	var members []jsonMember
	index := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("invalid JSON: expected object key")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid JSON value for %q: %w", key, err)
		}
		if i, seen := index[key]; seen {
			members[i].value = raw
			continue
		}
		index[key] = len(members)
		members = append(members, jsonMember{key: key, value: raw})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return members, nil
}

func encodeJSONObject(members []jsonMember) ([]byte, error) {
	if len(members) == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, m := range members {
		key, err := marshalNoEscape(m.key)
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		if err := json.Indent(&buf, m.value, "  ", "  "); err != nil {
			return nil, fmt.Errorf("formatting %q: %w", m.key, err)
		}
		if i < len(members)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// marshalNoEscape encodes v without HTML escaping, matching JSON.stringify.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
