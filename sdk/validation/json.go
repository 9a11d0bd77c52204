package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrEmptyBody   = errors.New("body is empty")
	ErrNotAnObject = errors.New("body is not a json object")
	ErrWrongType   = errors.New("wrong json type")
)

// JSONObject parses data as a JSON object and returns its members undecoded so
// callers can check each member's type before trusting any of them. Empty
// input and an empty object both report ErrEmptyBody.
func JSONObject(data []byte) (map[string]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyBody
	}
	if data[0] != '{' {
		return nil, ErrNotAnObject
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}
	if len(obj) == 0 {
		return nil, ErrEmptyBody
	}
	return obj, nil
}

// JSONString decodes raw as a JSON string. null is not a string.
func JSONString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", fmt.Errorf("%w: want string, got %s", ErrWrongType, kind(raw))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrongType, err)
	}
	return s, nil
}

// JSONBool decodes raw as a JSON boolean. Strings such as "true" are rejected.
func JSONBool(raw json.RawMessage) (bool, error) {
	switch string(bytes.TrimSpace(raw)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: want bool, got %s", ErrWrongType, kind(raw))
}

// IsNull reports whether raw is the JSON literal null.
func IsNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func kind(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "nothing"
	}
	switch raw[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
