package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Parse decodes a rules document, keeping category keys in document order.
// A repeated category key keeps its first position and its last value.
func Parse(data []byte) (*Rules, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{', "top-level value must be an object"); err != nil {
		return nil, err
	}

	out := &Rules{ScriptName: DefaultScriptName}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		switch key {
		case "categories":
			table, err := parseCategories(dec)
			if err != nil {
				return nil, err
			}
			out.Table = table
		case "script_name":
			var name *string
			if err := dec.Decode(&name); err != nil {
				return nil, fmt.Errorf("script_name: %w", err)
			}
			if name != nil {
				out.ScriptName = *name
			}
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, errors.New("unexpected data after top-level object")
		}
		return nil, err
	}
	return out, nil
}

func parseCategories(dec *json.Decoder) (Table, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("categories must be an object of category name to extension list")
	}

	var table Table
	index := map[string]int{}
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		var extensions []string
		if err := dec.Decode(&extensions); err != nil {
			return nil, fmt.Errorf("categories.%s: extensions must be a list of strings: %w", name, err)
		}
		if pos, seen := index[name]; seen {
			table[pos].Extensions = extensions
			continue
		}
		index[name] = len(table)
		table = append(table, Category{Name: name, Extensions: extensions})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return table, nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim, msg string) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty document")
		}
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return errors.New(msg)
	}
	return nil
}
