package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	pdl "github.com/peopledatalabs/peopledatalabs-go"
)

// parseSection maps a command line section name to a Section. "none" and
// the empty string select the global operations.
func parseSection(name string) (pdl.Section, error) {
	switch name {
	case "", "none":
		return pdl.SectionNone, nil
	}
	for _, s := range pdl.Sections() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", pdl.Errorf(pdl.CodeInvalidEndpoint, "unknown section %q", name).
		WithDetail("section", name)
}

// parseParams turns key=value and key:=<json> arguments into Params.
// Repeating a key=value argument builds a list.
func parseParams(args []string) (pdl.Params, error) {
	values := url.Values{}
	typed := pdl.Params{}
	for _, arg := range args {
		if key, raw, ok := strings.Cut(arg, ":="); ok && key != "" && !strings.Contains(key, "=") {
			dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
			dec.UseNumber()
			var v any
			if err := dec.Decode(&v); err != nil {
				return nil, fmt.Errorf("parameter %s: invalid JSON: %w", key, err)
			}
			typed[key] = v
			continue
		}
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("parameter %q: expected key=value or key:=<json>", arg)
		}
		values.Add(key, value)
	}

	params := pdl.ParamsFromValues(values)
	for k, v := range typed {
		if _, dup := params[k]; dup {
			return nil, fmt.Errorf("parameter %s given both as text and as JSON", k)
		}
		params[k] = v
	}
	return params, nil
}
