package params

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type manifest struct {
	Sections []manifestSection `yaml:"sections"`
}

type manifestSection struct {
	Section string           `yaml:"section"`
	Params  []manifestRecord `yaml:"params"`
}

type manifestRecord struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Value       yaml.Node `yaml:"value"`
}

// LoadFile reads a parameter manifest from disk.
func LoadFile(path string) (Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read parameter manifest: %w", err)
	}
	group, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return group, nil
}

// Parse decodes a YAML manifest of the form
//
//	sections:
//	  - section: General
//	    params:
//	      - name: image.tag
//	        description: Image tag
//	        value: latest
//
// Scalar values are kept as written, null becomes the empty string and
// collections are rendered as compact JSON.
func Parse(data []byte) (Group, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse parameter manifest: %w", err)
	}

	group := make(Group, 0, len(m.Sections))
	for i, ms := range m.Sections {
		title := strings.TrimSpace(ms.Section)
		if title == "" {
			return nil, fmt.Errorf("section #%d has no title", i+1)
		}
		sec := Section{Title: title, Params: make([]Record, 0, len(ms.Params))}
		for j, mr := range ms.Params {
			name := strings.TrimSpace(mr.Name)
			if name == "" {
				return nil, fmt.Errorf("section %q: parameter #%d has no name", title, j+1)
			}
			value, err := nodeValue(&mr.Value)
			if err != nil {
				return nil, fmt.Errorf("section %q: parameter %q: %w", title, name, err)
			}
			rec := Record{
				Name:        name,
				Description: strings.TrimSpace(mr.Description),
				Value:       value,
			}
			if strings.ContainsAny(rec.Description, "\r\n") || strings.ContainsAny(rec.Value, "\r\n") {
				return nil, fmt.Errorf("section %q: parameter %q: multi-line description or value cannot be rendered in a table row", title, name)
			}
			sec.Params = append(sec.Params, rec)
		}
		group = append(group, sec)
	}
	return group, nil
}

func nodeValue(n *yaml.Node) (string, error) {
	switch n.Kind {
	case 0:
		return "", nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "", nil
		}
		return n.Value, nil
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	}

	var v any
	if err := n.Decode(&v); err != nil {
		return "", err
	}
	out, err := json.Marshal(normalize(v))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// normalize converts map[any]any produced for non-string keys so the value
// can be JSON encoded.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	}
	return v
}
