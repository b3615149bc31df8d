// Package authyaml loads authentication records from a YAML document.
//
//	domains:
//	  - host: gitlab.example.com
//	    type: Bearer
//	    credentials: glpat-xxxx
package authyaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/hostauth/internal/domain/model"
)

// document mirrors the top-level YAML layout. Entries are decoded as nodes so
// that only scalar values are accepted and key presence is preserved.
type document struct {
	Domains []yaml.Node `yaml:"domains"`
}

// Load reads the YAML auth document at path into a RecordSet. A missing file
// yields an error satisfying errors.Is(err, os.ErrNotExist).
func Load(path string) (*model.RecordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read auth document: %w", err)
	}

	set, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Parse decodes a YAML auth document from r. An empty document yields an
// empty RecordSet.
func Parse(r io.Reader) (*model.RecordSet, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse auth document: %w", err)
	}

	records := make([]model.AuthRecord, 0, len(doc.Domains))
	for i := range doc.Domains {
		rec, err := decodeEntry(&doc.Domains[i])
		if err != nil {
			return nil, fmt.Errorf("domains[%d]: %w", i, err)
		}
		records = append(records, rec)
	}

	return model.NewRecordSet(records...), nil
}

// decodeEntry converts one mapping node into an AuthRecord. Every key becomes
// an attribute; host is additionally used as the lookup key.
func decodeEntry(n *yaml.Node) (model.AuthRecord, error) {
	if n.Kind != yaml.MappingNode {
		return model.AuthRecord{}, fmt.Errorf("line %d: expected a mapping", n.Line)
	}

	attrs := make(map[string]string, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return model.AuthRecord{}, fmt.Errorf("line %d: %q must be a string", val.Line, key.Value)
		}
		if val.Tag == "!!null" {
			continue
		}
		attrs[key.Value] = val.Value
	}

	host, ok := attrs[model.AttrHost]
	if !ok || host == "" {
		return model.AuthRecord{}, fmt.Errorf("line %d: missing host", n.Line)
	}

	return model.AuthRecord{Host: host, Attributes: attrs}, nil
}
