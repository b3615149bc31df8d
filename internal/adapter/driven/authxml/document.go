// Package authxml implements the RecordStore port over an XML auth document
// using antchfx/xmlquery.
//
// The document lists one <domain> element per host:
//
//	<auth xmlns="https://phar.io/auth">
//	  <domain host="api.github.com" type="Token" credentials="..."/>
//	  <domain host="example.org" type="Basic" username="bob" password="..."/>
//	</auth>
package authxml

import (
	"fmt"
	"io"
	"os"

	"github.com/antchfx/xmlquery"

	"github.com/ericfisherdev/hostauth/internal/domain/model"
	"github.com/ericfisherdev/hostauth/internal/domain/port/driven"
)

// domainQuery selects every domain element regardless of depth or namespace
// prefix. Host filtering happens in Go so the domain never has to be quoted
// into XPath.
const domainQuery = "//*[local-name()='domain']"

// Compile-time interface satisfaction checks.
var (
	_ driven.RecordStore = (*Document)(nil)
	_ driven.HostLister  = (*Document)(nil)
)

// Document is a parsed, read-only auth document.
type Document struct {
	domains []*xmlquery.Node
	path    string
}

// Load reads and parses the auth document at path. A missing file yields an
// error satisfying errors.Is(err, os.ErrNotExist).
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open auth document: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.path = path
	return doc, nil
}

// Parse parses an auth document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse auth document: %w", err)
	}

	nodes, err := xmlquery.QueryAll(root, domainQuery)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", domainQuery, err)
	}

	return &Document{domains: nodes}, nil
}

// Path returns the file the document was loaded from, or "" when parsed
// from a reader.
func (d *Document) Path() string { return d.path }

// FindRecord returns the first domain element whose host attribute equals
// domain.
func (d *Document) FindRecord(domain string) (model.Record, bool) {
	for _, n := range d.domains {
		if host, ok := attr(n, model.AttrHost); ok && host == domain {
			return element{node: n}, true
		}
	}
	return nil, false
}

// Hosts lists the host attribute of every domain element in document order.
func (d *Document) Hosts() []string {
	seen := make(map[string]struct{}, len(d.domains))
	hosts := make([]string, 0, len(d.domains))
	for _, n := range d.domains {
		host, ok := attr(n, model.AttrHost)
		if !ok {
			continue
		}
		if _, dup := seen[host]; dup {
			continue
		}
		seen[host] = struct{}{}
		hosts = append(hosts, host)
	}
	return hosts
}

// element adapts a domain element to model.Record.
type element struct {
	node *xmlquery.Node
}

func (e element) HasAttribute(name string) bool {
	_, ok := attr(e.node, name)
	return ok
}

func (e element) GetAttribute(name string) string {
	v, _ := attr(e.node, name)
	return v
}

// attr looks up an unprefixed attribute by local name. Presence is tracked
// separately from the value so host="" differs from a missing host.
func attr(n *xmlquery.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
