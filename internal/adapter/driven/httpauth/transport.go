// Package httpauth applies resolved domain credentials to outgoing HTTP
// requests.
package httpauth

import (
	"fmt"
	"net/http"

	"github.com/ericfisherdev/hostauth/internal/domain/model"
)

// CredentialSource is the subset of application.CredentialResolver the
// transport needs.
type CredentialSource interface {
	HasCredentials(domain string) bool
	Resolve(domain string) (model.Credential, error)
}

// Transport is an http.RoundTripper that sets the Authorization header for
// hosts with configured credentials. Hosts without a record pass through
// unchanged; a host whose record fails resolution aborts the request, so a
// request is never sent without the credential its host expects.
type Transport struct {
	source CredentialSource
	base   http.RoundTripper
}

// NewTransport creates a Transport resolving credentials from source. A nil
// base uses http.DefaultTransport.
func NewTransport(source CredentialSource, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{source: source, base: base}
}

// RoundTrip implements http.RoundTripper. Requests that already carry an
// Authorization header are forwarded untouched.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Authorization") != "" {
		return t.base.RoundTrip(req)
	}

	host := req.URL.Hostname()
	if !t.source.HasCredentials(host) {
		return t.base.RoundTrip(req)
	}

	cred, err := t.source.Resolve(host)
	if err != nil {
		closeBody(req)
		return nil, fmt.Errorf("authenticate %s: %w", host, err)
	}

	// RoundTrippers must not modify the caller's request.
	authed := req.Clone(req.Context())
	authed.Header.Set("Authorization", cred.AuthorizationHeader())
	return t.base.RoundTrip(authed)
}

// closeBody honours the RoundTripper contract of closing the body on error.
func closeBody(req *http.Request) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
}

// Client returns an http.Client using t.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}
