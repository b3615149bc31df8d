// Package github implements the GitHubVerifier port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/hostauth/internal/adapter/driven/httpauth"
	"github.com/ericfisherdev/hostauth/internal/domain/port/driven"
)

// APIHost is the domain whose credentials authenticate GitHub API calls.
const APIHost = "api.github.com"

// Compile-time interface satisfaction check.
var _ driven.GitHubVerifier = (*Verifier)(nil)

// Verifier implements driven.GitHubVerifier.
type Verifier struct {
	gh     *gh.Client
	domain string
	source httpauth.CredentialSource
}

// NewVerifier creates a Verifier for api.github.com with the following
// transport stack:
//  1. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  2. httpcache (ETag-based conditional request caching)
//  3. httpauth (Authorization header from the resolved credential)
func NewVerifier(source httpauth.CredentialSource) *Verifier {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	cacheTransport.Transport = httpauth.NewTransport(source, nil)
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)

	return &Verifier{
		gh:     gh.NewClient(rateLimitClient),
		domain: APIHost,
		source: source,
	}
}

// NewVerifierWithHTTPClient creates a Verifier with a custom http.Client and
// base URL. The client is expected to apply credentials itself; the domain
// checked against source is the base URL's host. Intended for testing with an
// httptest server.
func NewVerifierWithHTTPClient(httpClient *http.Client, baseURL string, source httpauth.CredentialSource) (*Verifier, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Verifier{gh: client, domain: u.Hostname(), source: source}, nil
}

// Verify resolves the configured credential, then calls GET /user. Resolution
// failures are returned before any request is made.
func (v *Verifier) Verify(ctx context.Context) (string, error) {
	cred, err := v.source.Resolve(v.domain)
	if err != nil {
		return "", err
	}

	user, resp, err := v.gh.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("verifying %s credentials for %s: %w", cred.Scheme(), v.domain, err)
	}

	if resp != nil {
		slog.Debug("github rate limit",
			"remaining", resp.Rate.Remaining,
			"limit", resp.Rate.Limit,
			"reset", resp.Rate.Reset.Time,
		)
	}

	return user.GetLogin(), nil
}
