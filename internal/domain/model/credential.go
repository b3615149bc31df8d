package model

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Scheme identifies the authentication mechanism declared for a domain.
// Scheme tags are matched case-sensitively.
type Scheme string

const (
	SchemeBasic  Scheme = "Basic"
	SchemeToken  Scheme = "Token"
	SchemeBearer Scheme = "Bearer"
)

// ErrInvalidUsername is returned by NewBasicFromLogin when the username
// contains the ':' separator reserved by the user:pass encoding.
var ErrInvalidUsername = errors.New("username must not contain ':'")

// Credential is the resolved, immutable authentication payload for a domain.
// The set of implementations is closed: BasicCredential, TokenCredential and
// BearerCredential.
type Credential interface {
	// Domain returns the host the credential applies to.
	Domain() string
	// Scheme returns the authentication scheme of the credential.
	Scheme() Scheme
	// AuthorizationHeader returns the value for an HTTP Authorization header.
	AuthorizationHeader() string

	sealed()
}

// Compile-time interface satisfaction checks.
var (
	_ Credential = BasicCredential{}
	_ Credential = TokenCredential{}
	_ Credential = BearerCredential{}
)

// BasicCredential holds either a username/password pair or a pre-encoded
// credentials string. Exactly one of the two forms is populated.
type BasicCredential struct {
	domain   string
	username string
	password string
	encoded  string
}

// NewBasicFromLogin builds a Basic credential from a raw username and
// password. Encoding is deferred to AuthorizationHeader.
func NewBasicFromLogin(domain, username, password string) (BasicCredential, error) {
	if strings.Contains(username, ":") {
		return BasicCredential{}, ErrInvalidUsername
	}
	return BasicCredential{domain: domain, username: username, password: password}, nil
}

// NewBasicFromEncoded builds a Basic credential from an opaque string that is
// assumed to already be base64("user:pass").
func NewBasicFromEncoded(domain, credentials string) BasicCredential {
	return BasicCredential{domain: domain, encoded: credentials}
}

func (c BasicCredential) Domain() string { return c.domain }
func (c BasicCredential) Scheme() Scheme { return SchemeBasic }
func (BasicCredential) sealed()          {}

// Login returns the raw username and password. ok is false when the
// credential was built from a pre-encoded string.
func (c BasicCredential) Login() (username, password string, ok bool) {
	if c.encoded != "" {
		return "", "", false
	}
	return c.username, c.password, true
}

// Encoded returns the base64 user:pass form, computing it from the login pair
// when needed.
func (c BasicCredential) Encoded() string {
	if c.encoded != "" {
		return c.encoded
	}
	return base64.StdEncoding.EncodeToString([]byte(c.username + ":" + c.password))
}

func (c BasicCredential) AuthorizationHeader() string {
	return string(SchemeBasic) + " " + c.Encoded()
}

func (c BasicCredential) String() string {
	if c.encoded != "" {
		return fmt.Sprintf("Basic credentials for %s (pre-encoded)", c.domain)
	}
	return fmt.Sprintf("Basic credentials for %s (user %q)", c.domain, c.username)
}

// TokenCredential carries an opaque token sent with the "Token" scheme.
type TokenCredential struct {
	domain      string
	credentials string
}

// NewTokenCredential builds a Token credential for domain.
func NewTokenCredential(domain, credentials string) TokenCredential {
	return TokenCredential{domain: domain, credentials: credentials}
}

func (c TokenCredential) Domain() string      { return c.domain }
func (c TokenCredential) Scheme() Scheme      { return SchemeToken }
func (c TokenCredential) Credentials() string { return c.credentials }
func (TokenCredential) sealed()               {}

func (c TokenCredential) AuthorizationHeader() string {
	return string(SchemeToken) + " " + c.credentials
}

func (c TokenCredential) String() string {
	return "Token credentials for " + c.domain
}

// BearerCredential carries an opaque token sent with the "Bearer" scheme.
type BearerCredential struct {
	domain      string
	credentials string
}

// NewBearerCredential builds a Bearer credential for domain.
func NewBearerCredential(domain, credentials string) BearerCredential {
	return BearerCredential{domain: domain, credentials: credentials}
}

func (c BearerCredential) Domain() string      { return c.domain }
func (c BearerCredential) Scheme() Scheme      { return SchemeBearer }
func (c BearerCredential) Credentials() string { return c.credentials }
func (BearerCredential) sealed()               {}

func (c BearerCredential) AuthorizationHeader() string {
	return string(SchemeBearer) + " " + c.credentials
}

func (c BearerCredential) String() string {
	return "Bearer credentials for " + c.domain
}
