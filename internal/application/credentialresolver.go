// Package application contains use-case orchestration services.
package application

import (
	"log/slog"

	"github.com/ericfisherdev/hostauth/internal/domain/model"
	"github.com/ericfisherdev/hostauth/internal/domain/port/driven"
)

// CredentialResolver turns the authentication record configured for a domain
// into a typed credential. It holds no mutable state, so a single resolver
// may be shared by any number of goroutines as long as the store is a
// read-only snapshot.
type CredentialResolver struct {
	store  driven.RecordStore
	logger *slog.Logger
}

// NewCredentialResolver creates a resolver over store. A nil logger falls
// back to slog.Default().
func NewCredentialResolver(store driven.RecordStore, logger *slog.Logger) *CredentialResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &CredentialResolver{store: store, logger: logger}
}

// HasCredentials reports whether the store holds a record for domain. A record
// that would fail resolution still counts.
func (r *CredentialResolver) HasCredentials(domain string) bool {
	_, ok := r.store.FindRecord(domain)
	return ok
}

// Resolve returns the credential configured for domain. Failures are always
// an *model.AuthError wrapping one of model.ErrNotConfigured,
// model.ErrInvalidRecord or model.ErrUnsupportedScheme.
func (r *CredentialResolver) Resolve(domain string) (model.Credential, error) {
	cred, err := r.resolve(domain)
	if err != nil {
		r.logger.Debug("credential resolution failed", "domain", domain, "error", err)
		return nil, err
	}
	r.logger.Debug("credential resolved", "domain", domain, "scheme", cred.Scheme())
	return cred, nil
}

func (r *CredentialResolver) resolve(domain string) (model.Credential, error) {
	rec, ok := r.store.FindRecord(domain)
	if !ok {
		return nil, model.NewAuthError(domain, "", model.ErrNotConfigured)
	}

	if !rec.HasAttribute(model.AttrType) {
		return nil, model.NewAuthError(domain, "", model.ErrInvalidRecord)
	}
	tag := rec.GetAttribute(model.AttrType)

	switch model.Scheme(tag) {
	case model.SchemeBasic:
		return resolveBasic(domain, rec)
	case model.SchemeToken:
		creds, ok := nonEmpty(rec, model.AttrCredentials)
		if !ok {
			return nil, model.NewAuthError(domain, tag, model.ErrInvalidRecord)
		}
		return model.NewTokenCredential(domain, creds), nil
	case model.SchemeBearer:
		creds, ok := nonEmpty(rec, model.AttrCredentials)
		if !ok {
			return nil, model.NewAuthError(domain, tag, model.ErrInvalidRecord)
		}
		return model.NewBearerCredential(domain, creds), nil
	default:
		return nil, model.NewAuthError(domain, tag, model.ErrUnsupportedScheme)
	}
}

// resolveBasic prefers the username/password pair over the pre-encoded
// credentials attribute. A username containing ':' disqualifies the pair and
// falls through to credentials rather than failing.
func resolveBasic(domain string, rec model.Record) (model.Credential, error) {
	username, hasUser := nonEmpty(rec, model.AttrUsername)
	password, hasPass := nonEmpty(rec, model.AttrPassword)
	if hasUser && hasPass {
		// NewBasicFromLogin rejects a ':' in the username only.
		if cred, err := model.NewBasicFromLogin(domain, username, password); err == nil {
			return cred, nil
		}
	}

	if creds, ok := nonEmpty(rec, model.AttrCredentials); ok {
		return model.NewBasicFromEncoded(domain, creds), nil
	}

	return nil, model.NewAuthError(domain, string(model.SchemeBasic), model.ErrInvalidRecord)
}

// nonEmpty returns the named attribute when it is present and not empty.
func nonEmpty(rec model.Record, name string) (string, bool) {
	if !rec.HasAttribute(name) {
		return "", false
	}
	v := rec.GetAttribute(name)
	return v, v != ""
}
