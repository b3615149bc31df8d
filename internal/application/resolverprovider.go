package application

import (
	"sync"

	"github.com/ericfisherdev/hostauth/internal/domain/model"
	"github.com/ericfisherdev/hostauth/internal/domain/port/driven"
)

// ResolverProvider enables runtime hot-swap of the record snapshot behind a
// resolver. It holds a mutex-protected reference to the current
// CredentialResolver and its store, so a reloaded configuration takes effect
// without restarting the application. Each call resolves against a single
// snapshot; a swap never mixes records from two snapshots.
type ResolverProvider struct {
	mu       sync.RWMutex
	resolver *CredentialResolver
	store    driven.RecordStore
}

// NewResolverProvider creates a provider with the given initial resolver
// and the store it was built from.
func NewResolverProvider(resolver *CredentialResolver, store driven.RecordStore) *ResolverProvider {
	return &ResolverProvider{resolver: resolver, store: store}
}

// Get returns the current resolver.
func (p *ResolverProvider) Get() *CredentialResolver {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.resolver
}

// Replace swaps the current resolver and store with new ones. The next
// caller of Get, HasCredentials or Resolve sees the new snapshot.
func (p *ResolverProvider) Replace(resolver *CredentialResolver, store driven.RecordStore) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resolver = resolver
	p.store = store
}

// HasCredentials delegates to the current resolver.
func (p *ResolverProvider) HasCredentials(domain string) bool {
	return p.Get().HasCredentials(domain)
}

// Resolve delegates to the current resolver.
func (p *ResolverProvider) Resolve(domain string) (model.Credential, error) {
	return p.Get().Resolve(domain)
}

// Hosts lists the hosts of the current store when it implements
// driven.HostLister, and an empty slice otherwise.
func (p *ResolverProvider) Hosts() []string {
	p.mu.RLock()
	store := p.store
	p.mu.RUnlock()

	if lister, ok := store.(driven.HostLister); ok {
		return lister.Hosts()
	}
	return []string{}
}
