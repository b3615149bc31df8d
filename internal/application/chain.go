package application

import (
	"github.com/ericfisherdev/hostauth/internal/domain/model"
	"github.com/ericfisherdev/hostauth/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.RecordStore = (*StoreChain)(nil)
	_ driven.HostLister  = (*StoreChain)(nil)
)

// StoreChain consults several record stores in order. The first store that
// has a record for a domain wins, even when a later store also has one.
type StoreChain struct {
	stores []driven.RecordStore
}

// ChainStores creates a StoreChain over stores. Nil stores are skipped.
func ChainStores(stores ...driven.RecordStore) *StoreChain {
	c := &StoreChain{stores: make([]driven.RecordStore, 0, len(stores))}
	for _, s := range stores {
		if s != nil {
			c.stores = append(c.stores, s)
		}
	}
	return c
}

// FindRecord returns the record from the first store that has one.
func (c *StoreChain) FindRecord(domain string) (model.Record, bool) {
	for _, s := range c.stores {
		if rec, ok := s.FindRecord(domain); ok {
			return rec, true
		}
	}
	return nil, false
}

// Hosts merges the hosts of every store implementing driven.HostLister,
// keeping first-seen order.
func (c *StoreChain) Hosts() []string {
	seen := make(map[string]struct{})
	hosts := []string{}
	for _, s := range c.stores {
		lister, ok := s.(driven.HostLister)
		if !ok {
			continue
		}
		for _, h := range lister.Hosts() {
			if _, dup := seen[h]; dup {
				continue
			}
			seen[h] = struct{}{}
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// Len returns the number of stores in the chain.
func (c *StoreChain) Len() int { return len(c.stores) }
