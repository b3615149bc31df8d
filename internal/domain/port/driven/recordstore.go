package driven

import (
	"errors"

	"github.com/ericfisherdev/hostauth/internal/domain/model"
)

// ErrEncryptionKeyNotSet is returned by encrypted record stores when
// HOSTAUTH_SECRET_KEY has not been configured.
var ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set HOSTAUTH_SECRET_KEY")

// RecordStore defines the driven port for per-domain authentication records.
// Implementations are read-only snapshots; FindRecord never blocks and is
// safe for concurrent use.
type RecordStore interface {
	// FindRecord returns the first record whose host equals domain.
	// ok is false when the store has no record for domain.
	FindRecord(domain string) (rec model.Record, ok bool)
}

// HostLister is implemented by stores that can enumerate their hosts.
type HostLister interface {
	// Hosts returns configured hosts in store order without duplicates.
	Hosts() []string
}
