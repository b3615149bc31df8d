package model

// Record attribute names understood by the resolver.
const (
	AttrHost        = "host"
	AttrType        = "type"
	AttrUsername    = "username"
	AttrPassword    = "password"
	AttrCredentials = "credentials"
)

// Record is the raw attribute set retrieved for one domain. It lives only for
// the duration of a single resolution.
type Record interface {
	HasAttribute(name string) bool
	GetAttribute(name string) string
}

// AuthRecord is an in-memory attribute set for one domain. Attributes that
// are absent from the map are reported as missing, which is different from an
// attribute present with an empty value.
type AuthRecord struct {
	Host       string
	Attributes map[string]string
}

// HasAttribute reports whether the record carries the named attribute.
func (r AuthRecord) HasAttribute(name string) bool {
	_, ok := r.Attributes[name]
	return ok
}

// GetAttribute returns the named attribute, or "" when absent.
func (r AuthRecord) GetAttribute(name string) string {
	return r.Attributes[name]
}

// RecordSet is an ordered, read-only collection of records. Lookups return
// the first record whose Host matches exactly.
type RecordSet struct {
	records []AuthRecord
}

// NewRecordSet copies records into a new RecordSet. The attribute maps are
// shared, so callers must not modify them afterwards.
func NewRecordSet(records ...AuthRecord) *RecordSet {
	return &RecordSet{records: append([]AuthRecord(nil), records...)}
}

// Find returns the first record for domain.
func (s *RecordSet) Find(domain string) (AuthRecord, bool) {
	if s == nil {
		return AuthRecord{}, false
	}
	for _, r := range s.records {
		if r.Host == domain {
			return r, true
		}
	}
	return AuthRecord{}, false
}

// FindRecord returns the first record for domain as a Record.
func (s *RecordSet) FindRecord(domain string) (Record, bool) {
	r, ok := s.Find(domain)
	if !ok {
		return nil, false
	}
	return r, true
}

// Hosts lists record hosts in insertion order, without duplicates.
func (s *RecordSet) Hosts() []string {
	if s == nil {
		return []string{}
	}
	seen := make(map[string]struct{}, len(s.records))
	hosts := make([]string, 0, len(s.records))
	for _, r := range s.records {
		if _, dup := seen[r.Host]; dup {
			continue
		}
		seen[r.Host] = struct{}{}
		hosts = append(hosts, r.Host)
	}
	return hosts
}

// Len returns the number of records, duplicates included.
func (s *RecordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}
