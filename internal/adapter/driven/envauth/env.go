// Package envauth builds authentication records from well-known environment
// variables such as GITHUB_AUTH_TOKEN.
package envauth

import (
	"os"

	"github.com/ericfisherdev/hostauth/internal/domain/model"
)

// Binding maps an environment variable to the record it produces.
type Binding struct {
	Variable string
	Host     string
	Scheme   model.Scheme
}

// DefaultBindings are consulted by FromEnv.
var DefaultBindings = []Binding{
	{Variable: "GITHUB_AUTH_TOKEN", Host: "api.github.com", Scheme: model.SchemeToken},
	{Variable: "GITLAB_AUTH_TOKEN", Host: "gitlab.com", Scheme: model.SchemeBearer},
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// FromEnv snapshots DefaultBindings from the process environment.
func FromEnv() *model.RecordSet {
	return FromLookup(os.LookupEnv, DefaultBindings)
}

// FromLookup builds a RecordSet from bindings using lookup. Unset and empty
// variables produce no record.
func FromLookup(lookup LookupFunc, bindings []Binding) *model.RecordSet {
	records := make([]model.AuthRecord, 0, len(bindings))
	for _, b := range bindings {
		v, ok := lookup(b.Variable)
		if !ok || v == "" {
			continue
		}
		records = append(records, model.AuthRecord{
			Host: b.Host,
			Attributes: map[string]string{
				model.AttrHost:        b.Host,
				model.AttrType:        string(b.Scheme),
				model.AttrCredentials: v,
			},
		})
	}
	return model.NewRecordSet(records...)
}
