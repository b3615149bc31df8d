package envauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/hostauth/internal/application"
	"github.com/ericfisherdev/hostauth/internal/domain/model"
)

func mapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup(t *testing.T) {
	set := FromLookup(mapLookup(map[string]string{
		"GITHUB_AUTH_TOKEN": "ghp_env",
		"GITLAB_AUTH_TOKEN": "",
	}), DefaultBindings)

	assert.Equal(t, []string{"api.github.com"}, set.Hosts())

	r := application.NewCredentialResolver(set, nil)
	got, err := r.Resolve("api.github.com")
	require.NoError(t, err)
	assert.Equal(t, model.NewTokenCredential("api.github.com", "ghp_env"), got)

	assert.False(t, r.HasCredentials("gitlab.com"), "empty variables are ignored")
}

func TestFromLookup_GitLabIsBearer(t *testing.T) {
	set := FromLookup(mapLookup(map[string]string{"GITLAB_AUTH_TOKEN": "glpat"}), DefaultBindings)

	got, err := application.NewCredentialResolver(set, nil).Resolve("gitlab.com")
	require.NoError(t, err)
	assert.Equal(t, model.SchemeBearer, got.Scheme())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GITHUB_AUTH_TOKEN", "ghp_process")
	t.Setenv("GITLAB_AUTH_TOKEN", "")

	set := FromEnv()

	rec, ok := set.FindRecord("api.github.com")
	require.True(t, ok)
	assert.Equal(t, "ghp_process", rec.GetAttribute("credentials"))
	_, ok = set.FindRecord("gitlab.com")
	assert.False(t, ok)
}
