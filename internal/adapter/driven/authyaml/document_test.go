package authyaml_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/hostauth/internal/adapter/driven/authyaml"
)

const sampleDoc = `
domains:
  - host: gitlab.example.com
    type: Bearer
    credentials: glpat-abc
  - host: example.org
    type: Basic
    username: bob
    password: 1234
    credentials: ~
  - host: gitlab.example.com
    type: Token
    credentials: duplicate
`

func TestParse(t *testing.T) {
	set, err := authyaml.Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	rec, ok := set.FindRecord("gitlab.example.com")
	require.True(t, ok)
	assert.Equal(t, "Bearer", rec.GetAttribute("type"), "first entry wins")
	assert.Equal(t, "glpat-abc", rec.GetAttribute("credentials"))

	rec, ok = set.FindRecord("example.org")
	require.True(t, ok)
	assert.Equal(t, "1234", rec.GetAttribute("password"), "numeric scalars keep their literal text")
	assert.False(t, rec.HasAttribute("credentials"), "null counts as absent")

	assert.Equal(t, []string{"gitlab.example.com", "example.org"}, set.Hosts())
}

func TestParse_Empty(t *testing.T) {
	set, err := authyaml.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{
			name:    "missing host",
			doc:     "domains:\n  - type: Token\n    credentials: x\n",
			wantMsg: "missing host",
		},
		{
			name:    "nested value",
			doc:     "domains:\n  - host: a\n    credentials:\n      - x\n",
			wantMsg: `"credentials" must be a string`,
		},
		{
			name:    "entry not a mapping",
			doc:     "domains:\n  - just-a-string\n",
			wantMsg: "expected a mapping",
		},
		{
			name:    "syntax error",
			doc:     "domains: [unterminated\n",
			wantMsg: "parse auth document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authyaml.Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o600))

	set, err := authyaml.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())

	_, err = authyaml.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
