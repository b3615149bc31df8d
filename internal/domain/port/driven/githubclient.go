package driven

import (
	"context"
)

// GitHubVerifier defines the driven port for checking that the credentials
// configured for the GitHub API host are accepted by GitHub.
type GitHubVerifier interface {
	// Verify performs an authenticated request and returns the login of the
	// account the credentials belong to.
	Verify(ctx context.Context) (login string, err error)
}
