// hostauth resolves the credentials configured for a network domain.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/hostauth/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "hostauth",
	Short: "Resolve per-domain credentials from auth.xml, auth.yaml, the environment and an encrypted database.",
	Long: `hostauth looks up the authentication record configured for a domain,
validates it for its declared scheme (Basic, Token or Bearer) and reports the
credential that would be applied to requests sent to that domain.

Sources are consulted in order; the first one with a record wins:
  1. well-known environment tokens (GITHUB_AUTH_TOKEN, GITLAB_AUTH_TOKEN)
  2. the XML auth document (HOSTAUTH_AUTH_XML)
  3. the YAML auth document (HOSTAUTH_AUTH_YAML)
  4. the encrypted SQLite table (HOSTAUTH_DB_PATH + HOSTAUTH_SECRET_KEY)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(checkCmd, headerCmd, githubVerifyCmd, serveCmd, versionCmd)
	_ = godotenv.Load()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads configuration and installs the default logger at the
// configured level. Logs go to stderr so command output stays scriptable.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	return cfg, nil
}
