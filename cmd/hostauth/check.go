package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	githubadapter "github.com/ericfisherdev/hostauth/internal/adapter/driven/github"
)

var checkCmd = &cobra.Command{
	Use:   "check DOMAIN",
	Short: "Report whether DOMAIN has valid credentials and their scheme",
	Long: `Resolve the credentials configured for DOMAIN and print the scheme.
Exits non-zero when no record exists or the record is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var headerCmd = &cobra.Command{
	Use:   "header DOMAIN",
	Short: "Print the Authorization header value for DOMAIN",
	Args:  cobra.ExactArgs(1),
	RunE:  runHeader,
}

var githubVerifyCmd = &cobra.Command{
	Use:   "github-verify",
	Short: "Verify the api.github.com credentials against GitHub",
	Args:  cobra.NoArgs,
	RunE:  runGitHubVerify,
}

var verifyTimeout time.Duration

func init() {
	githubVerifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 15*time.Second, "request timeout")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	provider, err := newProvider(cmd.Context(), cfg, slog.Default())
	if err != nil {
		return err
	}

	cred, err := provider.Resolve(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cred)
	return nil
}

func runHeader(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	provider, err := newProvider(cmd.Context(), cfg, slog.Default())
	if err != nil {
		return err
	}

	cred, err := provider.Resolve(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cred.AuthorizationHeader())
	return nil
}

func runGitHubVerify(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	provider, err := newProvider(cmd.Context(), cfg, slog.Default())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), verifyTimeout)
	defer cancel()

	login, err := githubadapter.NewVerifier(provider).Verify(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s credentials belong to %s\n", githubadapter.APIHost, login)
	return nil
}
