package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/persistorai/tenantadmin/client"
)

// Build-time variables set via ldflags.
var (
	version   = "1.0.0"
	commit    = ""
	buildDate = ""
)

const defaultURL = "http://localhost:3030"

var (
	apiClient *client.Client
	flagURL   string
	flagToken string
	flagFmt   string
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("tenantadmin version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("tenantadmin version %s-dev", version)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tenantadmin",
		Short:   "Command line console for multi-tenant user administration",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
			var opts []client.Option
			if flagToken != "" {
				opts = append(opts, client.WithToken(flagToken))
			}
			apiClient = client.New(flagURL, opts...)
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "Server URL (env: TENANTADMIN_URL)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Bearer token (env: TENANTADMIN_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table|quiet")

	doctorCmd := newDoctorCmd()
	doctorCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) { resolveConfig() }

	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newRoleCmd())
	rootCmd.AddCommand(newOrgCmd())
	rootCmd.AddCommand(newTenantCmd())
	rootCmd.AddCommand(newPrivilegeCmd())
	rootCmd.AddCommand(newLegalEntityCmd())
	rootCmd.AddCommand(newAuditCmd())
	rootCmd.AddCommand(newReportCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
