package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/persistorai/tenantadmin/client"
)

func newLoginCmd() *cobra.Command {
	var username, password, tenantID string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Long:  "Log in as the console administrator. The token is saved to ~/.tenantadmin/config.yaml.",
		Run: func(cmd *cobra.Command, args []string) {
			if password == "" {
				password = os.Getenv("TENANTADMIN_PASSWORD")
			}
			if password == "" {
				fmt.Fprint(os.Stderr, "Password: ")
				line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
				password = strings.TrimSpace(line)
			}
			resp, err := apiClient.Auth.Login(context.Background(), &client.LoginRequest{
				Username: username,
				Password: password,
				TenantID: tenantID,
			})
			if err != nil {
				fatal("login", err)
			}
			cfgPath, err := saveSession(flagURL, resp.Token)
			if err != nil {
				fatal("save session", err)
			}
			if flagFmt == "quiet" {
				fmt.Println(resp.Token)
				return
			}
			fmt.Fprintf(os.Stderr, "Logged in to %s as %s (session saved to %s, expires %s)\n",
				resp.User.TenantID, resp.User.Username, cfgPath, resp.ExpiresAt.Local().Format("2006-01-02 15:04"))
		},
	}
	cmd.Flags().StringVar(&username, "username", "admin@system.com", "Administrator username")
	cmd.Flags().StringVar(&password, "password", "", "Password (env: TENANTADMIN_PASSWORD; prompted when empty)")
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant to administer (server default when empty)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored token",
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Auth.Logout(context.Background()); err != nil && !client.IsUnauthorized(err) {
				fatal("logout", err)
			}
			if _, err := saveSession(flagURL, ""); err != nil {
				fatal("clear session", err)
			}
			fmt.Println("logged out")
		},
	}
}
