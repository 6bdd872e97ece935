package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/persistorai/tenantadmin/client"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users"},
		Short:   "Manage users",
	}
	cmd.AddCommand(userListCmd())
	cmd.AddCommand(userGetCmd())
	cmd.AddCommand(userCreateCmd())
	cmd.AddCommand(userAssignRoleCmd())
	cmd.AddCommand(userRemoveRoleCmd())
	cmd.AddCommand(userImportCmd())
	cmd.AddCommand(userExportCmd())
	cmd.AddCommand(userTemplateCmd())
	return cmd
}

func printUsers(users []client.User) {
	switch flagFmt {
	case "table":
		headers := []string{"ID", "USERNAME", "EMAIL", "STATUS", "ROLES"}
		rows := make([][]string, 0, len(users))
		for _, u := range users {
			rows = append(rows, []string{u.ID, u.Username, u.Email, u.Status, strings.Join(u.Roles, ",")})
		}
		formatTable(headers, rows)
	case "quiet":
		for _, u := range users {
			fmt.Println(u.ID)
		}
	default:
		formatJSON(users)
	}
}

func userListCmd() *cobra.Command {
	var search, status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Run: func(cmd *cobra.Command, args []string) {
			users, err := apiClient.Users.List(context.Background(), &client.ListOptions{Search: search, Status: status})
			if err != nil {
				fatal("list users", err)
			}
			printUsers(users)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Match username, email or name")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (active|inactive|pending|suspended|all)")
	return cmd
}

func userGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a user by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			u, err := apiClient.Users.Get(context.Background(), args[0])
			if err != nil {
				fatal("get user", err)
			}
			output(u, u.ID)
		},
	}
}

func userCreateCmd() *cobra.Command {
	var req client.CreateUserRequest
	var roles string
	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req.Username = args[0]
			req.Roles = splitList(roles)
			u, err := apiClient.Users.Create(context.Background(), &req)
			if err != nil {
				fatal("create user", err)
			}
			output(u, u.ID)
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&req.OrganizationID, "org", "", "Organization ID")
	cmd.Flags().StringVar(&req.Status, "status", "", "Initial status (default pending)")
	cmd.Flags().StringVar(&roles, "roles", "", "Comma-separated role IDs")
	return cmd
}

func userAssignRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign-role <user-id> <role-id>",
		Short: "Assign a role to a user",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			u, err := apiClient.Users.AssignRole(context.Background(), args[0], args[1])
			if err != nil {
				fatal("assign role", err)
			}
			output(u, u.ID)
		},
	}
}

func userRemoveRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-role <user-id> <role-id>",
		Short: "Remove a role from a user",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			u, err := apiClient.Users.RemoveRole(context.Background(), args[0], args[1])
			if err != nil {
				fatal("remove role", err)
			}
			output(u, u.ID)
		},
	}
}

func userImportCmd() *cobra.Command {
	var format string
	var commit bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Validate or import users from a CSV or XLSX file",
		Long:  "Validates every row of the file. With --commit the valid rows are created.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			data, err := os.ReadFile(args[0])
			if err != nil {
				fatal("read file", err)
			}
			res, err := apiClient.Bulk.Import(context.Background(), data, &client.ImportOptions{
				Filename: filepath.Base(args[0]),
				Format:   format,
				Commit:   commit,
			})
			if err != nil {
				fatal("import users", err)
			}
			if flagFmt == "table" {
				fmt.Printf("processed %d, ok %d, errors %d\n", res.TotalProcessed, res.SuccessCount, res.ErrorCount)
				rows := make([][]string, 0, len(res.Errors))
				for _, e := range res.Errors {
					rows = append(rows, []string{fmt.Sprint(e.Row), e.Error})
				}
				if len(rows) > 0 {
					formatTable([]string{"ROW", "ERROR"}, rows)
				}
			} else {
				output(res, fmt.Sprint(res.SuccessCount))
			}
			if !res.Success {
				os.Exit(2)
			}
		},
	}
	cmd.Flags().StringVar(&format, "file-format", "", "Override file format detection (csv|xlsx)")
	cmd.Flags().BoolVar(&commit, "commit", false, "Create the valid users instead of only validating")
	return cmd
}

func userExportCmd() *cobra.Command {
	var format, fields, out string
	var noHeaders bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export users to a file",
		Run: func(cmd *cobra.Command, args []string) {
			f, err := apiClient.Bulk.Export(context.Background(), &client.ExportOptions{
				Format:         format,
				OmitHeaders:    noHeaders,
				SelectedFields: splitList(fields),
			})
			if err != nil {
				fatal("export users", err)
			}
			writeDownload(f, out)
		},
	}
	cmd.Flags().StringVar(&format, "file-format", "csv", "Export format (csv|excel|xlsx)")
	cmd.Flags().StringVar(&fields, "fields", "", "Comma-separated fields to include")
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "Omit the header row")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output path (server filename when empty, - for stdout)")
	return cmd
}

func userTemplateCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Download the user import template",
		Run: func(cmd *cobra.Command, args []string) {
			f, err := apiClient.Bulk.Template(context.Background())
			if err != nil {
				fatal("download template", err)
			}
			writeDownload(f, out)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output path (server filename when empty, - for stdout)")
	return cmd
}

func writeDownload(f *client.File, out string) {
	if out == "-" {
		os.Stdout.Write(f.Data) //nolint:errcheck
		return
	}
	if out == "" {
		out = f.Filename
	}
	if out == "" {
		out = "download"
	}
	if err := os.WriteFile(out, f.Data, 0o600); err != nil {
		fatal("write file", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %d bytes to %s\n", len(f.Data), out)
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
