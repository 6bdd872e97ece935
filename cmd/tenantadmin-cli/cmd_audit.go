package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/persistorai/tenantadmin/client"
)

func newAuditCmd() *cobra.Command {
	var opts client.AuditQueryOptions
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Query the audit log",
		Run: func(cmd *cobra.Command, args []string) {
			if opts.Limit < 0 || opts.Offset < 0 {
				fmt.Fprintf(os.Stderr, "Error: --limit and --offset must be non-negative\n")
				os.Exit(1)
			}
			entries, hasMore, err := apiClient.Audit.Query(context.Background(), &opts)
			if err != nil {
				fatal("query audit", err)
			}
			if flagFmt == "table" {
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.UserName, e.Action, e.ResourceType, e.ResourceName,
					})
				}
				formatTable([]string{"TIME", "USER", "ACTION", "RESOURCE", "NAME"}, rows)
				if hasMore {
					fmt.Println("(more entries available, use --offset)")
				}
				return
			}
			printList(entries, nil, func(e client.AuditEntry) []string { return []string{e.ID} })
		},
	}
	cmd.Flags().StringVar(&opts.UserID, "user", "", "Filter by acting user ID")
	cmd.Flags().StringVar(&opts.Action, "action", "", "Filter by action (create|update|delete|login|logout|view)")
	cmd.Flags().StringVar(&opts.ResourceType, "resource", "", "Filter by resource type")
	cmd.Flags().StringVar(&opts.Search, "search", "", "Match user or resource name")
	cmd.Flags().StringVar(&opts.DateFrom, "from", "", "Earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.DateTo, "to", "", "Latest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 50, "Max results")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Offset")

	cmd.AddCommand(auditPurgeCmd())
	return cmd
}

func auditPurgeCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete audit entries older than the retention period",
		Run: func(cmd *cobra.Command, args []string) {
			if days <= 0 {
				fmt.Fprintf(os.Stderr, "Error: --retention-days must be positive\n")
				os.Exit(1)
			}
			deleted, err := apiClient.Audit.Purge(context.Background(), days)
			if err != nil {
				fatal("purge audit", err)
			}
			output(map[string]int{"deleted": deleted, "retention_days": days}, fmt.Sprint(deleted))
		},
	}
	cmd.Flags().IntVar(&days, "retention-days", 90, "Keep entries newer than this many days")
	return cmd
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the tenant summary report",
		Run: func(cmd *cobra.Command, args []string) {
			r, err := apiClient.Reports.Summary(context.Background())
			if err != nil {
				fatal("report summary", err)
			}
			if flagFmt != "table" {
				output(r, r.TenantID)
				return
			}
			formatTable([]string{"METRIC", "VALUE"}, [][]string{
				{"tenant", r.TenantID},
				{"users", fmt.Sprint(r.TotalUsers)},
				{"active users", fmt.Sprintf("%d (%.1f%%)", r.ActiveUsers, r.ActivePercentage)},
				{"organizations", fmt.Sprint(r.TotalOrganizations)},
				{"roles", fmt.Sprint(r.TotalRoles)},
				{"privileges", fmt.Sprint(r.TotalPrivileges)},
				{"legal entities", fmt.Sprint(r.TotalLegalEntities)},
			})
		},
	}
}
