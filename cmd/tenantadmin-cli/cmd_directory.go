package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/persistorai/tenantadmin/client"
)

func newRoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "role",
		Aliases: []string{"roles"},
		Short:   "Manage roles and their privileges",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List roles",
		Run: func(cmd *cobra.Command, args []string) {
			roles, err := apiClient.Roles.List(context.Background(), &client.ListOptions{Search: search})
			if err != nil {
				fatal("list roles", err)
			}
			printList(roles, []string{"ID", "NAME", "SYSTEM", "PRIVILEGES"}, func(r client.Role) []string {
				return []string{r.ID, r.Name, fmt.Sprint(r.IsSystemRole), strings.Join(r.Privileges, ",")}
			})
		},
	}
	list.Flags().StringVar(&search, "search", "", "Match name or description")

	link := &cobra.Command{
		Use:   "link <role-id> <privilege-id>",
		Short: "Grant a privilege to a role",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			r, err := apiClient.Roles.LinkPrivilege(context.Background(), args[0], args[1])
			if err != nil {
				fatal("link privilege", err)
			}
			output(r, r.ID)
		},
	}

	unlink := &cobra.Command{
		Use:   "unlink <role-id> <privilege-id>",
		Short: "Revoke a privilege from a role",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			r, err := apiClient.Roles.UnlinkPrivilege(context.Background(), args[0], args[1])
			if err != nil {
				fatal("unlink privilege", err)
			}
			output(r, r.ID)
		},
	}

	cmd.AddCommand(list, link, unlink)
	return cmd
}

func newOrgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "org",
		Aliases: []string{"orgs", "organizations"},
		Short:   "Manage organizations",
	}

	var search, status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		Run: func(cmd *cobra.Command, args []string) {
			orgs, err := apiClient.Organizations.List(context.Background(), &client.ListOptions{Search: search, Status: status})
			if err != nil {
				fatal("list organizations", err)
			}
			printList(orgs, []string{"ID", "NAME", "TYPE", "PARENT", "STATUS"}, func(o client.Organization) []string {
				return []string{o.ID, o.Name, o.Type, o.ParentID, o.Status}
			})
		},
	}
	list.Flags().StringVar(&search, "search", "", "Match name or description")
	list.Flags().StringVar(&status, "status", "", "Filter by status")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Get an organization by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			o, err := apiClient.Organizations.Get(context.Background(), args[0])
			if err != nil {
				fatal("get organization", err)
			}
			output(o, o.ID)
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an organization",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Organizations.Delete(context.Background(), args[0]); err != nil {
				fatal("delete organization", err)
			}
			fmt.Println("deleted")
		},
	}

	cmd.AddCommand(list, get, del)
	return cmd
}

func newTenantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tenant",
		Aliases: []string{"tenants"},
		Short:   "Inspect tenants",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tenants",
		Run: func(cmd *cobra.Command, args []string) {
			tenants, err := apiClient.Tenants.List(context.Background(), nil)
			if err != nil {
				fatal("list tenants", err)
			}
			printList(tenants, []string{"ID", "NAME", "DOMAIN", "STATUS"}, func(t client.Tenant) []string {
				return []string{t.ID, t.Name, t.Domain, t.Status}
			})
		},
	})
	return cmd
}

func newPrivilegeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "privilege",
		Aliases: []string{"privileges"},
		Short:   "Inspect privileges",
	}
	var category string
	list := &cobra.Command{
		Use:   "list",
		Short: "List privileges",
		Run: func(cmd *cobra.Command, args []string) {
			privs, err := apiClient.Privileges.List(context.Background(), &client.ListOptions{Status: category})
			if err != nil {
				fatal("list privileges", err)
			}
			printList(privs, []string{"ID", "NAME", "CATEGORY"}, func(p client.Privilege) []string {
				return []string{p.ID, p.Name, p.Category}
			})
		},
	}
	list.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.AddCommand(list)
	return cmd
}

func newLegalEntityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "legal-entity",
		Aliases: []string{"legal-entities"},
		Short:   "Inspect legal entities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List legal entities",
		Run: func(cmd *cobra.Command, args []string) {
			entities, err := apiClient.LegalEntities.List(context.Background(), nil)
			if err != nil {
				fatal("list legal entities", err)
			}
			printList(entities, []string{"ID", "NAME", "TYPE", "REGISTRATION", "STATUS"}, func(e client.LegalEntity) []string {
				return []string{e.ID, e.Name, e.Type, e.RegistrationNumber, e.Status}
			})
		},
	})
	return cmd
}

// printList renders items in the selected output format. row supplies the
// table cells; the first cell is the ID printed in quiet mode.
func printList[T any](items []T, headers []string, row func(T) []string) {
	switch flagFmt {
	case "table":
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, row(it))
		}
		formatTable(headers, rows)
	case "quiet":
		for _, it := range items {
			fmt.Println(row(it)[0])
		}
	default:
		formatJSON(items)
	}
}
