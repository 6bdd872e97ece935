package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/persistorai/tenantadmin/client"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and connectivity",
		Long:  "Run diagnostic checks against config, server, and session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}
}

type checkResult struct {
	Name   string
	Passed bool
	Detail string
	Hint   string
}

func doctorChecks(ctx context.Context) []checkResult {
	var results []checkResult

	cfgPath, _, cfgErr := loadConfigFile()
	if cfgErr != nil {
		results = append(results, checkResult{
			Name: "Config file", Detail: cfgPath,
			Hint: "Run: tenantadmin login",
		})
	} else {
		results = append(results, checkResult{
			Name: "Config file", Passed: true, Detail: fmt.Sprintf("found (%s)", cfgPath),
		})
	}

	results = append(results, checkResult{Name: "Server URL", Passed: flagURL != "", Detail: flagURL,
		Hint: "Set --url or TENANTADMIN_URL"})

	c := client.New(flagURL, client.WithToken(flagToken), client.WithTimeout(5*time.Second))

	health, err := c.Health(ctx)
	if err != nil {
		return append(results, checkResult{
			Name: "Server reachable", Detail: flagURL,
			Hint: fmt.Sprintf("Is the tenantadmin server running?\n   Error: %v", err),
		})
	}
	results = append(results, checkResult{
		Name: "Server reachable", Passed: true,
		Detail: fmt.Sprintf("v%s, database %s", health.Version, health.Database),
	})

	if flagToken == "" {
		return append(results, checkResult{Name: "Session", Hint: "Run: tenantadmin login"})
	}

	summary, err := c.Reports.Summary(ctx)
	switch {
	case client.IsUnauthorized(err):
		results = append(results, checkResult{Name: "Session", Detail: "token rejected or expired", Hint: "Run: tenantadmin login"})
	case err != nil:
		results = append(results, checkResult{Name: "Session", Hint: fmt.Sprintf("Error: %v", err)})
	default:
		results = append(results, checkResult{Name: "Session", Passed: true, Detail: "tenant " + summary.TenantID})
	}

	return results
}

func runDoctor() error {
	fmt.Println("\nTenant Admin Doctor")
	fmt.Println("===================")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	fmt.Println()
	allPassed := true
	for _, r := range doctorChecks(ctx) {
		mark := "ok  "
		if !r.Passed {
			mark = "FAIL"
			allPassed = false
		}
		if r.Detail != "" {
			fmt.Printf("[%s] %s: %s\n", mark, r.Name, r.Detail)
		} else {
			fmt.Printf("[%s] %s\n", mark, r.Name)
		}
		if !r.Passed && r.Hint != "" {
			fmt.Printf("       Hint: %s\n", r.Hint)
		}
	}

	fmt.Println()
	if !allPassed {
		fmt.Println("Some checks failed.")
		return fmt.Errorf("doctor found issues")
	}
	fmt.Println("All checks passed!")

	return nil
}
