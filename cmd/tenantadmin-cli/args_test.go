package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// executeArgs runs the given root command with args and returns any error.
// It suppresses cobra's usage/error output so test output stays clean.
func executeArgs(t *testing.T, root *cobra.Command, args ...string) error {
	t.Helper()
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})
	root.SetArgs(args)
	_, err := root.ExecuteC()
	return err
}

func TestPositionalArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"user get needs id", []string{"user", "get"}},
		{"user get takes one id", []string{"user", "get", "a", "b"}},
		{"assign-role needs role", []string{"user", "assign-role", "user-1"}},
		{"remove-role needs both ids", []string{"user", "remove-role"}},
		{"user create needs username", []string{"user", "create"}},
		{"import needs file", []string{"user", "import"}},
		{"role link needs privilege", []string{"role", "link", "role-1"}},
		{"role unlink takes two ids", []string{"role", "unlink", "a", "b", "c"}},
		{"org delete needs id", []string{"org", "delete"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			err := executeArgs(t, newRootCmd(), tc.args...)
			if err == nil || !strings.Contains(err.Error(), "arg(s)") {
				t.Errorf("expected arg count error, got %v", err)
			}
		})
	}
}

func TestUnknownFlag(t *testing.T) {
	isolate(t)
	if err := executeArgs(t, newRootCmd(), "user", "list", "--colour", "red"); err == nil {
		t.Error("expected unknown flag error")
	}
}

func TestUserListAgainstServer(t *testing.T) {
	isolate(t)

	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/users" {
			http.NotFound(w, r)
			return
		}
		gotAuth, gotQuery = r.Header.Get("Authorization"), r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"data":  []map[string]any{{"id": "user-1"}, {"id": "user-3"}},
			"total": 2,
		})
	}))
	t.Cleanup(srv.Close)

	var err error
	got := captureStdout(t, func() {
		err = executeArgs(t, newRootCmd(),
			"--url", srv.URL, "--token", "tok", "--format", "quiet",
			"users", "list", "--status", "active")
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if got != "user-1\nuser-3\n" {
		t.Errorf("output = %q", got)
	}
	if gotAuth != "Bearer tok" || gotQuery != "status=active" {
		t.Errorf("request auth=%q query=%q", gotAuth, gotQuery)
	}
}
