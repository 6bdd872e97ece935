package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"
)

// captureStdout replaces os.Stdout with a pipe, calls f, then returns the
// captured output and restores os.Stdout. It is NOT safe for parallel use
// because os.Stdout is a package-level variable.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		io.Copy(&buf, r) //nolint:errcheck
		close(done)
	}()

	f()

	w.Close()
	<-done
	os.Stdout = orig
	r.Close()
	return buf.String()
}

func TestFormatJSON(t *testing.T) {
	type sample struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	got := captureStdout(t, func() { formatJSON(sample{ID: "user-1", Username: "john.doe"}) })

	var out sample
	if err := json.Unmarshal([]byte(got), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, got)
	}
	if out.ID != "user-1" || out.Username != "john.doe" {
		t.Errorf("got %+v", out)
	}
	if !strings.Contains(got, "\n  ") {
		t.Errorf("expected indented JSON but got: %s", got)
	}
}

func TestFormatTable(t *testing.T) {
	headers := []string{"ID", "USERNAME", "STATUS"}
	rows := [][]string{
		{"user-1", "john.doe", "active"},
		{"user-22", "jo", "pending"},
	}

	got := captureStdout(t, func() { formatTable(headers, rows) })
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[1], "-------  --------  ------") {
		t.Errorf("separator row = %q", lines[1])
	}
	// Columns line up on the widest cell.
	if strings.Index(lines[2], "john.doe") != strings.Index(lines[3], "jo") {
		t.Errorf("misaligned columns:\n%s", got)
	}
	for _, l := range lines {
		if strings.HasSuffix(l, " ") {
			t.Errorf("trailing space in %q", l)
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	got := captureStdout(t, func() { formatTable([]string{"ID", "NAME"}, nil) })
	if lines := strings.Split(strings.TrimRight(got, "\n"), "\n"); len(lines) != 2 {
		t.Errorf("expected header and separator only, got:\n%s", got)
	}
}

func TestOutputQuiet(t *testing.T) {
	resetFlags(t)
	flagFmt = "quiet"

	got := captureStdout(t, func() { output(map[string]string{"id": "user-1"}, "user-1") })
	if got != "user-1\n" {
		t.Errorf("got %q, want %q", got, "user-1\n")
	}
}

func TestOutputTableListsFields(t *testing.T) {
	resetFlags(t)
	flagFmt = "table"

	v := map[string]any{"id": "user-1", "roles": []string{"role-2", "role-3"}, "lastLogin": nil}

	got := captureStdout(t, func() { output(v, "user-1") })
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	want := []string{"FIELD      VALUE", "---------  -------------", "id         user-1", "lastLogin", "roles      role-2,role-3"}
	if !slices.Equal(lines, want) {
		t.Errorf("got:\n%s\nwant:\n%s", got, strings.Join(want, "\n"))
	}
}

func TestOutputTableFallsBackToJSON(t *testing.T) {
	resetFlags(t)
	flagFmt = "table"

	got := captureStdout(t, func() { output([]string{"a", "b"}, "a") })
	if !json.Valid([]byte(got)) {
		t.Errorf("expected JSON fallback, got %q", got)
	}
}

func TestFormatTableCountsRunes(t *testing.T) {
	got := captureStdout(t, func() { formatTable([]string{"NAME", "ID"}, [][]string{{"José", "user-1"}, {"Anna", "user-2"}}) })
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	if utf8.RuneCountInString(lines[2]) != utf8.RuneCountInString(lines[3]) {
		t.Errorf("misaligned rows:\n%s", got)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" username, email,,roles ")
	if !slices.Equal(got, []string{"username", "email", "roles"}) {
		t.Errorf("got %v", got)
	}
	if splitList("") != nil {
		t.Error("empty input should give nil")
	}
}

func TestVersionString(t *testing.T) {
	origCommit, origDate := commit, buildDate
	t.Cleanup(func() { commit, buildDate = origCommit, origDate })

	commit, buildDate = "", ""
	if got := versionString(); got != "tenantadmin version "+version+"-dev" {
		t.Errorf("dev version = %q", got)
	}

	commit, buildDate = "abc1234", "2024-06-24"
	if got := versionString(); !strings.Contains(got, "commit: abc1234") {
		t.Errorf("release version = %q", got)
	}
}
