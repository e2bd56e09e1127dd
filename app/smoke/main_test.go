package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func executeRootCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRunCommandReportsFailure(t *testing.T) {
	t.Setenv("SMOKE_PASSWORD", "")

	// 一个什么都不认识的服务端
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	stdout, err := executeRootCommand(t, "run", "--base-url", srv.URL, "--password", "pw")
	if err == nil {
		t.Fatalf("expected failure against a server without the library API")
	}
	if !strings.HasPrefix(err.Error(), "register admin:") {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "" {
		t.Fatalf("nothing should be printed on failure, got %q", stdout)
	}
}

func TestRunCommandPasswordFromEnvironment(t *testing.T) {
	bodies := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r.Body)
		select {
		case bodies <- buf.String():
		default:
		}
		http.Error(w, `{"message":"nope"}`, http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	t.Setenv("SMOKE_PASSWORD", "from-env")

	if _, err := executeRootCommand(t, "run", "--base-url", srv.URL); err == nil {
		t.Fatalf("expected failure")
	}
	if gotBody := <-bodies; !strings.Contains(gotBody, `"password":"from-env"`) {
		t.Fatalf("password from SMOKE_PASSWORD not used, body %q", gotBody)
	}
}

func TestRunCommandRejectsArgs(t *testing.T) {
	if _, err := executeRootCommand(t, "run", "extra"); err == nil {
		t.Fatalf("expected error for unexpected argument")
	}
}
