package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	storeDomain "hufschlaeger.net/todo-client/internal/domain/store"
	"hufschlaeger.net/todo-client/internal/fakestore"
)

// TestMainHelper is executed in a separate subprocess to call main() safely.
// It reconstructs os.Args based on the env var GO_HELPER_ARGS to avoid
// interference with the testing package's flags.
func TestMainHelper(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	// Rebuild os.Args as if the app was run directly
	helperArgs := os.Getenv("GO_HELPER_ARGS")
	if helperArgs != "" {
		os.Args = append([]string{"todo"}, strings.Fields(helperArgs)...)
	} else {
		os.Args = []string{"todo"}
	}

	// Call the real main; it will call os.Exit(...) on failure
	main()
	os.Exit(0)
}

// runMain is a helper to spawn the current test binary and execute TestMainHelper
// which in turn calls the program's main().
func runMain(t *testing.T, args []string, extraEnv map[string]string) (output string, exitCode int) {
	t.Helper()

	cmd := exec.Command(os.Args[0], "-test.run", "^TestMainHelper$")

	// Pass down environment, override with our specific variables
	env := os.Environ()
	env = append(env,
		"GO_WANT_HELPER_PROCESS=1",
		"GO_HELPER_ARGS="+strings.Join(args, " "),
		// Disable godotenv so tests don't pick up a local .env file
		"GODOTENV_DISABLE=1",
		// Never read the developer's config file
		"TODO_CONFIG="+filepath.Join(t.TempDir(), "missing.yaml"),
		"TODO_TIMEZONE=UTC",
	)
	for k, v := range extraEnv {
		env = append(env, k+"="+v)
	}
	cmd.Env = env

	// Capture combined stdout/stderr
	out, err := cmd.CombinedOutput()
	output = string(out)

	if err == nil {
		return output, 0
	}

	// Extract exit code
	if exitErr, ok := err.(*exec.ExitError); ok {
		return output, exitErr.ExitCode()
	}

	// Fallback: treat as unknown failure
	return output, -1
}

func TestMain_HelpFlag_ExitsZeroAndPrintsUsage(t *testing.T) {
	out, code := runMain(t, []string{"--help"}, map[string]string{})

	if code != 0 {
		t.Fatalf("expected exit code 0 for --help, got %d. Output: %s", code, out)
	}

	// Basic sanity checks for usage text
	if !strings.Contains(out, "Todo Client für die Task-Store-API") {
		t.Fatalf("expected usage text in output, got: %s", out)
	}
	if !strings.Contains(out, "TODO_API_BASE_URL") {
		t.Fatalf("expected environment variables in usage, got: %s", out)
	}
}

func TestMain_UnknownCommand_ExitsOne(t *testing.T) {
	out, code := runMain(t, []string{"frobnicate"}, map[string]string{})

	if code != 1 {
		t.Fatalf("expected exit code 1 for unknown command, got %d. Output: %s", code, out)
	}
	if !strings.Contains(out, "Fehler") {
		t.Fatalf("expected error message, got: %s", out)
	}
}

func TestMain_InvalidAPIURL_ExitsOne(t *testing.T) {
	env := map[string]string{
		"TODO_API_BASE_URL": "not-a-url",
	}

	out, code := runMain(t, []string{"tasks"}, env)

	if code != 1 {
		t.Fatalf("expected exit code 1 for invalid config, got %d. Output: %s", code, out)
	}
	if !strings.Contains(out, "konfiguration ungültig") {
		t.Fatalf("expected config error message, got: %s", out)
	}
}

func TestMain_UnreachableServer_ExitsOne(t *testing.T) {
	// Port 9 is typically closed; connection should fail immediately
	env := map[string]string{
		"TODO_API_BASE_URL": "http://127.0.0.1:9/api",
		"TODO_HTTP_TIMEOUT": "2s",
		"VERBOSE":           "false",
	}

	out, code := runMain(t, []string{"tasks"}, env)

	if code != 1 {
		t.Fatalf("expected exit code 1 for unreachable server, got %d. Output: %s", code, out)
	}
	if !strings.Contains(out, "Error fetching projects") {
		t.Fatalf("expected project fetch toast, got: %s", out)
	}
}

func TestMain_ListsTasks(t *testing.T) {
	fs := fakestore.New()
	fs.SeedTodo(storeDomain.Todo{Title: "Write report", Priority: "high", DueDate: "2099-01-01"})
	srv := fs.Start()
	defer srv.Close()

	env := map[string]string{
		"TODO_API_BASE_URL": srv.URL + "/api",
	}

	out, code := runMain(t, []string{"tasks", "--output", "json"}, env)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d. Output: %s", code, out)
	}
	if !strings.Contains(out, `"title": "Write report"`) {
		t.Fatalf("expected task in JSON output, got: %s", out)
	}
}
