package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	statePath  string
}

// setupCLITestEnv isolates HOME and the environment overrides and writes a
// config pointing at targetURL.
func setupCLITestEnv(t *testing.T, targetURL, extra string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	for _, key := range []string{"PAGEWATCH_URL", "PAGEWATCH_DESTINATIONS", "APPRISE_URLS", "PAGEWATCH_STATE_PATH"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Chdir(base)

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "pagewatch.toml"),
		statePath:  filepath.Join(base, "state", "state.txt"),
	}
	content := fmt.Sprintf(`[target]
url = %q
timeout_seconds = 5

[state]
path = %q

[notifications]
request_timeout = 5
%s

[logging]
format = "json"
level = "error"
`, targetURL, env.statePath, extra)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func readState(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	return string(data)
}
