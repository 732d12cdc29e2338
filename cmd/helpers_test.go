package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/embli/daytrack/internal/config"
	"github.com/embli/daytrack/internal/entry"
	"github.com/embli/daytrack/internal/service"
)

// cmdTest bundles the captured streams and test doubles for one command run.
type cmdTest struct {
	Stdout   *bytes.Buffer
	Stderr   *bytes.Buffer
	Services *service.Services
	ExitCode int
}

// setupCmdTest wires the command layer to buffers and a temp-dir service
// stack. Cleanup restores the default deps and the --user flag value.
func setupCmdTest(t *testing.T) *cmdTest {
	t.Helper()

	dataDir := t.TempDir()
	svcs := service.NewServicesWithPaths(dataDir, filepath.Join(dataDir, "config.toml"), config.DefaultConfig())

	ct := &cmdTest{
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
		Services: svcs,
		ExitCode: 0,
	}

	SetDeps(&Deps{
		Stdout: ct.Stdout,
		Stderr: ct.Stderr,
		Stdin:  strings.NewReader(""),
		Exit:   func(code int) { ct.ExitCode = code },
		Services: func() (*service.Services, error) {
			return svcs, nil
		},
	})
	t.Cleanup(ResetDeps)
	t.Cleanup(func() { userFlag = "" })

	return ct
}

// withStdin replaces the test Stdin with the given input
func (ct *cmdTest) withStdin(input string) {
	deps.Stdin = strings.NewReader(input)
}

// addUser creates a profile and selects it via the --user flag
func (ct *cmdTest) addUser(t *testing.T, name string) {
	t.Helper()
	if err := ct.Services.User.Create(name); err != nil {
		t.Fatalf("Failed to create test user %q: %v", name, err)
	}
	userFlag = name
}

// seedEntry creates an entry directly through the service layer
func (ct *cmdTest) seedEntry(t *testing.T, user, date string, slot entry.TimeOfDay, cat entry.Category, emoji, content string) entry.Entry {
	t.Helper()
	created, _, err := ct.Services.Entries(user).Create(date, slot, cat, emoji, content)
	if err != nil {
		t.Fatalf("Failed to seed entry: %v", err)
	}
	return *created
}
