package cli

import (
	"bytes"
	"os"
	"path/filepath"
	stdruntime "runtime"
	"strings"
	"testing"
)

func runMain(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Main(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if stdruntime.GOOS == "windows" {
		t.Skip("CLI tests use /bin/sh fixtures")
	}
}

func TestMainRunsCommand(t *testing.T) {
	skipOnWindows(t)

	code, _, stderr := runMain(t, "5s", "/bin/sh", "-c", "exit 0")
	if code != 0 {
		t.Fatalf("exit 0: got %d, stderr %q", code, stderr)
	}

	code, _, _ = runMain(t, "0", "/bin/sh", "-c", "exit 4")
	if code != 4 {
		t.Fatalf("exit 4 without deadline: got %d", code)
	}
}

func TestMainChildFlagsPassThrough(t *testing.T) {
	skipOnWindows(t)

	// -c belongs to sh, not runfor; interspersed parsing is off.
	code, _, stderr := runMain(t, "5s", "/bin/sh", "-c", "exit 0")
	if code != 0 {
		t.Fatalf("child flags consumed by runfor: %d, stderr %q", code, stderr)
	}
}

func TestMainTimeoutVerbose(t *testing.T) {
	skipOnWindows(t)

	code, _, stderr := runMain(t, "-v", "0.2s", "/bin/sh", "-c", "sleep 10")
	if code != 124 {
		t.Fatalf("timed out command: got %d, want 124", code)
	}
	if !strings.Contains(stderr, "sending signal TERM") {
		t.Fatalf("verbose diagnostic missing: %q", stderr)
	}
}

func TestMainConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"bad duration", []string{"bogus", "true"}},
		{"missing command", []string{"5s"}},
		{"no args", nil},
		{"unknown flag", []string{"--frobnicate", "5s", "true"}},
		{"bad kill-after", []string{"-k", "soon", "5s", "true"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, stderr := runMain(t, tc.args...)
			if code != 125 {
				t.Fatalf("got %d, want 125", code)
			}
			if !strings.Contains(stderr, "runfor:") {
				t.Fatalf("error not reported: %q", stderr)
			}
		})
	}
}

func TestMainHelp(t *testing.T) {
	code, stdout, _ := runMain(t, "--help")
	if code != 0 {
		t.Fatalf("help: got %d, want 0", code)
	}
	if !strings.Contains(stdout, "DURATION COMMAND") {
		t.Fatalf("help text missing usage: %q", stdout)
	}
}

func TestMainDefaultsFile(t *testing.T) {
	skipOnWindows(t)

	path := filepath.Join(t.TempDir(), "runfor.yaml")
	if err := os.WriteFile(path, []byte("preserve-status: true\n"), 0o644); err != nil {
		t.Fatalf("write defaults: %v", err)
	}

	// The untrapped child dies of TERM; preserve-status from the file
	// reports the 128+signal translation instead of 124.
	code, _, _ := runMain(t, "--config", path, "0.2s", "/bin/sh", "-c", "sleep 10")
	if code != 143 {
		t.Fatalf("preserve-status from defaults file: got %d, want 143", code)
	}
}

func TestMainDefaultsFileFromEnv(t *testing.T) {
	skipOnWindows(t)

	path := filepath.Join(t.TempDir(), "runfor.yaml")
	if err := os.WriteFile(path, []byte("signal: KILL\n"), 0o644); err != nil {
		t.Fatalf("write defaults: %v", err)
	}
	t.Setenv("RUNFOR_CONFIG", path)

	// The initial signal comes from the file; KILL reports as 128+9.
	code, _, _ := runMain(t, "-p", "0.2s", "/bin/sh", "-c", "sleep 10")
	if code != 137 {
		t.Fatalf("signal from env defaults file: got %d, want 137", code)
	}
}

func TestMainFlagOverridesDefaultsFile(t *testing.T) {
	skipOnWindows(t)

	path := filepath.Join(t.TempDir(), "runfor.yaml")
	if err := os.WriteFile(path, []byte("signal: KILL\n"), 0o644); err != nil {
		t.Fatalf("write defaults: %v", err)
	}

	code, _, _ := runMain(t, "--config", path, "-s", "TERM", "-p", "0.2s",
		"/bin/sh", "-c", "trap 'exit 7' TERM; while :; do sleep 0.05; done")
	if code != 7 {
		t.Fatalf("explicit -s should beat defaults file: got %d, want 7", code)
	}
}

func TestMainBadDefaultsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runfor.yaml")
	if err := os.WriteFile(path, []byte("timeout: 5s\n"), 0o644); err != nil {
		t.Fatalf("write defaults: %v", err)
	}

	code, _, stderr := runMain(t, "--config", path, "5s", "true")
	if code != 125 {
		t.Fatalf("unknown defaults key: got %d, want 125", code)
	}
	if !strings.Contains(stderr, "runfor:") {
		t.Fatalf("error not reported: %q", stderr)
	}
}
