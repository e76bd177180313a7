package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/modekit-ai/modekit/internal/defs"
)

// resetInstallFlags clears flag state that pflag keeps between executions.
func resetInstallFlags() {
	for _, name := range []string{"mode", "category"} {
		f := installCmd.Flags().Lookup(name)
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		}
		f.Changed = false
	}
	force := installCmd.Flags().Lookup("force")
	_ = force.Value.Set("false")
	force.Changed = false
}

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetInstallFlags()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	_, err := rootCmd.ExecuteC()
	return buf.String(), err
}

func TestInstallCommandExplicitMode(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := t.TempDir()

	out, err := runCommand(t, "install", target, "--mode", "code")
	if err != nil {
		t.Fatalf("install error: %v\noutput:\n%s", err, out)
	}

	manifest, err := os.ReadFile(filepath.Join(target, defs.ManifestFile))
	if err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	if !strings.Contains(string(manifest), "slug: code") {
		t.Errorf("manifest missing selected mode:\n%s", manifest)
	}
	if _, err := os.Stat(filepath.Join(target, defs.ToolDir, defs.SharedRulesDir, "workspace-intro.md")); err != nil {
		t.Errorf("shared rule not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(target, defs.ToolDir, defs.ModeRulesDirPrefix+"code", "style.md")); err != nil {
		t.Errorf("mode rule not written: %v", err)
	}
}

func TestInstallCommandUnknownModeFailsWithoutWriting(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := t.TempDir()

	out, err := runCommand(t, "install", target, "--mode", "no-such-mode")
	if err == nil {
		t.Fatalf("install succeeded with unknown mode\noutput:\n%s", out)
	}
	if !strings.Contains(err.Error(), "no-such-mode") {
		t.Errorf("error %q does not name the invalid slug", err)
	}
	if _, statErr := os.Stat(filepath.Join(target, defs.ManifestFile)); !os.IsNotExist(statErr) {
		t.Error("manifest written despite selection failure")
	}
}

func TestListCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runCommand(t, "list")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	for _, want := range []string{"code", "debug", "architect", "ask", "Core"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestShowCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runCommand(t, "show", "code")
	if err != nil {
		t.Fatalf("show error: %v", err)
	}
	for _, want := range []string{"code", "workspace-intro", "code-style"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestShowCommandUnknownMode(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := runCommand(t, "show", "nope")
	if err == nil {
		t.Fatal("show succeeded for unknown mode")
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error %q does not name the slug", err)
	}
}
