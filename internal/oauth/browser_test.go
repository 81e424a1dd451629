package oauth

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
)

func TestOpenBrowser(t *testing.T) {
	var launched *exec.Cmd
	originalLauncher := browserLauncher
	browserLauncher = func(cmd *exec.Cmd) error {
		launched = cmd
		return nil
	}
	defer func() { browserLauncher = originalLauncher }()

	err := OpenBrowser("https://example.com/?a=1&b=2")

	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "darwin", "windows":
		if err != nil {
			t.Fatalf("expected no error on %s, got: %v", runtime.GOOS, err)
		}
		if launched == nil {
			t.Fatal("expected a browser command to be launched")
		}
		if got := launched.Args[len(launched.Args)-1]; got != "https://example.com/?a=1&b=2" {
			t.Errorf("expected URL as last argument, got %q", got)
		}
	default:
		if err == nil || !strings.Contains(err.Error(), "unsupported platform") {
			t.Errorf("expected unsupported platform error, got %v", err)
		}
	}
}

func TestOpenBrowser_LaunchFailure(t *testing.T) {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "darwin", "windows":
	default:
		t.Skipf("unsupported platform %s", runtime.GOOS)
	}

	originalLauncher := browserLauncher
	browserLauncher = func(*exec.Cmd) error { return errors.New("no display") }
	defer func() { browserLauncher = originalLauncher }()

	err := OpenBrowser("https://example.com")
	if err == nil || !strings.Contains(err.Error(), "failed to open browser: no display") {
		t.Errorf("expected wrapped launch error, got %v", err)
	}
}
