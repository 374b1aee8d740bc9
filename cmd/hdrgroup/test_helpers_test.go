package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hdrgroup/internal/config"
	"hdrgroup/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "xdg-cache"))

	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
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

// writeBracketShoot lays out a three-frame bracket, a lone frame 40 s later,
// and a JPEG without EXIF.
func writeBracketShoot(t *testing.T, dir string) {
	t.Helper()
	frames := []struct {
		name string
		cap  testsupport.Capture
	}{
		{"IMG_0001.jpg", testsupport.Capture{Taken: "2024:05:01 10:00:00", FNumber: 8, FocalLength: 24, ExposureBias: -2}},
		{"IMG_0002.jpg", testsupport.Capture{Taken: "2024:05:01 10:00:01", FNumber: 8, FocalLength: 24, ExposureBias: 0}},
		{"IMG_0003.jpg", testsupport.Capture{Taken: "2024:05:01 10:00:02", FNumber: 8, FocalLength: 24, ExposureBias: 2}},
		{"IMG_0004.jpg", testsupport.Capture{Taken: "2024:05:01 10:00:40", FNumber: 8, FocalLength: 24, ExposureBias: 0}},
	}
	for _, f := range frames {
		testsupport.WriteEXIFJPEG(t, filepath.Join(dir, f.name), 32, 24, f.cap)
	}
	testsupport.WriteJPEG(t, filepath.Join(dir, "IMG_0005.jpg"), 32, 24)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
