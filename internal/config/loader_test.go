package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/duiproject/duitrack/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "duitrack.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoader_Defaults(t *testing.T) {
	path := writeConfig(t, "server: {}\n")
	l, err := config.NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}
	cfg := l.Config()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeoutMs != 10000 || cfg.Server.WriteTimeoutMs != 30000 {
		t.Errorf("timeouts = %+v", cfg.Server)
	}
	if cfg.Snapshot.Path != "" {
		t.Errorf("snapshot path = %q, want empty", cfg.Snapshot.Path)
	}
}

func TestLoader_Commands(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
snapshot:
  path: /var/lib/duitrack/tree.json
commands:
  - name: xia2.multiplex
    description: Combine sweeps
`)
	l, err := config.NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}
	cfg := l.Config()
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Commands) != 1 || cfg.Commands[0].Name != "xia2.multiplex" {
		t.Errorf("commands = %+v", cfg.Commands)
	}
	if err := config.Validate(cfg); err != nil {
		t.Errorf("Validate error: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
	}{
		{"empty name", config.Config{Commands: []config.CommandDef{{Name: ""}}}},
		{"builtin shadow", config.Config{Commands: []config.CommandDef{{Name: "dials.refine"}}}},
		{"duplicate", config.Config{Commands: []config.CommandDef{{Name: "a"}, {Name: "a"}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := config.Validate(&tc.cfg); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestLoader_Reload(t *testing.T) {
	path := writeConfig(t, "server: {addr: \":9090\"}\n")
	l, err := config.NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}

	var notified *config.Config
	l.OnChange(func(c *config.Config) { notified = c })

	if err := os.WriteFile(path, []byte("server: {addr: \":7070\"}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := l.Reload()
	if err != nil {
		t.Fatalf("Reload error: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q, want :7070", cfg.Server.Addr)
	}
	if notified != cfg {
		t.Errorf("OnChange callback not invoked with new config")
	}
}
