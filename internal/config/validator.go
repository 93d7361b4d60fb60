package config

import (
	"fmt"
	"strings"

	"github.com/duiproject/duitrack/internal/command"
)

// Validate checks the config for:
//   - Command names that are empty or duplicated
//   - Command names that shadow a builtin command
func Validate(cfg *Config) error {
	var errs []string

	builtin := make(map[string]bool)
	for _, c := range command.Builtins() {
		builtin[c.Name] = true
	}

	seen := make(map[string]bool)
	for i, def := range cfg.Commands {
		if def.Name == "" {
			errs = append(errs, fmt.Sprintf("commands[%d]: name is required", i))
			continue
		}
		if builtin[def.Name] {
			errs = append(errs, fmt.Sprintf("commands[%d]: %q shadows a builtin command", i, def.Name))
		}
		if seen[def.Name] {
			errs = append(errs, fmt.Sprintf("commands[%d]: duplicate name %q", i, def.Name))
		}
		seen[def.Name] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
