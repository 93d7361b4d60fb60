// Package snapshot persists the tree representation as a JSON file so a
// restarted server can pick up where the pipeline left off.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/duiproject/duitrack/internal/metrics"
	"github.com/duiproject/duitrack/internal/tree"
)

// Save writes the tree's records to path. The write goes through a temp file
// and a rename, so a crash mid-write never leaves a truncated snapshot.
func Save(path string, t *tree.Tree) error {
	data, err := json.MarshalIndent(t.Representation(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("snapshot dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".duitrack-*.json")
	if err != nil {
		return fmt.Errorf("snapshot temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publish snapshot %s: %w", path, err)
	}
	metrics.SnapshotWrites.Inc()
	return nil
}

// Load reads a snapshot and reconstructs the tree through the registry.
func Load(path string, reg *tree.Registry) (*tree.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	var records []tree.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	t, err := tree.Decode(records, reg)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return t, nil
}
