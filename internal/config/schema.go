package config

// Config is the top-level YAML structure.
type Config struct {
	Server   ServerConf   `yaml:"server"`
	Snapshot SnapshotConf `yaml:"snapshot"`
	Commands []CommandDef `yaml:"commands"`
}

// ServerConf holds HTTP server settings.
type ServerConf struct {
	Addr              string `yaml:"addr"`
	ReadTimeoutMs     int    `yaml:"read_timeout_ms"`
	WriteTimeoutMs    int    `yaml:"write_timeout_ms"`
	IdleTimeoutMs     int    `yaml:"idle_timeout_ms"`
	ShutdownTimeoutMs int    `yaml:"shutdown_timeout_ms"`
}

// SnapshotConf controls tree persistence. An empty path disables snapshots.
type SnapshotConf struct {
	Path string `yaml:"path"`
}

// CommandDef declares an extra pipeline command on top of the builtin set.
type CommandDef struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}
