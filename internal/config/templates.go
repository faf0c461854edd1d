package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Trade Journal Bot Configuration

[database]
# Path to the SQLite journal database
path = ""

[journal]
# Require a trade picture before a record can be saved
require_attachment = true
# Require rr/pnl input to be valid decimal numbers
strict_numeric = false

[access]
# Chat user ids allowed to talk to the bot. Empty means open access.
admins = []

[export]
# Directory CSV exports are written into
dir = ""

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to console
console = true
# Log to rotating file
file = true
# Log file path
path = ""
`

// createTemplateConfig writes a commented config template so a first run
// leaves something editable behind.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}
