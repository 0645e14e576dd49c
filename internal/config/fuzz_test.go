package config

import (
	"os"
	"path/filepath"
	"testing"
)

// FuzzLoadFromFile tests config loading with random file content.
// Run with: go test -fuzz=FuzzLoadFromFile -fuzztime=30s
func FuzzLoadFromFile(f *testing.F) {
	f.Add([]byte("source:\n  path: /home/user/system.vsl\n"))
	f.Add([]byte("logging:\n  level: INFO\n  format: text\n"))
	f.Add([]byte("evaluator:\n  disable_lazy: true\n"))
	f.Add([]byte("builtins:\n  plugin_dirs:\n    - ./plugins\n"))

	f.Add([]byte("invalid: !!binary |\n  R0lGODlhAQABAIAAAP///wAAACwAAAAAAQABAAACAkQBADs=\n"))
	f.Add([]byte("source:\n  path: \"\x00null\"\n"))
	f.Add([]byte("source:\n  path: /../../etc/passwd\n"))
	f.Add([]byte("---\nsource:\n  path: test\n...\n"))
	f.Add([]byte("source:\n  path: \"very long string\"\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, data, 0644); err != nil {
			return
		}

		_, _ = LoadExtendedFromFile(configPath)
	})
}

// FuzzValidateExtended tests extended config validation with random input.
func FuzzValidateExtended(f *testing.F) {
	f.Add("/home/user/system.vsl", "INFO")
	f.Add("~/system.vsl", "DEBUG")
	f.Add("/tmp/test.vsl", "ERROR")

	f.Add("", "")
	f.Add("/../../etc/passwd", "INFO")
	f.Add("/tmp\x00null", "INFO")
	f.Add(string(make([]byte, 10000)), "INFO")

	f.Fuzz(func(t *testing.T, sourcePath, logLevel string) {
		cfg := &ExtendedConfig{
			Source: SourceConfig{
				Path: sourcePath,
			},
			Logging: LoggingConfig{
				Level:       logLevel,
				Format:      "text",
				Destination: "stderr",
			},
			Output: OutputConfig{
				Format: "text",
				Color:  "auto",
			},
		}

		_ = cfg.Validate()
	})
}

// FuzzLoaderLoad tests loader with random config paths.
func FuzzLoaderLoad(f *testing.F) {
	f.Add("~/.vsl/config.yaml")
	f.Add("/home/user/.config/vsl/config.yaml")
	f.Add("./relative/path/config.yaml")
	f.Add("../parent/path/config.yaml")
	f.Add("~/../../etc/passwd")
	f.Add("/tmp/\x00null")
	f.Add(string(make([]byte, 1000)))

	f.Fuzz(func(t *testing.T, path string) {
		loader := NewLoader("vsl", path)
		_, _ = loader.Load()
	})
}
