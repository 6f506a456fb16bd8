package scene

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scenes/*.yaml
var ScenesFS embed.FS

// Dir is the on-disk directory checked before the embedded scenes.
var Dir = filepath.Join("scene", "scenes")

// Load returns the raw scene file. Absolute paths and paths with a directory
// are read from disk only; bare names prefer Dir and fall back to the
// embedded copy.
func Load(name string) ([]byte, error) {
	if filepath.IsAbs(name) || strings.ContainsRune(filepath.ToSlash(name), '/') {
		return os.ReadFile(name)
	}
	clean := cleanScenePath(name)
	if data, err := os.ReadFile(filepath.Join(Dir, clean)); err == nil {
		return data, nil
	}
	return ScenesFS.ReadFile("scenes/" + clean)
}

// Path returns the on-disk location Load reads first for name.
func Path(name string) string {
	if filepath.IsAbs(name) || strings.ContainsRune(filepath.ToSlash(name), '/') {
		return name
	}
	return filepath.Join(Dir, cleanScenePath(name))
}

func cleanScenePath(name string) string {
	clean := filepath.Base(strings.TrimSpace(name))
	if filepath.Ext(clean) == "" {
		clean += ".yaml"
	}
	return clean
}
