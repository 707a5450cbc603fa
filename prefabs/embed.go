package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is the directory checked for edited copies before the embedded
// files. It is relative to the working directory.
var Dir = "prefabs"

// Load reads a prefab spec. A copy under Dir wins over the embedded one so
// a watcher reload sees edits without a rebuild.
func Load(name string) ([]byte, error) {
	return readDiskFirst(PrefabsFS, cleanPrefabPath(name))
}

// LoadScript reads a driver script the same way Load reads specs.
func LoadScript(name string) ([]byte, error) {
	return readDiskFirst(ScriptsFS, cleanScriptPath(name))
}

func readDiskFirst(embedded embed.FS, clean string) ([]byte, error) {
	if clean == "" {
		return nil, fs.ErrNotExist
	}
	data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean)))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return embedded.ReadFile(clean)
}

func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	return strings.TrimPrefix(s, "prefabs/")
}

// cleanScriptPath accepts "runner.tengo", "scripts/runner.tengo" and
// "prefabs/scripts/runner.tengo" alike.
func cleanScriptPath(p string) string {
	if p == "" {
		return ""
	}
	s := strings.TrimPrefix(cleanPrefabPath(p), "scripts/")
	return path.Join("scripts", s)
}
