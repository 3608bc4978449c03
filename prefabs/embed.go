package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is searched before the embedded copies, so edited prefabs on disk win.
var Dir = "prefabs"

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// ModTime reports the modification time of the on-disk copy, if any.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPrefabPath(cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// DiskPath is where Load looks for name before falling back to the
// embedded file.
func DiskPath(name string) string {
	return diskPrefabPath(cleanPrefabPath(name))
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, filepath.ToSlash(Dir)+"/"); ok {
		return after
	}
	return s
}

func diskPrefabPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
