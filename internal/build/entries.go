package build

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vk/loom/internal/config"
)

// defaultEntryFiles is the conventional entry search order used when the
// configuration names no entries.
var defaultEntryFiles = []string{
	"src/index.tsx",
	"src/index.ts",
	"index.tsx",
	"index.ts",
}

// Entries returns the absolute entry paths for a project: the configured
// entry map (in stable name order), or the first conventional entry file
// found under the root.
func Entries(root string, cfg *config.Config) ([]string, error) {
	if len(cfg.Entry) == 0 {
		for _, rel := range defaultEntryFiles {
			path := filepath.Join(root, rel)
			if isFile(path) {
				return []string{path}, nil
			}
		}
		return nil, fmt.Errorf("%w: no entries configured and no conventional entry file under %s", ErrEntryNotFound, root)
	}

	names := make([]string, 0, len(cfg.Entry))
	for name := range cfg.Entry {
		names = append(names, name)
	}
	sort.Strings(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := cfg.Entry[name]
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
