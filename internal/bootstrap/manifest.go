package bootstrap

import (
	"fmt"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// FileEntry is one additional file to materialize during bootstrap.
type FileEntry struct {
	// Path is the absolute destination path.
	Path string
	// Content is the raw value from the manifest, possibly "base64:"-prefixed.
	Content string
}

// ParseManifest parses the PLANNERD_FILES value, a YAML map of absolute path
// to file content. An empty manifest yields no entries. Entries are returned
// in path order so writes happen in a stable sequence.
func ParseManifest(manifest string) ([]FileEntry, error) {
	if manifest == "" {
		return nil, nil
	}

	files := make(map[string]string)
	if err := yaml.Unmarshal([]byte(manifest), &files); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	entries := make([]FileEntry, 0, len(files))
	for path, content := range files {
		if !filepath.IsAbs(path) {
			return nil, fmt.Errorf("manifest path %q is not absolute", path)
		}
		entries = append(entries, FileEntry{Path: path, Content: content})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
