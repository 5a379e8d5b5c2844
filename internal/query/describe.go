package query

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gglob "github.com/gobwas/glob"

	"github.com/harrison/ftag/internal/store"
)

// Describe returns the tags and description recorded for one file or
// directory, formatted for display. For a file, the directory-level
// metadata is merged with every declared entry whose pattern matches the
// filename. Implicit year and format tags of the name are included.
func Describe(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %s: %w", path, err)
	}
	sidecar, err := store.SidecarPath(path, true)
	if err != nil {
		return "", fmt.Errorf("nothing known about %s: %w", path, err)
	}
	data, err := store.Load(sidecar, store.Options{
		DirTags: true, DirDesc: true, Files: true, FileTags: true, FileDesc: true,
	})
	if err != nil {
		return "", err
	}
	tags := append([]string(nil), data.Tags...)
	tags = append(tags, store.ImplicitTags(filepath.Base(path))...)
	desc := data.Desc
	if !info.IsDir() {
		name := filepath.Base(path)
		for _, e := range data.Entries {
			if !entryMatches(e.Pattern, name) {
				continue
			}
			tags = append(tags, e.Tags...)
			if e.Desc != "" {
				if desc == "" {
					desc = e.Desc
				} else {
					desc = e.Desc + "\n" + desc
				}
			}
		}
	}
	sort.Strings(tags)
	tags = dedup(tags)
	out := fmt.Sprintf("tags: [%s]", strings.Join(tags, ", "))
	if desc != "" {
		out += "\n\n" + desc
	}
	return out, nil
}

func entryMatches(pattern, name string) bool {
	if pattern == name {
		return true
	}
	g, err := gglob.Compile(pattern)
	if err != nil {
		return false
	}
	return g.Match(name)
}

func dedup(sorted []string) []string {
	out := sorted[:0]
	for _, t := range sorted {
		if len(out) == 0 || out[len(out)-1] != t {
			out = append(out, t)
		}
	}
	return out
}
