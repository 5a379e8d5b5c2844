// Package report renders a static HTML catalog of a tagged directory
// tree: every tracked file with its tags, and directory descriptions
// rendered from markdown.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"github.com/harrison/ftag/internal/filelock"
	"github.com/harrison/ftag/internal/glob"
	"github.com/harrison/ftag/internal/index"
	"github.com/harrison/ftag/internal/store"
	"github.com/harrison/ftag/internal/walker"
)

var md = goldmark.New()

// FileRow is one tracked file in a catalog section.
type FileRow struct {
	Name string
	Tags []string
	Desc template.HTML
}

// Section groups the tracked files of one directory.
type Section struct {
	Dir   string
	Desc  template.HTML
	Files []FileRow
}

// Report is a generated catalog, ready to render.
type Report struct {
	ID        string
	Generated time.Time
	Root      string
	FileCount int
	TagCount  int
	Sections  []Section
	Problems  []string
}

// Generate walks root and assembles a catalog of every tracked file.
// Directories whose sidecar failed to parse are listed under Problems
// rather than aborting the report.
func Generate(root string) (*Report, error) {
	tab, err := index.Build(root)
	if err != nil {
		return nil, err
	}

	w, err := walker.New(root, store.Options{
		DirDesc:  true,
		Files:    true,
		FileDesc: true,
	})
	if err != nil {
		return nil, err
	}

	rep := &Report{
		ID:        uuid.New().String(),
		Generated: time.Now(),
		Root:      tab.Root(),
		FileCount: tab.Len(),
		TagCount:  len(tab.Tags()),
	}
	for _, de := range tab.Errors() {
		rep.Problems = append(rep.Problems, fmt.Sprintf("%s: %v", de.Path, de.Err))
	}

	var m glob.Matcher
	for v, ok := w.Next(); ok; v, ok = w.Next() {
		if v.Meta == nil {
			continue
		}
		sec := Section{
			Dir:  filepath.ToSlash(v.RelPath),
			Desc: renderMarkdown(v.Meta.Desc),
		}

		names := make([]string, len(v.Files))
		for i, f := range v.Files {
			names[i] = f.Name
		}
		patterns := make([]string, len(v.Meta.Entries))
		for i, e := range v.Meta.Entries {
			patterns[i] = e.Pattern
		}
		m.FindMatches(names, patterns, false)

		for fi, name := range names {
			if !m.FileMatched(fi) {
				continue
			}
			tags := tab.FileTags(filepath.Join(v.RelPath, name))
			var desc string
			for _, pi := range m.MatchedPatterns(fi) {
				if d := v.Meta.Entries[pi].Desc; d != "" {
					if desc != "" {
						desc += "\n\n"
					}
					desc += d
				}
			}
			sec.Files = append(sec.Files, FileRow{
				Name: name,
				Tags: tags,
				Desc: renderMarkdown(desc),
			})
		}
		if len(sec.Files) > 0 || sec.Desc != "" {
			rep.Sections = append(rep.Sections, sec)
		}
	}

	sort.Slice(rep.Sections, func(i, j int) bool {
		return rep.Sections[i].Dir < rep.Sections[j].Dir
	})
	return rep, nil
}

func renderMarkdown(src string) template.HTML {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// WriteHTML renders the report as a standalone HTML page.
func (r *Report) WriteHTML(w io.Writer) error {
	return catalogTmpl.Execute(w, r)
}

// Export generates a catalog for root and atomically writes it to out.
func Export(root, out string) (*Report, error) {
	rep, err := Generate(root)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := rep.WriteHTML(&buf); err != nil {
		return nil, fmt.Errorf("failed to render catalog: %w", err)
	}
	if err := filelock.AtomicWrite(out, buf.Bytes()); err != nil {
		return nil, err
	}
	return rep, nil
}

var catalogTmpl = template.Must(template.New("catalog").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>ftag catalog</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 60rem; }
h2 { border-bottom: 1px solid #ccc; padding-bottom: 0.2rem; }
.tag { background: #eef; border-radius: 3px; padding: 0 0.3rem; margin-right: 0.2rem; font-size: 0.85em; }
.meta { color: #666; font-size: 0.85em; }
table { border-collapse: collapse; width: 100%; }
td { padding: 0.25rem 0.5rem; vertical-align: top; }
</style>
</head>
<body>
<h1>ftag catalog</h1>
<p class="meta">report {{.ID}} &middot; generated {{.Generated.Format "2006-01-02 15:04:05"}} &middot; root {{.Root}}</p>
<p class="meta">{{.FileCount}} tracked files, {{.TagCount}} tags</p>
{{if .Problems}}
<h2>Problems</h2>
<ul>
{{range .Problems}}<li>{{.}}</li>
{{end}}</ul>
{{end}}
{{range .Sections}}
<h2>{{if .Dir}}{{.Dir}}{{else}}.{{end}}</h2>
{{if .Desc}}<div>{{.Desc}}</div>{{end}}
{{if .Files}}
<table>
{{range .Files}}<tr>
<td>{{.Name}}</td>
<td>{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</td>
<td>{{.Desc}}</td>
</tr>
{{end}}</table>
{{end}}
{{end}}
</body>
</html>
`))
