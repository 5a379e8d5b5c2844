package store

import (
	"strings"
)

// Options selects which parts of a sidecar file are retained. Callers that
// only need glob patterns can skip tags and descriptions and avoid the
// allocations for them.
type Options struct {
	// DirTags retains the directory-level [tags] header.
	DirTags bool
	// DirDesc retains the directory-level [desc] header.
	DirDesc bool
	// Files retains [path] entries at all. When false, parsing stops at the
	// first [path] header.
	Files bool
	// FileTags retains per-entry [tags] headers.
	FileTags bool
	// FileDesc retains per-entry [desc] headers.
	FileDesc bool
}

type headerKind int

const (
	headerPath headerKind = iota
	headerTags
	headerDesc
)

type header struct {
	kind    headerKind
	content string
}

// headerScanner yields bracket headers and their content in file order.
// The scanner positions itself just past the opening '[' of each header.
type headerScanner struct {
	input string
	path  string
}

func newHeaderScanner(input, path string) (*headerScanner, error) {
	input = strings.TrimSpace(input)
	if rest, ok := strings.CutPrefix(input, "["); ok {
		return &headerScanner{input: strings.TrimSpace(rest), path: path}, nil
	}
	pos := strings.Index(input, "\n[")
	if pos < 0 {
		return nil, &ParseError{Path: path, Reason: "cannot find the first header in the file"}
	}
	return &headerScanner{input: strings.TrimSpace(input[pos+2:]), path: path}, nil
}

// next returns the next header, or ok false at end of input.
func (s *headerScanner) next() (header, bool, error) {
	if s.input == "" {
		return header{}, false, nil
	}
	names := []struct {
		pat  string
		kind headerKind
	}{
		{"path]", headerPath},
		{"tags]", headerTags},
		{"desc]", headerDesc},
	}
	for _, n := range names {
		rest, ok := strings.CutPrefix(s.input, n.pat)
		if !ok {
			continue
		}
		content := rest
		next := len(rest)
		if pos := strings.Index(rest, "\n["); pos >= 0 {
			content = rest[:pos]
			next = pos + 2
		}
		s.input = rest[next:]
		return header{kind: n.kind, content: strings.TrimSpace(content)}, true, nil
	}
	line := s.input
	if pos := strings.IndexByte(line, '\n'); pos >= 0 {
		line = line[:pos]
	}
	return header{}, false, &ParseError{Path: s.path, Reason: "unrecognized header at: " + line}
}

// entryState accumulates one [path] entry while its trailing headers are
// consumed.
type entryState struct {
	patterns string
	tags     []string
	haveTags bool
	desc     string
	haveDesc bool
}

func (e *entryState) flush(dst *DirData) {
	for _, line := range strings.Split(e.patterns, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		dst.Entries = append(dst.Entries, FileEntry{
			Pattern: line,
			Desc:    e.desc,
			Tags:    e.tags,
		})
	}
}

// Parse parses raw sidecar file text. The path argument is used only for
// error messages. The text must begin with a header; an unrecognized header
// name or a duplicate [tags]/[desc] at the same scope is a fatal parse error.
func Parse(raw, path string, opts Options) (*DirData, error) {
	scanner, err := newHeaderScanner(raw, path)
	if err != nil {
		return nil, err
	}
	data := &DirData{}
	var (
		cur         *entryState
		haveDirTags bool
		haveDirDesc bool
	)
	for {
		h, ok, err := scanner.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch h.kind {
		case headerPath:
			if !opts.Files {
				// Nothing past the first file entry is wanted.
				return data, nil
			}
			if cur != nil {
				cur.flush(data)
			}
			cur = &entryState{patterns: h.content}
		case headerTags:
			if cur != nil {
				if cur.haveTags {
					return nil, &ParseError{
						Path:   path,
						Reason: "more than one 'tags' header for entry: " + firstLine(cur.patterns),
					}
				}
				cur.haveTags = true
				if opts.FileTags {
					cur.tags = strings.Fields(h.content)
				}
			} else {
				if haveDirTags {
					return nil, &ParseError{Path: path, Reason: "the directory has more than one 'tags' header"}
				}
				haveDirTags = true
				if opts.DirTags {
					data.Tags = strings.Fields(h.content)
				}
			}
		case headerDesc:
			if cur != nil {
				if cur.haveDesc {
					return nil, &ParseError{
						Path:   path,
						Reason: "more than one 'desc' header for entry: " + firstLine(cur.patterns),
					}
				}
				cur.haveDesc = true
				if opts.FileDesc {
					cur.desc = h.content
				}
			} else {
				if haveDirDesc {
					return nil, &ParseError{Path: path, Reason: "the directory has more than one 'desc' header"}
				}
				haveDirDesc = true
				if opts.DirDesc {
					data.Desc = h.content
				}
			}
		}
	}
	if cur != nil {
		cur.flush(data)
	}
	return data, nil
}

func firstLine(s string) string {
	if pos := strings.IndexByte(s, '\n'); pos >= 0 {
		return s[:pos]
	}
	return s
}
