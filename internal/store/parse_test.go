package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// allOptions loads every part of a sidecar file.
var allOptions = Options{
	DirTags:  true,
	DirDesc:  true,
	Files:    true,
	FileTags: true,
	FileDesc: true,
}

func TestParseCompleteSidecarFile(t *testing.T) {
	input := `
[tags]
dir_tag1 dir_tag2

[desc]
Directory description

[path]
*.jpg
file.txt

[tags]
image text

[desc]
Mixed file types

[path]
video_*

[tags]
video media
`
	data, err := Parse(input, "dummy", allOptions)
	require.NoError(t, err)
	assert.Equal(t, []string{"dir_tag1", "dir_tag2"}, data.Tags)
	assert.Equal(t, "Directory description", data.Desc)
	require.Len(t, data.Entries, 3)
	assert.Equal(t, "*.jpg", data.Entries[0].Pattern)
	assert.Equal(t, "file.txt", data.Entries[1].Pattern)
	assert.Equal(t, []string{"image", "text"}, data.Entries[0].Tags)
	assert.Equal(t, "Mixed file types", data.Entries[0].Desc)
	assert.Equal(t, []string{"image", "text"}, data.Entries[1].Tags)
	assert.Equal(t, "video_*", data.Entries[2].Pattern)
	assert.Equal(t, []string{"video", "media"}, data.Entries[2].Tags)
	assert.Equal(t, "", data.Entries[2].Desc)
}

func TestParseLoadingOptions(t *testing.T) {
	input := `
[tags]
dir_tag

[desc]
Directory description

[path]
file.txt

[tags]
file_tag

[desc]
File description
`
	// Directory-only loading stops at the first [path] header.
	data, err := Parse(input, "dummy", Options{DirTags: true, DirDesc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"dir_tag"}, data.Tags)
	assert.Equal(t, "Directory description", data.Desc)
	assert.Empty(t, data.Entries)

	// File tags only.
	data, err = Parse(input, "dummy", Options{Files: true, FileTags: true})
	require.NoError(t, err)
	assert.Empty(t, data.Tags)
	assert.Equal(t, "", data.Desc)
	require.Len(t, data.Entries, 1)
	assert.Equal(t, []string{"file_tag"}, data.Entries[0].Tags)
	assert.Equal(t, "", data.Entries[0].Desc)
}

func TestParseWhitespaceAndEmptySections(t *testing.T) {
	input := `


[tags]
  tag1   tag2

[desc]

[path]
  file.txt

[tags]


`
	data, err := Parse(input, "dummy", allOptions)
	require.NoError(t, err)
	assert.Equal(t, []string{"tag1", "tag2"}, data.Tags)
	assert.Equal(t, "", data.Desc)
	require.Len(t, data.Entries, 1)
	assert.Equal(t, "file.txt", data.Entries[0].Pattern)
	assert.Empty(t, data.Entries[0].Tags)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no headers", input: "plain text"},
		{name: "unknown header", input: "[tags]\ntag1\n[unknown]\ncontent"},
		{name: "duplicate directory tags", input: "[tags]\ntag1\n[tags]\ntag2"},
		{name: "duplicate directory desc", input: "[desc]\none\n[desc]\ntwo"},
		{name: "duplicate file tags", input: "[path]\nfile.txt\n[tags]\ntag1\n[tags]\ntag2"},
		{name: "duplicate file desc", input: "[path]\nfile.txt\n[desc]\none\n[desc]\ntwo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, "dummy", allOptions)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "dummy", perr.Path)
		})
	}
}

func TestParseBoundaryConditions(t *testing.T) {
	// Header at end of file without trailing newline.
	data, err := Parse("[tags]\ntag1 tag2\n[desc]\nend description", "dummy", allOptions)
	require.NoError(t, err)
	assert.Equal(t, []string{"tag1", "tag2"}, data.Tags)
	assert.Equal(t, "end description", data.Desc)

	// Empty content sections and stray blank lines.
	data, err = Parse("[tags]\n\n\n[desc]\n\n[path]\n\n\nfile.txt\n\n", "dummy", allOptions)
	require.NoError(t, err)
	assert.Empty(t, data.Tags)
	require.Len(t, data.Entries, 1)
	assert.Equal(t, "file.txt", data.Entries[0].Pattern)

	// A trailing '[' terminates content without starting a header.
	data, err = Parse("[tags]\ntag1\nsome text ending with\n[", "dummy", allOptions)
	require.NoError(t, err)
	assert.Equal(t, []string{"tag1", "some", "text", "ending", "with"}, data.Tags)

	// Multiple patterns in one [path] section share tags and desc.
	data, err = Parse("[path]\na.txt\nb.txt\n[tags]\nshared", "dummy", allOptions)
	require.NoError(t, err)
	require.Len(t, data.Entries, 2)
	assert.Equal(t, []string{"shared"}, data.Entries[0].Tags)
	assert.Equal(t, []string{"shared"}, data.Entries[1].Tags)
}

func TestImplicitTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "year range", input: "2021_2023", want: []string{"2021", "2022", "2023"}},
		{name: "year range with to", input: "2021_to_2023", want: []string{"2021", "2022", "2023"}},
		{name: "single year prefix dir", input: "1998_MyDirectory", want: []string{"1998"}},
		{name: "year and format", input: "1998_MyFile.pdf", want: []string{"1998", "document"}},
		{name: "bare year", input: "2024", want: []string{"2024"}},
		{name: "format only", input: "MyFile.pdf", want: []string{"document"}},
		{name: "no year no format", input: "MyFile.bin", want: nil},
		{name: "short input", input: "202", want: nil},
		{name: "digits not a prefix", input: "a2021", want: nil},
		{name: "underscore then junk", input: "2021_notayear", want: []string{"2021"}},
		{name: "to_ then junk", input: "2021_to_junk", want: []string{"2021"}},
		{name: "reversed range is empty", input: "2023_2021", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ImplicitTags(tt.input))
		})
	}
}

func TestImplicitFormatTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{input: "test.gif", want: []string{"image"}},
		{input: "ex", want: nil},
		{input: "test2.png", want: []string{"image"}},
		{input: "myvid.mov", want: []string{"video"}},
		{input: "song.FLAC", want: []string{"audio"}},
		{input: "Report.PDF", want: []string{"document"}},
		{input: "archive.tar.gz", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ImplicitTags(tt.input))
		})
	}
}

func TestSidecarPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "hello")

	// Without a sidecar file, mustExist=true fails and mustExist=false
	// points at the primary candidate.
	_, err := SidecarPath(dir, true)
	assert.ErrorIs(t, err, ErrNotFound)
	p, err := SidecarPath(dir, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SidecarFile), p)

	// The legacy name is found as a fallback.
	writeFile(t, filepath.Join(dir, LegacySidecarFile), "[tags]\nx")
	p, err = SidecarPath(dir, true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, LegacySidecarFile), p)

	// The primary name wins when both exist, and a file path resolves to
	// its sibling sidecar.
	writeFile(t, filepath.Join(dir, SidecarFile), "[tags]\ny")
	p, err = SidecarPath(filepath.Join(dir, "a.txt"), true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SidecarFile), p)
}
