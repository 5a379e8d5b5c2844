package query

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/ftag/internal/filter"
	"github.com/harrison/ftag/internal/store"
)

// fixture builds the shared scenario tree:
//
//	root        tags: project        files: readme.md
//	root/docs   tags: draft          files: report.pdf, *.txt
//	root/media  tags: photo          files: *.jpg (one missing pattern)
func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write(store.SidecarFile, "[tags]\nproject\n[path]\nreadme.md")
	write("readme.md", "")
	write("docs/"+store.SidecarFile, "[tags]\ndraft\n[path]\nreport.pdf\n[tags]\npdf\n[path]\n*.txt")
	write("docs/report.pdf", "")
	write("docs/a.txt", "")
	write("docs/loose.bin", "")
	write("media/"+store.SidecarFile, "[tags]\nphoto\n[path]\n*.jpg\n[path]\nmissing.raw")
	write("media/pic.jpg", "")
	return root
}

func slashed(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.ToSlash(p)
	}
	return out
}

func TestMatches(t *testing.T) {
	root := fixture(t)
	tests := []struct {
		filter string
		want   []string
	}{
		{filter: "project", want: []string{"docs/a.txt", "docs/report.pdf", "media/pic.jpg", "readme.md"}},
		{filter: "project & draft", want: []string{"docs/a.txt", "docs/report.pdf"}},
		{filter: "project & !draft", want: []string{"media/pic.jpg", "readme.md"}},
		{filter: "pdf", want: []string{"docs/report.pdf"}},
		{filter: "photo | pdf", want: []string{"docs/report.pdf", "media/pic.jpg"}},
		{filter: "draft & !pdf", want: []string{"docs/a.txt"}},
		{filter: "nosuchtag", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			res, err := Matches(root, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, slashed(res.Matches))
			assert.Empty(t, res.DirErrors)
		})
	}
}

func TestMatchesBadFilter(t *testing.T) {
	root := fixture(t)
	_, err := Matches(root, "a & & b")
	assert.ErrorIs(t, err, filter.ErrUnexpectedOperator)
	_, err = Matches(root, "")
	assert.ErrorIs(t, err, filter.ErrEmptyQuery)
}

func TestMatchesInvalidRoot(t *testing.T) {
	_, err := Matches(filepath.Join(t.TempDir(), "gone"), "x")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	root := fixture(t)
	problems, err := Check(root)
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, "missing.raw", problems[0].Pattern)
	assert.Equal(t, filepath.Join(root, "media"), problems[0].Dir)
}

func TestCheckReportsMalformedSidecar(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, store.SidecarFile), []byte("garbage"), 0o644))
	problems, err := Check(root)
	require.NoError(t, err)
	require.Len(t, problems, 1)
	var perr *store.ParseError
	assert.ErrorAs(t, problems[0].Err, &perr)
}

func TestCheckClean(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, store.SidecarFile), []byte("[path]\nf.txt"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "f.txt"), []byte(""), 0o644))
	problems, err := Check(root)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestUntracked(t *testing.T) {
	root := fixture(t)
	got, err := Untracked(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/loose.bin"}, slashed(got))
}

func TestUntrackedNoSidecar(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte(""), 0o644))
	got, err := Untracked(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "sub/b.txt"}, slashed(got))
}

func TestAllTags(t *testing.T) {
	root := fixture(t)
	got, err := AllTags(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"document", "draft", "image", "pdf", "photo", "project"}, got)
}

func TestAllTagsIncludesImplicit(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, store.SidecarFile), []byte("[path]\n2021_scan.png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "2021_scan.png"), []byte(""), 0o644))
	got, err := AllTags(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"2021", "image"}, got)
}

func TestStats(t *testing.T) {
	root := fixture(t)
	files, tags, err := Stats(root)
	require.NoError(t, err)
	assert.Equal(t, 4, files)
	assert.Equal(t, 6, tags)
}

func TestDescribe(t *testing.T) {
	root := t.TempDir()
	sidecar := "[tags]\nproject\n[desc]\nTop level.\n[path]\nreport.pdf\n[tags]\nfinal\n[desc]\nThe annual report."
	require.NoError(t, os.WriteFile(filepath.Join(root, store.SidecarFile), []byte(sidecar), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "report.pdf"), []byte(""), 0o644))

	// A file merges directory metadata, its matching entries and the
	// implicit tags of its name.
	got, err := Describe(filepath.Join(root, "report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "tags: [document, final, project]\n\nThe annual report.\nTop level.", got)

	// A directory reports only its own tags and description.
	got, err = Describe(root)
	require.NoError(t, err)
	assert.Equal(t, "tags: [project]\n\nTop level.", got)
}

func TestDescribeImplicitTags(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, store.SidecarFile), []byte("[path]\n1998_scan.png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "1998_scan.png"), []byte(""), 0o644))

	got, err := Describe(filepath.Join(root, "1998_scan.png"))
	require.NoError(t, err)
	assert.Equal(t, "tags: [1998, image]", got)
}

func TestDescribeNoMetadata(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte(""), 0o644))
	_, err := Describe(filepath.Join(root, "file.txt"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}
