package scanner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"sitemap-manager/core/scanner"
	"sitemap-manager/core/settings"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTree(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte("<html></html>"), 0o644))
	}
	return fs
}

func TestScan(t *testing.T) {
	fs := newTree(t,
		"/ws/site/index.html",
		"/ws/site/about.html",
		"/ws/site/style.css",
		"/ws/site/blog/index.html",
		"/ws/site/blog/post.php",
		"/ws/site/drafts/wip.html",
		"/ws/other/skip.html",
	)
	mtime := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	require.NoError(t, fs.Chtimes("/ws/site/about.html", mtime, mtime))

	s := settings.Defaults()
	s.Root = "site"
	s.Exclude = []string{"^drafts/"}

	res, err := scanner.Scan(context.Background(), fs, "/ws", s)
	require.NoError(t, err)

	got := make(map[string]scanner.FileRecord)
	for _, f := range res.Files {
		got[f.RelPath] = f
	}

	assert.Len(t, res.Files, 4)
	assert.Contains(t, got, "index.html")
	assert.Contains(t, got, "about.html")
	assert.Contains(t, got, "blog/index.html")
	assert.Contains(t, got, "blog/post.php")
	assert.NotContains(t, got, "style.css")
	assert.NotContains(t, got, "drafts/wip.html")

	assert.Equal(t, "http://www.example.com", got["index.html"].URL)
	assert.Equal(t, 0, got["index.html"].Depth)
	assert.Equal(t, "http://www.example.com/blog", got["blog/index.html"].URL)
	assert.Equal(t, 1, got["blog/index.html"].Depth)
	assert.Equal(t, 2, got["blog/post.php"].Depth)
	assert.True(t, mtime.Equal(got["about.html"].LastModified))
	assert.Equal(t, 2, res.MaxDepth)
}

func TestScan_LexicalOrder(t *testing.T) {
	fs := newTree(t, "/ws/c.html", "/ws/a.html", "/ws/b/z.html")

	res, err := scanner.Scan(context.Background(), fs, "/ws", settings.Defaults())
	require.NoError(t, err)

	var order []string
	for _, f := range res.Files {
		order = append(order, f.RelPath)
	}
	assert.Equal(t, []string{"a.html", "b/z.html", "c.html"}, order)
}

func TestScan_EmptyTree(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/ws", 0o755))

	res, err := scanner.Scan(context.Background(), fs, "/ws", settings.Defaults())
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.Equal(t, -1, res.MaxDepth)
}

func TestScan_Errors(t *testing.T) {
	t.Run("MissingRoot", func(t *testing.T) {
		s := settings.Defaults()
		s.Root = "nope"
		_, err := scanner.Scan(context.Background(), afero.NewMemMapFs(), "/ws", s)
		assert.True(t, errors.Is(err, scanner.ErrRootNotFound))
	})

	t.Run("RootOutsideWorkspace", func(t *testing.T) {
		s := settings.Defaults()
		s.Root = "/../etc"
		_, err := scanner.Scan(context.Background(), newTree(t, "/etc/a.html"), "/ws", s)
		assert.ErrorIs(t, err, settings.ErrOutsideWorkspace)

		_, err = scanner.RootDir("/ws", s)
		assert.ErrorIs(t, err, settings.ErrOutsideWorkspace)
	})

	t.Run("InvalidExclude", func(t *testing.T) {
		s := settings.Defaults()
		s.Exclude = []string{"("}
		_, err := scanner.Scan(context.Background(), newTree(t, "/ws/a.html"), "/ws", s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid exclude pattern")
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := scanner.Scan(ctx, newTree(t, "/ws/a.html"), "/ws", settings.Defaults())
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestInScope(t *testing.T) {
	s := settings.Defaults()
	s.Root = "site"
	s.Exclude = []string{"private"}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"Included", "/ws/site/a.html", true},
		{"Nested", "/ws/site/blog/a.php", true},
		{"WrongExtension", "/ws/site/a.css", false},
		{"OutsideRoot", "/ws/other/a.html", false},
		{"Excluded", "/ws/site/private/a.html", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scanner.InScope("/ws", s, tt.path))
		})
	}
}
