package urls_test

import (
	"testing"

	"sitemap-manager/core/settings"
	"sitemap-manager/core/urls"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	base := settings.Defaults()

	withOpts := func(apply func(*settings.Settings)) settings.Settings {
		s := settings.Defaults()
		apply(&s)
		return s
	}

	tests := []struct {
		name     string
		settings settings.Settings
		path     string
		want     string
	}{
		{"RootIndex", base, "index.html", "http://www.example.com"},
		{"NestedIndex", base, "blog/index.html", "http://www.example.com/blog"},
		{"IndexCaseInsensitive", base, "blog/INDEX.php", "http://www.example.com/blog"},
		{"PlainFile", base, "about.html", "http://www.example.com/about.html"},
		{"BackslashSeparators", base, `blog\post.html`, "http://www.example.com/blog/post.html"},
		{"RemoveExtensions", withOpts(func(s *settings.Settings) { s.RemoveFileExtensions = true }),
			"blog/post.html", "http://www.example.com/blog/post"},
		{"TrailingSlashOnBarePath", withOpts(func(s *settings.Settings) {
			s.RemoveFileExtensions = true
			s.UseTrailingSlash = true
		}), "blog/post.html", "http://www.example.com/blog/post/"},
		{"TrailingSlashSkippedForFileName", withOpts(func(s *settings.Settings) { s.UseTrailingSlash = true }),
			"blog/post.html", "http://www.example.com/blog/post.html"},
		{"TrailingSlashSkippedForRoot", withOpts(func(s *settings.Settings) { s.UseTrailingSlash = true }),
			"index.html", "http://www.example.com"},
		{"HTTPSWithoutWWW", withOpts(func(s *settings.Settings) {
			s.Protocol = "https"
			s.IncludeWWW = false
			s.DomainName = "mysite.org"
		}), "docs/guide.html", "https://mysite.org/docs/guide.html"},
		{"MissingDomain", withOpts(func(s *settings.Settings) { s.DomainName = "" }),
			"a.html", "http://www./a.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, urls.Derive(tt.settings, tt.path))
		})
	}
}

func TestRelativePath(t *testing.T) {
	s := settings.Defaults()
	s.Root = "public"

	rel, ok := urls.RelativePath("/workspace", s, "/workspace/public/blog/post.html")
	assert.True(t, ok)
	assert.Equal(t, "blog/post.html", rel)

	_, ok = urls.RelativePath("/workspace", s, "/workspace/private/post.html")
	assert.False(t, ok)

	rel, ok = urls.RelativePath("/workspace", s, "blog/post.html")
	assert.True(t, ok)
	assert.Equal(t, "blog/post.html", rel)
}

func TestDepth(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"http://www.example.com", 0},
		{"http://www.example.com/", 0},
		{"http://www.example.com/about.html", 1},
		{"http://www.example.com/blog/", 1},
		{"http://www.example.com/blog/post.html", 2},
		{"http://www.example.com/a/b/c.html", 3},
		{"example.com", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, urls.Depth(tt.url))
		})
	}
}

func TestPriority(t *testing.T) {
	assert.InDelta(t, 1.0, urls.Priority(0, 3), 1e-9)
	assert.InDelta(t, 0.25, urls.Priority(3, 3), 1e-9)
	assert.InDelta(t, 0.5, urls.Priority(1, 1), 1e-9)
	assert.InDelta(t, 0.0, urls.Priority(1, 0), 1e-9)
}

func TestMaxDepth(t *testing.T) {
	assert.Equal(t, -1, urls.MaxDepth(nil))
	assert.Equal(t, 2, urls.MaxDepth([]string{
		"http://www.example.com",
		"http://www.example.com/blog/post.html",
		"http://www.example.com/about.html",
	}))
}
