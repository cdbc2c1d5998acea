package sitemap_test

import (
	"testing"
	"time"

	"sitemap-manager/core/sitemap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://www.example.com", ""},
		{"https://example.com/", ""},
		{"http://www.example.com/blog/", "/blog"},
		{"https://example.com/blog", "/blog"},
		{"http://example.com:8080/a/b.html", "/a/b.html"},
		{"/relative/path/", "/relative/path"},
		{"example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, sitemap.Identity(tt.url))
		})
	}
}

func TestDocument_FindAndRemove(t *testing.T) {
	doc := sitemap.New()
	doc.Add(&sitemap.Entry{Location: "http://www.example.com"})
	doc.Add(&sitemap.Entry{Location: "http://www.example.com/blog/"})
	doc.Add(&sitemap.Entry{Location: "http://www.example.com/blog/post.html"})

	t.Run("FindIgnoresSchemeWWWAndTrailingSlash", func(t *testing.T) {
		e := doc.Find("https://example.com/blog")
		require.NotNil(t, e)
		assert.Equal(t, "http://www.example.com/blog/", e.Location)
	})

	t.Run("FindReturnsStoredEntry", func(t *testing.T) {
		e := doc.Find("http://www.example.com/blog/post.html")
		require.NotNil(t, e)
		e.Priority = sitemap.Float(0.3)
		assert.InDelta(t, 0.3, *doc.Find("http://www.example.com/blog/post.html").Priority, 1e-9)
	})

	t.Run("FindMissing", func(t *testing.T) {
		assert.Nil(t, doc.Find("http://www.example.com/missing.html"))
	})

	t.Run("RemoveFirstMatchOnly", func(t *testing.T) {
		d := sitemap.New()
		d.Add(&sitemap.Entry{Location: "http://www.example.com/a.html"})
		d.Add(&sitemap.Entry{Location: "http://www.example.com/a.html"})
		assert.True(t, d.Remove("http://example.com/a.html"))
		assert.Len(t, d.Entries, 1)
		assert.True(t, d.Remove("http://example.com/a.html"))
		assert.False(t, d.Remove("http://example.com/a.html"))
		assert.Empty(t, d.Entries)
	})
}

func TestDocument_MaxDepth(t *testing.T) {
	doc := sitemap.New()
	assert.Equal(t, -1, doc.MaxDepth())

	doc.Add(&sitemap.Entry{Location: "http://www.example.com"})
	assert.Equal(t, 0, doc.MaxDepth())

	doc.Add(&sitemap.Entry{Location: "http://www.example.com/a/b/c.html"})
	assert.Equal(t, 3, doc.MaxDepth())
}

func TestParseChangeFrequency(t *testing.T) {
	assert.Equal(t, sitemap.Weekly, sitemap.ParseChangeFrequency("weekly"))
	assert.Equal(t, sitemap.Daily, sitemap.ParseChangeFrequency(" Daily "))
	assert.Equal(t, sitemap.ChangeFrequency(""), sitemap.ParseChangeFrequency("fortnightly"))
	assert.Equal(t, sitemap.ChangeFrequency(""), sitemap.ParseChangeFrequency(""))
}

func TestTimeHelper(t *testing.T) {
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	p := sitemap.Time(now)
	require.NotNil(t, p)
	assert.True(t, now.Equal(*p))
}
