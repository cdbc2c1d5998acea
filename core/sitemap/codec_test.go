package sitemap_test

import (
	"strings"
	"testing"
	"time"

	"sitemap-manager/core/sitemap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9" xmlns:xhtml="http://www.w3.org/1999/xhtml">
	<url>
		<loc>http://www.example.com/about.html</loc>
		<priority>0.50</priority>
		<changefreq>monthly</changefreq>
		<lastmod>2024-03-01</lastmod>
	</url>
	<url>
		<loc>http://www.example.com</loc>
		<priority>1.00</priority>
	</url>
</urlset>`

func TestParse(t *testing.T) {
	doc := sitemap.Parse([]byte(sample))

	assert.Equal(t, "1.0", doc.Version)
	assert.Equal(t, "UTF-8", doc.Encoding)
	require.Len(t, doc.RootAttributes, 2)
	assert.Equal(t, sitemap.Attr{Name: "xmlns", Value: sitemap.Namespace}, doc.RootAttributes[0])
	assert.Equal(t, "xmlns:xhtml", doc.RootAttributes[1].Name)

	require.Len(t, doc.Entries, 2)
	about := doc.Entries[0]
	assert.Equal(t, "http://www.example.com/about.html", about.Location)
	require.NotNil(t, about.Priority)
	assert.InDelta(t, 0.5, *about.Priority, 1e-9)
	assert.Equal(t, sitemap.Monthly, about.ChangeFrequency)
	require.NotNil(t, about.LastModified)
	assert.Equal(t, "2024-03-01", about.LastModified.Format(sitemap.DateLayout))

	home := doc.Entries[1]
	assert.Nil(t, home.LastModified)
	assert.Empty(t, home.ChangeFrequency)
}

func TestParse_Tolerant(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, doc *sitemap.Document)
	}{
		{
			name:  "Empty",
			input: "",
			check: func(t *testing.T, doc *sitemap.Document) {
				assert.Equal(t, sitemap.DefaultVersion, doc.Version)
				assert.Equal(t, sitemap.DefaultEncoding, doc.Encoding)
				assert.Equal(t, []sitemap.Attr{{Name: "xmlns", Value: sitemap.Namespace}}, doc.RootAttributes)
				assert.Empty(t, doc.Entries)
			},
		},
		{
			name:  "NoDeclaration",
			input: `<urlset xmlns="urn:x"><url><loc>http://a.com/x</loc></url></urlset>`,
			check: func(t *testing.T, doc *sitemap.Document) {
				assert.Equal(t, sitemap.DefaultVersion, doc.Version)
				assert.Equal(t, []sitemap.Attr{{Name: "xmlns", Value: "urn:x"}}, doc.RootAttributes)
				require.Len(t, doc.Entries, 1)
			},
		},
		{
			name:  "UrlWithoutLocDropped",
			input: `<urlset><url><priority>0.5</priority></url><url><loc>http://a.com/y</loc></url></urlset>`,
			check: func(t *testing.T, doc *sitemap.Document) {
				require.Len(t, doc.Entries, 1)
				assert.Equal(t, "http://a.com/y", doc.Entries[0].Location)
			},
		},
		{
			name:  "BadValuesLeftAbsent",
			input: `<urlset><url><loc>http://a.com/z</loc><priority>high</priority><lastmod>yesterday</lastmod><changefreq>sometimes</changefreq></url></urlset>`,
			check: func(t *testing.T, doc *sitemap.Document) {
				require.Len(t, doc.Entries, 1)
				e := doc.Entries[0]
				assert.Nil(t, e.Priority)
				assert.Nil(t, e.LastModified)
				assert.Empty(t, e.ChangeFrequency)
			},
		},
		{
			name: "InvalidPrioritiesLeftAbsent",
			input: `<urlset>` +
				`<url><loc>http://a.com/nan</loc><priority>NaN</priority></url>` +
				`<url><loc>http://a.com/inf</loc><priority>+Inf</priority></url>` +
				`<url><loc>http://a.com/big</loc><priority>7</priority></url>` +
				`<url><loc>http://a.com/neg</loc><priority>-0.1</priority></url>` +
				`<url><loc>http://a.com/ok</loc><priority>1.0</priority></url>` +
				`</urlset>`,
			check: func(t *testing.T, doc *sitemap.Document) {
				require.Len(t, doc.Entries, 5)
				for _, e := range doc.Entries[:4] {
					assert.Nil(t, e.Priority, e.Location)
				}
				require.NotNil(t, doc.Entries[4].Priority)
				assert.InDelta(t, 1.0, *doc.Entries[4].Priority, 1e-9)

				out := string(sitemap.Serialize(doc, false, "\t"))
				assert.NotContains(t, out, "NaN")
				assert.NotContains(t, out, "Inf")
				assert.NotContains(t, out, "7.00")
				assert.Less(t, strings.Index(out, "http://a.com/ok"), strings.Index(out, "http://a.com/nan"))
			},
		},
		{
			name:  "UnterminatedBlockIgnored",
			input: `<urlset><url><loc>http://a.com/ok</loc></url><url><loc>http://a.com/broken</loc></urlset>`,
			check: func(t *testing.T, doc *sitemap.Document) {
				require.Len(t, doc.Entries, 1)
				assert.Equal(t, "http://a.com/ok", doc.Entries[0].Location)
			},
		},
		{
			name:  "EntitiesDecoded",
			input: `<urlset><url><loc>http://a.com/?a=1&amp;b=2</loc></url></urlset>`,
			check: func(t *testing.T, doc *sitemap.Document) {
				require.Len(t, doc.Entries, 1)
				assert.Equal(t, "http://a.com/?a=1&b=2", doc.Entries[0].Location)
			},
		},
		{
			name:  "W3CDatetime",
			input: `<urlset><url><loc>http://a.com/t</loc><lastmod>2024-05-06T07:08:09+00:00</lastmod></url></urlset>`,
			check: func(t *testing.T, doc *sitemap.Document) {
				require.NotNil(t, doc.Entries[0].LastModified)
				assert.Equal(t, "2024-05-06", doc.Entries[0].LastModified.Format(sitemap.DateLayout))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, sitemap.Parse([]byte(tt.input)))
		})
	}
}

func TestRender_Layout(t *testing.T) {
	doc := sitemap.New()
	doc.Add(&sitemap.Entry{
		Location:        "http://www.example.com/a.html",
		Priority:        sitemap.Float(0.5),
		ChangeFrequency: sitemap.Weekly,
		LastModified:    sitemap.Time(time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)),
	})
	doc.Add(&sitemap.Entry{Location: "http://www.example.com", Priority: sitemap.Float(1)})

	want := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<url>
		<loc>http://www.example.com</loc>
		<priority>1.00</priority>
	</url>
	<url>
		<loc>http://www.example.com/a.html</loc>
		<priority>0.50</priority>
		<changefreq>weekly</changefreq>
		<lastmod>2024-01-02</lastmod>
	</url>
</urlset>
`
	assert.Equal(t, want, string(sitemap.Serialize(doc, false, "\t")))
}

func TestRender_Minimized(t *testing.T) {
	doc := sitemap.New()
	doc.Add(&sitemap.Entry{Location: "http://www.example.com", Priority: sitemap.Float(1)})

	out := string(sitemap.Serialize(doc, true, "  "))
	assert.Equal(t,
		`<?xml version="1.0" encoding="UTF-8"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"><url><loc>http://www.example.com</loc><priority>1.00</priority></url></urlset>`,
		out)
}

func TestRender_TagFilter(t *testing.T) {
	doc := sitemap.New()
	doc.Add(&sitemap.Entry{
		Location:        "http://www.example.com/a.html",
		Priority:        sitemap.Float(0.5),
		ChangeFrequency: sitemap.Weekly,
		LastModified:    sitemap.Time(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
	})

	out := string(doc.Render(sitemap.Format{Tab: "\t", Tags: []string{sitemap.TagLastMod}}))
	assert.Contains(t, out, "<lastmod>2024-01-02</lastmod>")
	assert.NotContains(t, out, "<priority>")
	assert.NotContains(t, out, "<changefreq>")

	out = string(doc.Render(sitemap.Format{Tab: "\t", Tags: []string{}}))
	assert.Contains(t, out, "<loc>http://www.example.com/a.html</loc>")
	assert.NotContains(t, out, "<lastmod>")
}

func TestRender_StableSortByPriority(t *testing.T) {
	doc := sitemap.New()
	doc.Add(&sitemap.Entry{Location: "http://a.com/p02", Priority: sitemap.Float(0.2)})
	doc.Add(&sitemap.Entry{Location: "http://a.com/p08", Priority: sitemap.Float(0.8)})
	doc.Add(&sitemap.Entry{Location: "http://a.com/p05", Priority: sitemap.Float(0.5)})
	doc.Add(&sitemap.Entry{Location: "http://a.com/none"})
	doc.Add(&sitemap.Entry{Location: "http://a.com/zero", Priority: sitemap.Float(0)})

	out := string(sitemap.Serialize(doc, true, ""))
	order := []string{"p08", "p05", "p02", "none", "zero"}
	last := -1
	for _, name := range order {
		i := strings.Index(out, "http://a.com/"+name+"<")
		require.Greater(t, i, last, name)
		last = i
	}

	// Render does not reorder the document itself.
	assert.Equal(t, "http://a.com/p02", doc.Entries[0].Location)
}

func TestRender_EscapesValues(t *testing.T) {
	doc := sitemap.New()
	doc.Add(&sitemap.Entry{Location: "http://a.com/?a=1&b=<2>"})

	out := string(sitemap.Serialize(doc, false, "\t"))
	assert.Contains(t, out, "<loc>http://a.com/?a=1&amp;b=&lt;2&gt;</loc>")

	back := sitemap.Parse([]byte(out))
	require.Len(t, back.Entries, 1)
	assert.Equal(t, "http://a.com/?a=1&b=<2>", back.Entries[0].Location)
}

func TestRoundTrip_PreservesDocument(t *testing.T) {
	doc := sitemap.Parse([]byte(sample))
	again := sitemap.Parse(sitemap.Serialize(doc, false, "\t"))

	assert.Equal(t, doc.Version, again.Version)
	assert.Equal(t, doc.Encoding, again.Encoding)
	assert.Equal(t, doc.RootAttributes, again.RootAttributes)
	require.Len(t, again.Entries, 2)
	// Highest priority first after a write.
	assert.Equal(t, "http://www.example.com", again.Entries[0].Location)
	assert.Equal(t, sitemap.Monthly, again.Entries[1].ChangeFrequency)
}
