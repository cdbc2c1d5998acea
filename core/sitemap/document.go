package sitemap

import (
	"strings"
	"time"

	"sitemap-manager/core/urls"
)

// Namespace is the sitemaps.org URL-set schema namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Defaults for the XML declaration when the source has none.
const (
	DefaultVersion  = "1.0"
	DefaultEncoding = "UTF-8"
)

// ChangeFrequency is the optional <changefreq> value of an entry.
type ChangeFrequency string

const (
	Always  ChangeFrequency = "always"
	Hourly  ChangeFrequency = "hourly"
	Daily   ChangeFrequency = "daily"
	Weekly  ChangeFrequency = "weekly"
	Monthly ChangeFrequency = "monthly"
	Yearly  ChangeFrequency = "yearly"
	Never   ChangeFrequency = "never"
)

// ParseChangeFrequency returns the frequency named by s, or "" if s is not a known value.
func ParseChangeFrequency(s string) ChangeFrequency {
	switch f := ChangeFrequency(strings.ToLower(strings.TrimSpace(s))); f {
	case Always, Hourly, Daily, Weekly, Monthly, Yearly, Never:
		return f
	default:
		return ""
	}
}

// Entry is a single <url> of the document. Nil/empty optional fields are not written.
type Entry struct {
	Location        string          `json:"loc"`
	LastModified    *time.Time      `json:"lastmod,omitempty"`
	Priority        *float64        `json:"priority,omitempty"`
	ChangeFrequency ChangeFrequency `json:"changefreq,omitempty"`
}

// Attr is an attribute of the root <urlset> element.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Document is an in-memory sitemap.
type Document struct {
	Version        string   `json:"version"`
	Encoding       string   `json:"encoding"`
	RootAttributes []Attr   `json:"root_attributes"`
	Entries        []*Entry `json:"entries"`
}

// New returns an empty document with the default declaration and namespace.
func New() *Document {
	return &Document{
		Version:        DefaultVersion,
		Encoding:       DefaultEncoding,
		RootAttributes: []Attr{{Name: "xmlns", Value: Namespace}},
	}
}

// Add appends an entry. Duplicate locations are allowed.
func (d *Document) Add(e *Entry) {
	d.Entries = append(d.Entries, e)
}

// Find returns the first entry with the same identity as url, or nil.
// The returned entry is the stored one, so changes to it are kept.
func (d *Document) Find(url string) *Entry {
	if i := d.index(url); i >= 0 {
		return d.Entries[i]
	}
	return nil
}

// Remove deletes the first entry with the same identity as url.
// It reports whether an entry was removed.
func (d *Document) Remove(url string) bool {
	i := d.index(url)
	if i < 0 {
		return false
	}
	d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
	return true
}

// MaxDepth returns the deepest entry depth, or -1 when the document is empty.
func (d *Document) MaxDepth() int {
	locs := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		locs[i] = e.Location
	}
	return urls.MaxDepth(locs)
}

func (d *Document) index(url string) int {
	id := Identity(url)
	for i, e := range d.Entries {
		if Identity(e.Location) == id {
			return i
		}
	}
	return -1
}

// Identity returns the key two URLs of the same page share: the path after the
// host, without a trailing slash. Scheme, "www." and port are ignored.
//
//	Identity("https://www.example.com/blog/") == Identity("http://example.com/blog") == "/blog"
func Identity(url string) string {
	rest := url
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	i := strings.Index(rest, "/")
	if i < 0 {
		return ""
	}
	return strings.TrimRight(rest[i:], "/")
}

// Float returns a pointer to v, for building entries.
func Float(v float64) *float64 {
	return &v
}

// Time returns a pointer to t, for building entries.
func Time(t time.Time) *time.Time {
	return &t
}
