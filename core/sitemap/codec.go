package sitemap

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Tag names of the optional entry fields.
const (
	TagPriority   = "priority"
	TagChangeFreq = "changefreq"
	TagLastMod    = "lastmod"
)

// DateLayout is the <lastmod> output format.
const DateLayout = "2006-01-02"

var (
	versionRe    = regexp.MustCompile(`<\?xml[^>]*?\bversion\s*=\s*["']([^"']*)["']`)
	encodingRe   = regexp.MustCompile(`<\?xml[^>]*?\bencoding\s*=\s*["']([^"']*)["']`)
	rootRe       = regexp.MustCompile(`<urlset\b([^>]*?)/?>`)
	attrRe       = regexp.MustCompile(`([\w:.-]+)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	urlBlockRe   = regexp.MustCompile(`(?s)<url(?:\s[^>]*)?>(.*?)</url>`)
	locRe        = regexp.MustCompile(`(?s)<loc>(.*?)</loc>`)
	priorityRe   = regexp.MustCompile(`(?s)<priority>(.*?)</priority>`)
	lastModRe    = regexp.MustCompile(`(?s)<lastmod>(.*?)</lastmod>`)
	changeFreqRe = regexp.MustCompile(`(?s)<changefreq>(.*?)</changefreq>`)
	betweenTags  = regexp.MustCompile(`>\s+<`)
)

var (
	unescaper   = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'", "&amp;", "&")
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// lastModLayouts are the W3C datetime forms accepted in <lastmod>.
var lastModLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01",
	"2006",
}

// Parse reads a sitemap document. It never fails: a missing declaration or root
// falls back to the defaults, <url> blocks without <loc> are dropped, and values
// that cannot be read are left absent. Tags other than loc, priority, lastmod and
// changefreq are not kept.
func Parse(text []byte) *Document {
	src := string(text)
	doc := New()

	if m := versionRe.FindStringSubmatch(src); m != nil {
		doc.Version = m[1]
	}
	if m := encodingRe.FindStringSubmatch(src); m != nil {
		doc.Encoding = m[1]
	}
	if m := rootRe.FindStringSubmatch(src); m != nil {
		if attrs := parseAttrs(m[1]); len(attrs) > 0 {
			doc.RootAttributes = attrs
		}
	}

	for _, block := range urlBlockRe.FindAllStringSubmatch(src, -1) {
		if e := parseEntry(block[1]); e != nil {
			doc.Add(e)
		}
	}
	return doc
}

func parseAttrs(raw string) []Attr {
	var attrs []Attr
	for _, m := range attrRe.FindAllStringSubmatch(raw, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		attrs = append(attrs, Attr{Name: m[1], Value: unescaper.Replace(value)})
	}
	return attrs
}

func parseEntry(block string) *Entry {
	loc, ok := field(locRe, block)
	if !ok || loc == "" {
		return nil
	}
	e := &Entry{Location: loc}

	if v, ok := field(priorityRe, block); ok {
		e.Priority = parsePriority(v)
	}
	if v, ok := field(lastModRe, block); ok {
		e.LastModified = parseLastMod(v)
	}
	if v, ok := field(changeFreqRe, block); ok {
		e.ChangeFrequency = ParseChangeFrequency(v)
	}
	return e
}

func field(re *regexp.Regexp, block string) (string, bool) {
	m := re.FindStringSubmatch(block)
	if m == nil {
		return "", false
	}
	return unescaper.Replace(strings.TrimSpace(m[1])), true
}

func parseLastMod(v string) *time.Time {
	for _, layout := range lastModLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}

// Format controls how a document is written.
type Format struct {
	// Minimized removes all whitespace between tags.
	Minimized bool
	// Tab is the indentation unit.
	Tab string
	// Tags limits the optional tags written. Nil writes all of them.
	Tags []string
}

// Serialize writes doc with every optional tag.
func Serialize(doc *Document, minimized bool, tab string) []byte {
	return doc.Render(Format{Minimized: minimized, Tab: tab})
}

// Render writes the document. Entries are ordered by priority, highest first,
// with absent priorities counted as 0; equal priorities keep their order.
func (d *Document) Render(f Format) []byte {
	tags := tagSet(f.Tags)

	version, encoding := d.Version, d.Encoding
	if version == "" {
		version = DefaultVersion
	}
	if encoding == "" {
		encoding = DefaultEncoding
	}
	attrs := d.RootAttributes
	if len(attrs) == 0 {
		attrs = []Attr{{Name: "xmlns", Value: Namespace}}
	}

	var b strings.Builder
	b.WriteString(`<?xml version="` + attrEscaper.Replace(version) + `" encoding="` + attrEscaper.Replace(encoding) + `"?>`)
	b.WriteString("\n<urlset")
	for _, a := range attrs {
		b.WriteString(" " + a.Name + `="` + attrEscaper.Replace(a.Value) + `"`)
	}
	b.WriteString(">\n")

	for _, e := range sortedEntries(d.Entries) {
		writeEntry(&b, e, f.Tab, tags)
	}
	b.WriteString("</urlset>\n")

	out := b.String()
	if f.Minimized {
		out = strings.TrimSpace(betweenTags.ReplaceAllString(out, "><"))
	}
	return []byte(out)
}

func writeEntry(b *strings.Builder, e *Entry, tab string, tags map[string]bool) {
	b.WriteString(tab + "<url>\n")
	writeTag(b, tab, "loc", textEscaper.Replace(e.Location))
	if e.Priority != nil && tags[TagPriority] {
		writeTag(b, tab, TagPriority, strconv.FormatFloat(*e.Priority, 'f', 2, 64))
	}
	if e.ChangeFrequency != "" && tags[TagChangeFreq] {
		writeTag(b, tab, TagChangeFreq, string(e.ChangeFrequency))
	}
	if e.LastModified != nil && tags[TagLastMod] {
		writeTag(b, tab, TagLastMod, e.LastModified.Format(DateLayout))
	}
	b.WriteString(tab + "</url>\n")
}

func writeTag(b *strings.Builder, tab, name, value string) {
	b.WriteString(tab + tab + "<" + name + ">" + value + "</" + name + ">\n")
}

func tagSet(tags []string) map[string]bool {
	if tags == nil {
		tags = []string{TagPriority, TagChangeFreq, TagLastMod}
	}
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}

func sortedEntries(entries []*Entry) []*Entry {
	sorted := make([]*Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return priorityOf(sorted[i]) > priorityOf(sorted[j])
	})
	return sorted
}

func priorityOf(e *Entry) float64 {
	if e.Priority == nil {
		return 0
	}
	return *e.Priority
}

// parsePriority accepts numbers in [0, 1]. NaN, infinities and out-of-range
// values are treated as absent.
func parsePriority(v string) *float64 {
	p, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(p) || p < 0 || p > 1 {
		return nil
	}
	return &p
}
