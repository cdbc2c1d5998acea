package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/afero"
)

// ConfigParseError reports a settings file that could not be used.
// The store falls back to an empty configuration when it is returned.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("invalid sitemap settings %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// rawSettings mirrors one stored entry. Pointer fields distinguish an omitted
// value from a zero value so defaults can be applied field by field.
type rawSettings struct {
	Protocol                   *string  `json:"Protocol,omitempty"`
	DomainName                 *string  `json:"DomainName,omitempty"`
	Root                       *string  `json:"Root,omitempty"`
	IncludeExt                 []string `json:"IncludeExt,omitempty"`
	Exclude                    []string `json:"Exclude,omitempty"`
	IncludeWWW                 *bool    `json:"IncludeWWW,omitempty"`
	RemoveFileExtensions       *bool    `json:"RemoveFileExtensions,omitempty"`
	UseTrailingSlash           *bool    `json:"UseTrailingSlash,omitempty"`
	Minimized                  *bool    `json:"Minimized,omitempty"`
	TabCharacters              *string  `json:"TabCharacters,omitempty"`
	DefaultChangeFrequency     *string  `json:"DefaultChangeFrequency,omitempty"`
	TagsToInclude              []string `json:"TagsToInclude,omitempty"`
	AutomaticallyUpdateSitemap *bool    `json:"AutomaticallyUpdateSitemap,omitempty"`

	// Keys written by earlier versions of the settings file.
	LegacyIncludeWWW           *bool `json:"bIncludeWWW,omitempty"`
	LegacyRemoveFileExtensions *bool `json:"bRemoveFileExtentions,omitempty"`
	LegacyUseTrailingSlash     *bool `json:"bUseTrailingSlash,omitempty"`
	LegacyMinimized            *bool `json:"bMinimized,omitempty"`
	LegacyAutomaticallyUpdate  *bool `json:"bAutomaticallyUpdateSitemap,omitempty"`
}

func (r rawSettings) resolve() Settings {
	s := Defaults()
	setString(&s.Protocol, r.Protocol)
	setString(&s.DomainName, r.DomainName)
	setString(&s.Root, r.Root)
	setString(&s.TabCharacters, r.TabCharacters)
	setString(&s.DefaultChangeFrequency, r.DefaultChangeFrequency)
	if r.IncludeExt != nil {
		s.IncludeExt = r.IncludeExt
	}
	if r.Exclude != nil {
		s.Exclude = r.Exclude
	}
	if r.TagsToInclude != nil {
		s.TagsToInclude = r.TagsToInclude
	}
	setBool(&s.IncludeWWW, r.LegacyIncludeWWW, r.IncludeWWW)
	setBool(&s.RemoveFileExtensions, r.LegacyRemoveFileExtensions, r.RemoveFileExtensions)
	setBool(&s.UseTrailingSlash, r.LegacyUseTrailingSlash, r.UseTrailingSlash)
	setBool(&s.Minimized, r.LegacyMinimized, r.Minimized)
	setBool(&s.AutomaticallyUpdateSitemap, r.LegacyAutomaticallyUpdate, r.AutomaticallyUpdateSitemap)
	s.Root = NormalizeRoot(s.Root)
	return s
}

func toRaw(s Settings) rawSettings {
	return rawSettings{
		Protocol:                   &s.Protocol,
		DomainName:                 &s.DomainName,
		Root:                       &s.Root,
		IncludeExt:                 s.IncludeExt,
		Exclude:                    s.Exclude,
		IncludeWWW:                 &s.IncludeWWW,
		RemoveFileExtensions:       &s.RemoveFileExtensions,
		UseTrailingSlash:           &s.UseTrailingSlash,
		Minimized:                  &s.Minimized,
		TabCharacters:              &s.TabCharacters,
		DefaultChangeFrequency:     &s.DefaultChangeFrequency,
		TagsToInclude:              s.TagsToInclude,
		AutomaticallyUpdateSitemap: &s.AutomaticallyUpdateSitemap,
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// setBool applies values in order so later (current) keys win over legacy ones.
func setBool(dst *bool, values ...*bool) {
	for _, v := range values {
		if v != nil {
			*dst = *v
		}
	}
}

// Snapshot is an immutable view of the settings file, owned by the caller.
type Snapshot struct {
	entries map[string]rawSettings
}

// NewSnapshot builds a snapshot from resolved settings.
func NewSnapshot(sitemaps map[string]Settings) Snapshot {
	entries := make(map[string]rawSettings, len(sitemaps))
	for name, s := range sitemaps {
		entries[name] = toRaw(s)
	}
	return Snapshot{entries: entries}
}

// Get returns the settings of a sitemap with defaults applied.
// Unknown sitemaps resolve to the defaults.
func (s Snapshot) Get(sitemap string) Settings {
	raw, ok := s.entries[sitemap]
	if !ok {
		return Defaults()
	}
	return raw.resolve()
}

// Has reports whether the sitemap is configured.
func (s Snapshot) Has(sitemap string) bool {
	_, ok := s.entries[sitemap]
	return ok
}

// Sitemaps returns the configured sitemap paths in sorted order.
func (s Snapshot) Sitemaps() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AutoUpdate returns the sitemaps with automatic updates enabled.
func (s Snapshot) AutoUpdate() []string {
	var names []string
	for _, name := range s.Sitemaps() {
		if s.Get(name).AutomaticallyUpdateSitemap {
			names = append(names, name)
		}
	}
	return names
}

// Len returns the number of configured sitemaps.
func (s Snapshot) Len() int {
	return len(s.entries)
}

// Store reads and writes the JSON settings file keyed by sitemap path.
type Store struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// NewStore creates a store for the settings file at path.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// IsSettingsFile reports whether p points at this store's file.
func (s *Store) IsSettingsFile(p string) bool {
	return filepath.Clean(p) == filepath.Clean(s.path)
}

// Load parses the settings file. A missing file yields an empty snapshot.
// A malformed file yields an empty snapshot together with a *ConfigParseError.
func (s *Store) Load() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (Snapshot, error) {
	empty := Snapshot{entries: map[string]rawSettings{}}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return empty, nil
		}
		return empty, fmt.Errorf("failed to read settings: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return empty, nil
	}

	if err := validate(data); err != nil {
		return empty, &ConfigParseError{Path: s.path, Err: err}
	}

	entries := map[string]rawSettings{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return empty, &ConfigParseError{Path: s.path, Err: err}
	}
	return Snapshot{entries: entries}, nil
}

// Set applies update to the settings of a sitemap and rewrites the file.
// Unconfigured sitemaps start from the defaults.
func (s *Store) Set(sitemap string, update func(*Settings)) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A malformed file is not overwritten; the user has to fix it first.
	snap, err := s.load()
	if err != nil {
		return Settings{}, err
	}

	if err := CheckRelative(sitemap); err != nil {
		return Settings{}, err
	}
	current := snap.Get(sitemap)
	update(&current)
	if err := CheckRoot(current.Root); err != nil {
		return Settings{}, err
	}
	snap.entries[sitemap] = toRaw(current)

	data, err := json.MarshalIndent(snap.entries, "", "  ")
	if err != nil {
		return Settings{}, fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return Settings{}, fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return Settings{}, fmt.Errorf("failed to write settings: %w", err)
	}
	return snap.Get(sitemap), nil
}

// Names of the sitemap change frequencies accepted by the schema.
var changeFrequencies = []string{"", "always", "hourly", "daily", "weekly", "monthly", "yearly", "never"}

var settingsSchema = `{
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "properties": {
      "Protocol": {"enum": ["http", "https"]},
      "DomainName": {"type": "string"},
      "Root": {"type": "string"},
      "IncludeExt": {"type": "array", "items": {"type": "string"}},
      "Exclude": {"type": "array", "items": {"type": "string"}},
      "IncludeWWW": {"type": "boolean"},
      "RemoveFileExtensions": {"type": "boolean"},
      "UseTrailingSlash": {"type": "boolean"},
      "Minimized": {"type": "boolean"},
      "TabCharacters": {"type": "string"},
      "DefaultChangeFrequency": {"enum": ["` + strings.Join(changeFrequencies, `", "`) + `"]},
      "TagsToInclude": {"type": "array", "items": {"enum": ["priority", "changefreq", "lastmod"]}},
      "AutomaticallyUpdateSitemap": {"type": "boolean"},
      "bIncludeWWW": {"type": "boolean"},
      "bRemoveFileExtentions": {"type": "boolean"},
      "bUseTrailingSlash": {"type": "boolean"},
      "bMinimized": {"type": "boolean"},
      "bAutomaticallyUpdateSitemap": {"type": "boolean"}
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(settingsSchema))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("sitemap-settings.json", doc); err != nil {
		return nil, err
	}
	return c.Compile("sitemap-settings.json")
})

// validate checks the raw settings document against the settings schema.
func validate(data []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile settings schema: %w", err)
	}
	return sch.Validate(inst)
}
