package catalog

import (
	"errors"
	"fmt"
	"html"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pelletier/go-toml/v2"
)

// FilePattern matches catalog files below the catalog directory
const FilePattern = "**/*.{yaml,yml,toml}"

var (
	ErrMissingID       = errors.New("catalog entry has no id")
	ErrInvalidItemType = errors.New("invalid desktop item type")
)

// File is the on-disk catalog layout
type File struct {
	Apps    []App         `yaml:"apps" toml:"apps"`
	Desktop []DesktopItem `yaml:"desktop" toml:"desktop"`
}

// Load reads every catalog file under dir in lexical order and layers
// them over the built-in catalog. An empty dir returns Default().
func Load(dir string) (*Catalog, error) {
	base := Default()
	if dir == "" {
		return base, nil
	}

	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, FilePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan catalog dir %s: %w", dir, err)
	}
	sort.Strings(matches)

	apps := base.Apps()
	items := base.Items()
	policy := bluemonday.StrictPolicy()

	for _, name := range matches {
		data, err := os.ReadFile(path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file %s: %w", name, err)
		}

		f, err := Parse(name, data)
		if err != nil {
			return nil, err
		}

		for _, a := range f.Apps {
			a.Title = sanitize(policy, a.Title)
			apps = append(apps, a)
		}
		for _, it := range f.Desktop {
			it.Name = sanitize(policy, it.Name)
			items = append(items, it)
		}
	}

	return New(apps, items), nil
}

// Parse decodes a single catalog file; the format follows the extension
func Parse(name string, data []byte) (*File, error) {
	var f File
	switch strings.ToLower(path.Ext(name)) {
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	}

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &f, nil
}

func (f *File) validate() error {
	for i, a := range f.Apps {
		if a.ID == "" {
			return fmt.Errorf("apps[%d]: %w", i, ErrMissingID)
		}
	}
	for i, it := range f.Desktop {
		if it.ID == "" {
			return fmt.Errorf("desktop[%d]: %w", i, ErrMissingID)
		}
		if it.Type != ItemFolder && it.Type != ItemFile {
			return fmt.Errorf("desktop[%d] %q: %w", i, it.Type, ErrInvalidItemType)
		}
	}
	return nil
}

// sanitize strips markup from display text coming from catalog files
func sanitize(policy *bluemonday.Policy, s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}
