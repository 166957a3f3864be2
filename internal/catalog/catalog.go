package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCategoryLabel = "General Knowledge"
	DefaultLanguageName  = "English"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Category struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
}

type Language struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

// Catalog holds the supported categories and languages. Order is preserved
// from the source document and drives the background sync enumeration.
type Catalog struct {
	Categories []Category `yaml:"categories"`
	Languages  []Language `yaml:"languages"`

	labels map[string]string
	names  map[string]string
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(c.Categories) == 0 || len(c.Languages) == 0 {
		return nil, fmt.Errorf("catalog must define at least one category and one language")
	}

	c.labels = make(map[string]string, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Key == "" || cat.Label == "" {
			return nil, fmt.Errorf("catalog category with empty key or label: %+v", cat)
		}
		if _, dup := c.labels[cat.Key]; dup {
			return nil, fmt.Errorf("duplicate catalog category %q", cat.Key)
		}
		c.labels[cat.Key] = cat.Label
	}

	c.names = make(map[string]string, len(c.Languages))
	for _, lang := range c.Languages {
		if lang.Code == "" || lang.Name == "" {
			return nil, fmt.Errorf("catalog language with empty code or name: %+v", lang)
		}
		if _, dup := c.names[lang.Code]; dup {
			return nil, fmt.Errorf("duplicate catalog language %q", lang.Code)
		}
		c.names[lang.Code] = lang.Name
	}

	return &c, nil
}

// EnglishLabel returns the canonical English label for a category key,
// or DefaultCategoryLabel when the key is unknown.
func (c *Catalog) EnglishLabel(key string) string {
	if label, ok := c.labels[key]; ok {
		return label
	}
	return DefaultCategoryLabel
}

// LanguageName maps a language code to the name the generator is given.
func (c *Catalog) LanguageName(code string) string {
	if name, ok := c.names[code]; ok {
		return name
	}
	return DefaultLanguageName
}

func (c *Catalog) HasCategory(key string) bool {
	_, ok := c.labels[key]
	return ok
}

func (c *Catalog) CategoryKeys() []string {
	keys := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		keys = append(keys, cat.Key)
	}
	return keys
}

func (c *Catalog) LanguageCodes() []string {
	codes := make([]string, 0, len(c.Languages))
	for _, lang := range c.Languages {
		codes = append(codes, lang.Code)
	}
	return codes
}
