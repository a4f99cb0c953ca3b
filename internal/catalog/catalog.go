// Package catalog carrega as tabelas fixas usadas pelo scrape: palavras-chave de comércio,
// categorias e os anúncios de exemplo usados como fallback.
package catalog

import (
	_ "embed"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type FallbackAd struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	ImageURL    string  `yaml:"image_url"`
	VideoURL    *string `yaml:"video_url"`
	Likes       int     `yaml:"likes"`
	Comments    int     `yaml:"comments"`
	Shares      int     `yaml:"shares"`
	Brand       string  `yaml:"brand"`
	Category    string  `yaml:"category"`
}

type Catalog struct {
	Version         string       `yaml:"version"`
	SearchTerms     string       `yaml:"search_terms"`
	AdsLibraryURL   string       `yaml:"ads_library_url"`
	Keywords        []string     `yaml:"keywords"`
	DefaultCategory string       `yaml:"default_category"`
	Categories      []Category   `yaml:"categories"`
	FallbackAds     []FallbackAd `yaml:"fallback_ads"`
}

// Load lê o catálogo embutido no binário
func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "catalog: failed to parse")
	}

	if c.Version == "" {
		return nil, errors.New("catalog: version is required")
	}
	if len(c.FallbackAds) == 0 {
		return nil, errors.New("catalog: at least one fallback ad is required")
	}
	if c.DefaultCategory == "" {
		c.DefaultCategory = "General"
	}

	c.normalize()

	return c, nil
}

func (c *Catalog) normalize() {
	for i, kw := range c.Keywords {
		c.Keywords[i] = strings.ToLower(strings.TrimSpace(kw))
	}
	for i := range c.Categories {
		for j, kw := range c.Categories[i].Keywords {
			c.Categories[i].Keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}
}

// MatchesKeyword informa se o texto contém alguma palavra-chave de comércio (sem diferenciar maiúsculas)
func (c *Catalog) MatchesKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range c.Keywords {
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Classify devolve a primeira categoria da tabela cujo vocabulário aparece no texto
func (c *Catalog) Classify(text string) string {
	lower := strings.ToLower(text)
	for _, category := range c.Categories {
		for _, kw := range category.Keywords {
			if kw != "" && strings.Contains(lower, kw) {
				return category.Name
			}
		}
	}
	return c.DefaultCategory
}
