// Package content loads the static page catalog: site copy, section items
// and the quiz questions.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jxdata/portal/internal/quiz"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Site holds the brand and hero copy.
type Site struct {
	Name           string `yaml:"name" json:"name"`
	Subtitle       string `yaml:"subtitle" json:"subtitle"`
	Badge          string `yaml:"badge" json:"badge"`
	Headline       string `yaml:"headline" json:"headline"`
	HeadlineAccent string `yaml:"headline_accent" json:"headline_accent"`
	Intro          string `yaml:"intro" json:"intro"`
	Description    string `yaml:"description" json:"description"`
}

// Stat is a hero statistic. Key names the site setting that may override Value.
type Stat struct {
	Key    string `yaml:"key" json:"key"`
	Label  string `yaml:"label" json:"label"`
	Value  int64  `yaml:"value" json:"value"`
	Suffix string `yaml:"suffix" json:"suffix,omitempty"`
}

// Item is a titled entry in the service grid or technology panel.
type Item struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Glyph       string `yaml:"glyph" json:"glyph"`
}

// News is one entry in the news list.
type News struct {
	Date  string `yaml:"date" json:"date"`
	Title string `yaml:"title" json:"title"`
	Tag   string `yaml:"tag" json:"tag"`
}

// Footer holds contact and legal lines.
type Footer struct {
	QuickLinks []string `yaml:"quick_links" json:"quick_links"`
	Address    string   `yaml:"address" json:"address"`
	Phone      string   `yaml:"phone" json:"phone"`
	Email      string   `yaml:"email" json:"email"`
	Copyright  string   `yaml:"copyright" json:"copyright"`
	ICP        string   `yaml:"icp" json:"icp"`
}

// Catalog is the full static content of the landing page.
type Catalog struct {
	Site         Site            `yaml:"site" json:"site"`
	Stats        []Stat          `yaml:"stats" json:"stats"`
	Nav          []string        `yaml:"nav" json:"nav"`
	Services     []Item          `yaml:"services" json:"services"`
	Technologies []Item          `yaml:"technologies" json:"technologies"`
	News         []News          `yaml:"news" json:"news"`
	Questions    []quiz.Question `yaml:"questions" json:"questions"`
	Footer       Footer          `yaml:"footer" json:"footer"`
}

// Load reads the catalog from path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(embeddedCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Questions) == 0 {
		return errors.New("catalog: no quiz questions")
	}

	seen := make(map[int]bool, len(c.Questions))
	for i, q := range c.Questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return fmt.Errorf("catalog: question %d has an empty prompt", i+1)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("catalog: question %d has no options", i+1)
		}
		if q.Recommendation == "" {
			return fmt.Errorf("catalog: question %d has no recommendation", i+1)
		}
		if seen[q.ID] {
			return fmt.Errorf("catalog: duplicate question id %d", q.ID)
		}
		seen[q.ID] = true
	}

	for _, s := range c.Stats {
		if s.Key == "" {
			return fmt.Errorf("catalog: stat %q has no key", s.Label)
		}
	}

	return nil
}
