// Package catalog holds the graded sites shown in the carousel, the service cards and the domains
// a terms document can be authored for.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"termcompass/models"
	"termcompass/services/apperr"

	"gopkg.in/yaml.v3"
)

// CreateTermsURL is the business-only authoring entry point.
const CreateTermsURL = "/create-terms"

//go:embed default_catalog.yaml
var defaultCatalog []byte

// Site is a graded website shown as a carousel card.
type Site struct {
	Name      string   `yaml:"name" json:"name"`
	Link      string   `yaml:"link" json:"link"`
	Benefits  []string `yaml:"benefits" json:"benefits"`
	Drawbacks []string `yaml:"drawbacks" json:"drawbacks"`
}

// Service is a card linking to one of the product's features.
type Service struct {
	Title        string `yaml:"title" json:"title"`
	Description  string `yaml:"description" json:"description"`
	URL          string `yaml:"url" json:"url"`
	BusinessOnly bool   `yaml:"businessOnly" json:"businessOnly"`
}

// Domain is a business domain terms can be authored for.
type Domain struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

type Catalog struct {
	Sites    []Site    `yaml:"sites" json:"sites"`
	Services []Service `yaml:"services" json:"services"`
	Domains  []Domain  `yaml:"domains" json:"domains"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file, falling back to the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes and checks a YAML catalog.
func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) check() error {
	if len(c.Sites) == 0 {
		return fmt.Errorf("catalog has no sites")
	}
	for i, s := range c.Sites {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("catalog site %d has no name", i)
		}
	}
	seen := make(map[string]bool, len(c.Services))
	for _, s := range c.Services {
		if s.URL == "" {
			return fmt.Errorf("catalog service %q has no url", s.Title)
		}
		if seen[s.URL] {
			return fmt.Errorf("catalog service url %s is duplicated", s.URL)
		}
		seen[s.URL] = true
	}
	for _, d := range c.Domains {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("catalog domain %q has no name", d.ID)
		}
	}
	return nil
}

// Domain resolves a domain by name or id, ignoring case.
func (c *Catalog) Domain(name string) (Domain, bool) {
	name = strings.TrimSpace(name)
	for _, d := range c.Domains {
		if strings.EqualFold(d.Name, name) || strings.EqualFold(d.ID, name) {
			return d, true
		}
	}
	return Domain{}, false
}

// OpenService checks whether a user of the given category may follow a service card. An empty
// category stands for an anonymous visitor.
func (c *Catalog) OpenService(category models.UserCategory, url string) (Service, error) {
	for _, s := range c.Services {
		if s.URL != url {
			continue
		}
		if s.BusinessOnly && !category.IsBusiness() {
			return Service{}, apperr.Unauthorized("this feature is available to business users only")
		}
		return s, nil
	}
	return Service{}, apperr.NotFound(fmt.Sprintf("no service at %s", url))
}
