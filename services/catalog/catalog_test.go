package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"termcompass/models"
	"termcompass/services/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Len(t, c.Sites, 10)
	assert.Len(t, c.Services, 4)
	for _, name := range []string{"Employment", "employment", " EMPLOYMENT "} {
		d, ok := c.Domain(name)
		assert.True(t, ok, name)
		assert.Equal(t, "Employment", d.Name)
	}
	_, ok := c.Domain("Astrology")
	assert.False(t, ok)

	for _, s := range c.Sites {
		assert.NotEmpty(t, s.Benefits, s.Name)
		assert.NotEmpty(t, s.Drawbacks, s.Name)
	}
}

func TestOpenServiceGatesAuthoring(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	for _, cat := range []models.UserCategory{"", models.CategoryIndividual} {
		_, err := c.OpenService(cat, CreateTermsURL)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
		assert.Contains(t, err.Error(), "this feature is available to business users only")
	}

	s, err := c.OpenService(models.CategoryBusiness, CreateTermsURL)
	require.NoError(t, err)
	assert.True(t, s.BusinessOnly)

	s, err = c.OpenService("", "/site-analysis")
	require.NoError(t, err)
	assert.False(t, s.BusinessOnly)

	_, err = c.OpenService(models.CategoryBusiness, "/nowhere")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sites:
  - name: Example
    link: https://example.com/terms
    benefits: [short]
    drawbacks: [vague]
domains:
  - id: saas
    name: SaaS
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Example", c.Sites[0].Name)
	d, ok := c.Domain("saas")
	assert.True(t, ok)
	assert.Equal(t, "SaaS", d.Name)

	c, err = Load("")
	require.NoError(t, err)
	assert.Len(t, c.Sites, 10)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseRejectsBrokenCatalogs(t *testing.T) {
	cases := map[string]string{
		"no sites":      "services: []",
		"unnamed site":  "sites:\n  - link: x",
		"duplicate url": "sites:\n  - name: a\nservices:\n  - {title: a, url: /x}\n  - {title: b, url: /x}",
		"not yaml":      "sites: [",
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}
