// Package content loads the site copy and data records from YAML.
package content

import (
	_ "embed"
	"os"

	"musyoka.dev/internal/models"
	"musyoka.dev/internal/oops"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Default returns the content compiled into the binary
func Default() (*models.Site, error) {
	return Parse(defaultContent)
}

// Load reads content from path, falling back to the embedded content when
// path is empty. The result is validated before it is returned.
func Load(path string) (*models.Site, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.New(err, "failed to read content file %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a content document
func Parse(data []byte) (*models.Site, error) {
	var site models.Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, oops.New(err, "failed to parse content")
	}
	if err := Validate(&site); err != nil {
		return nil, err
	}
	return &site, nil
}
