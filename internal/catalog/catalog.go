// Package catalog maps DLC folder codes such as "EP01" to display names.
//
// Catalogs are flat code-to-name tables read from JSON, YAML or TOML files.
// A built-in table covers the packs known at release time.
package catalog

import (
	_ "embed"
	"encoding/json"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/pkg/fileutil"
)

//go:embed default.yaml
var defaultYAML []byte

// Format is a catalog file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Newf("unsupported catalog format %q (want .json, .yaml or .toml)", filepath.Ext(path))
	}
}

// Catalog is an immutable code to name table.
type Catalog struct {
	labels map[string]string
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultYAML, FormatYAML)
	if err != nil {
		// The embedded table is fixed at build time.
		panic(errors.Wrap(err, "parsing built-in catalog"))
	}
	return c
}

// Load reads a catalog file. Entries in the file override the built-in
// names; codes the file does not mention keep their built-in name.
func Load(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading catalog")
	}
	file, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	merged := Default()
	maps.Copy(merged.labels, file.labels)
	return merged, nil
}

// Parse decodes a catalog in the given format.
func Parse(data []byte, format Format) (*Catalog, error) {
	labels := make(map[string]string)
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &labels)
	case FormatYAML:
		err = yaml.Unmarshal(data, &labels)
	case FormatTOML:
		err = toml.Unmarshal(data, &labels)
	default:
		return nil, errors.Newf("unsupported catalog format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s catalog", format)
	}

	c := &Catalog{labels: make(map[string]string, len(labels))}
	for code, name := range labels {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		c.labels[code] = strings.TrimSpace(name)
	}
	return c, nil
}

// Label returns the display name for code, or code itself when the
// catalog has no entry.
func (c *Catalog) Label(code string) string {
	if name, ok := c.labels[code]; ok && name != "" {
		return name
	}
	return code
}

// Lookup returns the display name for code and whether it is known.
func (c *Catalog) Lookup(code string) (string, bool) {
	name, ok := c.labels[code]
	return name, ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.labels)
}

// Codes returns the known codes in sorted order.
func (c *Catalog) Codes() []string {
	return slices.Sorted(maps.Keys(c.labels))
}

// Marshal encodes the catalog in the given format.
func (c *Catalog) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(c.labels, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encoding json catalog")
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(c.labels)
		return data, errors.Wrap(err, "encoding yaml catalog")
	case FormatTOML:
		data, err := toml.Marshal(c.labels)
		return data, errors.Wrap(err, "encoding toml catalog")
	default:
		return nil, errors.Newf("unsupported catalog format %q", format)
	}
}
