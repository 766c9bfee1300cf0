// Package iso3166 holds the offline ISO 3166-1 country catalog used when the
// remote lookup cannot confirm an official name.
package iso3166

import (
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed countries.yaml
var countriesYAML []byte

// DefaultMinSimilarity is the lowest edit-distance similarity accepted as a
// typo match when no option overrides it.
const DefaultMinSimilarity = 0.75

// Country is one ISO 3166-1 entry.
type Country struct {
	Alpha2       string `yaml:"alpha_2"`
	Alpha3       string `yaml:"alpha_3"`
	Numeric      string `yaml:"numeric"`
	Name         string `yaml:"name"`
	OfficialName string `yaml:"official_name,omitempty"`
	CommonName   string `yaml:"common_name,omitempty"`
}

type catalogFile struct {
	Version   string    `yaml:"version"`
	Countries []Country `yaml:"countries"`
}

// Catalog is an immutable, read-only country table. Build it once at
// startup and share the pointer.
type Catalog struct {
	version       string
	countries     []Country
	keys          [][]string // normalized name variants per country
	byCode        map[string]int
	minSimilarity float64
}

// Option configures a Catalog at construction time.
type Option func(*Catalog)

// WithMinSimilarity sets the typo-match threshold. Values outside (0, 1] are ignored.
func WithMinSimilarity(v float64) Option {
	return func(c *Catalog) {
		if v > 0 && v <= 1 {
			c.minSimilarity = v
		}
	}
}

// LoadEmbedded builds the catalog from the data set compiled into the binary.
func LoadEmbedded(opts ...Option) (*Catalog, error) {
	return Parse(countriesYAML, opts...)
}

// Parse builds a catalog from YAML in the embedded data set's format.
func Parse(data []byte, opts ...Option) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse country catalog: %w", err)
	}
	if len(f.Countries) == 0 {
		return nil, fmt.Errorf("country catalog is empty")
	}

	c := &Catalog{
		version:       f.Version,
		countries:     make([]Country, 0, len(f.Countries)),
		keys:          make([][]string, 0, len(f.Countries)),
		byCode:        make(map[string]int, len(f.Countries)*3),
		minSimilarity: DefaultMinSimilarity,
	}
	for _, o := range opts {
		o(c)
	}

	for _, ct := range f.Countries {
		if strings.TrimSpace(ct.Name) == "" || len(ct.Alpha2) != 2 || len(ct.Alpha3) != 3 {
			return nil, fmt.Errorf("invalid catalog entry %+v", ct)
		}
		idx := len(c.countries)
		for _, code := range []string{ct.Alpha2, ct.Alpha3, ct.Numeric} {
			if code == "" {
				continue
			}
			k := strings.ToUpper(code)
			if _, dup := c.byCode[k]; dup {
				return nil, fmt.Errorf("duplicate country code %q", code)
			}
			c.byCode[k] = idx
		}

		var keys []string
		for _, n := range []string{ct.Name, ct.OfficialName, ct.CommonName} {
			if k := normalizeKey(n); k != "" && !contains(keys, k) {
				keys = append(keys, k)
			}
		}
		c.countries = append(c.countries, ct)
		c.keys = append(c.keys, keys)
	}

	slog.Debug("ISO 3166 catalog loaded", "version", c.version, "countries", len(c.countries))
	return c, nil
}

// Version returns the data set version.
func (c *Catalog) Version() string { return c.version }

// Len returns the number of countries.
func (c *Catalog) Len() int { return len(c.countries) }

// Get returns the country with the given alpha-2, alpha-3 or numeric code.
func (c *Catalog) Get(code string) (Country, bool) {
	idx, ok := c.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Country{}, false
	}
	return c.countries[idx], true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
