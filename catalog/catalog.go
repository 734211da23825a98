// Package catalog loads the picture metadata that drives a typing session
package catalog

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/zyedidia/generic/mapset"
	"gopkg.in/yaml.v3"
)

// Catalog file names, tried in order; JSON is read by the YAML decoder
var FileNames = []string{"picts_info.yaml", "picts_info.yml", "picts_info.json"}

// DefaultTitleID is the title art shown on the title screen
const DefaultTitleID = "T01.png"

// ErrNotFound is returned for unknown ids and missing catalog files
var ErrNotFound = errors.New("catalog: not found")

// Pict describes one picture; ID is also its file name inside the catalog directory
type Pict struct {
	ID     string   `yaml:"id"`
	Ja     string   `yaml:"ja"`
	Romaji string   `yaml:"romaji"`
	En     string   `yaml:"en"`
	Tags   []string `yaml:"tags"`
}

// Catalog is immutable after Load
type Catalog struct {
	Dir    string `yaml:"-"`
	Picts  []Pict `yaml:"picts"`
	Titles []Pict `yaml:"titles"`
}

// Load reads the catalog file from dir
func Load(dir string) (*Catalog, error) {
	for _, name := range FileNames {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		c, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		c.Dir = dir
		return c, nil
	}
	return nil, fmt.Errorf("no catalog in %s: %w", dir, ErrNotFound)
}

// Parse decodes and validates catalog data
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
	for _, group := range []struct {
		name  string
		picts []Pict
	}{{"picts", c.Picts}, {"titles", c.Titles}} {
		seen := mapset.New[string]()
		for i, p := range group.picts {
			if p.ID == "" {
				return fmt.Errorf("%s[%d]: empty id", group.name, i)
			}
			if seen.Has(p.ID) {
				return fmt.Errorf("%s[%d]: duplicate id %q", group.name, i, p.ID)
			}
			seen.Put(p.ID)
		}
	}
	return nil
}

// Len returns the number of typing targets
func (c *Catalog) Len() int {
	return len(c.Picts)
}

// Pict returns the target at index i
func (c *Catalog) Pict(i int) (Pict, bool) {
	if i < 0 || i >= len(c.Picts) {
		return Pict{}, false
	}
	return c.Picts[i], true
}

// Title finds title art by id
func (c *Catalog) Title(id string) (Pict, error) {
	for _, t := range c.Titles {
		if t.ID == id {
			return t, nil
		}
	}
	return Pict{}, fmt.Errorf("title %q: %w", id, ErrNotFound)
}

// Path returns the image file of p
func (c *Catalog) Path(p Pict) string {
	return filepath.Join(c.Dir, p.ID)
}

// WithTag returns the indices of targets carrying tag
func (c *Catalog) WithTag(tag string) []int {
	var out []int
	for i, p := range c.Picts {
		for _, t := range p.Tags {
			if t == tag {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// IndexSeries cycles 0..n-1 until size indices are produced
func IndexSeries(n, size int) []int {
	if n <= 0 || size <= 0 {
		return nil
	}
	out := make([]int, size)
	for i := range out {
		out[i] = i % n
	}
	return out
}

// RandomIndexSeries concatenates shuffled permutations of 0..n-1 until size indices are produced
func RandomIndexSeries(rng *rand.Rand, n, size int) []int {
	if n <= 0 || size <= 0 {
		return nil
	}
	out := make([]int, 0, size)
	for len(out) < size {
		for _, i := range rng.Perm(n) {
			out = append(out, i)
			if len(out) == size {
				break
			}
		}
	}
	return out
}
