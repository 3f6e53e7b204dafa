// Package content loads the site's tours, gallery, FAQ, tips and workshop
// pages from YAML files.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// SchemaConstraint is the range of site.yaml schema versions this build
// understands.
const SchemaConstraint = "^1.0"

// Files are the content files a catalog is built from.
var Files = []string{"site.yaml", "tours.yaml", "gallery.yaml", "faq.yaml", "tips.yaml", "workshop.yaml"}

// ErrUnknownTour is returned when a tour slug does not exist.
var ErrUnknownTour = errors.New("unknown tour")

//go:embed data/*.yaml
var embedded embed.FS

// SchemaError reports a content file whose schema version is missing or
// outside SchemaConstraint.
type SchemaError struct {
	File    string
	Version string
	Err     error
}

func (e *SchemaError) Error() string {
	if e.Version == "" {
		return fmt.Sprintf("%s: missing schema version: %v", e.File, e.Err)
	}
	return fmt.Sprintf("%s: schema %q: %v", e.File, e.Version, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Hero is the home page banner.
type Hero struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	CTA      string `yaml:"cta"`
	Art      string `yaml:"art"`
}

// Site holds brand-wide settings.
type Site struct {
	Schema   string `yaml:"schema"`
	Brand    string `yaml:"brand"`
	Tagline  string `yaml:"tagline"`
	WhatsApp string `yaml:"whatsapp"`
	Email    string `yaml:"email"`
	Hero     Hero   `yaml:"hero"`
	About    string `yaml:"about"`
}

// Difficulty grades a tour.
type Difficulty string

const (
	Easy        Difficulty = "easy"
	Moderate    Difficulty = "moderate"
	Challenging Difficulty = "challenging"
)

func (d Difficulty) valid() bool {
	switch d {
	case Easy, Moderate, Challenging:
		return true
	}
	return false
}

// Stage is one day of a tour.
type Stage struct {
	Day   int    `yaml:"day"`
	Title string `yaml:"title"`
	KM    int    `yaml:"km"`
}

// Tour is a guided tour in the catalog.
type Tour struct {
	Slug       string     `yaml:"slug"`
	Name       string     `yaml:"name"`
	Region     string     `yaml:"region"`
	Days       int        `yaml:"days"`
	DistanceKM int        `yaml:"distance_km"`
	Difficulty Difficulty `yaml:"difficulty"`
	PriceEUR   int        `yaml:"price_eur"`
	Season     string     `yaml:"season"`
	Featured   bool       `yaml:"featured"`
	Summary    string     `yaml:"summary"`
	Highlights []string   `yaml:"highlights"`
	Itinerary  []Stage    `yaml:"itinerary"`
}

// Path returns the tour's route.
func (t Tour) Path() string {
	return "/tours/" + t.Slug
}

// Photo is a gallery entry. Tone is "light" or "dark" and picks the
// tile's backdrop.
type Photo struct {
	Title   string `yaml:"title"`
	Caption string `yaml:"caption"`
	Tour    string `yaml:"tour"`
	Tone    string `yaml:"tone"`
}

// Question is one FAQ entry. Answer is markdown.
type Question struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Tip is one travel tip. Body is markdown.
type Tip struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Service is a workshop offering.
type Service struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	PriceEUR    int    `yaml:"price_eur"`
}

// Workshop is the workshop page.
type Workshop struct {
	Title    string    `yaml:"title"`
	Intro    string    `yaml:"intro"`
	Services []Service `yaml:"services"`
}

// Catalog is all loaded content.
type Catalog struct {
	Site     Site
	Tours    []Tour
	Gallery  []Photo
	FAQ      []Question
	Tips     []Tip
	Workshop Workshop
}

// Tour returns the tour with the given slug.
func (c *Catalog) Tour(slug string) (Tour, error) {
	for _, t := range c.Tours {
		if t.Slug == slug {
			return t, nil
		}
	}
	return Tour{}, fmt.Errorf("%w: %q", ErrUnknownTour, slug)
}

// Featured returns the tours flagged for the home page, in catalog order.
func (c *Catalog) Featured() []Tour {
	var out []Tour
	for _, t := range c.Tours {
		if t.Featured {
			out = append(out, t)
		}
	}
	return out
}

// Embedded returns the content bundled with the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Default loads the embedded content.
func Default() (*Catalog, error) {
	return Load(Embedded())
}

// LoadDir loads content from dir, or the embedded content when dir is
// empty.
func LoadDir(dir string) (*Catalog, error) {
	if dir == "" {
		return Default()
	}
	return Load(os.DirFS(dir))
}

// Load parses every content file in fsys concurrently and validates the
// result.
func Load(fsys fs.FS) (*Catalog, error) {
	var (
		c        Catalog
		tours    struct{ Tours []Tour `yaml:"tours"` }
		gallery  struct{ Gallery []Photo `yaml:"gallery"` }
		faq      struct{ FAQ []Question `yaml:"faq"` }
		tips     struct{ Tips []Tip `yaml:"tips"` }
		workshop struct{ Workshop Workshop `yaml:"workshop"` }
	)
	targets := map[string]any{
		"site.yaml":     &c.Site,
		"tours.yaml":    &tours,
		"gallery.yaml":  &gallery,
		"faq.yaml":      &faq,
		"tips.yaml":     &tips,
		"workshop.yaml": &workshop,
	}

	var g errgroup.Group
	for _, name := range Files {
		target := targets[name]
		g.Go(func() error {
			return decode(fsys, name, target)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.Tours = tours.Tours
	c.Gallery = gallery.Gallery
	c.FAQ = faq.FAQ
	c.Tips = tips.Tips
	c.Workshop = workshop.Workshop

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func decode(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) validate() error {
	if err := checkSchema("site.yaml", c.Site.Schema); err != nil {
		return err
	}
	if strings.TrimSpace(c.Site.Brand) == "" {
		return errors.New("site.yaml: brand is required")
	}

	seen := make(map[string]bool, len(c.Tours))
	for i, t := range c.Tours {
		if t.Slug == "" {
			return fmt.Errorf("tours.yaml: tour %d has no slug", i)
		}
		if seen[t.Slug] {
			return fmt.Errorf("tours.yaml: duplicate slug %q", t.Slug)
		}
		seen[t.Slug] = true
		if !t.Difficulty.valid() {
			return fmt.Errorf("tours.yaml: %s: invalid difficulty %q", t.Slug, t.Difficulty)
		}
	}
	for _, p := range c.Gallery {
		if p.Tour != "" && !seen[p.Tour] {
			return fmt.Errorf("gallery.yaml: %q: %w: %q", p.Title, ErrUnknownTour, p.Tour)
		}
	}
	return nil
}

func checkSchema(file, version string) error {
	if version == "" {
		return &SchemaError{File: file, Err: errors.New("schema field is empty")}
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return &SchemaError{File: file, Version: version, Err: err}
	}
	constraint, err := semver.NewConstraint(SchemaConstraint)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return &SchemaError{File: file, Version: version, Err: fmt.Errorf("want %s", SchemaConstraint)}
	}
	return nil
}
