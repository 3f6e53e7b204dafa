// Package contact collects a tour enquiry and turns it into a WhatsApp
// deep link.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/huh"

	"github.com/alexcabrera/ridgeline/internal/content"
)

// ErrNoNumber is returned when the site has no usable WhatsApp number.
var ErrNoNumber = errors.New("no whatsapp number configured")

// Enquiry is what the rider fills in.
type Enquiry struct {
	Name    string
	Tour    string
	Riders  string
	Month   string
	Message string
}

// Text renders the enquiry as the message body.
func (e Enquiry) Text(c *content.Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s, I'm %s.", c.Site.Brand, strings.TrimSpace(e.Name))
	if t, err := c.Tour(e.Tour); err == nil {
		fmt.Fprintf(&b, " I'm interested in the %s tour", t.Name)
	} else {
		b.WriteString(" I'd like to hear about your tours")
	}
	if n, err := strconv.Atoi(e.Riders); err == nil && n > 0 {
		fmt.Fprintf(&b, " for %d rider%s", n, plural(n))
	}
	if e.Month != "" {
		fmt.Fprintf(&b, " in %s", e.Month)
	}
	b.WriteString(".")
	if msg := strings.TrimSpace(e.Message); msg != "" {
		b.WriteString("\n\n" + msg)
	}
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Link returns the wa.me link for number carrying text.
func Link(number, text string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)
	if len(digits) < 7 {
		return "", fmt.Errorf("%w: %q", ErrNoNumber, number)
	}
	u := url.URL{Scheme: "https", Host: "wa.me", Path: "/" + digits}
	if text != "" {
		u.RawQuery = url.Values{"text": {text}}.Encode()
	}
	return u.String(), nil
}

// Months offered by the form, in riding-season order.
var Months = []string{"April", "May", "June", "July", "August", "September", "October"}

// ValidateRiders accepts a group size between 1 and 12.
func ValidateRiders(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if n < 1 || n > 12 {
		return fmt.Errorf("groups are 1 to 12 riders")
	}
	return nil
}

func required(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// Form is the enquiry form.
type Form struct {
	catalog *content.Catalog
}

// NewForm creates a form over the catalog's tours.
func NewForm(c *content.Catalog) *Form {
	return &Form{catalog: c}
}

// Build returns the huh form bound to e. A preset e.Tour is preselected.
func (f *Form) Build(e *Enquiry) *huh.Form {
	tours := make([]huh.Option[string], 0, len(f.catalog.Tours)+1)
	for _, t := range f.catalog.Tours {
		tours = append(tours, huh.NewOption(fmt.Sprintf("%s (%d days)", t.Name, t.Days), t.Slug))
	}
	tours = append(tours, huh.NewOption("Not sure yet", ""))

	months := make([]huh.Option[string], 0, len(Months)+1)
	months = append(months, huh.NewOption("Flexible", ""))
	for _, m := range Months {
		months = append(months, huh.NewOption(m, m))
	}

	if e.Riders == "" {
		e.Riders = "1"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your name").
				Value(&e.Name).
				Validate(required),
			huh.NewSelect[string]().
				Title("Tour").
				Options(tours...).
				Value(&e.Tour),
			huh.NewInput().
				Title("Riders").
				Value(&e.Riders).
				Validate(ValidateRiders),
			huh.NewSelect[string]().
				Title("Month").
				Options(months...).
				Value(&e.Month),
		).Title("Your trip").Description(f.catalog.Site.Brand+" tour enquiry"),
		huh.NewGroup(
			huh.NewText().
				Title("Anything else?").
				Placeholder("Pillion, bike preference, dates...").
				Value(&e.Message).
				CharLimit(500),
		).Title("Details"),
	).WithTheme(Theme())
}

// Run shows the form and returns the WhatsApp link for the enquiry.
func (f *Form) Run(ctx context.Context, e Enquiry) (string, error) {
	if err := f.Build(&e).RunWithContext(ctx); err != nil {
		return "", err
	}
	return Link(f.catalog.Site.WhatsApp, e.Text(f.catalog))
}
