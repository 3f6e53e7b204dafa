package site

import (
	"path"
	"strings"
)

// Item represents a top-level navigation item.
type Item struct {
	Path  string // e.g. "/tours"
	Label string
}

// RenderedItem is a view model for the bar.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
	// Key is the digit that jumps to the item.
	Key int
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/", Label: "Home"},
	{Path: "/tours", Label: "Tours"},
	{Path: "/gallery", Label: "Gallery"},
	{Path: "/faq", Label: "FAQ"},
	{Path: "/tips", Label: "Tips"},
	{Path: "/workshop", Label: "Workshop"},
}

// Build renders navigation items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for i, it := range Main {
		items = append(items, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: isActive(it.Path, currentPath),
			Key:    i + 1,
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/tours" or "/tours/..."
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path. label, when
// non-nil, names deeper segments (for example a tour slug); otherwise the
// segment is prettified.
func Breadcrumbs(currentPath string, label func(segment string) string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", Label: "Home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")

	top := "/" + parts[0]
	topLabel := titleFromSegment(parts[0])
	for _, it := range Main {
		if it.Path == top {
			topLabel = it.Label
			break
		}
	}
	crumbs = append(crumbs, Crumb{Href: top, Label: topLabel, Active: len(parts) == 1})

	href := top
	for i := 1; i < len(parts); i++ {
		href += "/" + parts[i]
		name := ""
		if label != nil {
			name = label(parts[i])
		}
		if name == "" {
			name = titleFromSegment(parts[i])
		}
		crumbs = append(crumbs, Crumb{Href: href, Label: name, Active: i == len(parts)-1})
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
