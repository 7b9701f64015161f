package catalog

import "strings"

// Sentinel filter values used by the shop page for "no filter".
const (
	AllCategories = "All Books"
	AllAuthors    = "All Authors"
)

type Filter struct {
	Query    string
	Category string
	Author   string
}

func (f Filter) matches(b Book) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(b.Title), q) && !strings.Contains(strings.ToLower(b.Author), q) {
			return false
		}
	}
	if f.Category != "" && f.Category != AllCategories && b.Category != f.Category {
		return false
	}
	if f.Author != "" && f.Author != AllAuthors && b.Author != f.Author {
		return false
	}
	return true
}

// SearchBooks filters books in source order. The zero Filter matches all.
func (c *Catalog) SearchBooks(f Filter) []Book {
	out := make([]Book, 0, len(c.books))
	for _, b := range c.books {
		if f.matches(b) {
			out = append(out, b)
		}
	}
	return out
}
