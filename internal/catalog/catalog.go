// Package catalog turns the markdown content tree into typed, read-only
// records. A Catalog is built once at startup and never mutated afterwards,
// so it is safe for concurrent use without locking.
package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"FlamingBooks/internal/content"
)

// Content group directories, relative to the content root.
const (
	GroupBooks       = "books"
	GroupAuthors     = "authors"
	GroupEvents      = "events"
	GroupCollections = "collections"
	GroupPhotos      = "gallery/photos"
	GroupVideos      = "gallery/videos"
	GroupPodcasts    = "gallery/podcasts"
	GroupTestimonial = "testimonials"
	GroupBlog        = "blog"
	AboutFile        = "pages/about.md"
)

type Options struct {
	Defaults *Defaults
	Now      func() time.Time
	Log      *zap.Logger
}

// Issue records an entry that loaded with substituted defaults or not at
// all. Issues are informational; they never stop the catalog from loading.
type Issue struct {
	Group   string `json:"group"`
	Slug    string `json:"slug,omitempty"`
	Message string `json:"message"`
}

type Catalog struct {
	books      []Book
	bookIndex  map[string]int
	authors    []Author
	events     []Event
	collection []Collection
	photos     []Photo
	videos     []Video
	podcasts   []Podcast
	testimony  []Testimonial
	posts      []BlogPost
	postIndex  map[string]int
	about      About

	issues   []Issue
	loadedAt time.Time
}

// LoadDir loads the content tree rooted at dir. Unlike Load it fails when the
// root itself is missing, which is a deployment error rather than bad content.
func LoadDir(dir string, opts Options) (*Catalog, error) {
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("content dir %q is not a directory", dir)
	}
	return Load(os.DirFS(dir), opts), nil
}

func Load(fsys fs.FS, opts Options) *Catalog {
	d := DefaultValues
	if opts.Defaults != nil {
		d = *opts.Defaults
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	c := &Catalog{loadedAt: now().UTC()}
	p := parser{d: d, now: c.loadedAt}

	c.books = readGroup(c, fsys, GroupBooks, func(e content.Entry) Book {
		if !e.Meta.Has("price") {
			c.issue(GroupBooks, e.Slug, "price missing, defaulted to 0")
		}
		return p.book(e)
	})
	c.bookIndex = indexBy(c.books, func(b Book) string { return b.Slug })

	c.authors = readGroup(c, fsys, GroupAuthors, p.author)
	slices.SortStableFunc(c.authors, func(a, b Author) int { return compareFold(a.Name, b.Name) })

	c.events = readGroup(c, fsys, GroupEvents, p.event)
	slices.SortStableFunc(c.events, func(a, b Event) int { return a.Date.Compare(b.Date) })

	c.collection = readGroup(c, fsys, GroupCollections, p.collection)
	slices.SortStableFunc(c.collection, func(a, b Collection) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return compareFold(a.Title, b.Title)
	})

	c.photos = readGroup(c, fsys, GroupPhotos, p.photo)
	slices.SortStableFunc(c.photos, func(a, b Photo) int { return a.Order - b.Order })
	c.videos = readGroup(c, fsys, GroupVideos, p.video)
	slices.SortStableFunc(c.videos, func(a, b Video) int { return a.Order - b.Order })
	c.podcasts = readGroup(c, fsys, GroupPodcasts, p.podcast)
	slices.SortStableFunc(c.podcasts, func(a, b Podcast) int { return a.Order - b.Order })

	c.testimony = readGroup(c, fsys, GroupTestimonial, p.testimonial)

	c.posts = readGroup(c, fsys, GroupBlog, p.blogPost)
	slices.SortStableFunc(c.posts, func(a, b BlogPost) int { return b.Date.Compare(a.Date) })
	c.postIndex = indexBy(c.posts, func(b BlogPost) string { return b.Slug })

	c.about = DefaultAbout
	switch e, ok, err := content.ReadFile(fsys, AboutFile); {
	case err != nil:
		c.issue(AboutFile, "", err.Error())
	case ok:
		if e.MetaErr != nil {
			c.issue(AboutFile, "", e.MetaErr.Error())
		}
		c.about = p.about(e)
	}

	for _, is := range c.issues {
		log.Warn("content issue", zap.String("group", is.Group), zap.String("slug", is.Slug), zap.String("issue", is.Message))
	}
	log.Info("catalog loaded",
		zap.Int("books", len(c.books)),
		zap.Int("authors", len(c.authors)),
		zap.Int("events", len(c.events)),
		zap.Int("collections", len(c.collection)),
		zap.Int("posts", len(c.posts)),
		zap.Int("issues", len(c.issues)),
	)
	return c
}

func readGroup[T any](c *Catalog, fsys fs.FS, group string, parse func(content.Entry) T) []T {
	entries, err := content.ReadGroup(fsys, group)
	if err != nil {
		c.issue(group, "", err.Error())
	}

	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if e.MetaErr != nil {
			c.issue(group, e.Slug, e.MetaErr.Error())
		}
		out = append(out, parse(e))
	}
	return out
}

func indexBy[T any](items []T, key func(T) string) map[string]int {
	idx := make(map[string]int, len(items))
	for i, it := range items {
		idx[key(it)] = i
	}
	return idx
}

func compareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func (c *Catalog) issue(group, slug, msg string) {
	c.issues = append(c.issues, Issue{Group: group, Slug: slug, Message: msg})
}

func (c *Catalog) Issues() []Issue { return slices.Clone(c.issues) }

func (c *Catalog) LoadedAt() time.Time { return c.loadedAt }

// Books returns every book in source order.
func (c *Catalog) Books() []Book { return slices.Clone(c.books) }

// Book looks a book up by slug. Absence is reported through ok, never as an
// error.
func (c *Catalog) Book(slug string) (Book, bool) {
	i, ok := c.bookIndex[slug]
	if !ok {
		return Book{}, false
	}
	return c.books[i], true
}

// FeaturedBooks returns featured books in source order. limit <= 0 means no
// limit.
func (c *Catalog) FeaturedBooks(limit int) []Book {
	out := make([]Book, 0)
	for _, b := range c.books {
		if !b.Featured {
			continue
		}
		out = append(out, b)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Categories lists the distinct book categories, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{}, len(c.books))
	out := make([]string, 0)
	for _, b := range c.books {
		if _, ok := seen[b.Category]; ok {
			continue
		}
		seen[b.Category] = struct{}{}
		out = append(out, b.Category)
	}
	slices.SortFunc(out, compareFold)
	return out
}

func (c *Catalog) Authors() []Author { return slices.Clone(c.authors) }

func (c *Catalog) Events() []Event { return slices.Clone(c.events) }

func (c *Catalog) UpcomingEvents() []Event {
	out := make([]Event, 0)
	for _, e := range c.events {
		if !e.IsPast {
			out = append(out, e)
		}
	}
	return out
}

// PastEvents returns past events, most recent first.
func (c *Catalog) PastEvents() []Event {
	out := make([]Event, 0)
	for _, e := range c.events {
		if e.IsPast {
			out = append(out, e)
		}
	}
	slices.Reverse(out)
	return out
}

func (c *Catalog) Collections() []Collection { return slices.Clone(c.collection) }

func (c *Catalog) Photos() []Photo { return slices.Clone(c.photos) }

func (c *Catalog) Videos() []Video { return slices.Clone(c.videos) }

func (c *Catalog) Podcasts() []Podcast { return slices.Clone(c.podcasts) }

// Testimonials returns the approved testimonials only.
func (c *Catalog) Testimonials() []Testimonial {
	out := make([]Testimonial, 0)
	for _, t := range c.testimony {
		if t.Approved {
			out = append(out, t)
		}
	}
	return out
}

// BlogPosts returns posts newest first.
func (c *Catalog) BlogPosts() []BlogPost { return slices.Clone(c.posts) }

func (c *Catalog) BlogPost(slug string) (BlogPost, bool) {
	i, ok := c.postIndex[slug]
	if !ok {
		return BlogPost{}, false
	}
	return c.posts[i], true
}

func (c *Catalog) About() About { return c.about }
