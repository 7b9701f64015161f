package catalog

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T) *Catalog {
	t.Helper()
	return Load(testContent(), Options{Now: func() time.Time { return fixedNow }})
}

func slugsOf[T any](items []T, slug func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, slug(it))
	}
	return out
}

func TestBooks_InsertionOrderAndCopy(t *testing.T) {
	c := load(t)

	books := c.Books()
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, slugsOf(books, func(b Book) string { return b.ID }))

	books[0].Title = "mutated"
	again := c.Books()
	assert.Equal(t, "Pilgrim's Progress", again[0].Title)
}

func TestBook_FullRecord(t *testing.T) {
	c := load(t)

	b, ok := c.Book("p1")
	require.True(t, ok)
	assert.Equal(t, "p1", b.Slug)
	assert.Equal(t, "John Bunyan", b.Author)
	assert.True(t, b.Price.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, "Classics", b.Category)
	assert.Equal(t, 4, b.Stock)
	assert.Equal(t, "978-0", b.ISBN)
	assert.Equal(t, 320, b.Pages)
	assert.Equal(t, "An allegory.", b.Description)
}

func TestBook_DefensiveDefaults(t *testing.T) {
	c := load(t)

	p2, _ := c.Book("p2")
	assert.True(t, p2.Price.Equal(decimal.NewFromInt(3000)), "numeric strings are coerced")
	assert.Equal(t, 0, p2.Stock, "negative stock clamps to 0")

	p3, _ := c.Book("p3")
	assert.True(t, p3.Price.IsZero(), "unparsable price falls back to 0")
	assert.Equal(t, 0, p3.Stock)
	assert.Equal(t, 0, p3.Pages)
	assert.Equal(t, DefaultValues.BookAuthor, p3.Author)
	assert.Equal(t, DefaultValues.BookCategory, p3.Category)
	assert.Equal(t, DefaultValues.BookImage, p3.Image)
	assert.Equal(t, "Draft body used as description.", p3.Description)

	p4, _ := c.Book("p4")
	assert.True(t, p4.Price.IsZero(), "negative price clamps to 0")

	p5, ok := c.Book("p5")
	require.True(t, ok)
	assert.Equal(t, "p5", p5.Title)
	assert.True(t, p5.Price.IsZero())
	assert.False(t, p5.Featured)
}

func TestBook_MissingPriceIsNotAFailure(t *testing.T) {
	c := Load(fstest.MapFS{
		"books/no-price.md": md("---\ntitle: Free Tract\n---\n"),
	}, Options{})

	b, ok := c.Book("no-price")
	require.True(t, ok)
	assert.True(t, b.Price.IsZero())

	require.Len(t, c.Issues(), 1)
	assert.Equal(t, GroupBooks, c.Issues()[0].Group)
}

func TestBook_Unknown(t *testing.T) {
	_, ok := load(t).Book("unknown-id")
	assert.False(t, ok)
}

func TestFeaturedBooks(t *testing.T) {
	c := load(t)

	all := c.FeaturedBooks(0)
	assert.Equal(t, []string{"p1", "p2", "p4"}, slugsOf(all, func(b Book) string { return b.ID }))

	two := c.FeaturedBooks(2)
	assert.Equal(t, []string{"p1", "p2"}, slugsOf(two, func(b Book) string { return b.ID }))

	assert.Len(t, c.FeaturedBooks(10), 3)
}

func TestSearchBooks(t *testing.T) {
	c := load(t)

	byQuery := c.SearchBooks(Filter{Query: "LEWIS"})
	assert.Equal(t, []string{"p2"}, slugsOf(byQuery, func(b Book) string { return b.ID }))

	byCategory := c.SearchBooks(Filter{Category: "Classics"})
	assert.Equal(t, []string{"p1"}, slugsOf(byCategory, func(b Book) string { return b.ID }))

	assert.Len(t, c.SearchBooks(Filter{Category: AllCategories, Author: AllAuthors}), 5)
	assert.Empty(t, c.SearchBooks(Filter{Query: "bunyan", Category: "Apologetics"}))
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Apologetics", "Classics", "General"}, load(t).Categories())
}

func TestAuthors_SortedByName(t *testing.T) {
	authors := load(t).Authors()

	assert.Equal(t, []string{"anon", "c.s. Lewis", "John Bunyan"}, slugsOf(authors, func(a Author) string { return a.Name }))
	assert.Equal(t, 0, authors[0].BookCount)
	assert.Equal(t, "Oxford don.", authors[1].Bio)
	assert.Equal(t, "Tinker and preacher.", authors[2].Bio)
}

func TestEvents_SortedAndSplit(t *testing.T) {
	c := load(t)

	assert.Equal(t,
		[]string{"retreat", "undated", "launch", "forced"},
		slugsOf(c.Events(), func(e Event) string { return e.Slug }),
	)

	upcoming := c.UpcomingEvents()
	assert.Equal(t, []string{"undated", "launch"}, slugsOf(upcoming, func(e Event) string { return e.Slug }))

	past := c.PastEvents()
	assert.Equal(t, []string{"forced", "retreat"}, slugsOf(past, func(e Event) string { return e.Slug }))

	launch := upcoming[1]
	assert.Equal(t, "July 4, 2025", launch.DisplayDate)
	assert.Equal(t, "Main Hall", launch.Location)
	assert.Equal(t, DefaultValues.EventImage, launch.Image)
}

func TestCollections_OrderThenTitle(t *testing.T) {
	cols := load(t).Collections()
	assert.Equal(t, []string{"Bibles", "Devotionals", "Youth"}, slugsOf(cols, func(c Collection) string { return c.Title }))
	assert.Equal(t, 12, cols[0].Count)
	assert.Equal(t, DefaultValues.CollectionIcon, cols[0].Icon)
}

func TestGallery(t *testing.T) {
	c := load(t)

	assert.Equal(t, []string{"one", "two"}, slugsOf(c.Photos(), func(p Photo) string { return p.Slug }))

	pods := c.Podcasts()
	require.Len(t, pods, 1)
	assert.Equal(t, "00:00", pods[0].Duration)
	assert.Equal(t, "Show notes.", pods[0].Description)

	vids := c.Videos()
	require.Len(t, vids, 1)
	assert.Equal(t, DefaultValues.VideoThumbnail, vids[0].Thumbnail)
}

func TestTestimonials_ApprovedAndClamped(t *testing.T) {
	ts := load(t).Testimonials()

	require.Len(t, ts, 2)
	assert.Equal(t, "Ada", ts[0].Name)
	assert.Equal(t, 5, ts[0].Rating)
	assert.Equal(t, "Cy", ts[1].Name)
	assert.Equal(t, 5, ts[1].Rating)
}

func TestBlogPosts(t *testing.T) {
	c := load(t)

	posts := c.BlogPosts()
	assert.Equal(t, []string{"newer", "older"}, slugsOf(posts, func(p BlogPost) string { return p.Slug }))
	assert.Equal(t, "Short.", posts[0].Excerpt)
	assert.Equal(t, "line one line two line three", posts[1].Excerpt)
	assert.Equal(t, []string{"news"}, posts[1].Tags)

	_, ok := c.BlogPost("older")
	assert.True(t, ok)
	_, ok = c.BlogPost("missing")
	assert.False(t, ok)
}

func TestAbout(t *testing.T) {
	a := load(t).About()

	assert.Equal(t, "Our Story", a.Title)
	assert.Equal(t, DefaultAbout.Subtitle, a.Subtitle)
	assert.Equal(t, []string{"First.", "Second."}, a.Story)
	require.Len(t, a.Values, 1)
	assert.Equal(t, DefaultValues.AboutValueIcon, a.Values[0].Icon)
	assert.Equal(t, "Our Mission", a.Mission.Title)
	assert.Equal(t, "Spread the word.", a.Mission.Body)
	assert.Equal(t, DefaultAbout.CTA, a.CTA)
}

func TestAbout_MissingFileUsesDefaults(t *testing.T) {
	c := Load(fstest.MapFS{}, Options{})
	assert.Equal(t, DefaultAbout, c.About())
	assert.Empty(t, c.Books())
}

func TestLoadDir_MissingRoot(t *testing.T) {
	_, err := LoadDir(t.TempDir()+"/nope", Options{})
	assert.Error(t, err)
}
