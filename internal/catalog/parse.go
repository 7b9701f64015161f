package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"FlamingBooks/internal/content"
)

const displayDateLayout = "January 2, 2006"

type parser struct {
	d   Defaults
	now time.Time
}

func (p parser) book(e content.Entry) Book {
	m := e.Meta

	price := m.Number("price", decimal.Zero)
	if price.IsNegative() {
		price = decimal.Zero
	}
	stock := m.Int("stock", 0)
	if stock < 0 {
		stock = 0
	}
	pages := m.Int("pages", 0)
	if pages < 0 {
		pages = 0
	}

	return Book{
		ID:          e.Slug,
		Slug:        e.Slug,
		Title:       m.String("title", e.Slug),
		Author:      m.String("author", p.d.BookAuthor),
		Description: describe(e, "description"),
		Price:       price,
		Category:    m.String("category", p.d.BookCategory),
		Image:       m.String("image", p.d.BookImage),
		Featured:    m.Bool("featured", false),
		Stock:       stock,

		ISBN:            m.OptString("isbn"),
		Publisher:       m.OptString("publisher"),
		PublicationDate: m.OptString("publication_date"),
		Pages:           pages,
	}
}

func (p parser) author(e content.Entry) Author {
	m := e.Meta
	return Author{
		Slug:      e.Slug,
		Name:      m.String("name", e.Slug),
		Bio:       describe(e, "bio"),
		Image:     m.String("image", p.d.AuthorImage),
		BookCount: nonNegative(m.Int("book_count", 0)),
	}
}

func (p parser) event(e content.Entry) Event {
	m := e.Meta

	date, ok := m.Time("date")
	if !ok {
		date = p.now
	}

	isPast := date.Before(p.now)
	if m.Has("is_past") {
		isPast = m.Bool("is_past", isPast)
	}

	return Event{
		Slug:        e.Slug,
		Title:       m.String("title", e.Slug),
		Description: describe(e, "description"),
		Date:        date,
		DisplayDate: date.Format(displayDateLayout),
		Time:        m.OptString("time"),
		Location:    m.String("location", ""),
		Image:       m.String("image", p.d.EventImage),
		IsPast:      isPast,
		CTAURL:      m.OptString("cta_url"),
	}
}

func (p parser) collection(e content.Entry) Collection {
	m := e.Meta
	return Collection{
		Slug:        e.Slug,
		Title:       m.String("title", e.Slug),
		Description: describe(e, "description"),
		Icon:        m.String("icon", p.d.CollectionIcon),
		Color:       m.String("color", p.d.CollectionColor),
		Count:       nonNegative(m.Int("count", 0)),
		Order:       m.Int("order", 0),
	}
}

func (p parser) photo(e content.Entry) Photo {
	m := e.Meta
	return Photo{
		Slug:  e.Slug,
		Title: m.String("title", e.Slug),
		Image: m.String("image", p.d.PhotoImage),
		Order: m.Int("order", 0),
	}
}

func (p parser) video(e content.Entry) Video {
	m := e.Meta
	return Video{
		Slug:      e.Slug,
		Title:     m.String("title", e.Slug),
		Thumbnail: m.String("thumbnail", p.d.VideoThumbnail),
		URL:       m.OptString("url"),
		Order:     m.Int("order", 0),
	}
}

func (p parser) podcast(e content.Entry) Podcast {
	m := e.Meta
	return Podcast{
		Slug:        e.Slug,
		Title:       m.String("title", e.Slug),
		Description: describe(e, "description"),
		Duration:    m.String("duration", p.d.PodcastDuration),
		AudioURL:    m.OptString("audio_url"),
		Order:       m.Int("order", 0),
	}
}

func (p parser) testimonial(e content.Entry) Testimonial {
	m := e.Meta

	rating := m.Int("rating", p.d.TestimonialRating)
	rating = min(max(rating, 1), 5)

	return Testimonial{
		Slug:     e.Slug,
		Name:     m.String("name", e.Slug),
		Message:  describe(e, "message"),
		Rating:   rating,
		Approved: m.Bool("approved", true),
	}
}

func (p parser) blogPost(e content.Entry) BlogPost {
	m := e.Meta
	body := strings.TrimSpace(e.Body)

	date, ok := m.Time("date")
	if !ok {
		date = p.now
	}

	excerpt := m.OptString("excerpt")
	if excerpt == "" {
		lines := strings.Split(body, "\n")
		excerpt = strings.Join(lines[:min(3, len(lines))], " ")
	}

	return BlogPost{
		Slug:    e.Slug,
		Title:   m.String("title", e.Slug),
		Author:  m.OptString("author"),
		Excerpt: excerpt,
		Date:    date,
		Image:   m.OptString("image"),
		Tags:    m.Strings("tags"),
		Content: body,
	}
}

func (p parser) about(e content.Entry) About {
	m := e.Meta
	def := DefaultAbout

	story := []string{}
	for _, it := range m.List("story") {
		var para string
		switch v := it.(type) {
		case string:
			para = v
		case map[string]any:
			para = content.Meta(v).String("paragraph", "")
		}
		if para = strings.TrimSpace(para); para != "" {
			story = append(story, para)
		}
	}

	values := []AboutValue{}
	for _, it := range m.List("values") {
		raw, ok := it.(map[string]any)
		if !ok {
			continue
		}
		vm := content.Meta(raw)
		v := AboutValue{
			Icon:        vm.String("icon", p.d.AboutValueIcon),
			Title:       vm.String("title", ""),
			Description: vm.String("description", ""),
		}
		if v.Title != "" && v.Description != "" {
			values = append(values, v)
		}
	}

	mission, vision, cta := m.Map("mission"), m.Map("vision"), m.Map("cta")

	return About{
		Title:    m.String("title", def.Title),
		Subtitle: m.String("subtitle", def.Subtitle),
		Story:    story,
		Values:   values,
		Mission: AboutSection{
			Title: mission.String("title", def.Mission.Title),
			Body:  mission.String("body", def.Mission.Body),
		},
		Vision: AboutSection{
			Title: vision.String("title", def.Vision.Title),
			Body:  vision.String("body", def.Vision.Body),
		},
		CTA: AboutCTA{
			Title:       cta.String("title", def.CTA.Title),
			Description: cta.String("description", def.CTA.Description),
			Button:      cta.String("button", def.CTA.Button),
			Placeholder: cta.String("placeholder", def.CTA.Placeholder),
		},
	}
}

// describe prefers the named front matter field and falls back to the body.
func describe(e content.Entry, key string) string {
	if v := e.Meta.OptString(key); v != "" {
		return v
	}
	return strings.TrimSpace(e.Body)
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
