package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Book struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Featured    bool            `json:"featured"`
	Stock       int             `json:"stock"`

	ISBN            string `json:"isbn,omitempty"`
	Publisher       string `json:"publisher,omitempty"`
	PublicationDate string `json:"publication_date,omitempty"`
	Pages           int    `json:"pages,omitempty"`
}

type Author struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	BookCount int    `json:"book_count"`
}

type Event struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	DisplayDate string    `json:"display_date"`
	Time        string    `json:"time,omitempty"`
	Location    string    `json:"location"`
	Image       string    `json:"image"`
	IsPast      bool      `json:"is_past"`
	CTAURL      string    `json:"cta_url,omitempty"`
}

type Collection struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Count       int    `json:"count"`
	Order       int    `json:"order"`
}

type Photo struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Image string `json:"image"`
	Order int    `json:"order"`
}

type Video struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	URL       string `json:"url,omitempty"`
	Order     int    `json:"order"`
}

type Podcast struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	AudioURL    string `json:"audio_url,omitempty"`
	Order       int    `json:"order"`
}

type Testimonial struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Message  string `json:"message"`
	Rating   int    `json:"rating"`
	Approved bool   `json:"approved"`
}

type BlogPost struct {
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	Author  string    `json:"author,omitempty"`
	Excerpt string    `json:"excerpt"`
	Date    time.Time `json:"date"`
	Image   string    `json:"image,omitempty"`
	Tags    []string  `json:"tags"`
	Content string    `json:"content"`
}

type AboutValue struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type AboutSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type AboutCTA struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Button      string `json:"button"`
	Placeholder string `json:"placeholder"`
}

type About struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	Story    []string     `json:"story"`
	Values   []AboutValue `json:"values"`
	Mission  AboutSection `json:"mission"`
	Vision   AboutSection `json:"vision"`
	CTA      AboutCTA     `json:"cta"`
}
