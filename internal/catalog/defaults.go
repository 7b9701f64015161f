package catalog

// Defaults is the fallback table applied when a content entry omits or
// garbles an optional field.
type Defaults struct {
	BookAuthor   string
	BookCategory string
	BookImage    string

	AuthorImage string

	EventImage string

	CollectionIcon  string
	CollectionColor string

	PhotoImage      string
	VideoThumbnail  string
	PodcastDuration string

	TestimonialRating int
	AboutValueIcon    string
}

var DefaultValues = Defaults{
	BookAuthor:   "Unknown",
	BookCategory: "General",
	BookImage:    "https://images.unsplash.com/photo-1512820790803-83ca734da794?w=400&h=500&fit=crop",

	AuthorImage: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=400&h=400&fit=crop",

	EventImage: "https://images.unsplash.com/photo-1519682337058-a94d519337bc?w=800&h=400&fit=crop",

	CollectionIcon:  "BookOpen",
	CollectionColor: "from-primary/20 to-primary/5",

	PhotoImage:      "https://images.unsplash.com/photo-1519682337058-a94d519337bc?w=600&h=400&fit=crop",
	VideoThumbnail:  "https://images.unsplash.com/photo-1540575467063-178a50c2df87?w=600&h=400&fit=crop",
	PodcastDuration: "00:00",

	TestimonialRating: 5,
	AboutValueIcon:    "Heart",
}

// DefaultAbout is served when pages/about.md is missing; its fields also
// back-fill a partial about page.
var DefaultAbout = About{
	Title:    "About Us",
	Subtitle: "Learn more about Flaming Books",
	Story:    []string{},
	Values:   []AboutValue{},
	Mission:  AboutSection{Title: "Our Mission"},
	Vision:   AboutSection{Title: "Our Vision"},
	CTA: AboutCTA{
		Title:       "Join Our Community",
		Description: "Stay connected with us for new arrivals, exclusive offers, and inspiring content.",
		Button:      "Subscribe",
		Placeholder: "Enter your email",
	},
}
