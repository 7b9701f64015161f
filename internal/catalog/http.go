package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"FlamingBooks/pkg/kit"
)

type Server struct {
	Catalog *Catalog
	Log     *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", kit.Healthz)
	r.Get("/readyz", s.readyz)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.listProducts)
		r.Get("/{id}", s.getProduct)
	})
	r.Get("/categories", s.categories)

	r.Get("/authors", s.authors)
	r.Get("/events", s.events)
	r.Get("/collections", s.collections)
	r.Get("/testimonials", s.testimonials)
	r.Get("/about", s.about)

	r.Route("/gallery", func(r chi.Router) {
		r.Get("/photos", s.photos)
		r.Get("/videos", s.videos)
		r.Get("/podcasts", s.podcasts)
	})

	r.Route("/blog", func(r chi.Router) {
		r.Get("/", s.blogPosts)
		r.Get("/{slug}", s.blogPost)
	})

	return r
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if s.Catalog == nil {
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// listProducts serves the shop listing, or the featured shelf when
// featured=true. The shelf lives on the query string so that every path
// under /products/ stays a product key.
func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if raw := q.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			kit.WriteError(w, r, http.StatusBadRequest, "bad featured", map[string]any{"featured": raw})
			return
		}
		if featured {
			s.featuredProducts(w, r)
			return
		}
	}
	kit.WriteJSON(w, http.StatusOK, s.Catalog.SearchBooks(Filter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Author:   q.Get("author"),
	}))
}

func (s *Server) featuredProducts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			kit.WriteError(w, r, http.StatusBadRequest, "bad limit", map[string]any{"limit": raw})
			return
		}
		limit = n
	}
	kit.WriteJSON(w, http.StatusOK, s.Catalog.FeaturedBooks(limit))
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, ok := s.Catalog.Book(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, b)
}

func (s *Server) categories(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.Categories())
}

func (s *Server) authors(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.Authors())
}

func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	switch when := r.URL.Query().Get("when"); when {
	case "":
		kit.WriteJSON(w, http.StatusOK, s.Catalog.Events())
	case "upcoming":
		kit.WriteJSON(w, http.StatusOK, s.Catalog.UpcomingEvents())
	case "past":
		kit.WriteJSON(w, http.StatusOK, s.Catalog.PastEvents())
	default:
		kit.WriteError(w, r, http.StatusBadRequest, "bad when", map[string]any{"allowed": []string{"upcoming", "past"}})
	}
}

func (s *Server) collections(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.Collections())
}

func (s *Server) testimonials(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.Testimonials())
}

func (s *Server) about(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.About())
}

func (s *Server) photos(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.Photos())
}

func (s *Server) videos(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.Videos())
}

func (s *Server) podcasts(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.Podcasts())
}

func (s *Server) blogPosts(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.BlogPosts())
}

func (s *Server) blogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	p, ok := s.Catalog.BlogPost(slug)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"slug": slug})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}
