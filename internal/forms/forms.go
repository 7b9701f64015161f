// Package forms relays the storefront's contact, newsletter and testimonial
// forms to their spreadsheet endpoints.
package forms

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"FlamingBooks/pkg/kit"
)

const (
	maxUpstreamBody = 1 << 20
	forwardTimeout  = 10 * time.Second
)

// Endpoint binds a form name (served at /api/{Name}) to its upstream URL.
type Endpoint struct {
	Name string
	URL  string
	New  func() Payload
}

func ContactEndpoint(url string) Endpoint {
	return Endpoint{Name: "contact", URL: url, New: func() Payload { return &Contact{} }}
}

func SubscribeEndpoint(url string) Endpoint {
	return Endpoint{Name: "subscribe", URL: url, New: func() Payload { return &Subscription{} }}
}

func TestimonialEndpoint(url string) Endpoint {
	return Endpoint{Name: "testimonial", URL: url, New: func() Payload { return &Testimonial{} }}
}

type result struct {
	OK      bool             `json:"ok"`
	Message string           `json:"message"`
	Error   string           `json:"error,omitempty"`
	Fields  []kit.FieldError `json:"fields,omitempty"`
}

type Server struct {
	Endpoints []Endpoint
	Client    *http.Client
	Limiter   *kit.IPRateLimiter
	Metrics   *Metrics
	Log       *zap.Logger
}

// NewClient returns the client used to reach upstream endpoints. It follows
// redirects, which Apps Script deployments always issue.
func NewClient() *http.Client {
	return &http.Client{
		Timeout: forwardTimeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     30 * time.Second,
		},
	}
}

// Register serves every endpoint under /api on r.
func (s *Server) Register(r chi.Router) {
	if s.Client == nil {
		s.Client = NewClient()
	}
	if s.Log == nil {
		s.Log = zap.NewNop()
	}

	r.Route("/api", func(r chi.Router) {
		if s.Limiter != nil {
			r.Use(s.Limiter.Middleware)
		}
		for _, ep := range s.Endpoints {
			r.HandleFunc("/"+ep.Name, s.handle(ep))
		}
	})
}

func (s *Server) handle(ep Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodOptions:
			w.WriteHeader(http.StatusNoContent)
			return
		case http.MethodPost:
		default:
			s.reply(w, ep, http.StatusMethodNotAllowed, result{Message: "Method not allowed"})
			return
		}

		p := ep.New()
		if err := bind(w, r, p); err != nil {
			s.reply(w, ep, http.StatusBadRequest, result{Message: "Invalid request body"})
			return
		}
		p.normalize()
		if errs := kit.Validate(p); errs != nil {
			s.reply(w, ep, http.StatusBadRequest, result{Message: "Missing required fields", Fields: errs})
			return
		}

		if ep.URL == "" {
			s.Log.Error("form endpoint not configured", zap.String("form", ep.Name))
			s.reply(w, ep, http.StatusInternalServerError, result{Message: "Missing " + ep.Name + " endpoint URL"})
			return
		}

		status, body, err := s.forward(r.Context(), ep.URL, p)
		if err != nil {
			s.Log.Warn("form forward failed", zap.String("form", ep.Name), zap.Error(err))
			s.reply(w, ep, http.StatusBadGateway, result{
				Message: "Failed to reach " + ep.Name + " service",
				Error:   err.Error(),
			})
			return
		}

		s.Metrics.observe(ep.Name, status)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}
}

func (s *Server) reply(w http.ResponseWriter, ep Endpoint, status int, res result) {
	s.Metrics.observe(ep.Name, status)
	kit.WriteJSON(w, status, res)
}

func (s *Server) forward(ctx context.Context, target string, p Payload) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(p.Values().Encode()))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.Client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

var errUnsupportedMedia = errors.New("unsupported content type")

// bind fills p from a JSON or form-encoded body, chosen by Content-Type.
// Unknown JSON fields are ignored.
func bind(w http.ResponseWriter, r *http.Request, p Payload) error {
	r.Body = http.MaxBytesReader(w, r.Body, kit.MaxJSONBody)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/json":
		return json.NewDecoder(r.Body).Decode(p)
	case "application/x-www-form-urlencoded", "multipart/form-data", "":
		if ct == "multipart/form-data" {
			if err := r.ParseMultipartForm(kit.MaxJSONBody); err != nil {
				return err
			}
		} else if err := r.ParseForm(); err != nil {
			return err
		}
		p.Fill(r.PostForm)
		return nil
	default:
		return errUnsupportedMedia
	}
}
