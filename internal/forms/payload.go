package forms

import (
	"net/url"
	"strconv"
	"strings"
)

// Payload is a submitted form. Fill reads the form-encoded representation;
// Values is what gets forwarded upstream.
type Payload interface {
	Fill(v url.Values)
	Values() url.Values
	normalize()
}

type Contact struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"max=300"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (c *Contact) Fill(v url.Values) {
	c.Name = v.Get("name")
	c.Email = v.Get("email")
	c.Subject = v.Get("subject")
	c.Message = v.Get("message")
}

func (c *Contact) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Subject = strings.TrimSpace(c.Subject)
	c.Message = strings.TrimSpace(c.Message)
}

func (c *Contact) Values() url.Values {
	return url.Values{
		"name":    {c.Name},
		"email":   {c.Email},
		"subject": {c.Subject},
		"message": {c.Message},
	}
}

type Subscription struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

func (s *Subscription) Fill(v url.Values) { s.Email = v.Get("email") }

func (s *Subscription) normalize() { s.Email = strings.TrimSpace(s.Email) }

func (s *Subscription) Values() url.Values {
	return url.Values{"email": {s.Email}}
}

type Testimonial struct {
	Name    string `json:"name" validate:"required,max=200"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Fill treats a missing or non-numeric rating as absent.
func (t *Testimonial) Fill(v url.Values) {
	t.Name = v.Get("name")
	t.Message = v.Get("message")
	t.Rating, _ = strconv.Atoi(strings.TrimSpace(v.Get("rating")))
}

func (t *Testimonial) normalize() {
	t.Name = strings.TrimSpace(t.Name)
	t.Message = strings.TrimSpace(t.Message)
}

func (t *Testimonial) Values() url.Values {
	return url.Values{
		"name":    {t.Name},
		"rating":  {strconv.Itoa(t.Rating)},
		"message": {t.Message},
	}
}
