package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"FlamingBooks/internal/catalog"
)

// Resolver turns a product key into the snapshot stored on a new line.
// Unknown keys must be reported as ErrProductNotFound.
type Resolver interface {
	Resolve(ctx context.Context, productID string) (Product, error)
}

type ResolverFunc func(ctx context.Context, productID string) (Product, error)

func (f ResolverFunc) Resolve(ctx context.Context, productID string) (Product, error) {
	return f(ctx, productID)
}

// CatalogResolver resolves against an in-process catalog.
type CatalogResolver struct {
	Catalog *catalog.Catalog
}

func (r CatalogResolver) Resolve(_ context.Context, productID string) (Product, error) {
	b, ok := r.Catalog.Book(productID)
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return snapshotOfBook(b), nil
}

func snapshotOfBook(b catalog.Book) Product {
	return Product{
		ID:     b.ID,
		Title:  b.Title,
		Price:  b.Price,
		Image:  b.Image,
		Author: b.Author,
	}
}

var ErrCatalogBadStatus = errors.New("catalog bad status")

// CatalogClient resolves products through the catalog service's HTTP API.
type CatalogClient struct {
	BaseURL string
	Client  *http.Client
}

func NewCatalogClient(baseURL string) *CatalogClient {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &CatalogClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *CatalogClient) Resolve(ctx context.Context, productID string) (Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/products/"+url.PathEscape(productID), nil)
	if err != nil {
		return Product{}, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return Product{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return Product{}, ErrProductNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		_, _ = io.Copy(io.Discard, resp.Body)
		return Product{}, fmt.Errorf("%w: status=%d", ErrCatalogUnavailable, resp.StatusCode)
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return Product{}, fmt.Errorf("%w: status=%d", ErrCatalogBadStatus, resp.StatusCode)
	}

	var b catalog.Book
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		return Product{}, fmt.Errorf("%w: decode: %v", ErrCatalogBadStatus, err)
	}
	return snapshotOfBook(b), nil
}

// Ping checks the catalog's readiness endpoint.
func (c *CatalogClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/readyz", nil)
	if err != nil {
		return err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status=%d", ErrCatalogUnavailable, resp.StatusCode)
	}
	return nil
}
