//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"
)

const sessionHeader = "X-Cart-Session"

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

type cartView struct {
	Session string `json:"session"`
	Lines   []struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	} `json:"lines"`
	Count int    `json:"count"`
	Total string `json:"total"`
}

func TestSystem_E2E_Checkout(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	email := fmt.Sprintf("user_%d_%d@example.com", time.Now().Unix(), rand.Intn(100000))
	pass := "password123!"

	doJSON(t, http.MethodPost, baseURL+"/auth/register", nil, map[string]any{
		"email":    email,
		"password": pass,
		"name":     "E2E Reader",
	}, nil, 201)

	var loginResp struct {
		AccessToken string `json:"access_token"`
	}
	doJSON(t, http.MethodPost, baseURL+"/auth/login", nil, map[string]any{
		"email":    email,
		"password": pass,
	}, &loginResp, 200)
	if loginResp.AccessToken == "" {
		t.Fatalf("empty access_token")
	}
	bearer := map[string]string{"Authorization": "Bearer " + loginResp.AccessToken}

	var products []map[string]any
	doJSON(t, http.MethodGet, baseURL+"/products", nil, nil, &products, 200)
	if len(products) == 0 {
		t.Fatalf("expected non-empty products")
	}

	pid, _ := products[0]["id"].(string)
	if pid == "" {
		t.Fatalf("product id missing in response: %#v", products[0])
	}

	var cv cartView
	doJSON(t, http.MethodPost, baseURL+"/cart/items", nil, map[string]any{"product_id": pid}, &cv, 200)
	session := map[string]string{sessionHeader: cv.Session}
	doJSON(t, http.MethodPost, baseURL+"/cart/items", session, map[string]any{"product_id": pid}, &cv, 200)
	if cv.Count != 2 || len(cv.Lines) != 1 {
		t.Fatalf("cart after two adds: %+v", cv)
	}

	doJSON(t, http.MethodPost, baseURL+"/cart/items", session, map[string]any{"product_id": "no-such-book"}, nil, 404)

	var checkout struct {
		Order map[string]any `json:"order"`
	}
	doJSON(t, http.MethodPost, baseURL+"/checkout", merge(bearer, session), map[string]any{
		"payment_reference": fmt.Sprintf("E2E-%d", time.Now().UnixNano()),
		"name":              "E2E Reader",
		"email":             email,
		"shipping_address":  "1 Test Street",
	}, &checkout, 201)

	orderID, _ := checkout.Order["id"].(string)
	if orderID == "" {
		t.Fatalf("order id missing: %#v", checkout.Order)
	}

	var got map[string]any
	doJSON(t, http.MethodGet, baseURL+"/orders/"+orderID, bearer, nil, &got, 200)

	doJSON(t, http.MethodGet, baseURL+"/cart", session, nil, &cv, 200)
	if cv.Count != 0 {
		t.Fatalf("cart not cleared after checkout: %+v", cv)
	}

	if os.Getenv("E2E_RESTART_CART") == "1" {
		doJSON(t, http.MethodPost, baseURL+"/cart/items", session, map[string]any{"product_id": pid}, &cv, 200)

		restartContainer(t, ctx, "cart")
		waitReady(t, ctx, baseURL+"/readyz")

		doJSON(t, http.MethodGet, baseURL+"/orders/"+orderID, bearer, nil, &got, 200)
		doJSON(t, http.MethodGet, baseURL+"/cart", session, nil, &cv, 200)
		if cv.Count != 1 {
			t.Fatalf("cart not restored after restart: %+v", cv)
		}
	}
}

func merge(ms ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, m := range ms {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, headers map[string]string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
