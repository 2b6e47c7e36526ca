// Package integration holds black-box tests against a running storefront.
// They are skipped unless BASE_URL points at one.
package integration

import (
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func baseURL(tb testing.TB) string {
	tb.Helper()
	v := os.Getenv("BASE_URL")
	if v == "" {
		tb.Skip("BASE_URL not set")
	}
	return strings.TrimRight(v, "/")
}

func waitReady(t *testing.T) string {
	t.Helper()
	u := baseURL(t)
	deadline := time.Now().Add(20 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(u + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return u
			}
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("service not ready")
	return ""
}

func fetch(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(b)
}

func TestIntegration_Health(t *testing.T) {
	u := waitReady(t)
	code, body := fetch(t, u+"/health")
	if code != http.StatusOK || body != "OK" {
		t.Fatalf("expected 200 OK, got %d %q", code, body)
	}
}

func TestIntegration_OpenAPIServed(t *testing.T) {
	u := waitReady(t)
	code, body := fetch(t, u+"/openapi.yaml")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !strings.Contains(body, "openapi:") {
		t.Fatalf("expected openapi document")
	}
}

func TestIntegration_DocsServed(t *testing.T) {
	u := waitReady(t)
	code, body := fetch(t, u+"/docs/")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !strings.Contains(strings.ToLower(body), "swagger") {
		t.Fatalf("expected swagger ui in docs page")
	}
}

func TestIntegration_CatalogRenders(t *testing.T) {
	u := waitReady(t)
	resp, err := http.Get(u + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html, got %q", ct)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}
