package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRoot(t *testing.T) {
	router := newTestRouter(nil)

	w := doJSON(router, "GET", "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	resp := decode[RootResponse](t, w)
	if resp.Version != serviceVersion {
		t.Errorf("Expected version %s, got %s", serviceVersion, resp.Version)
	}
	if resp.Platform != "Azure App Service" {
		t.Errorf("Expected configured platform, got %s", resp.Platform)
	}
	if len(resp.Endpoints["ofertas"]) != 6 {
		t.Errorf("Expected 6 offer endpoints, got %v", resp.Endpoints["ofertas"])
	}
	if got := resp.Endpoints["system"]; len(got) != 2 || got[1] != "/metrics" {
		t.Errorf("Expected metrics endpoint listed, got %v", got)
	}
}

func TestRootWithoutMetrics(t *testing.T) {
	h := NewSystemHandler("local", "")
	resp, err := h.Root(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := resp.Endpoints["system"]; ok {
		t.Error("Expected no system endpoints when metrics are disabled")
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(nil)

	for _, path := range []string{"/health", "/faiss/health"} {
		w := doJSON(router, "GET", path, "")
		if w.Code != http.StatusOK {
			t.Errorf("%s: Expected status 200, got %d", path, w.Code)
		}
		resp := decode[map[string]any](t, w)
		if resp["status"] != "healthy" {
			t.Errorf("%s: Expected status healthy, got %v", path, resp["status"])
		}
		if resp["timestamp"] != "2025-05-20T10:30:00Z" {
			t.Errorf("%s: Unexpected timestamp %v", path, resp["timestamp"])
		}
	}
}

func TestFaissSearch(t *testing.T) {
	router := newTestRouter(nil)

	w := doJSON(router, "POST", "/faiss/search", `{"text": "migración cloud"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	resp := decode[SearchResponse](t, w)
	if resp.Query != "migración cloud" {
		t.Errorf("Expected query to be echoed, got %q", resp.Query)
	}
	if len(resp.Results) != 2 || resp.Results[0].Score != 0.95 || resp.Results[1].Score != 0.87 {
		t.Errorf("Unexpected results %+v", resp.Results)
	}
}

func TestFaissSearchWithoutText(t *testing.T) {
	router := newTestRouter(nil)

	w := doJSON(router, "POST", "/faiss/search", `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if resp := decode[SearchResponse](t, w); resp.Query != "" {
		t.Errorf("Expected empty query, got %q", resp.Query)
	}
}

func TestFaissSearchMalformedBody(t *testing.T) {
	router := newTestRouter(nil)

	w := doJSON(router, "POST", "/faiss/search", `{"text": `)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", w.Code)
	}
}

func TestWrapUnexpectedError(t *testing.T) {
	router := gin.New()
	router.GET("/boom", Wrap(func(*gin.Context) (any, error) {
		return nil, errors.New("index not loaded")
	}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"detail":"index not loaded"`) {
		t.Errorf("Expected error message as detail, got %s", w.Body.String())
	}
}

func TestWrapFault(t *testing.T) {
	router := gin.New()
	router.GET("/fault", Wrap(func(*gin.Context) (any, error) {
		return nil, &Fault{Status: http.StatusTeapot, Detail: "short and stout"}
	}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/fault", nil))

	if w.Code != http.StatusTeapot {
		t.Fatalf("Expected status 418, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"detail":"short and stout"`) {
		t.Errorf("Unexpected body %s", w.Body.String())
	}
}
