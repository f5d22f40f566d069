package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	gohttp "github.com/km-arc/go-sprinkles/framework/http"
)

type payload struct {
	Target string `json:"target"`
	Type   string `json:"type"`
}

func jsonRequest(body string) *gohttp.Request {
	r := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return gohttp.NewRequest(r)
}

// ── Bind ──────────────────────────────────────────────────────────────────────

func TestRequest_Bind(t *testing.T) {
	var p payload
	if err := jsonRequest(`{"target":"#likes .increment","type":"click"}`).Bind(&p); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if p.Target != "#likes .increment" || p.Type != "click" {
		t.Errorf("Bind: got %+v", p)
	}
}

func TestRequest_Bind_RejectsUnknownFields(t *testing.T) {
	var p payload
	if err := jsonRequest(`{"target":"a","type":"click","extra":1}`).Bind(&p); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestRequest_Bind_RejectsEmptyBody(t *testing.T) {
	var p payload
	if err := jsonRequest("").Bind(&p); err == nil {
		t.Error("expected error for empty body")
	}
}

func TestRequest_Bind_RejectsOtherContentTypes(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader("target=a"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var p payload
	if err := gohttp.NewRequest(r).Bind(&p); err == nil {
		t.Error("expected error for form body")
	}
}

// ── Query & route params ──────────────────────────────────────────────────────

func TestRequest_Query(t *testing.T) {
	req := gohttp.NewRequest(httptest.NewRequest(http.MethodGet, "/?type=click", nil))

	if got := req.Query("type"); got != "click" {
		t.Errorf("Query(type): got %q", got)
	}
	if got := req.Query("missing", "fallback"); got != "fallback" {
		t.Errorf("Query(missing): got %q", got)
	}
}

func TestRequest_RouteParam(t *testing.T) {
	var got string
	mux := chi.NewRouter()
	mux.Get("/controllers/{name}", func(w http.ResponseWriter, r *http.Request) {
		got = gohttp.NewRequest(r).RouteParam("name")
	})
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/controllers/counter", nil))

	if got != "counter" {
		t.Errorf("RouteParam(name): got %q want counter", got)
	}
}
