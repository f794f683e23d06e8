package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"cropwater/database"
	"cropwater/pkg/advisory/repositoryImp"
	"cropwater/pkg/advisory/serviceImp"
)

const page = `<html><head><title>Drip irrigation for banana</title></head><body>
<nav><p>menu</p></nav>
<article><h1>Banana</h1><p>Irrigate every   3 days.</p><ul><li>Mulch the basin</li></ul></article>
</body></html>`

func newCtrl(t *testing.T, allowed ...string) *AdvisoryCtrl {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return New(serviceImp.New(repositoryImp.New(db)), allowed, 4096)
}

func post(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	return rec
}

func TestFetchMainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	text, title, err := fetchMainText(t.Context(), srv.Client(), srv.URL, 4096)
	if err != nil {
		t.Fatal(err)
	}
	if title != "Drip irrigation for banana" {
		t.Errorf("title = %q", title)
	}
	if text != "Banana\nIrrigate every   3 days.\nMulch the basin" {
		t.Errorf("text = %q", text)
	}

	if _, _, err := fetchMainText(t.Context(), srv.Client(), srv.URL, 100); err != errTooLarge {
		t.Errorf("small limit: %v", err)
	}
}

func TestIngestURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer srv.Close()
	u, _ := url.Parse(srv.URL)

	rec := post(t, newCtrl(t).IngestURL, `{"url":"`+srv.URL+`"}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("unlisted host: status %d", rec.Code)
	}

	h := newCtrl(t, u.Hostname())
	rec = post(t, h.IngestURL, `{"url":"`+srv.URL+`","tags":"banana"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var out struct {
		Doc struct {
			Title string `json:"title"`
		} `json:"doc"`
		Chunks int `json:"chunks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Doc.Title != "Drip irrigation for banana" || out.Chunks != 1 {
		t.Errorf("out = %+v", out)
	}
}

func TestIngestTextAndSearch(t *testing.T) {
	h := newCtrl(t)
	if rec := post(t, h.IngestText, `{"title":"","text":"x"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing title: status %d", rec.Code)
	}
	if rec := post(t, h.IngestText, `{"title":"Sugarcane","text":"Sugarcane needs trash mulching."}`); rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/advisory/search?q=mulching", nil)
	rec := httptest.NewRecorder()
	if err := h.Search(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"doc_title":"Sugarcane"`) {
		t.Errorf("search: %d %s", rec.Code, rec.Body)
	}
}
