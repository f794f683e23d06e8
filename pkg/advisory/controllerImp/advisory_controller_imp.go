package controllerImp

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"cropwater/pkg/advisory/service"
	"cropwater/pkg/apierr"
)

type AdvisoryCtrl struct {
	s        service.AdvisoryService
	allow    map[string]bool
	maxBytes int
	client   *http.Client
}

type ingestReq struct {
	Title     string `json:"title"`
	Tags      string `json:"tags"`
	Text      string `json:"text"`
	SourceURL string `json:"source_url"`
}

// New allows URL ingestion only from the listed hosts; an empty list
// disables it.
func New(s service.AdvisoryService, allowed []string, maxBytes int) *AdvisoryCtrl {
	allow := map[string]bool{}
	for _, h := range allowed {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			allow[h] = true
		}
	}
	return &AdvisoryCtrl{s: s, allow: allow, maxBytes: maxBytes, client: &http.Client{Timeout: fetchTimeout}}
}

func (h *AdvisoryCtrl) IngestText(c echo.Context) error {
	var req ingestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
	}
	doc, n, err := h.s.Ingest(req.Title, req.Tags, req.Text, strings.TrimSpace(req.SourceURL))
	if err != nil {
		return apierr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"doc": doc, "chunks": n})
}

func (h *AdvisoryCtrl) IngestURL(c echo.Context) error {
	var body struct {
		URL   string `json:"url"`
		Tags  string `json:"tags"`
		Title string `json:"title"`
	}
	if err := c.Bind(&body); err != nil || body.URL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "url required"})
	}
	u, err := url.Parse(body.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad url"})
	}
	if !h.allow[strings.ToLower(u.Hostname())] {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "domain not allowed"})
	}

	txt, title, err := fetchMainText(c.Request().Context(), h.client, body.URL, h.maxBytes)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, errTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}
	if body.Title != "" {
		title = body.Title
	}
	doc, n, err := h.s.Ingest(title, body.Tags, txt, body.URL)
	if err != nil {
		return apierr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"doc": doc, "chunks": n})
}

func (h *AdvisoryCtrl) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "q required"})
	}
	k := 6
	if v, err := strconv.Atoi(c.QueryParam("k")); err == nil && v > 0 && v <= 50 {
		k = v
	}
	hits, err := h.s.Search(q, k)
	if err != nil {
		return apierr.JSON(c, err)
	}
	if hits == nil {
		hits = []service.Hit{}
	}
	return c.JSON(http.StatusOK, hits)
}
